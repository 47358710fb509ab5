package ollama

import "fmt"

var statusMessages = map[int]string{
	400: "Bad Request - The request was malformed or contains invalid parameters.\n" +
		"Suggestions:\n" +
		"  • Check if your prompt is properly formatted\n" +
		"  • Verify all required parameters are provided\n" +
		"  • Ensure the model name is correct",
	403: "Forbidden - Access to Ollama was denied.\n" +
		"Suggestions:\n" +
		"  • Check the OLLAMA_ORIGINS environment variable\n" +
		"  • Verify Ollama accepts requests from this application\n" +
		"  • Ensure you have permission to access the service",
	404: "Model Not Found - The requested model doesn't exist.\n" +
		"Suggestions:\n" +
		"  • Install the model: ollama pull <model-name>\n" +
		"  • Check available models with the 'list' command\n" +
		"  • Verify the model name spelling",
	500: "Internal Server Error - Ollama encountered an unexpected error.\n" +
		"Suggestions:\n" +
		"  • The model may have run out of memory (RAM/VRAM)\n" +
		"  • Try restarting Ollama: ollama serve\n" +
		"  • Check the Ollama logs for detailed error information\n" +
		"  • Consider using a smaller model if resources are limited",
	503: "Service Unavailable - Ollama service is not responding.\n" +
		"Suggestions:\n" +
		"  • Start Ollama: ollama serve\n" +
		"  • Check if Ollama is running: ps aux | grep ollama\n" +
		"  • Verify the service is listening on port 11434\n" +
		"  • Wait a moment if the service is starting up",
}

// Classify returns troubleshooting text for an HTTP status returned by the
// server. Every code yields a message.
func Classify(code int) string {
	if msg, ok := statusMessages[code]; ok {
		return fmt.Sprintf("Error %d: %s", code, msg)
	}
	return fmt.Sprintf("Error %d: Request failed.\n"+
		"Check the Ollama documentation or server logs for more details.", code)
}
