package generate

import "strings"

// DefaultTemplate is prepended to the diff when no template is configured.
const DefaultTemplate = `You are an assistant that writes git commit messages.
Write a commit message for the diff below.

Rules:
- Start with a subject line of at most 50 characters in the imperative mood,
  prefixed with a conventional commit type (feat, fix, docs, refactor, test, chore).
- Leave one blank line after the subject.
- In the body, explain what changed and why in short paragraphs or bullet points.
- Output only the commit message: no code fences, no commentary, no quotes.

Diff:
`

// BuildPrompt concatenates the template and the diff. An empty template
// selects DefaultTemplate.
func BuildPrompt(template, diff string) string {
	if strings.TrimSpace(template) == "" {
		template = DefaultTemplate
	}
	return template + diff
}
