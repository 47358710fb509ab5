package httpx

import (
	"encoding/json"
	"errors"
)

// Sentinel codes reported instead of an HTTP status when the request never
// produced a response.
const (
	CodeConnection       = -1
	CodeHTTP             = -2
	CodeTooManyRedirects = -3
	CodeTimeout          = -4
	CodeRequest          = -5
)

var sentinelMessages = map[int]string{
	CodeConnection:       "can't connect to the server",
	CodeHTTP:             "HTTP error occurred",
	CodeTooManyRedirects: "too many redirects",
	CodeTimeout:          "the request timed out",
	CodeRequest:          "the request failed",
}

// Result is the outcome of one request. Payload is nil whenever Code is a
// sentinel; otherwise it holds the decoded JSON body, or the raw text when
// the body is not JSON.
type Result struct {
	Payload any
	Code    int

	raw []byte
}

// Failure returns the result for a transport failure class.
func Failure(code int) Result {
	return Result{Code: code}
}

// IsError reports whether the request failed below the HTTP layer.
func (r Result) IsError() bool {
	return r.Code < 0
}

// OK reports a 2xx status.
func (r Result) OK() bool {
	return r.Code >= 200 && r.Code < 300
}

// ErrMessage describes a transport failure. It is empty for real statuses.
func (r Result) ErrMessage() string {
	if !r.IsError() {
		return ""
	}
	if msg, ok := sentinelMessages[r.Code]; ok {
		return msg
	}
	return sentinelMessages[CodeRequest]
}

// Decode unmarshals the response body into v.
func (r Result) Decode(v any) error {
	if r.IsError() {
		return errors.New(r.ErrMessage())
	}
	if len(r.raw) == 0 {
		return errors.New("empty response body")
	}
	return json.Unmarshal(r.raw, v)
}

// WithJSON builds a successful result from an already decoded value. It is
// used by backends that do not go through Client.
func WithJSON(code int, v any) Result {
	raw, err := json.Marshal(v)
	if err != nil {
		return Failure(CodeRequest)
	}
	return decodeBody(code, raw)
}

func decodeBody(code int, body []byte) Result {
	res := Result{Code: code, raw: body}
	var decoded any
	if len(body) > 0 && json.Unmarshal(body, &decoded) == nil {
		res.Payload = decoded
		return res
	}
	res.Payload = string(body)
	return res
}
