package backend

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
)

// Result mirrors the backend's uniform response envelope. Every write
// operation resolves to one of these; transport failures are synthesized into
// failure envelopes so callers branch on IsSuccess instead of error values.
type Result[T any] struct {
	IsSuccess      bool   `json:"isSuccess"`
	Message        string `json:"message"`
	Data           T      `json:"data,omitempty"`
	HTTPStatusCode int    `json:"httpStatusCode"`
}

// errorBody is the structured message shape backend errors arrive in.
type errorBody struct {
	Message string `json:"message"`
	Error   string `json:"error"`
	Title   string `json:"title"`
}

// Failure builds a failure envelope with the given message and status.
func Failure[T any](message string, status int) Result[T] {
	var zero T
	return Result[T]{IsSuccess: false, Message: message, Data: zero, HTTPStatusCode: status}
}

// Call performs a JSON request and normalises every outcome into a Result.
// Resolution order for the failure message: structured body message, then the
// transport error's text, then a generic fallback.
func Call[T any](ctx context.Context, c *Client, method, path string, payload interface{}) Result[T] {
	status, raw, err := c.JSON(ctx, method, path, payload)
	if err != nil {
		msg := strings.TrimSpace(err.Error())
		if msg == "" {
			msg = "request failed"
		}
		return Failure[T](msg, status)
	}
	return decodeEnvelope[T](status, raw)
}

func decodeEnvelope[T any](status int, raw []byte) Result[T] {
	if status >= http.StatusOK && status < http.StatusMultipleChoices {
		var result Result[T]
		if len(raw) > 0 && json.Unmarshal(raw, &result) == nil && (result.IsSuccess || result.Message != "") {
			if result.HTTPStatusCode == 0 {
				result.HTTPStatusCode = status
			}
			return result
		}
		// Bare payload without an envelope: wrap it.
		var data T
		if len(raw) > 0 {
			_ = json.Unmarshal(raw, &data)
		}
		return Result[T]{IsSuccess: true, Data: data, HTTPStatusCode: status}
	}
	return Failure[T](extractMessage(raw), status)
}

// extractMessage pulls a human-readable message out of an error body.
func extractMessage(raw []byte) string {
	var body errorBody
	if len(raw) > 0 && json.Unmarshal(raw, &body) == nil {
		for _, candidate := range []string{body.Message, body.Error, body.Title} {
			if strings.TrimSpace(candidate) != "" {
				return candidate
			}
		}
	}
	return "the operation could not be completed"
}

// Fetch performs a read and decodes the raw payload directly, the older of
// the two response conventions the backend exposes. Errors propagate to the
// caller rather than being folded into an envelope.
func Fetch[T any](ctx context.Context, c *Client, path string) (T, error) {
	var out T
	status, raw, err := c.JSON(ctx, http.MethodGet, path, nil)
	if err != nil {
		return out, err
	}
	if status < http.StatusOK || status >= http.StatusMultipleChoices {
		return out, &StatusError{Status: status, Message: extractMessage(raw)}
	}
	if len(raw) == 0 {
		return out, nil
	}
	// Some list endpoints wrap the payload in the envelope; unwrap when so.
	var probe struct {
		IsSuccess *bool           `json:"isSuccess"`
		Message   string          `json:"message"`
		Data      json.RawMessage `json:"data"`
	}
	if json.Unmarshal(raw, &probe) == nil && probe.IsSuccess != nil {
		if !*probe.IsSuccess {
			return out, &StatusError{Status: status, Message: probe.Message}
		}
		if len(probe.Data) > 0 {
			if err := json.Unmarshal(probe.Data, &out); err != nil {
				return out, err
			}
		}
		return out, nil
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return out, err
	}
	return out, nil
}

// StatusError reports a non-2xx read response.
type StatusError struct {
	Status  int
	Message string
}

func (e *StatusError) Error() string {
	return e.Message
}
