package flomo

import (
	"encoding/json"
	"errors"
)

// Result is the outcome of one note submission. Payload holds the decoded
// Flomo reply on success, and the error payload shown to callers otherwise.
type Result struct {
	Payload    any
	StatusCode int
	Err        error
}

func (r Result) OK() bool {
	return r.Err == nil
}

// ErrorMessage returns the "error" field of a failure payload, falling back
// to the error itself when the remote payload has no such field.
func (r Result) ErrorMessage() string {
	if r.Err == nil {
		return ""
	}

	if m, ok := r.Payload.(map[string]any); ok {
		if s, ok := m["error"].(string); ok && s != "" {
			return s
		}
		if s, ok := m["message"].(string); ok && s != "" {
			return s
		}
	}

	return r.Err.Error()
}

// MemoURL returns memo.url of a successful payload, if any.
func (r Result) MemoURL() string {
	memo, ok := memoOf(r.Payload)
	if !ok {
		return ""
	}

	u, _ := memo["url"].(string)
	return u
}

func (r Result) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.Payload)
}

func success(status int, payload any) Result {
	return Result{Payload: payload, StatusCode: status}
}

func failure(status int, err error, payload any) Result {
	if payload == nil {
		payload = map[string]any{"error": err.Error()}
	}

	return Result{Payload: payload, StatusCode: status, Err: err}
}

func validationFailure(err error) Result {
	return failure(0, err, nil)
}

func errorPayload(err error, raw string) map[string]any {
	var (
		remoteErr *RemoteError
		parseErr  *ParseError
	)

	msg := err.Error()
	switch {
	case errors.As(err, &remoteErr):
		msg = remoteErr.Status
	case errors.As(err, &parseErr):
		msg = "failed to parse JSON response"
	}

	return map[string]any{
		"error": msg,
		"raw":   raw,
	}
}

func memoOf(payload any) (map[string]any, bool) {
	m, ok := payload.(map[string]any)
	if !ok {
		return nil, false
	}

	memo, ok := m["memo"].(map[string]any)
	return memo, ok
}
