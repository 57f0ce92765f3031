package relay

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/evgeniy-krivenko/flomo-relay/internal/entity"
	"github.com/evgeniy-krivenko/flomo-relay/internal/flomo"
	"github.com/evgeniy-krivenko/flomo-relay/pkg/logger/slogx"
)

type fakeNotes struct {
	result flomo.Result
	calls  []entity.Note
}

func (f *fakeNotes) WriteNote(_ context.Context, note entity.Note) flomo.Result {
	f.calls = append(f.calls, note)
	return f.result
}

func (f *fakeNotes) Status(context.Context) entity.RelayStatus {
	return entity.RelayStatus{Status: "success", Message: "server is working", FlomoAPIURL: "https://flomoapp.com/iwh/MTIzN..."}
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	return rec
}

func TestIndex(t *testing.T) {
	rec := do(t, New(&fakeNotes{}).Routes(), http.MethodGet, "/", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, rec.Body.String(), "POST /write_note")
}

func TestStatusEndpoint(t *testing.T) {
	rec := do(t, New(&fakeNotes{}).Routes(), http.MethodGet, "/test", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{
		"status": "success",
		"message": "server is working",
		"flomo_api_url": "https://flomoapp.com/iwh/MTIzN..."
	}`, rec.Body.String())
}

func TestWriteNoteSuccess(t *testing.T) {
	notes := &fakeNotes{result: flomo.Result{
		StatusCode: 200,
		Payload: map[string]any{"code": 0, "memo": map[string]any{
			"slug": "abc123",
			"url":  "https://v.flomoapp.com/mine/?memo_id=abc123",
		}},
	}}

	rec := do(t, New(notes).Routes(), http.MethodPost, "/write_note", `{"content":"hello & <b>"}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"code":0,"memo":{"slug":"abc123","url":"https://v.flomoapp.com/mine/?memo_id=abc123"}}`, rec.Body.String())
	assert.Contains(t, rec.Body.String(), "memo_id=abc123")

	require.Len(t, notes.calls, 1)
	assert.Equal(t, "hello & <b>", notes.calls[0].Content)
}

func TestWriteNoteLeavesContentLoggingToClient(t *testing.T) {
	var buf bytes.Buffer

	prev := slogx.Default()
	slogx.SetDefault(slogx.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	t.Cleanup(func() { slogx.SetDefault(prev) })

	notes := &fakeNotes{result: flomo.Result{StatusCode: 200, Payload: map[string]any{"code": 0}}}

	rec := do(t, New(notes).Routes(), http.MethodPost, "/write_note", `{"content":"secret draft"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, buf.String(), "secret draft")
}

func TestWriteNoteBadRequests(t *testing.T) {
	for name, body := range map[string]string{
		"empty body":    "",
		"not json":      "content=hi",
		"missing field": `{"text":"hi"}`,
		"wrong type":    `{"content":42}`,
	} {
		t.Run(name, func(t *testing.T) {
			notes := &fakeNotes{}
			rec := do(t, New(notes).Routes(), http.MethodPost, "/write_note", body)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.JSONEq(t, `{"error":"content field is required"}`, rec.Body.String())
			assert.Empty(t, notes.calls)
		})
	}
}

func TestWriteNoteBodyTooLarge(t *testing.T) {
	notes := &fakeNotes{}
	body := `{"content":"` + strings.Repeat("a", maxBodySize) + `"}`

	rec := do(t, New(notes).Routes(), http.MethodPost, "/write_note", body)

	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
	assert.JSONEq(t, `{"error":"request body too large"}`, rec.Body.String())
	assert.Empty(t, notes.calls)
}

func TestWriteNoteErrorMapping(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
	}{
		{"empty content", flomo.ErrEmptyContent, http.StatusBadRequest},
		{"remote", &flomo.RemoteError{StatusCode: 502, Status: "502 Bad Gateway"}, http.StatusBadRequest},
		{"parse", &flomo.ParseError{Raw: "<html>", Err: errors.New("invalid character")}, http.StatusBadRequest},
		{"transport", &flomo.TransportError{Err: errors.New("connection refused")}, http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			notes := &fakeNotes{result: flomo.Result{
				Err:     tc.err,
				Payload: map[string]any{"error": tc.err.Error()},
			}}

			rec := do(t, New(notes).Routes(), http.MethodPost, "/write_note", `{"content":"x"}`)
			assert.Equal(t, tc.status, rec.Code)
			assert.JSONEq(t, `{"error":"`+tc.err.Error()+`"}`, rec.Body.String())
		})
	}
}

func TestWriteNoteMethodNotAllowed(t *testing.T) {
	rec := do(t, New(&fakeNotes{}).Routes(), http.MethodGet, "/write_note", "")
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}
