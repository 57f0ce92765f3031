package flomo

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, url string) *Client {
	t.Helper()

	e, err := ResolveEndpoint(url)
	require.NoError(t, err)

	c, err := New(NewOptions(e, WithUserAgent("test-agent/1.0")))
	require.NoError(t, err)

	return c
}

func TestWriteNoteSendsExactBody(t *testing.T) {
	var calls atomic.Int32

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)

		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/iwh/token/", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		assert.Equal(t, "test-agent/1.0", r.Header.Get("User-Agent"))

		body, err := io.ReadAll(r.Body)
		assert.NoError(t, err)
		assert.JSONEq(t, `{"content":"  hello **flomo**\n#tag "}`, string(body))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"code":0,"message":"ok"}`))
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL+"/iwh/token/")

	res := c.WriteNote(context.Background(), "  hello **flomo**\n#tag ")
	require.True(t, res.OK(), "unexpected error: %v", res.Err)
	assert.Equal(t, int32(1), calls.Load())
	assert.Equal(t, http.StatusOK, res.StatusCode)
}

func TestWriteNoteEmptyContent(t *testing.T) {
	var calls atomic.Int32

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)

	for _, content := range []string{"", "   ", "\n\t "} {
		res := c.WriteNote(context.Background(), content)
		require.False(t, res.OK())
		assert.ErrorIs(t, res.Err, ErrEmptyContent)
		assert.Equal(t, map[string]any{"error": "content must not be empty"}, res.Payload)
	}

	assert.Equal(t, int32(0), calls.Load())
}

func TestWriteNoteAddsMemoURL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"code":0,"memo":{"slug":"abc123","content":"<p>hi</p>"}}`))
	}))
	defer srv.Close()

	res := newTestClient(t, srv.URL).WriteNote(context.Background(), "hi")
	require.True(t, res.OK())

	payload := res.Payload.(map[string]any)
	memo := payload["memo"].(map[string]any)
	assert.Equal(t, "https://v.flomoapp.com/mine/?memo_id=abc123", memo["url"])
	assert.Equal(t, "abc123", memo["slug"])
	assert.Equal(t, "<p>hi</p>", memo["content"])
	assert.Equal(t, "https://v.flomoapp.com/mine/?memo_id=abc123", res.MemoURL())
}

func TestWriteNoteWithoutSlugIsUnchanged(t *testing.T) {
	const body = `{"code":0,"message":"ok","memo":{"content":"x"}}`

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(body))
	}))
	defer srv.Close()

	res := newTestClient(t, srv.URL).WriteNote(context.Background(), "x")
	require.True(t, res.OK())

	got, err := json.Marshal(res)
	require.NoError(t, err)
	assert.JSONEq(t, body, string(got))
	assert.Empty(t, res.MemoURL())
}

func TestWriteNoteRemoteJSONError(t *testing.T) {
	const body = `{"code":-1,"message":"token invalid"}`

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte(body))
	}))
	defer srv.Close()

	res := newTestClient(t, srv.URL).WriteNote(context.Background(), "x")
	require.False(t, res.OK())

	var remoteErr *RemoteError
	require.True(t, errors.As(res.Err, &remoteErr))
	assert.Equal(t, http.StatusForbidden, remoteErr.StatusCode)
	assert.Equal(t, http.StatusForbidden, res.StatusCode)
	assert.True(t, IsRemote(res.Err))

	got, err := json.Marshal(res.Payload)
	require.NoError(t, err)
	assert.JSONEq(t, body, string(got))
	assert.Equal(t, "token invalid", res.ErrorMessage())
}

func TestWriteNoteKeepsLargeNumbers(t *testing.T) {
	const body = `{"big":9007199254740993,"code":-1,"ratio":0.25,"request_id":12345678901234567891}`

	for _, status := range []int{http.StatusOK, http.StatusBadRequest} {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(status)
			w.Write([]byte(body))
		}))

		res := newTestClient(t, srv.URL).WriteNote(context.Background(), "x")
		srv.Close()

		assert.Equal(t, status == http.StatusOK, res.OK())

		got, err := json.Marshal(res.Payload)
		require.NoError(t, err)
		assert.Equal(t, body, string(got))
	}
}

func TestWriteNoteTrailingDataIsParseError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"code":0} {"code":1}`))
	}))
	defer srv.Close()

	res := newTestClient(t, srv.URL).WriteNote(context.Background(), "x")
	require.False(t, res.OK())

	var parseErr *ParseError
	require.True(t, errors.As(res.Err, &parseErr))
}

func TestWriteNoteRemoteTextError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("upstream down"))
	}))
	defer srv.Close()

	res := newTestClient(t, srv.URL).WriteNote(context.Background(), "x")
	require.False(t, res.OK())
	assert.Equal(t, map[string]any{
		"error": "502 Bad Gateway",
		"raw":   "upstream down",
	}, res.Payload)
	assert.Equal(t, http.StatusBadGateway, res.StatusCode)
}

func TestWriteNoteInvalidJSONOnSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html>ok</html>"))
	}))
	defer srv.Close()

	res := newTestClient(t, srv.URL).WriteNote(context.Background(), "x")
	require.False(t, res.OK())

	var parseErr *ParseError
	require.True(t, errors.As(res.Err, &parseErr))
	assert.Equal(t, "<html>ok</html>", parseErr.Raw)
	assert.Equal(t, map[string]any{
		"error": "failed to parse JSON response",
		"raw":   "<html>ok</html>",
	}, res.Payload)
	assert.True(t, IsRemote(res.Err))
}

func TestWriteNoteTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	res := newTestClient(t, url).WriteNote(context.Background(), "x")
	require.False(t, res.OK())

	var transportErr *TransportError
	require.True(t, errors.As(res.Err, &transportErr))
	assert.False(t, IsRemote(res.Err))
	assert.Zero(t, res.StatusCode)
	assert.Contains(t, res.ErrorMessage(), "network error")
}

func TestNewRejectsZeroEndpoint(t *testing.T) {
	_, err := New(NewOptions(Endpoint{}))
	assert.ErrorIs(t, err, ErrEndpointMissing)
}

func TestNewRejectsEmptyUserAgent(t *testing.T) {
	e, err := ResolveEndpoint("https://flomoapp.com/iwh/x")
	require.NoError(t, err)

	_, err = New(NewOptions(e, WithUserAgent("")))
	assert.Error(t, err)
}
