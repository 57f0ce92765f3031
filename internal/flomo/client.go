package flomo

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/evgeniy-krivenko/flomo-relay/pkg/logger/slogx"
)

const MemoURLTemplate = "https://v.flomoapp.com/mine/?memo_id=%s"

type logger interface {
	Info(context.Context, string, ...slog.Attr)
	Error(context.Context, string, ...slog.Attr)
}

//go:generate go run github.com/kazhuravlev/options-gen/cmd/options-gen@v0.55.3 -out-filename=client_options.gen.go -from-struct=Options
type Options struct {
	endpoint Endpoint `option:"mandatory"`

	httpClient *http.Client
	timeout    time.Duration `default:"15s" validate:"min=0"`
	userAgent  string        `default:"flomo-relay-go/1.0" validate:"required"`

	logger logger
}

type Client struct {
	opts Options
	hc   *http.Client
	log  logger
}

func New(opts Options) (*Client, error) {
	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("validate flomo client options: %v", err)
	}

	if opts.endpoint.IsZero() {
		return nil, ErrEndpointMissing
	}

	hc := opts.httpClient
	if hc == nil {
		hc = &http.Client{Timeout: opts.timeout}
	}

	var log logger = slogx.Default()
	if opts.logger != nil {
		log = opts.logger
	}

	log.Info(
		context.Background(),
		"flomo endpoint resolved",
		slog.String("scheme", opts.endpoint.Scheme()),
		slog.String("host", opts.endpoint.Host()),
	)

	return &Client{opts: opts, hc: hc, log: log}, nil
}

func (c *Client) Endpoint() Endpoint {
	return c.opts.endpoint
}

type noteRequest struct {
	Content string `json:"content"`
}

// WriteNote posts content to Flomo. It never returns a Go error: every
// failure is reported through Result.Err with a matching error payload.
func (c *Client) WriteNote(ctx context.Context, content string) Result {
	if strings.TrimSpace(content) == "" {
		c.log.Error(ctx, "refuse to send empty note")
		return validationFailure(ErrEmptyContent)
	}

	c.log.Info(ctx, "send note to flomo", slogx.Content(content))

	body, err := json.Marshal(noteRequest{Content: content})
	if err != nil {
		return failure(0, fmt.Errorf("encode note: %v", err), nil)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.opts.endpoint.String(), bytes.NewReader(body))
	if err != nil {
		return failure(0, fmt.Errorf("build request: %v", err), nil)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.opts.userAgent)

	resp, err := c.hc.Do(req)
	if err != nil {
		terr := &TransportError{Err: err}
		c.log.Error(ctx, "flomo request failed", slogx.Err(terr))
		return failure(0, terr, nil)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		terr := &TransportError{Err: fmt.Errorf("read response body: %w", err)}
		c.log.Error(ctx, "flomo request failed", slogx.Err(terr))
		return failure(resp.StatusCode, terr, nil)
	}

	statusAttr := slog.Int("status", resp.StatusCode)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		rerr := &RemoteError{StatusCode: resp.StatusCode, Status: resp.Status, Body: string(raw)}
		c.log.Error(ctx, "flomo rejected note", statusAttr, slogx.Err(rerr))

		payload, err := decodePayload(raw)
		if err != nil {
			return failure(resp.StatusCode, rerr, errorPayload(rerr, string(raw)))
		}

		return failure(resp.StatusCode, rerr, payload)
	}

	payload, err := decodePayload(raw)
	if err != nil {
		perr := &ParseError{Raw: string(raw), Err: err}
		c.log.Error(ctx, "flomo sent invalid json", statusAttr, slogx.Err(perr))
		return failure(resp.StatusCode, perr, errorPayload(perr, string(raw)))
	}

	if memoURL, ok := attachMemoURL(payload); ok {
		c.log.Info(ctx, "note saved", statusAttr, slog.String("memo_url", memoURL))
	} else {
		c.log.Info(ctx, "note saved without memo slug", statusAttr)
	}

	return success(resp.StatusCode, payload)
}

// decodePayload decodes a Flomo reply keeping numbers as json.Number, so
// large integers survive re-encoding unchanged.
func decodePayload(raw []byte) (any, error) {
	d := json.NewDecoder(bytes.NewReader(raw))
	d.UseNumber()

	var payload any
	if err := d.Decode(&payload); err != nil {
		return nil, err
	}

	if _, err := d.Token(); !errors.Is(err, io.EOF) {
		return nil, errors.New("invalid character after top-level value")
	}

	return payload, nil
}

func attachMemoURL(payload any) (string, bool) {
	memo, ok := memoOf(payload)
	if !ok {
		return "", false
	}

	slug, ok := memo["slug"].(string)
	if !ok || slug == "" {
		return "", false
	}

	u := fmt.Sprintf(MemoURLTemplate, slug)
	memo["url"] = u

	return u, true
}
