package relayclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/avast/retry-go/v4"
)

type logger interface {
	Warn(context.Context, string, ...slog.Attr)
}

//go:generate go run github.com/kazhuravlev/options-gen/cmd/options-gen@v0.55.3 -out-filename=client_options.gen.go -from-struct=Options
type Options struct {
	serverURL string `option:"mandatory" validate:"required,url"`

	httpClient    *http.Client
	retryAttempts uint          `default:"1" validate:"min=1,max=60"`
	retryDelay    time.Duration `default:"1s"`

	logger logger
}

type Client struct {
	opts Options
	hc   *http.Client
}

func New(opts Options) (*Client, error) {
	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("validate relay client options: %v", err)
	}

	if opts.logger == nil {
		opts.logger = noopLogger{}
	}

	hc := opts.httpClient
	if hc == nil {
		hc = &http.Client{Timeout: 30 * time.Second}
	}

	opts.serverURL = strings.TrimRight(opts.serverURL, "/")

	return &Client{opts: opts, hc: hc}, nil
}

type Status struct {
	Status      string `json:"status"`
	Message     string `json:"message"`
	FlomoAPIURL string `json:"flomo_api_url"`
}

// StatusError is a non-2xx reply from the relay.
type StatusError struct {
	Code   int
	Status string
	Body   []byte
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("relay responded %s", e.Status)
}

// Payload returns the decoded body, or nil when it is not JSON.
func (e *StatusError) Payload() any {
	v, err := decodeAny(e.Body)
	if err != nil {
		return nil
	}
	return v
}

// Ping calls GET /test. With more than one retry attempt configured it keeps
// trying until the relay answers, which is handy right after it was started.
func (c *Client) Ping(ctx context.Context) (Status, error) {
	var st Status

	err := retry.Do(
		func() error {
			var err error
			st, err = c.ping(ctx)
			return err
		},
		retry.Context(ctx),
		retry.Attempts(c.opts.retryAttempts),
		retry.Delay(c.opts.retryDelay),
		retry.DelayType(retry.FixedDelay),
		retry.LastErrorOnly(true),
		retry.OnRetry(func(attempt uint, err error) {
			c.opts.logger.Warn(
				ctx,
				"relay is not ready",
				slog.Any("err", err),
				slog.Uint64("attempt", uint64(attempt)),
			)
		}),
	)
	if err != nil {
		return Status{}, err
	}

	return st, nil
}

func (c *Client) ping(ctx context.Context) (Status, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.opts.serverURL+"/test", nil)
	if err != nil {
		return Status{}, retry.Unrecoverable(fmt.Errorf("build request: %v", err))
	}

	body, err := c.do(req)
	if err != nil {
		return Status{}, err
	}

	var st Status
	if err := json.Unmarshal(body, &st); err != nil {
		return Status{}, fmt.Errorf("decode relay status: %w", err)
	}

	return st, nil
}

// WriteNote posts the note to the relay and returns the decoded reply.
func (c *Client) WriteNote(ctx context.Context, content string) (any, error) {
	payload, err := json.Marshal(map[string]string{"content": content})
	if err != nil {
		return nil, fmt.Errorf("encode note: %v", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.opts.serverURL+"/write_note", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("build request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")

	body, err := c.do(req)
	if err != nil {
		return nil, err
	}

	out, err := decodeAny(body)
	if err != nil {
		return nil, fmt.Errorf("decode relay reply: %w", err)
	}

	return out, nil
}

func (c *Client) do(req *http.Request) ([]byte, error) {
	req.Header.Set("Accept", "application/json")

	resp, err := c.hc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("cannot reach relay: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read relay reply: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{Code: resp.StatusCode, Status: resp.Status, Body: body}
	}

	return body, nil
}

type noopLogger struct{}

func (noopLogger) Warn(context.Context, string, ...slog.Attr) {}

// decodeAny keeps numbers as json.Number so ids from Flomo print unchanged.
func decodeAny(body []byte) (any, error) {
	d := json.NewDecoder(bytes.NewReader(body))
	d.UseNumber()

	var v any
	if err := d.Decode(&v); err != nil {
		return nil, err
	}
	return v, nil
}
