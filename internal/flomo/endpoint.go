package flomo

import (
	"fmt"
	"net/url"
	"strings"
)

// Endpoint is a validated absolute URL of the Flomo incoming webhook.
// The zero value is not usable; build one with ResolveEndpoint.
type Endpoint struct {
	u *url.URL
}

func ResolveEndpoint(raw string) (Endpoint, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Endpoint{}, ErrEndpointMissing
	}

	u, err := url.Parse(raw)
	if err != nil {
		return Endpoint{}, fmt.Errorf("%w: %v", ErrEndpointMalformed, err)
	}

	if u.Scheme == "" || u.Host == "" {
		return Endpoint{}, fmt.Errorf("%w: %q has no scheme or host", ErrEndpointMalformed, raw)
	}

	return Endpoint{u: u}, nil
}

func (e Endpoint) String() string {
	if e.u == nil {
		return ""
	}

	return e.u.String()
}

func (e Endpoint) Scheme() string {
	if e.u == nil {
		return ""
	}

	return e.u.Scheme
}

func (e Endpoint) Host() string {
	if e.u == nil {
		return ""
	}

	return e.u.Host
}

func (e Endpoint) Path() string {
	if e.u == nil {
		return ""
	}

	return e.u.Path
}

func (e Endpoint) IsZero() bool {
	return e.u == nil
}

// Redacted returns the endpoint cut to n runes. Flomo webhook URLs carry the
// user's secret token in the path, so only the prefix is ever shown.
func (e Endpoint) Redacted(n int) string {
	s := []rune(e.String())
	if len(s) <= n {
		return string(s)
	}

	return string(s[:n]) + "..."
}
