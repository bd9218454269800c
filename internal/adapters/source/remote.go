package source

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/okian/wodboard/internal/domain/table"
)

const defaultTimeout = 30 * time.Second

// Remote reads a published spreadsheet over HTTP.
type Remote struct {
	spec   Spec
	client *http.Client
	now    func() time.Time
}

// RemoteOption configures a Remote.
type RemoteOption func(*Remote)

// WithHTTPClient replaces the default client.
func WithHTTPClient(c *http.Client) RemoteOption {
	return func(r *Remote) {
		if c != nil {
			r.client = c
		}
	}
}

// WithClock overrides the time source used for cache busting.
func WithClock(now func() time.Time) RemoteOption {
	return func(r *Remote) {
		if now != nil {
			r.now = now
		}
	}
}

// NewRemote builds a Remote for spec.URL.
func NewRemote(spec Spec, opts ...RemoteOption) *Remote {
	timeout := spec.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	r := &Remote{
		spec:   spec,
		client: &http.Client{Timeout: timeout},
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Name implements Source.
func (r *Remote) Name() string { return "http" }

// Fetch implements Source.
func (r *Remote) Fetch(ctx context.Context) (*table.Table, error) {
	target, err := r.target()
	if err != nil {
		return nil, fmt.Errorf("source url: %w: %w", ErrNoData, err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w: %w", ErrNoData, err)
	}
	resp, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch: %w: %w", ErrNoData, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch: status %d: %w", resp.StatusCode, ErrNoData)
	}
	return Decode(resp.Body, r.spec)
}

func (r *Remote) target() (string, error) {
	u, err := url.Parse(r.spec.URL)
	if err != nil {
		return "", err
	}
	if r.spec.CacheBust {
		q := u.Query()
		q.Set("cache_bust", strconv.FormatInt(r.now().Unix(), 10))
		u.RawQuery = q.Encode()
	}
	return u.String(), nil
}
