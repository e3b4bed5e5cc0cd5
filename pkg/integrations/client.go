package integrations

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	neturl "net/url"
	"time"

	"github.com/matzehuels/awis/pkg/observability"
)

// Doer executes a single HTTP request. *http.Client satisfies it.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client provides shared HTTP functionality for service API clients.
// It applies common request headers, gates statuses and reports each call
// to the registered [observability.HTTPHooks].
//
// A Client never retries and never caches; every call is one round trip.
type Client struct {
	http    Doer
	headers map[string]string
}

// NewClient creates a Client sending requests through doer with the given
// default headers. A nil doer selects [NewHTTPClient]. Pass nil for headers
// if no default headers are needed.
func NewClient(doer Doer, headers map[string]string) *Client {
	if doer == nil {
		doer = NewHTTPClient(0)
	}
	return &Client{
		http:    doer,
		headers: headers,
	}
}

// GetRaw performs an HTTP GET request and returns the status and body.
//
// Connection failures, timeouts and cancellation return an error wrapping
// [ErrNetwork] with status 0. A non-2xx response returns the status, the body
// read so far and a *[StatusError], so callers can still inspect an error
// document the server sent.
func (c *Client) GetRaw(ctx context.Context, url string) (int, []byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, nil, fmt.Errorf("build request: %w", err)
	}
	for k, v := range c.headers {
		req.Header.Set(k, v)
	}

	hooks := observability.HTTP()
	host, path := req.URL.Host, req.URL.Path
	hooks.OnRequest(ctx, req.Method, host, path)
	start := time.Now()

	resp, err := c.http.Do(req)
	if err != nil {
		err = stripURL(err)
		hooks.OnError(ctx, req.Method, host, path, err)
		return 0, nil, fmt.Errorf("%w: %s %s: %w", ErrNetwork, req.Method, host, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize+1))
	if err != nil {
		hooks.OnError(ctx, req.Method, host, path, err)
		return resp.StatusCode, nil, fmt.Errorf("%w: read body: %v", ErrNetwork, err)
	}
	hooks.OnResponse(ctx, req.Method, host, path, resp.StatusCode, time.Since(start))
	if len(body) > maxBodySize {
		return resp.StatusCode, nil, fmt.Errorf("%w: body exceeds %d bytes", ErrNetwork, maxBodySize)
	}

	return resp.StatusCode, body, checkStatus(resp.StatusCode)
}

// stripURL drops the *url.Error wrapper, whose message repeats the full
// request URL including any signed query.
func stripURL(err error) error {
	var uerr *neturl.Error
	if errors.As(err, &uerr) {
		return uerr.Err
	}
	return err
}

func checkStatus(code int) error {
	if code >= 200 && code < 300 {
		return nil
	}
	return &StatusError{StatusCode: code}
}
