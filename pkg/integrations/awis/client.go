package awis

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/awis/pkg/buildinfo"
	errs "github.com/matzehuels/awis/pkg/errors"
	"github.com/matzehuels/awis/pkg/integrations"
	"github.com/matzehuels/awis/pkg/observability"
	"github.com/matzehuels/awis/pkg/xmldoc"
)

// Client fetches site information from the UrlInfo action.
//
// Each call makes exactly one HTTP request: no retries, no caching.
// Cancellation and deadlines come from the caller's context.
//
// All methods are safe for concurrent use by multiple goroutines.
type Client struct {
	*integrations.Client
	signer *Signer
	now    func() time.Time
	logger *log.Logger
}

// Option configures a [Client].
type Option func(*options)

type options struct {
	endpoint string
	doer     integrations.Doer
	now      func() time.Time
	logger   *log.Logger
	groups   []ResponseGroup
}

// WithEndpoint overrides [DefaultEndpoint].
func WithEndpoint(endpoint string) Option {
	return func(o *options) { o.endpoint = endpoint }
}

// WithHTTPClient sends requests through d instead of a default
// *http.Client with a 10 second timeout.
func WithHTTPClient(d integrations.Doer) Option {
	return func(o *options) { o.doer = d }
}

// WithClock sets the time source used for request timestamps.
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

// WithLogger sets the logger for debug output. The default discards.
func WithLogger(l *log.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithDefaultGroups sets the groups requested when a call names none.
func WithDefaultGroups(groups ...ResponseGroup) Option {
	return func(o *options) { o.groups = groups }
}

// NewClient creates a Client signing with creds.
//
// It fails with MISSING_CREDENTIALS if either key is empty, INVALID_INPUT for
// a bad endpoint and INVALID_RESPONSE_GROUP for unknown default groups.
func NewClient(creds Credentials, opts ...Option) (*Client, error) {
	o := options{now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}
	if o.now == nil {
		o.now = time.Now
	}
	if o.logger == nil {
		o.logger = log.New(io.Discard)
	}

	signer, err := NewSigner(creds, o.endpoint, o.groups)
	if err != nil {
		return nil, err
	}
	return &Client{
		Client: integrations.NewClient(o.doer, map[string]string{
			"Accept":     "application/xml",
			"User-Agent": buildinfo.UserAgent(),
		}),
		signer: signer,
		now:    o.now,
		logger: o.logger,
	}, nil
}

// Sign builds the signed request for p at the client's current time
// without sending it.
func (c *Client) Sign(p Params) (*SignedRequest, error) {
	return c.signer.Sign(p, c.now())
}

// FetchURLInfo fetches information about host. With no groups, the client's
// default groups are requested.
//
// On failure the returned error is an *errors.Error coded TRANSPORT_FAILURE,
// SERVICE_FAULT or MALFORMED_RESPONSE, or an input validation code, and no
// URLInfo is returned.
func (c *Client) FetchURLInfo(ctx context.Context, host string, groups ...ResponseGroup) (*URLInfo, error) {
	info := &URLInfo{}
	if err := c.Fetch(ctx, info, Params{Host: host, ResponseGroups: groups}); err != nil {
		return nil, err
	}
	return info, nil
}

// Fetch performs the lookup described by p and overwrites every field of
// info with the result. On error info is left unchanged.
func (c *Client) Fetch(ctx context.Context, info *URLInfo, p Params) error {
	if info == nil {
		return errs.New(errs.ErrCodeInvalidInput, "nil URLInfo")
	}

	hooks := observability.Fetch()
	hooks.OnFetchStart(ctx, p.Host, groupNames(c.signer.groups(p.ResponseGroups)))
	start := time.Now()

	got, err := c.fetch(ctx, p)

	fieldErrors := 0
	if got != nil {
		fieldErrors = len(got.FieldErrors)
	}
	hooks.OnFetchComplete(ctx, p.Host, fieldErrors, time.Since(start), err)
	if err != nil {
		c.logger.Debug("url info failed", "host", p.Host, "code", errs.GetCode(err), "err", err)
		return err
	}
	*info = *got
	return nil
}

func (c *Client) fetch(ctx context.Context, p Params) (*URLInfo, error) {
	req, err := c.Sign(p)
	if err != nil {
		return nil, err
	}
	c.logger.Debug("requesting url info", "host", p.Host, "groups", joinGroups(c.signer.groups(p.ResponseGroups)), "endpoint", c.signer.Endpoint())

	status, body, err := c.GetRaw(ctx, req.URL)
	if err != nil {
		var statusErr *integrations.StatusError
		if errors.As(err, &statusErr) {
			if doc, perr := xmldoc.Parse(body); perr == nil {
				if f := DetectFault(doc); f != nil {
					f.HTTPStatus = status
					return nil, faultError(f)
				}
			}
		}
		return nil, errs.Wrap(errs.ErrCodeTransport, err, "request for %s failed", p.Host)
	}
	c.logger.Debug("received url info", "host", p.Host, "status", status, "bytes", len(body))

	doc, err := xmldoc.Parse(body)
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeMalformedResponse, err, "response for %s is not XML", p.Host)
	}
	if f := DetectFault(doc); f != nil {
		f.HTTPStatus = status
		return nil, faultError(f)
	}

	info, err := Parse(doc)
	if err != nil {
		return nil, err
	}
	for _, fe := range info.FieldErrors {
		c.logger.Debug("skipped field", "host", p.Host, "field", fe.Field, "value", fe.Value)
	}
	return info, nil
}

func groupNames(groups []ResponseGroup) []string {
	names := make([]string, len(groups))
	for i, g := range groups {
		names[i] = string(g)
	}
	return names
}
