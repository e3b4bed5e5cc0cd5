package awis

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	errs "github.com/matzehuels/awis/pkg/errors"
	"github.com/matzehuels/awis/pkg/integrations"
)

// Request constants of the UrlInfo action under signature version 2.
const (
	DefaultEndpoint  = "https://awis.amazonaws.com/"
	Action           = "UrlInfo"
	APIVersion       = "2005-07-11"
	SignatureMethod  = "HmacSHA256"
	SignatureVersion = "2"

	// TimestampFormat is the wire format of the Timestamp parameter.
	TimestampFormat = "2006-01-02T15:04:05.000Z"
)

// Credentials is an access key pair. String and GoString redact the secret,
// so a Credentials value is safe to pass to a logger or fmt verb.
type Credentials struct {
	AccessKeyID     string
	SecretAccessKey string
}

func (c Credentials) String() string {
	return "Credentials{AccessKeyID: " + c.AccessKeyID + ", SecretAccessKey: " + redact(c.SecretAccessKey) + "}"
}

func (c Credentials) GoString() string {
	return "awis.Credentials{AccessKeyID:" + strconv.Quote(c.AccessKeyID) + ", SecretAccessKey:" + strconv.Quote(redact(c.SecretAccessKey)) + "}"
}

func redact(s string) string {
	if s == "" {
		return ""
	}
	return "[redacted]"
}

// Params are the per-call inputs of a UrlInfo request.
type Params struct {
	// Host is the site to describe, e.g. "github.com". Required.
	Host string

	// ResponseGroups selects the fields to return. Empty selects the
	// signer's defaults.
	ResponseGroups []ResponseGroup
}

// SignedRequest is a ready-to-send request. It is tied to the timestamp it
// was signed at and must not be reused.
type SignedRequest struct {
	CanonicalQuery string // sorted, RFC 3986 encoded parameters
	StringToSign   string // method, host, path and query joined by newlines
	Signature      string // base64 HMAC-SHA256, not URL encoded
	URL            string // endpoint?CanonicalQuery&Signature=...
}

// Signer builds signed UrlInfo requests against one endpoint.
// A Signer is immutable and safe for concurrent use.
type Signer struct {
	creds    Credentials
	base     string // scheme://host/path
	host     string // lower-cased host[:port]
	path     string
	defaults []ResponseGroup
}

// NewSigner returns a Signer for endpoint. An empty endpoint selects
// [DefaultEndpoint]; empty defaults select [DefaultResponseGroups].
func NewSigner(creds Credentials, endpoint string, defaults []ResponseGroup) (*Signer, error) {
	if err := errs.ValidateCredentials(creds.AccessKeyID, creds.SecretAccessKey); err != nil {
		return nil, err
	}
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	if err := errs.ValidateURL(endpoint); err != nil {
		return nil, err
	}
	u, err := url.Parse(endpoint)
	if err != nil || u.Host == "" {
		return nil, errs.New(errs.ErrCodeInvalidInput, "invalid endpoint %q", endpoint)
	}
	if u.RawQuery != "" {
		return nil, errs.New(errs.ErrCodeInvalidInput, "endpoint %q must not carry a query", endpoint)
	}
	if len(defaults) == 0 {
		defaults = allGroups
	}
	if err := validateGroups(defaults); err != nil {
		return nil, err
	}

	path := u.EscapedPath()
	if path == "" {
		path = "/"
	}
	return &Signer{
		creds:    creds,
		base:     u.Scheme + "://" + u.Host + path,
		host:     strings.ToLower(u.Host),
		path:     path,
		defaults: append([]ResponseGroup(nil), defaults...),
	}, nil
}

// Endpoint returns the URL requests are sent to, without a query.
func (s *Signer) Endpoint() string { return s.base }

// Sign builds the request for p at time at. Identical inputs always yield an
// identical URL; changing any parameter changes the signature.
func (s *Signer) Sign(p Params, at time.Time) (*SignedRequest, error) {
	if err := errs.ValidateHost(p.Host); err != nil {
		return nil, err
	}
	groups := s.groups(p.ResponseGroups)
	if err := validateGroups(groups); err != nil {
		return nil, err
	}

	query := canonicalQuery(map[string]string{
		"Action":           Action,
		"AWSAccessKeyId":   s.creds.AccessKeyID,
		"ResponseGroup":    joinGroups(groups),
		"SignatureMethod":  SignatureMethod,
		"SignatureVersion": SignatureVersion,
		"Timestamp":        at.UTC().Format(TimestampFormat),
		"Url":              p.Host,
		"Version":          APIVersion,
	})
	toSign := "GET\n" + s.host + "\n" + s.path + "\n" + query
	sig := sign(s.creds.SecretAccessKey, toSign)

	return &SignedRequest{
		CanonicalQuery: query,
		StringToSign:   toSign,
		Signature:      sig,
		URL:            s.base + "?" + query + "&Signature=" + integrations.URLEncode(sig),
	}, nil
}

// groups returns requested, or the signer's defaults when it is empty.
func (s *Signer) groups(requested []ResponseGroup) []ResponseGroup {
	if len(requested) == 0 {
		return s.defaults
	}
	return requested
}

// canonicalQuery sorts params by key byte-wise and joins the strictly
// encoded pairs with "&".
func canonicalQuery(params map[string]string) string {
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	for i, k := range keys {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(integrations.URLEncode(k))
		b.WriteByte('=')
		b.WriteString(integrations.URLEncode(params[k]))
	}
	return b.String()
}

func sign(secret, msg string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(msg))
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}
