package awis

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"strings"
	"testing"
	"time"

	errs "github.com/matzehuels/awis/pkg/errors"
)

var (
	testCreds = Credentials{AccessKeyID: "AKIDEXAMPLE", SecretAccessKey: "secret"}
	testTime  = time.Date(2014, 1, 2, 3, 4, 5, 678_000_000, time.UTC)
)

func newTestSigner(t *testing.T, creds Credentials) *Signer {
	t.Helper()
	s, err := NewSigner(creds, "", nil)
	if err != nil {
		t.Fatalf("NewSigner() error: %v", err)
	}
	return s
}

func TestSignGolden(t *testing.T) {
	s := newTestSigner(t, testCreds)

	req, err := s.Sign(Params{Host: "github.com", ResponseGroups: []ResponseGroup{GroupRank}}, testTime)
	if err != nil {
		t.Fatalf("Sign() error: %v", err)
	}

	wantQuery := "AWSAccessKeyId=AKIDEXAMPLE&Action=UrlInfo&ResponseGroup=Rank" +
		"&SignatureMethod=HmacSHA256&SignatureVersion=2" +
		"&Timestamp=2014-01-02T03%3A04%3A05.678Z&Url=github.com&Version=2005-07-11"
	if req.CanonicalQuery != wantQuery {
		t.Errorf("CanonicalQuery =\n%s\nwant\n%s", req.CanonicalQuery, wantQuery)
	}
	if want := "GET\nawis.amazonaws.com\n/\n" + wantQuery; req.StringToSign != want {
		t.Errorf("StringToSign = %q, want %q", req.StringToSign, want)
	}
	if want := "MZQLgBVWwx31m9BR21JxhrqiIOkAsPIgNgLAAMhENQs="; req.Signature != want {
		t.Errorf("Signature = %q, want %q", req.Signature, want)
	}
	wantURL := "https://awis.amazonaws.com/?" + wantQuery + "&Signature=MZQLgBVWwx31m9BR21JxhrqiIOkAsPIgNgLAAMhENQs%3D"
	if req.URL != wantURL {
		t.Errorf("URL =\n%s\nwant\n%s", req.URL, wantURL)
	}
}

func TestSignMatchesHMAC(t *testing.T) {
	s := newTestSigner(t, testCreds)
	req, err := s.Sign(Params{Host: "example.org"}, testTime)
	if err != nil {
		t.Fatalf("Sign() error: %v", err)
	}

	mac := hmac.New(sha256.New, []byte(testCreds.SecretAccessKey))
	mac.Write([]byte(req.StringToSign))
	if want := base64.StdEncoding.EncodeToString(mac.Sum(nil)); req.Signature != want {
		t.Errorf("Signature = %q, want %q", req.Signature, want)
	}
}

func TestSignDeterministic(t *testing.T) {
	s := newTestSigner(t, testCreds)
	p := Params{Host: "github.com", ResponseGroups: []ResponseGroup{GroupRank, GroupSiteData}}

	a, err := s.Sign(p, testTime)
	if err != nil {
		t.Fatalf("Sign() error: %v", err)
	}
	b, err := s.Sign(p, testTime)
	if err != nil {
		t.Fatalf("Sign() error: %v", err)
	}
	if a.URL != b.URL {
		t.Errorf("Sign() not deterministic:\n%s\n%s", a.URL, b.URL)
	}
}

func TestSignChangesWithInputs(t *testing.T) {
	base := newTestSigner(t, testCreds)
	p := Params{Host: "github.com", ResponseGroups: []ResponseGroup{GroupRank}}
	ref, err := base.Sign(p, testTime)
	if err != nil {
		t.Fatalf("Sign() error: %v", err)
	}

	tests := []struct {
		name   string
		signer *Signer
		params Params
		at     time.Time
	}{
		{"secret one char", newTestSigner(t, Credentials{AccessKeyID: "AKIDEXAMPLE", SecretAccessKey: "secreT"}), p, testTime},
		{"access key", newTestSigner(t, Credentials{AccessKeyID: "AKIDEXAMPLF", SecretAccessKey: "secret"}), p, testTime},
		{"host", base, Params{Host: "github.io", ResponseGroups: p.ResponseGroups}, testTime},
		{"groups", base, Params{Host: "github.com", ResponseGroups: []ResponseGroup{GroupSpeed}}, testTime},
		{"timestamp", base, p, testTime.Add(time.Millisecond)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.signer.Sign(tt.params, tt.at)
			if err != nil {
				t.Fatalf("Sign() error: %v", err)
			}
			if got.Signature == ref.Signature {
				t.Errorf("signature unchanged: %s", got.Signature)
			}
		})
	}
}

func TestCanonicalQueryOrderIndependent(t *testing.T) {
	// Map iteration order is random; build the same set many times.
	want := canonicalQuery(map[string]string{"b": "2", "a": "1", "B": "3", "Url": "x y"})
	if want != "B=3&Url=x%20y&a=1&b=2" {
		t.Fatalf("canonicalQuery() = %q", want)
	}
	for i := 0; i < 50; i++ {
		got := canonicalQuery(map[string]string{"Url": "x y", "a": "1", "B": "3", "b": "2"})
		if got != want {
			t.Fatalf("canonicalQuery() = %q, want %q", got, want)
		}
	}
}

func TestSignStrictEncoding(t *testing.T) {
	s := newTestSigner(t, Credentials{AccessKeyID: "id with space~", SecretAccessKey: "secret"})
	req, err := s.Sign(Params{Host: "example.org/a~b"}, testTime)
	if err != nil {
		t.Fatalf("Sign() error: %v", err)
	}
	if !strings.Contains(req.CanonicalQuery, "AWSAccessKeyId=id%20with%20space~") {
		t.Errorf("space or tilde mis-encoded: %s", req.CanonicalQuery)
	}
	if !strings.Contains(req.CanonicalQuery, "Url=example.org%2Fa~b") {
		t.Errorf("Url mis-encoded: %s", req.CanonicalQuery)
	}
	if strings.Contains(req.URL, "+") {
		t.Errorf("URL contains '+': %s", req.URL)
	}
}

func TestSignDefaultGroups(t *testing.T) {
	s := newTestSigner(t, testCreds)
	req, err := s.Sign(Params{Host: "github.com"}, testTime)
	if err != nil {
		t.Fatalf("Sign() error: %v", err)
	}
	want := "ResponseGroup=RelatedLinks%2CCategories%2CRank%2CRankByCountry%2CRankByCity%2CUsageStats" +
		"%2CContactInfo%2CAdultContent%2CSpeed%2CLanguage%2CKeywords%2COwnedDomains%2CLinksInCount%2CSiteData"
	if !strings.Contains(req.CanonicalQuery, want) {
		t.Errorf("CanonicalQuery = %s, want it to contain %s", req.CanonicalQuery, want)
	}

	custom, err := NewSigner(testCreds, "", []ResponseGroup{GroupRank, GroupSpeed})
	if err != nil {
		t.Fatalf("NewSigner() error: %v", err)
	}
	req, err = custom.Sign(Params{Host: "github.com"}, testTime)
	if err != nil {
		t.Fatalf("Sign() error: %v", err)
	}
	if !strings.Contains(req.CanonicalQuery, "ResponseGroup=Rank%2CSpeed&") {
		t.Errorf("CanonicalQuery = %s, want custom defaults", req.CanonicalQuery)
	}
}

func TestSignTimestampIsUTC(t *testing.T) {
	s := newTestSigner(t, testCreds)
	local := testTime.In(time.FixedZone("CEST", 2*60*60))
	req, err := s.Sign(Params{Host: "github.com"}, local)
	if err != nil {
		t.Fatalf("Sign() error: %v", err)
	}
	if !strings.Contains(req.CanonicalQuery, "Timestamp=2014-01-02T03%3A04%3A05.678Z") {
		t.Errorf("timestamp not converted to UTC: %s", req.CanonicalQuery)
	}
}

func TestSignEndpoint(t *testing.T) {
	s, err := NewSigner(testCreds, "http://127.0.0.1:8080", nil)
	if err != nil {
		t.Fatalf("NewSigner() error: %v", err)
	}
	req, err := s.Sign(Params{Host: "github.com"}, testTime)
	if err != nil {
		t.Fatalf("Sign() error: %v", err)
	}
	if !strings.HasPrefix(req.StringToSign, "GET\n127.0.0.1:8080\n/\n") {
		t.Errorf("StringToSign = %q", req.StringToSign)
	}
	if !strings.HasPrefix(req.URL, "http://127.0.0.1:8080/?") {
		t.Errorf("URL = %q", req.URL)
	}
}

func TestNewSignerErrors(t *testing.T) {
	tests := []struct {
		name     string
		creds    Credentials
		endpoint string
		groups   []ResponseGroup
		want     errs.Code
	}{
		{"missing id", Credentials{SecretAccessKey: "s"}, "", nil, errs.ErrCodeMissingCredentials},
		{"missing secret", Credentials{AccessKeyID: "id"}, "", nil, errs.ErrCodeMissingCredentials},
		{"bad scheme", testCreds, "ftp://awis.amazonaws.com/", nil, errs.ErrCodeInvalidInput},
		{"query in endpoint", testCreds, "https://awis.amazonaws.com/?a=b", nil, errs.ErrCodeInvalidInput},
		{"no host", testCreds, "https://", nil, errs.ErrCodeInvalidInput},
		{"unknown default group", testCreds, "", []ResponseGroup{"Bogus"}, errs.ErrCodeInvalidResponseGroup},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewSigner(tt.creds, tt.endpoint, tt.groups)
			if !errs.Is(err, tt.want) {
				t.Errorf("NewSigner() error = %v, want code %s", err, tt.want)
			}
		})
	}
}

func TestSignRejectsBadParams(t *testing.T) {
	s := newTestSigner(t, testCreds)

	if _, err := s.Sign(Params{}, testTime); !errs.Is(err, errs.ErrCodeInvalidHost) {
		t.Errorf("Sign(empty host) error = %v, want INVALID_HOST", err)
	}
	if _, err := s.Sign(Params{Host: "a b"}, testTime); !errs.Is(err, errs.ErrCodeInvalidHost) {
		t.Errorf("Sign(space host) error = %v, want INVALID_HOST", err)
	}
	_, err := s.Sign(Params{Host: "github.com", ResponseGroups: []ResponseGroup{"Traffic"}}, testTime)
	if !errs.Is(err, errs.ErrCodeInvalidResponseGroup) {
		t.Errorf("Sign(unknown group) error = %v, want INVALID_RESPONSE_GROUP", err)
	}
}

func TestSignNeverExposesSecret(t *testing.T) {
	creds := Credentials{AccessKeyID: "AKID", SecretAccessKey: "TOPSECRETVALUE"}
	s := newTestSigner(t, creds)
	req, err := s.Sign(Params{Host: "github.com"}, testTime)
	if err != nil {
		t.Fatalf("Sign() error: %v", err)
	}

	for name, out := range map[string]string{
		"URL":          req.URL,
		"StringToSign": req.StringToSign,
		"String":       creds.String(),
		"%v":           fmt.Sprintf("%v", creds),
		"%+v":          fmt.Sprintf("%+v", creds),
		"%#v":          fmt.Sprintf("%#v", creds),
	} {
		if strings.Contains(out, creds.SecretAccessKey) {
			t.Errorf("%s leaks the secret: %s", name, out)
		}
	}
}
