package awis

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	errs "github.com/matzehuels/awis/pkg/errors"
	"github.com/matzehuels/awis/pkg/tree"
)

const rootElement = "UrlInfoResponse"

// Fault is a service-level error carried in a response body.
type Fault struct {
	HTTPStatus int    // status the body arrived with, 0 if unknown
	Code       string // e.g. "AuthFailure", "SignatureDoesNotMatch"
	Message    string
	RequestID  string
}

func (f *Fault) Error() string {
	var b strings.Builder
	b.WriteString(f.Code)
	if f.Message != "" {
		b.WriteString(": ")
		b.WriteString(f.Message)
	}
	if f.HTTPStatus != 0 {
		fmt.Fprintf(&b, " (HTTP %d)", f.HTTPStatus)
	}
	if f.RequestID != "" {
		fmt.Fprintf(&b, " [request %s]", f.RequestID)
	}
	return b.String()
}

// DetectFault returns the fault doc carries, or nil.
//
// Two layouts are recognized: the AWS error document
// Response/Errors/Error/{Code,Message} (bare or under UrlInfoResponse), and
// a UrlInfoResponse whose ResponseStatus/StatusCode is not "Success".
func DetectFault(doc tree.Node) *Fault {
	for _, resp := range []tree.Node{
		tree.Retrieve(doc, "Response"),
		tree.Retrieve(doc, rootElement, "Response"),
	} {
		// An Errors element marks a fault even when it has no content.
		errNode, ok := resp.Field("Errors")
		if !ok {
			continue
		}
		var first tree.Node
		if items := tree.Items(tree.Retrieve(errNode, "Error")); len(items) > 0 {
			first = items[0]
		}
		f := &Fault{
			Code:      textOr(tree.Retrieve(first, "Code"), "UnknownError"),
			Message:   textOr(tree.Retrieve(first, "Message"), ""),
			RequestID: textOr(tree.Retrieve(resp, "RequestID"), ""),
		}
		if f.RequestID == "" {
			f.RequestID = textOr(tree.Retrieve(resp, "RequestId"), "")
		}
		return f
	}

	resp := tree.Retrieve(doc, rootElement, "Response")
	status, ok := tree.Text(tree.Retrieve(resp, "ResponseStatus", "StatusCode"))
	if ok && status != "Success" {
		return &Fault{
			Code:      status,
			Message:   textOr(tree.Retrieve(resp, "ResponseStatus", "StatusMessage"), ""),
			RequestID: textOr(tree.Retrieve(resp, "OperationRequest", "RequestId"), ""),
		}
	}
	return nil
}

func textOr(n tree.Node, def string) string {
	if s, ok := tree.Text(n); ok {
		return s
	}
	return def
}

func faultError(f *Fault) error {
	return errs.Wrap(errs.ErrCodeServiceFault, f, "service rejected the request")
}

// Parse extracts a URLInfo from a UrlInfo response document.
//
// Every field is looked up independently, so a missing subtree only leaves
// its own fields unset. A present value that cannot be converted is recorded
// in FieldErrors and the field stays nil.
//
// Parse fails with SERVICE_FAULT if doc carries a fault, and with
// MALFORMED_RESPONSE if doc is not a UrlInfo response or if values were
// present but none of them could be converted.
func Parse(doc tree.Node) (*URLInfo, error) {
	if f := DetectFault(doc); f != nil {
		return nil, faultError(f)
	}
	root := tree.Retrieve(doc, rootElement)
	if root.IsAbsent() {
		return nil, errs.New(errs.ErrCodeMalformedResponse, "document has no %s element", rootElement)
	}

	p := &parser{}
	info := p.urlInfo(root)
	if p.present > 0 && p.failed == p.present {
		return nil, errs.New(errs.ErrCodeMalformedResponse, "none of the %d values in the document could be parsed", p.present)
	}
	info.FieldErrors = p.errs
	if id, ok := tree.Text(tree.Retrieve(root, "Response", "OperationRequest", "RequestId")); ok {
		info.RequestID = &id
	}
	return info, nil
}

// parser tracks how many values were present and how many failed.
type parser struct {
	errs    []*FieldError
	present int
	failed  int
}

func (p *parser) urlInfo(root tree.Node) *URLInfo {
	resp := tree.Retrieve(root, "Response")
	alexa := tree.Retrieve(resp, "UrlInfoResult", "Alexa")
	traffic := tree.Retrieve(alexa, "TrafficData")
	content := tree.Retrieve(alexa, "ContentData")
	related := tree.Retrieve(alexa, "Related")

	return &URLInfo{
		DataURL: p.str(tree.Retrieve(traffic, "DataUrl")),
		Rank:    p.integer("rank", tree.Retrieve(traffic, "Rank")),

		SiteTitle:       p.str(tree.Retrieve(content, "SiteData", "Title")),
		SiteDescription: p.str(tree.Retrieve(content, "SiteData", "Description")),
		OnlineSince:     p.str(tree.Retrieve(content, "SiteData", "OnlineSince")),

		LanguageLocale:   p.str(tree.Retrieve(content, "Language", "Locale")),
		LanguageEncoding: p.str(tree.Retrieve(content, "Language", "Encoding")),
		Keywords:         p.keywords(tree.Retrieve(content, "Keywords")),
		AdultContent:     p.yesNo("adult_content", tree.Retrieve(content, "AdultContent")),
		LinksInCount:     p.integer("links_in_count", tree.Retrieve(content, "LinksInCount")),

		SpeedMedianLoadTime: p.integer("speed.median_load_time", tree.Retrieve(content, "Speed", "MedianLoadTime")),
		SpeedPercentile:     p.integer("speed.percentile", tree.Retrieve(content, "Speed", "Percentile")),

		RelatedLinks:    p.relatedLinks(tree.Retrieve(related, "RelatedLinks", "RelatedLink")),
		Categories:      p.categories(tree.Retrieve(related, "Categories", "CategoryData")),
		OwnedDomains:    p.ownedDomains(tree.Retrieve(content, "OwnedDomains", "OwnedDomain")),
		RankByCountry:   p.countries(tree.Retrieve(traffic, "RankByCountry", "Country")),
		RankByCity:      p.cities(tree.Retrieve(traffic, "RankByCity", "City")),
		UsageStatistics: p.usage(tree.Retrieve(traffic, "UsageStatistics", "UsageStatistic")),
	}
}

func (p *parser) fail(field, value string, cause error) {
	p.failed++
	p.errs = append(p.errs, &FieldError{
		Field: field,
		Value: value,
		Err:   errs.Wrap(errs.ErrCodeFieldParse, cause, "field %s", field),
	})
}

func (p *parser) str(n tree.Node) *string {
	s, ok := tree.Text(n)
	if !ok {
		return nil
	}
	p.present++
	return &s
}

func (p *parser) integer(field string, n tree.Node) *int64 {
	s, ok := tree.Text(n)
	if !ok {
		return nil
	}
	p.present++
	clean, err := cleanNumber(s)
	if err != nil {
		p.fail(field, s, err)
		return nil
	}
	v, err := strconv.ParseInt(clean, 10, 64)
	if err != nil {
		p.fail(field, s, err)
		return nil
	}
	return &v
}

func (p *parser) decimal(field string, n tree.Node) *float64 {
	s, ok := tree.Text(n)
	if !ok {
		return nil
	}
	p.present++
	clean, err := cleanNumber(s)
	if err != nil {
		p.fail(field, s, err)
		return nil
	}
	v, err := strconv.ParseFloat(clean, 64)
	if err != nil {
		p.fail(field, s, err)
		return nil
	}
	return &v
}

func (p *parser) yesNo(field string, n tree.Node) *bool {
	s, ok := tree.Text(n)
	if !ok {
		return nil
	}
	p.present++
	var v bool
	switch strings.ToLower(s) {
	case "yes", "true", "1":
		v = true
	case "no", "false", "0":
		v = false
	default:
		p.fail(field, s, fmt.Errorf("want yes or no"))
		return nil
	}
	return &v
}

var errGrouping = errors.New("misplaced thousands separator")

// cleanNumber strips thousands separators, a leading "+" and a trailing "%".
// Commas are only accepted between groups of three integer digits.
func cleanNumber(s string) (string, error) {
	s = strings.TrimPrefix(strings.TrimSuffix(s, "%"), "+")
	if !strings.Contains(s, ",") {
		return s, nil
	}
	whole, frac, hasFrac := strings.Cut(s, ".")
	if strings.Contains(frac, ",") {
		return "", errGrouping
	}
	for i, g := range strings.Split(strings.TrimPrefix(whole, "-"), ",") {
		if (i == 0 && (len(g) == 0 || len(g) > 3)) || (i > 0 && len(g) != 3) {
			return "", errGrouping
		}
	}
	out := strings.ReplaceAll(whole, ",", "")
	if hasFrac {
		out += "." + frac
	}
	return out, nil
}

// keywords accepts both a plain text value and a list of Keyword children.
func (p *parser) keywords(n tree.Node) *string {
	if s := p.str(n); s != nil {
		return s
	}
	var words []string
	for _, k := range tree.Items(tree.Retrieve(n, "Keyword")) {
		if s, ok := tree.Text(k); ok {
			words = append(words, s)
		}
	}
	if len(words) == 0 {
		return nil
	}
	p.present++
	joined := strings.Join(words, ", ")
	return &joined
}

// elements calls fn for every mapping item of a one-or-many subtree, with
// the item's field path "name[i]". Items that are not mappings are skipped
// and recorded.
func (p *parser) elements(name string, n tree.Node, fn func(field string, c tree.Node)) {
	for i, item := range tree.Items(n) {
		field := fmt.Sprintf("%s[%d]", name, i)
		if item.Kind() != tree.Mapping {
			p.present++
			s, _ := tree.Text(item)
			p.fail(field, s, fmt.Errorf("want an element, got %s", item.Kind()))
			continue
		}
		fn(field, item)
	}
}

// id reads the identifying value of a collection item. A missing identifier
// is recorded and the item is skipped by the caller.
func (p *parser) id(field string, n tree.Node) (string, bool) {
	p.present++
	s, ok := tree.Text(n)
	if !ok {
		p.fail(field, "", fmt.Errorf("missing identifier"))
	}
	return s, ok
}

func (p *parser) relatedLinks(n tree.Node) []RelatedLink {
	out := []RelatedLink{}
	p.elements("related_links", n, func(field string, c tree.Node) {
		url, ok := p.id(field+".data_url", tree.Retrieve(c, "DataUrl"))
		if !ok {
			return
		}
		out = append(out, RelatedLink{
			DataURL:      url,
			NavigableURL: p.str(tree.Retrieve(c, "NavigableUrl")),
			Title:        p.str(tree.Retrieve(c, "Title")),
		})
	})
	return out
}

func (p *parser) categories(n tree.Node) []Category {
	out := []Category{}
	p.elements("categories", n, func(field string, c tree.Node) {
		cat := Category{
			Title:        p.str(tree.Retrieve(c, "Title")),
			AbsolutePath: p.str(tree.Retrieve(c, "AbsolutePath")),
		}
		if cat.Title == nil && cat.AbsolutePath == nil {
			p.id(field+".absolute_path", tree.Node{})
			return
		}
		out = append(out, cat)
	})
	return out
}

func (p *parser) ownedDomains(n tree.Node) []OwnedDomain {
	out := []OwnedDomain{}
	p.elements("owned_domains", n, func(field string, c tree.Node) {
		domain, ok := p.id(field+".domain", tree.Retrieve(c, "Domain"))
		if !ok {
			return
		}
		out = append(out, OwnedDomain{
			Domain: domain,
			Title:  p.str(tree.Retrieve(c, "Title")),
		})
	})
	return out
}

func (p *parser) contribution(prefix string, n tree.Node) Contribution {
	return Contribution{
		PageViews:               p.decimal(prefix+".page_views", tree.Retrieve(n, "PageViews")),
		Users:                   p.decimal(prefix+".users", tree.Retrieve(n, "Users")),
		AveragePageViewsPerUser: p.decimal(prefix+".average_page_views_per_user", tree.Retrieve(n, "PerUser", "AveragePageViewsPerUser")),
	}
}

func (p *parser) countries(n tree.Node) []CountryRank {
	out := []CountryRank{}
	p.elements("rank_by_country", n, func(field string, c tree.Node) {
		code, ok := p.id(field+".code", tree.Retrieve(c, "Code"))
		if !ok {
			return
		}
		out = append(out, CountryRank{
			Code:         code,
			Rank:         p.integer(field+".rank", tree.Retrieve(c, "Rank")),
			Contribution: p.contribution(field+".contribution", tree.Retrieve(c, "Contribution")),
		})
	})
	return out
}

func (p *parser) cities(n tree.Node) []CityRank {
	out := []CityRank{}
	p.elements("rank_by_city", n, func(field string, c tree.Node) {
		code, ok := p.id(field+".code", tree.Retrieve(c, "Code"))
		if !ok {
			return
		}
		out = append(out, CityRank{
			Code:         code,
			Name:         p.str(tree.Retrieve(c, "Name")),
			Rank:         p.integer(field+".rank", tree.Retrieve(c, "Rank")),
			Contribution: p.contribution(field+".contribution", tree.Retrieve(c, "Contribution")),
		})
	})
	return out
}

func (p *parser) metric(field string, n tree.Node) Metric {
	m := Metric{Value: p.decimal(field, tree.Retrieve(n, "Value"))}
	if d, ok := tree.Text(tree.Retrieve(n, "Delta")); ok {
		m.Delta = d
	}
	return m
}

func (p *parser) usage(n tree.Node) []UsageStatistic {
	out := []UsageStatistic{}
	p.elements("usage_statistics", n, func(field string, c tree.Node) {
		tr := tree.Retrieve(c, "TimeRange")
		out = append(out, UsageStatistic{
			TimeRange: TimeRange{
				Months: p.integer(field+".time_range.months", tree.Retrieve(tr, "Months")),
				Days:   p.integer(field+".time_range.days", tree.Retrieve(tr, "Days")),
			},
			Rank:                p.metric(field+".rank", tree.Retrieve(c, "Rank")),
			ReachRank:           p.metric(field+".reach.rank", tree.Retrieve(c, "Reach", "Rank")),
			ReachPerMillion:     p.metric(field+".reach.per_million", tree.Retrieve(c, "Reach", "PerMillion")),
			PageViewsRank:       p.metric(field+".page_views.rank", tree.Retrieve(c, "PageViews", "Rank")),
			PageViewsPerMillion: p.metric(field+".page_views.per_million", tree.Retrieve(c, "PageViews", "PerMillion")),
			PageViewsPerUser:    p.metric(field+".page_views.per_user", tree.Retrieve(c, "PageViews", "PerUser")),
		})
	})
	return out
}
