package awis

import (
	"encoding/json"
	"fmt"
)

// URLInfo describes one site as reported by the service.
//
// Every field is independently optional: which ones are set depends on the
// response groups requested and on what the service chose to return. A
// requested field the service left out is nil, never an error. Collections
// are non-nil after [Parse] and empty when their subtree is missing.
//
// A URLInfo is read-only once returned; fetching again produces a new value.
type URLInfo struct {
	// Rank group
	DataURL *string `json:"data_url,omitempty"`
	Rank    *int64  `json:"rank,omitempty"`

	// SiteData group
	SiteTitle       *string `json:"site_title,omitempty"`
	SiteDescription *string `json:"site_description,omitempty"`
	OnlineSince     *string `json:"online_since,omitempty"`

	// Language group
	LanguageLocale   *string `json:"language_locale,omitempty"`
	LanguageEncoding *string `json:"language_encoding,omitempty"`

	// Keywords group, comma joined
	Keywords *string `json:"keywords,omitempty"`

	// AdultContent group
	AdultContent *bool `json:"adult_content,omitempty"`

	// LinksInCount group
	LinksInCount *int64 `json:"links_in_count,omitempty"`

	// Speed group
	SpeedMedianLoadTime *int64 `json:"speed_median_load_time,omitempty"`
	SpeedPercentile     *int64 `json:"speed_percentile,omitempty"`

	RelatedLinks    []RelatedLink    `json:"related_links"`
	Categories      []Category       `json:"categories"`
	OwnedDomains    []OwnedDomain    `json:"owned_domains"`
	RankByCountry   []CountryRank    `json:"rank_by_country"`
	RankByCity      []CityRank       `json:"rank_by_city"`
	UsageStatistics []UsageStatistic `json:"usage_statistics"`

	// RequestID echoes the service's request identifier.
	RequestID *string `json:"request_id,omitempty"`

	// FieldErrors lists present values that could not be converted.
	// The affected fields are nil.
	FieldErrors []*FieldError `json:"field_errors,omitempty"`
}

// Reset clears every field so info can be reused by [Client.Fetch].
func (info *URLInfo) Reset() { *info = URLInfo{} }

// RelatedLink is a site the service considers similar.
type RelatedLink struct {
	DataURL      string  `json:"data_url"`
	NavigableURL *string `json:"navigable_url,omitempty"`
	Title        *string `json:"title,omitempty"`
}

// Category is a directory category the site is listed under.
type Category struct {
	Title        *string `json:"title,omitempty"`
	AbsolutePath *string `json:"absolute_path,omitempty"`
}

// OwnedDomain is another domain registered to the same owner.
type OwnedDomain struct {
	Domain string  `json:"domain"`
	Title  *string `json:"title,omitempty"`
}

// Contribution is the share of a site's traffic from one country or city.
// Values are percentages: "24.9%" parses to 24.9.
type Contribution struct {
	PageViews               *float64 `json:"page_views,omitempty"`
	Users                   *float64 `json:"users,omitempty"`
	AveragePageViewsPerUser *float64 `json:"average_page_views_per_user,omitempty"`
}

// CountryRank is the site's rank within one country.
type CountryRank struct {
	Code         string       `json:"code"`
	Rank         *int64       `json:"rank,omitempty"`
	Contribution Contribution `json:"contribution"`
}

// CityRank is the site's rank within one city.
type CityRank struct {
	Code         string       `json:"code"`
	Name         *string      `json:"name,omitempty"`
	Rank         *int64       `json:"rank,omitempty"`
	Contribution Contribution `json:"contribution"`
}

// TimeRange is the window a usage sample covers. Exactly one of the fields
// is normally set.
type TimeRange struct {
	Months *int64 `json:"months,omitempty"`
	Days   *int64 `json:"days,omitempty"`
}

func (r TimeRange) String() string {
	switch {
	case r.Months != nil:
		return fmt.Sprintf("%dm", *r.Months)
	case r.Days != nil:
		return fmt.Sprintf("%dd", *r.Days)
	}
	return "?"
}

// Metric is a value and its change over the previous window. Delta is kept
// as sent ("+2%", "-21").
type Metric struct {
	Value *float64 `json:"value,omitempty"`
	Delta string   `json:"delta,omitempty"`
}

// UsageStatistic is one time-bucketed traffic sample.
type UsageStatistic struct {
	TimeRange           TimeRange `json:"time_range"`
	Rank                Metric    `json:"rank"`
	ReachRank           Metric    `json:"reach_rank"`
	ReachPerMillion     Metric    `json:"reach_per_million"`
	PageViewsRank       Metric    `json:"page_views_rank"`
	PageViewsPerMillion Metric    `json:"page_views_per_million"`
	PageViewsPerUser    Metric    `json:"page_views_per_user"`
}

// FieldError records a present value that could not be converted.
// Field is a dotted path such as "rank_by_country[3].rank".
type FieldError struct {
	Field string
	Value string
	Err   error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("field %s: cannot parse %q: %v", e.Field, e.Value, e.Err)
}

func (e *FieldError) Unwrap() error { return e.Err }

// MarshalJSON renders the error as a flat object.
func (e *FieldError) MarshalJSON() ([]byte, error) {
	msg := ""
	if e.Err != nil {
		msg = e.Err.Error()
	}
	return json.Marshal(struct {
		Field string `json:"field"`
		Value string `json:"value"`
		Error string `json:"error"`
	}{e.Field, e.Value, msg})
}
