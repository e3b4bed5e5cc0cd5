package awis

import (
	"strings"

	errs "github.com/matzehuels/awis/pkg/errors"
)

// ResponseGroup names a subset of fields the service populates.
type ResponseGroup string

const (
	GroupRelatedLinks  ResponseGroup = "RelatedLinks"
	GroupCategories    ResponseGroup = "Categories"
	GroupRank          ResponseGroup = "Rank"
	GroupRankByCountry ResponseGroup = "RankByCountry"
	GroupRankByCity    ResponseGroup = "RankByCity"
	GroupUsageStats    ResponseGroup = "UsageStats"
	GroupContactInfo   ResponseGroup = "ContactInfo"
	GroupAdultContent  ResponseGroup = "AdultContent"
	GroupSpeed         ResponseGroup = "Speed"
	GroupLanguage      ResponseGroup = "Language"
	GroupKeywords      ResponseGroup = "Keywords"
	GroupOwnedDomains  ResponseGroup = "OwnedDomains"
	GroupLinksInCount  ResponseGroup = "LinksInCount"
	GroupSiteData      ResponseGroup = "SiteData"
)

// allGroups is every supported group in the order the service documents them.
var allGroups = []ResponseGroup{
	GroupRelatedLinks,
	GroupCategories,
	GroupRank,
	GroupRankByCountry,
	GroupRankByCity,
	GroupUsageStats,
	GroupContactInfo,
	GroupAdultContent,
	GroupSpeed,
	GroupLanguage,
	GroupKeywords,
	GroupOwnedDomains,
	GroupLinksInCount,
	GroupSiteData,
}

// DefaultResponseGroups returns every supported group, which requests the
// richest document. The returned slice is a fresh copy.
func DefaultResponseGroups() []ResponseGroup {
	return append([]ResponseGroup(nil), allGroups...)
}

// Valid reports whether g is a group the service understands.
func (g ResponseGroup) Valid() bool {
	for _, known := range allGroups {
		if g == known {
			return true
		}
	}
	return false
}

// ParseResponseGroups parses a comma separated group list such as
// "Rank,LinksInCount,SiteData". Matching ignores case and surrounding
// spaces; duplicates are dropped. An empty string yields nil.
func ParseResponseGroups(s string) ([]ResponseGroup, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	var groups []ResponseGroup
	seen := make(map[ResponseGroup]bool)
	for _, tok := range strings.Split(s, ",") {
		tok = strings.TrimSpace(tok)
		if tok == "" {
			continue
		}
		g, ok := lookupGroup(tok)
		if !ok {
			return nil, errs.New(errs.ErrCodeInvalidResponseGroup, "unknown response group %q", tok)
		}
		if !seen[g] {
			seen[g] = true
			groups = append(groups, g)
		}
	}
	return groups, nil
}

func lookupGroup(name string) (ResponseGroup, bool) {
	for _, g := range allGroups {
		if strings.EqualFold(string(g), name) {
			return g, true
		}
	}
	return "", false
}

func validateGroups(groups []ResponseGroup) error {
	for _, g := range groups {
		if !g.Valid() {
			return errs.New(errs.ErrCodeInvalidResponseGroup, "unknown response group %q", g)
		}
	}
	return nil
}

func joinGroups(groups []ResponseGroup) string {
	parts := make([]string, len(groups))
	for i, g := range groups {
		parts[i] = string(g)
	}
	return strings.Join(parts, ",")
}
