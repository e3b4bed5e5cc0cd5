package awis

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	errs "github.com/matzehuels/awis/pkg/errors"
)

func TestParseResponseGroups(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []ResponseGroup
	}{
		{"empty", "", nil},
		{"blank", "  ", nil},
		{"single", "Rank", []ResponseGroup{GroupRank}},
		{"custom", "Rank,LinksInCount,SiteData", []ResponseGroup{GroupRank, GroupLinksInCount, GroupSiteData}},
		{"spaces and case", " rank , siteDATA ", []ResponseGroup{GroupRank, GroupSiteData}},
		{"duplicates", "Rank,Speed,rank", []ResponseGroup{GroupRank, GroupSpeed}},
		{"empty tokens", "Rank,,Speed,", []ResponseGroup{GroupRank, GroupSpeed}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseResponseGroups(tt.input)
			if err != nil {
				t.Fatalf("ParseResponseGroups(%q) error: %v", tt.input, err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("ParseResponseGroups(%q) mismatch (-want +got):\n%s", tt.input, diff)
			}
		})
	}
}

func TestParseResponseGroupsUnknown(t *testing.T) {
	_, err := ParseResponseGroups("Rank,Traffic")
	if !errs.Is(err, errs.ErrCodeInvalidResponseGroup) {
		t.Errorf("error = %v, want INVALID_RESPONSE_GROUP", err)
	}
}

func TestDefaultResponseGroups(t *testing.T) {
	groups := DefaultResponseGroups()
	if len(groups) != 14 {
		t.Fatalf("len = %d, want 14", len(groups))
	}
	for _, g := range groups {
		if !g.Valid() {
			t.Errorf("%s should be valid", g)
		}
	}

	groups[0] = "Mutated"
	if DefaultResponseGroups()[0] != GroupRelatedLinks {
		t.Error("DefaultResponseGroups() should return a copy")
	}
}

func TestResponseGroupValid(t *testing.T) {
	if ResponseGroup("rank").Valid() {
		t.Error("Valid() should be case sensitive")
	}
	if ResponseGroup("").Valid() {
		t.Error("empty group should be invalid")
	}
}
