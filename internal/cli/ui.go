package cli

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/awis/pkg/integrations/awis"
)

// =============================================================================
// Color Palette
// =============================================================================

var (
	colorCyan   = lipgloss.Color("36")  // Teal - primary actions
	colorGreen  = lipgloss.Color("35")  // Green - success
	colorYellow = lipgloss.Color("220") // Amber - warnings
	colorRed    = lipgloss.Color("167") // Soft red - errors
	colorBlue   = lipgloss.Color("75")  // Light blue - links
	colorWhite  = lipgloss.Color("255") // Bright white - values
	colorGray   = lipgloss.Color("245") // Gray - secondary text
	colorDim    = lipgloss.Color("240") // Dim gray - muted text
)

// =============================================================================
// Public Styles
// =============================================================================

var (
	// StyleTitle for main headings.
	StyleTitle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)

	// StyleLink for URLs.
	StyleLink = lipgloss.NewStyle().Foreground(colorBlue).Underline(true)

	// StyleDim for secondary/muted text.
	StyleDim = lipgloss.NewStyle().Foreground(colorDim)

	// StyleValue for data values.
	StyleValue = lipgloss.NewStyle().Foreground(colorWhite)

	// StyleWarning for warning messages.
	StyleWarning = lipgloss.NewStyle().Foreground(colorYellow)
)

// =============================================================================
// Internal Styles
// =============================================================================

var (
	styleIconSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	styleIconError   = lipgloss.NewStyle().Foreground(colorRed)
	styleIconWarning = lipgloss.NewStyle().Foreground(colorYellow)
	styleIconInfo    = lipgloss.NewStyle().Foreground(colorGray)
	styleKey         = lipgloss.NewStyle().Foreground(colorGray).Width(14)
	styleCommand     = lipgloss.NewStyle().Foreground(colorBlue)
)

// =============================================================================
// Icons
// =============================================================================

const (
	iconSuccess = "✓"
	iconError   = "✗"
	iconWarning = "!"
	iconInfo    = "›"
	iconArrow   = "→"
)

// =============================================================================
// Status Output
// =============================================================================

// printSuccess prints a success message.
func printSuccess(w io.Writer, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintln(w, styleIconSuccess.Render(iconSuccess)+" "+msg)
}

// printError prints an error message.
func printError(w io.Writer, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintln(w, styleIconError.Render(iconError)+" "+msg)
}

// printWarning prints a warning message.
func printWarning(w io.Writer, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintln(w, styleIconWarning.Render(iconWarning)+" "+StyleWarning.Render(msg))
}

// printInfo prints an info/status message.
func printInfo(w io.Writer, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintln(w, styleIconInfo.Render(iconInfo)+" "+msg)
}

// printDetail prints a detail line (indented).
func printDetail(w io.Writer, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintln(w, "  "+StyleDim.Render(msg))
}

// printKeyValue prints a labeled value. Empty values are skipped.
func printKeyValue(w io.Writer, key, value string) {
	if value == "" {
		return
	}
	fmt.Fprintln(w, styleKey.Render(key)+" "+StyleValue.Render(value))
}

// printNextStep prints a suggested next command.
func printNextStep(w io.Writer, description, cmd string) {
	fmt.Fprintln(w, StyleDim.Render(description+":")+" "+styleCommand.Render(cmd))
}

// =============================================================================
// URL Info Display
// =============================================================================

// maxListed bounds how many entries of a collection are printed.
const maxListed = 5

// printURLInfo prints a human-readable summary of info.
func printURLInfo(w io.Writer, host string, info *awis.URLInfo) {
	printSuccess(w, "%s", StyleTitle.Render(host))

	printKeyValue(w, "Data URL", str(info.DataURL))
	printKeyValue(w, "Rank", num(info.Rank))
	printKeyValue(w, "Title", str(info.SiteTitle))
	printKeyValue(w, "Description", str(info.SiteDescription))
	printKeyValue(w, "Online since", str(info.OnlineSince))
	printKeyValue(w, "Links in", num(info.LinksInCount))
	printKeyValue(w, "Language", strings.Trim(str(info.LanguageLocale)+" "+str(info.LanguageEncoding), " "))
	printKeyValue(w, "Keywords", str(info.Keywords))
	if info.AdultContent != nil {
		printKeyValue(w, "Adult content", strconv.FormatBool(*info.AdultContent))
	}
	if info.SpeedMedianLoadTime != nil {
		printKeyValue(w, "Load time", fmt.Sprintf("%s ms (faster than %s%%)", num(info.SpeedMedianLoadTime), num(info.SpeedPercentile)))
	}

	if len(info.UsageStatistics) > 0 {
		printInfo(w, "Usage")
		for _, s := range info.UsageStatistics {
			printDetail(w, "%-4s rank %s (%s)  reach/M %s  views/user %s",
				s.TimeRange, metric(s.Rank), s.Rank.Delta, metric(s.ReachPerMillion), metric(s.PageViewsPerUser))
		}
	}
	if n := len(info.RankByCountry); n > 0 {
		printInfo(w, "Top countries (%d)", n)
		for _, c := range info.RankByCountry[:min(n, maxListed)] {
			printDetail(w, "%s  rank %s  %s%% of views", c.Code, num(c.Rank), pct(c.Contribution.PageViews))
		}
	}
	if n := len(info.RankByCity); n > 0 {
		printInfo(w, "Top cities (%d)", n)
		for _, c := range info.RankByCity[:min(n, maxListed)] {
			printDetail(w, "%s  rank %s  %s%% of views", str(c.Name), num(c.Rank), pct(c.Contribution.PageViews))
		}
	}
	if n := len(info.RelatedLinks); n > 0 {
		printInfo(w, "Related (%d)", n)
		for _, l := range info.RelatedLinks[:min(n, maxListed)] {
			printDetail(w, "%s %s %s", iconArrow, l.DataURL, str(l.Title))
		}
	}
	if n := len(info.Categories); n > 0 {
		printInfo(w, "Categories (%d)", n)
		for _, c := range info.Categories[:min(n, maxListed)] {
			printDetail(w, "%s", str(c.AbsolutePath))
		}
	}
	for _, fe := range info.FieldErrors {
		printWarning(w, "%s: could not parse %q", fe.Field, fe.Value)
	}
}

func str(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func num(n *int64) string {
	if n == nil {
		return ""
	}
	return strconv.FormatInt(*n, 10)
}

func pct(f *float64) string {
	if f == nil {
		return "?"
	}
	return strconv.FormatFloat(*f, 'f', -1, 64)
}

func metric(m awis.Metric) string {
	if m.Value == nil {
		return "-"
	}
	return strconv.FormatFloat(*m.Value, 'f', -1, 64)
}
