package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/worthit/internal/constants"
	"github.com/julianstephens/worthit/internal/entries"
	"github.com/julianstephens/worthit/internal/models"
)

var (
	dimStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	improvingStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true)
	decliningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	stableStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	starStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
)

// ShortID trims a uuid to its first block for list output.
func ShortID(id string) string {
	if i := strings.IndexByte(id, '-'); i > 0 {
		return id[:i]
	}
	return id
}

// EntryTypeIcon is the marker shown before an entry in lists.
func EntryTypeIcon(t models.EntryType) string {
	switch t {
	case models.EntryResisted:
		return "✓"
	case models.EntryReflection:
		return "~"
	default:
		return "•"
	}
}

// FormatEntryLine renders one entry as a single list row.
func FormatEntryLine(e models.Entry) string {
	line := fmt.Sprintf("%s %s  %s  %-22s  [%s]  worth it: %s",
		EntryTypeIcon(e.EntryType),
		dimStyle.Render(ShortID(e.ID)),
		e.CreatedAt.Format(constants.DateTimeFormat),
		e.Action,
		e.Category,
		e.WorthIt,
	)
	if n := len(e.Memos); n > 0 {
		line += dimStyle.Render(fmt.Sprintf("  (%d memo%s)", n, plural(n)))
	}
	return line
}

// PrintEntry prints the full detail view of an entry.
func PrintEntry(e models.Entry, showHidden bool) {
	fmt.Printf("%s %s\n", EntryTypeIcon(e.EntryType), e.Action)
	fmt.Printf("  ID:        %s\n", e.ID)
	fmt.Printf("  Type:      %s\n", e.EntryType)
	fmt.Printf("  Category:  %s\n", e.Category)
	fmt.Printf("  Logged:    %s\n", e.CreatedAt.Format(constants.DateTimeFormat))
	if len(e.Context) > 0 {
		fmt.Printf("  Context:   %s\n", JoinEnums(e.Context))
	}
	fmt.Printf("  Felt:      %s\n", e.PhysicalRating)
	if len(e.EmotionalTags) > 0 {
		fmt.Printf("  Emotions:  %s\n", strings.Join(e.EmotionalTags, ", "))
	}
	fmt.Printf("  Worth it:  %s\n", e.WorthIt)
	if e.Note != "" {
		fmt.Printf("  Note:      %s\n", e.Note)
	}
	if e.IsLinked() {
		fmt.Printf("  Behavior:  %s\n", e.BehaviorID)
	}

	memos := VisibleMemosFor(e, showHidden)
	if len(memos) == 0 {
		return
	}
	fmt.Println("\n  Memos:")
	for _, m := range memos {
		fmt.Printf("    %s\n", FormatMemoLine(m))
	}
}

// FormatMemoLine renders one memo as a single row.
func FormatMemoLine(m models.Memo) string {
	marker := " "
	if m.IsStarred {
		marker = starStyle.Render("★")
	}
	line := fmt.Sprintf("%s %s  %s  %s, felt %s",
		marker,
		dimStyle.Render(ShortID(m.ID)),
		m.CreatedAt.Format(constants.DateTimeFormat),
		m.Outcome,
		m.Feeling,
	)
	if m.Note != "" {
		line += ": " + m.Note
	}
	if m.IsHidden {
		line += dimStyle.Render(" (hidden)")
	}
	return line
}

// FormatTrend colours a trend label.
func FormatTrend(t models.Trend) string {
	switch t {
	case models.TrendImproving:
		return improvingStyle.Render("↑ improving")
	case models.TrendDeclining:
		return decliningStyle.Render("↓ declining")
	case models.TrendStable:
		return stableStyle.Render("→ stable")
	default:
		return dimStyle.Render("new")
	}
}

// FormatStats renders the stats block shown under a behavior.
func FormatStats(s models.BehaviorStats) string {
	var b strings.Builder
	fmt.Fprintf(&b, "  Entries:      %d (%d resisted, %d did it, %d reflections)\n",
		s.TotalEntries, s.ResistedCount, s.DidItCount, s.ReflectionCount)
	fmt.Fprintf(&b, "  Success rate: %d%%\n", s.SuccessRate)
	fmt.Fprintf(&b, "  Trend:        %s\n", FormatTrend(s.Trend))
	if s.FirstEntryDate != nil && s.LastEntryDate != nil {
		fmt.Fprintf(&b, "  Active:       %s to %s\n",
			s.FirstEntryDate.Format(constants.DateFormat),
			s.LastEntryDate.Format(constants.DateFormat))
	}
	return b.String()
}

// JoinEnums joins any string-based enumeration slice for display.
func JoinEnums[T ~string](values []T) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = string(v)
	}
	return strings.Join(parts, ", ")
}

// VisibleMemosFor returns the memos to print, starred first.
func VisibleMemosFor(e models.Entry, showHidden bool) []models.Memo {
	var starred, rest []models.Memo
	for _, m := range entries.VisibleMemos(e, showHidden) {
		if m.IsStarred {
			starred = append(starred, m)
		} else {
			rest = append(rest, m)
		}
	}
	return append(starred, rest...)
}

func plural(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}
