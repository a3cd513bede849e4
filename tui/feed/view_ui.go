package feed

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/CrestNiraj12/tradefeed/domain"
	"github.com/CrestNiraj12/tradefeed/tui/common"
)

func (m Model) helpView() string {
	var items []string
	if m.queryInput {
		items = []string{"enter: apply", "esc: cancel"}
	} else if len(m.visible) > 0 {
		items = []string{
			"j/k: focus",
			"o: read",
			"l: like",
			"n: load new",
			"tab: next tab",
			"m: hot/recent",
			"/: ticker",
			"M s $ t: filters",
			"v: verified",
			"x: clear",
			"r: refresh",
			"q: quit",
		}
	} else {
		items = []string{
			"tab: next tab",
			"x: clear filters",
			"r: refresh",
			"q: quit",
		}
	}

	wrapWidth := max(m.width-2, 16)
	return common.StatusBarStyle.
		Width(wrapWidth).
		Render("  " + strings.Join(items, " • "))
}

func (m Model) renderTabs() string {
	active := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#111111")).
		Background(lipgloss.Color("#FFB454")).
		Bold(true).
		Padding(0, 1)
	inactive := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#B3B3B3")).
		Background(lipgloss.Color("#2B2B2B")).
		Padding(0, 1)

	rendered := make([]string, 0, len(Tabs))
	for _, t := range Tabs {
		if m.tab == t {
			rendered = append(rendered, active.Render(t))
		} else {
			rendered = append(rendered, inactive.Render(t))
		}
	}
	return lipgloss.NewStyle().MarginLeft(2).PaddingTop(1).Render(strings.Join(rendered, " "))
}

func (m Model) renderFilterBar() string {
	f := m.filters
	mode := "🔥 hot"
	if f.Mode == domain.ModeRecent {
		mode = "🕒 recent"
	}
	parts := []string{mode}
	add := func(label, val string) {
		if !domain.IsNoFilter(val) {
			parts = append(parts, label+": "+val)
		}
	}
	add("market", f.Market)
	add("sentiment", f.Sentiment)
	add("price", f.Price)
	add("period", f.Period)
	add("ticker", f.Query)
	if f.VerifiedOnly {
		parts = append(parts, "verified only")
	}
	return common.MetadataStyle.MarginLeft(2).Render(strings.Join(parts, " • "))
}
