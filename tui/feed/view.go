package feed

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/CrestNiraj12/tradefeed/core/access"
	"github.com/CrestNiraj12/tradefeed/domain"
	"github.com/CrestNiraj12/tradefeed/tui/common"
)

// EmptyText is shown when the pipeline leaves nothing to render.
const EmptyText = "No posts match these filters."

// View renders the feed as a string.
func (m Model) View() string {
	var b strings.Builder

	title := common.AppTitleStyle.Padding(1, 0, 0, 1).Render("📈 TradeFeed")
	tagline := common.TaglineStyle.Render("<signals, news and analysis>")
	b.WriteString(title + tagline + "\n")
	b.WriteString(m.renderTabs() + "\n")
	b.WriteString(m.renderFilterBar() + "\n")
	if m.queryInput {
		b.WriteString(common.TitleStyle.MarginLeft(2).Render("Ticker: $"+m.queryBuffer+"█") + "\n")
	}
	if m.pending > 0 {
		label := fmt.Sprintf("%d new posts • n to load", m.pending)
		if m.pending == 1 {
			label = "1 new post • n to load"
		}
		b.WriteString(lipgloss.NewStyle().MarginLeft(2).Render(common.BannerStyle.Render(label)) + "\n")
	}
	b.WriteString("\n")

	switch {
	case m.loading && len(m.visible) == 0:
		b.WriteString(fmt.Sprintf("  %s Loading feed...\n", m.spinner.View()))
	case m.err != nil && len(m.visible) == 0:
		b.WriteString(common.ErrorStyle.Render(fmt.Sprintf("  Error: %v", m.err)))
		b.WriteString("\n\n  Press r to retry.\n")
	case len(m.visible) == 0:
		b.WriteString("  " + EmptyText + "\n")
	default:
		b.WriteString(m.renderList())
	}

	b.WriteString("\n" + m.helpView())
	return b.String()
}

func (m Model) renderList() string {
	n := m.visibleCount()
	start := min(max(m.startIndex, 0), len(m.visible)-1)
	end := min(start+n, len(m.visible))
	cardWidth, bodyWidth := m.cardWidths()
	now := time.Now()

	var b strings.Builder
	for i := start; i < end; i++ {
		b.WriteString(m.renderCard(i, cardWidth, bodyWidth, now))
		b.WriteString("\n")
	}
	if end < len(m.visible) {
		b.WriteString(common.MetadataStyle.Render(fmt.Sprintf("  … %d more", len(m.visible)-end)) + "\n")
	}
	return b.String()
}

func (m Model) renderCard(i, cardWidth, bodyWidth int, now time.Time) string {
	p := m.visible[i]
	d := access.Decide(p, m.viewer)
	shown := access.Redact(p, d)

	header := m.renderCardHeader(shown, now)
	title := common.TitleStyle.Render(clampLinesToWidth(shown.Title, bodyWidth))

	var body string
	if d.Locked {
		body = renderLocked(shown, d, bodyWidth)
	} else {
		text := shown.Body
		if strings.TrimSpace(text) == "" {
			text = shown.Preview
		}
		body = common.ContentStyle.Render(truncateToTwoLines(text, bodyWidth))
	}

	content := strings.Join([]string{header, title, body, m.renderMeta(p, now)}, "\n")
	content = clampLinesToWidth(content, bodyWidth)
	style := common.UnselectedStyle
	if i == m.cursor {
		style = common.SelectedStyle
	}
	return style.Width(cardWidth).Render(content)
}

func (m Model) renderCardHeader(p domain.Post, now time.Time) string {
	parts := []string{authorStyleFor(p.Author, p.IsOwnPost).Render(p.Author)}
	if p.AuthorVerified {
		parts[0] += common.SuccessStyle.Render(" ✓")
	}
	ts := m.scorer.Timestamp(p, now)
	parts = append(parts, common.TimestampStyle.Render(humanizeAge(ts, now)))
	parts = append(parts, common.MetadataStyle.Render(strings.ToUpper(string(p.Type))))
	if p.Ticker != "" {
		parts = append(parts, common.TitleStyle.Render("$"+strings.TrimPrefix(strings.ToUpper(p.Ticker), "$")))
	}
	if badge := sentimentBadge(p); badge != "" {
		parts = append(parts, badge)
	}
	return strings.Join(parts, common.MetadataStyle.Render(" · "))
}

func sentimentBadge(p domain.Post) string {
	label := strings.ToLower(p.Direction)
	if label == "" {
		label = strings.ToLower(p.Sentiment)
	}
	switch label {
	case "long", "bullish":
		return common.BullishStyle.Render("▲ " + label)
	case "short", "bearish":
		return common.BearishStyle.Render("▼ " + label)
	case "":
		return ""
	}
	return common.MetadataStyle.Render(label)
}

// renderLocked never touches the body; the bounded preview is all it shows.
func renderLocked(p domain.Post, d access.Decision, width int) string {
	hint := "🔒 " + unlockHint(d, p.Currency)
	if strings.TrimSpace(p.Preview) == "" {
		return common.LockedStyle.Render(hint)
	}
	preview := truncateToTwoLines(p.Preview, width)
	first := strings.SplitN(preview, "\n", 2)[0]
	return common.MetadataStyle.Render(first) + "\n" + common.LockedStyle.Render(hint)
}

func (m Model) renderMeta(p domain.Post, now time.Time) string {
	st := m.likeState(p)
	heart := common.MetadataStyle.Render("♡")
	if st.IsLiked {
		heart = common.LikeActiveStyle.Render("♥")
	}
	likes := fmt.Sprintf("%s %s", heart, common.MetadataStyle.Render(compactCount(st.LikesCount)))
	if st.Pending {
		likes += common.MetadataStyle.Render("…")
	}
	meta := common.MetadataStyle.Render(fmt.Sprintf("  💬 %s  ↻ %s  👁 %s",
		compactCount(p.Metrics.Comments), compactCount(p.Metrics.Reposts), compactCount(p.Metrics.Views)))
	out := likes + meta
	if m.filters.Mode != domain.ModeRecent {
		out += common.MetadataStyle.Render(fmt.Sprintf("  🔥 %.1f", m.scorer.Score(p, now)))
	}
	return out
}
