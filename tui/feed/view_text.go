package feed

import (
	"fmt"
	"hash/fnv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/CrestNiraj12/tradefeed/core/access"
)

func truncateToTwoLines(text string, width int) string {
	if width < 12 {
		width = 12
	}
	// Render with width to handle both explicit newlines and wrapping.
	wrapped := lipgloss.NewStyle().Width(width).Render(strings.TrimSpace(text))
	lines := strings.Split(wrapped, "\n")
	if len(lines) <= 2 {
		return wrapped
	}
	last := ansi.Truncate(strings.TrimRight(lines[1], " "), width-1, "")
	return lines[0] + "\n" + last + "…"
}

func clampLinesToWidth(text string, width int) string {
	if width <= 0 {
		return text
	}
	lines := strings.Split(text, "\n")
	for i, ln := range lines {
		if ansi.StringWidth(ln) <= width {
			continue
		}
		lines[i] = ansi.Cut(ln, 0, width)
	}
	return strings.Join(lines, "\n")
}

func authorStyleFor(name string, isOwn bool) lipgloss.Style {
	if isOwn {
		return lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#A6DA95"))
	}
	palette := []string{
		"#7DC4E4", "#8BD5CA", "#F5A97F", "#C6A0F6", "#EBA0AC",
		"#F9E2AF", "#89B4FA", "#F38BA8", "#94E2D5",
	}
	h := fnv.New32a()
	_, _ = h.Write([]byte(strings.ToLower(strings.TrimSpace(name))))
	idx := int(h.Sum32() % uint32(len(palette)))
	return lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(palette[idx]))
}

var currencySymbols = map[string]string{
	"":    "$",
	"USD": "$",
	"EUR": "€",
	"GBP": "£",
	"JPY": "¥",
}

// formatPrice renders minor units as "$4.99". Unknown currencies keep their code.
func formatPrice(minor int64, currency string) string {
	if minor < 0 {
		minor = 0
	}
	code := strings.ToUpper(strings.TrimSpace(currency))
	sym, ok := currencySymbols[code]
	if !ok {
		sym = code + " "
	}
	return fmt.Sprintf("%s%d.%02d", sym, minor/100, minor%100)
}

func unlockHint(d access.Decision, currency string) string {
	switch d.Unlock {
	case access.UnlockPurchase:
		if d.PriceMinor > 0 {
			return "Unlock for " + formatPrice(d.PriceMinor, currency)
		}
		return "Purchase to unlock"
	case access.UnlockSubscribe:
		return "Subscribe to unlock"
	case access.UnlockFollow:
		return "Follow to unlock"
	}
	return "Not available"
}

// humanizeAge renders a compact relative age: "now", "5m", "3h", "2d", or a date.
func humanizeAge(t, now time.Time) string {
	d := now.Sub(t)
	switch {
	case d < time.Minute:
		return "now"
	case d < time.Hour:
		return fmt.Sprintf("%dm", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh", int(d.Hours()))
	case d < 7*24*time.Hour:
		return fmt.Sprintf("%dd", int(d.Hours()/24))
	}
	return t.Format("Jan 02")
}

func compactCount(n int) string {
	switch {
	case n >= 1_000_000:
		return fmt.Sprintf("%.1fM", float64(n)/1_000_000)
	case n >= 1_000:
		return fmt.Sprintf("%.1fk", float64(n)/1_000)
	}
	return fmt.Sprintf("%d", n)
}
