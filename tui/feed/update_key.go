package feed

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/CrestNiraj12/tradefeed/core/access"
	"github.com/CrestNiraj12/tradefeed/domain"
)

var (
	marketOptions    = []string{domain.AllMarkets, "crypto", "stocks", "forex", "commodities", "indices"}
	sentimentOptions = []string{domain.AllValues, "bullish", "bearish", "neutral"}
	priceOptions     = []string{domain.AllPrices, "free", "paid"}
	periodOptions    = []string{domain.AllTime, "today", "this week", "this month", "this year"}
)

func (m Model) handleKeyMsg(msg tea.KeyMsg) (Model, tea.Cmd) {
	if m.queryInput {
		return m.handleQueryInput(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
		m.ensureCursorVisible()
		return m, nil

	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.visible)-1 {
			m.cursor++
		}
		m.ensureCursorVisible()
		return m, nil

	case key.Matches(msg, m.keys.Home):
		m.cursor = 0
		m.startIndex = 0
		return m, nil

	case key.Matches(msg, m.keys.Refresh):
		return m, m.refetch()

	case key.Matches(msg, m.keys.Like):
		return m.startLike()

	case key.Matches(msg, m.keys.LoadNew):
		cmd := m.loadNew()
		return m, cmd

	case key.Matches(msg, m.keys.NextTab):
		m.tab = cycle(Tabs, m.tab, 1)
		cmd := m.rescope()
		return m, tea.Batch(cmd, m.emitPrefsChanged())

	case key.Matches(msg, m.keys.PrevTab):
		m.tab = cycle(Tabs, m.tab, -1)
		cmd := m.rescope()
		return m, tea.Batch(cmd, m.emitPrefsChanged())

	case key.Matches(msg, m.keys.ToggleMode):
		if m.filters.Mode == domain.ModeRecent {
			m.filters.Mode = domain.ModeHot
		} else {
			m.filters.Mode = domain.ModeRecent
		}
		cmd := m.rescope()
		return m, tea.Batch(cmd, m.emitPrefsChanged())

	case key.Matches(msg, m.keys.Verified):
		m.filters.VerifiedOnly = !m.filters.VerifiedOnly
		cmd := m.rescope()
		return m, cmd

	case key.Matches(msg, m.keys.Market):
		m.filters.Market = cycle(marketOptions, m.filters.Market, 1)
		cmd := m.rescope()
		return m, cmd

	case key.Matches(msg, m.keys.Sentiment):
		m.filters.Sentiment = cycle(sentimentOptions, m.filters.Sentiment, 1)
		cmd := m.rescope()
		return m, cmd

	case key.Matches(msg, m.keys.Price):
		m.filters.Price = cycle(priceOptions, m.filters.Price, 1)
		cmd := m.rescope()
		return m, cmd

	case key.Matches(msg, m.keys.Period):
		m.filters.Period = cycle(periodOptions, m.filters.Period, 1)
		cmd := m.rescope()
		return m, cmd

	case key.Matches(msg, m.keys.Clear):
		m.filters = domain.Filters{Mode: m.filters.Mode}
		cmd := m.rescope()
		return m, cmd

	case key.Matches(msg, m.keys.Query):
		m.queryInput = true
		m.queryBuffer = m.filters.Query
		return m, nil

	case key.Matches(msg, m.keys.Open):
		p, ok := m.SelectedPost()
		if !ok {
			return m, nil
		}
		d := access.Decide(p, m.viewer)
		if d.Locked {
			return m, status(unlockHint(d, p.Currency))
		}
		return m, func() tea.Msg { return OpenPostMsg{Post: p} }
	}

	return m, nil
}

func (m Model) handleQueryInput(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		m.queryInput = false
		m.filters.Query = strings.TrimSpace(m.queryBuffer)
		cmd := m.rescope()
		return m, cmd
	case tea.KeyEsc:
		m.queryInput = false
		m.queryBuffer = ""
		return m, nil
	case tea.KeyBackspace:
		if r := []rune(m.queryBuffer); len(r) > 0 {
			m.queryBuffer = string(r[:len(r)-1])
		}
		return m, nil
	case tea.KeyRunes:
		m.queryBuffer += string(msg.Runes)
		return m, nil
	}
	return m, nil
}

// rescope narrows the loaded posts to the new tab or filters right away and
// fetches the same scope from the backend, which narrows server-side.
func (m *Model) rescope() tea.Cmd {
	m.refilter(true)
	return m.refetch()
}

// cycle returns the option after cur (or before, for step -1). A value not in
// options, including the empty absent key, is treated as the first option.
func cycle(options []string, cur string, step int) string {
	idx := 0
	for i, o := range options {
		if strings.EqualFold(o, cur) {
			idx = i
			break
		}
	}
	n := len(options)
	return options[((idx+step)%n+n)%n]
}
