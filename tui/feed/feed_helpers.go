package feed

const (
	cardLines   = 7 // Five content lines plus the border
	chromeLines = 12
)

func (m Model) visibleCount() int {
	avail := m.height - chromeLines
	if m.pending > 0 {
		avail--
	}
	return max(avail/cardLines, 1)
}

func (m *Model) ensureCursorVisible() {
	if len(m.visible) == 0 {
		m.cursor = 0
		m.startIndex = 0
		return
	}
	if m.cursor >= len(m.visible) {
		m.cursor = len(m.visible) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
	n := m.visibleCount()
	if m.cursor < m.startIndex {
		m.startIndex = m.cursor
	}
	if m.cursor >= m.startIndex+n {
		m.startIndex = m.cursor - n + 1
	}
	if m.startIndex < 0 {
		m.startIndex = 0
	}
}

func (m Model) cardWidths() (cardWidth, bodyWidth int) {
	cardWidth = m.width - 4
	if cardWidth < 40 {
		cardWidth = 40
	}
	if cardWidth > 110 {
		cardWidth = 110
	}
	return cardWidth, cardWidth - 4
}
