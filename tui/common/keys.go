package common

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines shared key bindings across all views.
type KeyMap struct {
	Quit        key.Binding
	ForceQuit   key.Binding
	Refresh     key.Binding // r: refetch the feed
	Like        key.Binding // l: toggle like
	LoadNew     key.Binding // n: merge buffered new posts
	NextTab     key.Binding
	PrevTab     key.Binding
	ToggleMode  key.Binding // m: hot / recent
	Verified    key.Binding // v: verified authors only
	Query       key.Binding // /: ticker query
	Market      key.Binding
	Sentiment   key.Binding
	Price       key.Binding
	Period      key.Binding
	Clear       key.Binding // x: reset filters
	Open        key.Binding // o: page the full post
	Up          key.Binding
	Down        key.Binding
	Home        key.Binding
	ToggleHints key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "quit"),
		),
		ForceQuit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "force quit"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "refresh"),
		),
		Like: key.NewBinding(
			key.WithKeys("l"),
			key.WithHelp("l", "like"),
		),
		LoadNew: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "load new"),
		),
		NextTab: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next tab"),
		),
		PrevTab: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("shift+tab", "prev tab"),
		),
		ToggleMode: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "hot/recent"),
		),
		Verified: key.NewBinding(
			key.WithKeys("v"),
			key.WithHelp("v", "verified only"),
		),
		Query: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "ticker"),
		),
		Market: key.NewBinding(
			key.WithKeys("M"),
			key.WithHelp("M", "market"),
		),
		Sentiment: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "sentiment"),
		),
		Price: key.NewBinding(
			key.WithKeys("$"),
			key.WithHelp("$", "price"),
		),
		Period: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "period"),
		),
		Clear: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "clear filters"),
		),
		Open: key.NewBinding(
			key.WithKeys("o", "enter"),
			key.WithHelp("o", "read"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Home: key.NewBinding(
			key.WithKeys("g", "home"),
			key.WithHelp("g", "top"),
		),
		ToggleHints: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "all keys"),
		),
	}
}
