package tui

// fieldChangeMsg carries a debounced text value back into the program loop.
type fieldChangeMsg struct {
	Name  string
	Value string
}
