package components

// Canonical component names. They match the widget identifiers assigned by
// the widgets registry.
const (
	NameInput    = "input"
	NameTextarea = "textarea"
	NamePassword = "password"
	NameSelect   = "select"
	NameToggle   = "toggle"
	NameColor    = "color"
)
