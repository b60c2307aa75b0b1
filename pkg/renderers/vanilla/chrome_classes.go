package vanilla

// ChromeClass is a typed identifier for semantic chrome CSS classes.
type ChromeClass string

const (
	ClassForm    ChromeClass = "qrform-form"
	ClassHeader  ChromeClass = "qrform-header"
	ClassSection ChromeClass = "qrform-section"
	ClassField   ChromeClass = "qrform-field"
	ClassActions ChromeClass = "qrform-actions"
	ClassErrors  ChromeClass = "qrform-errors"
	ClassNav     ChromeClass = "qrform-nav"
	ClassPreview ChromeClass = "qrform-preview"
)

func chromeClasses() map[string]string {
	return map[string]string{
		"form":    string(ClassForm),
		"header":  string(ClassHeader),
		"section": string(ClassSection),
		"actions": string(ClassActions),
		"errors":  string(ClassErrors),
		"nav":     string(ClassNav),
		"preview": string(ClassPreview),
	}
}
