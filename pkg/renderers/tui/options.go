package tui

// OutputFormat controls how collected values are serialized.
type OutputFormat string

const (
	// OutputFormatJSON emits application/json payloads.
	OutputFormatJSON OutputFormat = "json"
	// OutputFormatFormURLEncoded emits application/x-www-form-urlencoded payloads.
	OutputFormatFormURLEncoded OutputFormat = "form"
	// OutputFormatPrettyText emits a human-friendly text summary.
	OutputFormatPrettyText OutputFormat = "pretty"
)

// Theme captures optional formatting hints the driver can apply when printing
// messages.
type Theme struct {
	InfoPrefix  string
	ErrorPrefix string
}

// Validator checks a complete set of collected values and reports problems
// keyed by field name. Fields with problems are prompted again.
type Validator func(values map[string]any) map[string][]string

// SubmitTransformer mutates collected values before serialization.
type SubmitTransformer func(map[string]any) (map[string]any, error)

// Option configures the TUI renderer.
type Option func(*Renderer)

// WithPromptDriver overrides the prompt driver used by the renderer.
func WithPromptDriver(driver PromptDriver) Option {
	return func(r *Renderer) {
		if driver != nil {
			r.driver = driver
		}
	}
}

// WithOutputFormat selects the output serialization format.
func WithOutputFormat(format OutputFormat) Option {
	return func(r *Renderer) {
		if format != "" {
			r.outputFormat = format
		}
	}
}

// WithValidator installs a whole-form validator run after every prompt round.
func WithValidator(fn Validator) Option {
	return func(r *Renderer) {
		r.validator = fn
	}
}

// WithMaxRounds bounds how many times the validator may send fields back.
func WithMaxRounds(n int) Option {
	return func(r *Renderer) {
		if n > 0 {
			r.maxRounds = n
		}
	}
}

// WithSubmitTransformer allows callers to mutate collected values prior to
// serialization.
func WithSubmitTransformer(fn SubmitTransformer) Option {
	return func(r *Renderer) {
		r.submitTransformer = fn
	}
}

// WithTheme applies optional message prefixes.
func WithTheme(theme Theme) Option {
	return func(r *Renderer) {
		r.theme = theme
	}
}
