package tui

// State tracks collected values and outstanding errors keyed by field name.
type State struct {
	values map[string]any
	errors map[string][]string
}

// NewState seeds the state with prefilled values and errors.
func NewState(prefill map[string]any, errs map[string][]string) *State {
	s := &State{
		values: make(map[string]any, len(prefill)),
		errors: make(map[string][]string, len(errs)),
	}
	for k, v := range prefill {
		s.values[k] = v
	}
	for k, v := range errs {
		s.errors[k] = append([]string(nil), v...)
	}
	return s
}

// Values returns the current value map (mutable).
func (s *State) Values() map[string]any {
	if s == nil {
		return nil
	}
	return s.values
}

// ErrorsFor returns the errors attached to a field.
func (s *State) ErrorsFor(name string) []string {
	if s == nil {
		return nil
	}
	return s.errors[name]
}

// SetErrors replaces all outstanding errors.
func (s *State) SetErrors(errs map[string][]string) {
	s.errors = make(map[string][]string, len(errs))
	for k, v := range errs {
		s.errors[k] = append([]string(nil), v...)
	}
}

// GetValue returns the value collected for name.
func (s *State) GetValue(name string) (any, bool) {
	if s == nil {
		return nil, false
	}
	v, ok := s.values[name]
	return v, ok
}

// SetValue records the value for name and clears its errors.
func (s *State) SetValue(name string, value any) {
	s.values[name] = value
	delete(s.errors, name)
}
