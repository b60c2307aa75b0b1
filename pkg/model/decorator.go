package model

// Decorator enriches a form model after the builder has produced the
// canonical field list for a content type.
type Decorator interface {
	Decorate(*FormModel) error
}

// DecoratorFunc adapts a function into a Decorator.
type DecoratorFunc func(*FormModel) error

// Decorate calls the underlying function.
func (fn DecoratorFunc) Decorate(form *FormModel) error {
	return fn(form)
}
