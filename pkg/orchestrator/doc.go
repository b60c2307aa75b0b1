// Package orchestrator wires the content type -> form model -> decorators ->
// renderer pipeline behind a single entry point.
package orchestrator
