// Package uischema loads per-locale UI overlays and applies them to form
// models. An overlay supplies titles, labels, placeholders and help text for
// each content type; the builder stays unaware of presentation copy.
//
// Help text may contain a small subset of inline HTML. It is sanitised on
// load and exposed twice: as plain text in UIHints["helpText"] and as safe
// markup in UIHints["helpHTML"].
package uischema
