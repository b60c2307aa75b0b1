// Package model defines the typed form model consumed by renderers. A Builder
// turns a content type's field descriptors into a FormModel: each field keeps
// its registry order, maps its kind onto a type/format pair (textarea,
// password, boolean, enum options) and carries a section marker so renderers
// can split content inputs from the style controls appended after them.
// Decorators such as widget resolution and locale overlays run afterwards and
// communicate through the curated UIHints map (`widget`, `helpText`,
// `placeholder`).
package model
