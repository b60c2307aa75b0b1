// Package content is the registry of QR content types. The set of types is a
// closed enumeration (TypeID); for each one the package exposes the ordered
// field descriptors a caller must collect (Fields) and the Formatter that
// validates collected Values and serialises them into a payload string.
//
// Everything here is immutable: Fields returns a fresh slice on every call,
// formatters are stateless values, and Values are only read. Callers may share
// the registry across goroutines without synchronisation.
package content
