package content

import (
	"fmt"
	"strings"
)

// TypeID identifies a QR content type. The zero value is invalid.
type TypeID int

const (
	Text TypeID = iota + 1
	Link
	Email
	Phone
	SMS
	Geolocation
	WiFi
	VCard
)

var typeNames = [...]string{
	Text:        "text",
	Link:        "link",
	Email:       "email",
	Phone:       "phone",
	SMS:         "sms",
	Geolocation: "geolocation",
	WiFi:        "wifi",
	VCard:       "vcard",
}

var typeLabels = [...]string{
	Text:        "Text",
	Link:        "Link",
	Email:       "Email",
	Phone:       "Phone",
	SMS:         "SMS",
	Geolocation: "Geolocation",
	WiFi:        "WiFi",
	VCard:       "VCard",
}

// Types lists every content type in display order.
func Types() []TypeID {
	return []TypeID{Text, Link, Email, Phone, SMS, Geolocation, WiFi, VCard}
}

// Valid reports whether id names a registered type.
func (id TypeID) Valid() bool {
	return id >= Text && id <= VCard
}

// String returns the lower-case identifier used in URLs and JSON.
func (id TypeID) String() string {
	if !id.Valid() {
		return fmt.Sprintf("TypeID(%d)", int(id))
	}
	return typeNames[id]
}

// Label returns the human-facing name, e.g. "WiFi".
func (id TypeID) Label() string {
	if !id.Valid() {
		return id.String()
	}
	return typeLabels[id]
}

// ParseTypeID resolves an identifier or label, ignoring case and surrounding
// whitespace.
func ParseTypeID(name string) (TypeID, error) {
	needle := strings.ToLower(strings.TrimSpace(name))
	if needle == "" {
		return 0, &UnknownTypeError{Name: name}
	}
	for _, id := range Types() {
		if needle == typeNames[id] || needle == strings.ToLower(typeLabels[id]) {
			return id, nil
		}
	}
	return 0, &UnknownTypeError{Name: name}
}

// MarshalText implements encoding.TextMarshaler.
func (id TypeID) MarshalText() ([]byte, error) {
	if !id.Valid() {
		return nil, &UnknownTypeError{Name: id.String()}
	}
	return []byte(id.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (id *TypeID) UnmarshalText(text []byte) error {
	parsed, err := ParseTypeID(string(text))
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}
