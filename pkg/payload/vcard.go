package payload

import "strings"

// Contact is the single-valued contact card encoded as vCard 3.0.
type Contact struct {
	FirstName    string
	LastName     string
	JobTitle     string
	Organisation string
	Phone        string
	Email        string
	Homepage     string
}

const crlf = "\r\n"

var vcardEscaper = strings.NewReplacer(
	`\`, `\\`,
	`;`, `\;`,
	`,`, `\,`,
	"\r\n", `\n`,
	"\n", `\n`,
)

var lineBreaks = strings.NewReplacer("\r", "", "\n", "")

// EscapeVCard escapes a vCard text value.
func EscapeVCard(value string) string {
	return vcardEscaper.Replace(value)
}

// FullName joins first and last name with a single space, skipping blanks.
func (c Contact) FullName() string {
	return strings.TrimSpace(c.FirstName + " " + c.LastName)
}

// String renders the contact as a CRLF-terminated vCard 3.0 block. Optional
// properties with an empty value are omitted; N and FN are always present.
// TEL, EMAIL and URL are not text-typed, so they are only stripped of line
// breaks instead of being escaped.
func (c Contact) String() string {
	var b strings.Builder
	line := func(prop, value string) {
		b.WriteString(prop)
		b.WriteString(":")
		b.WriteString(value)
		b.WriteString(crlf)
	}
	optional := func(prop, value string, escape bool) {
		if value == "" {
			return
		}
		if escape {
			value = EscapeVCard(value)
		} else {
			value = lineBreaks.Replace(value)
		}
		line(prop, value)
	}

	line("BEGIN", "VCARD")
	line("VERSION", "3.0")
	line("N", EscapeVCard(c.LastName)+";"+EscapeVCard(c.FirstName)+";;;")
	line("FN", EscapeVCard(c.FullName()))
	optional("ORG", c.Organisation, true)
	optional("TITLE", c.JobTitle, true)
	optional("TEL", c.Phone, false)
	optional("EMAIL", c.Email, false)
	optional("URL", c.Homepage, false)
	line("END", "VCARD")
	return b.String()
}
