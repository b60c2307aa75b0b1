package payload

import (
	"strconv"
	"strings"
)

// WiFi describes a network joined by scanning a `WIFI:` payload.
type WiFi struct {
	SSID       string
	Encryption string
	Password   string
	Hidden     bool
}

var wifiEscaper = strings.NewReplacer(
	`\`, `\\`,
	`;`, `\;`,
	`,`, `\,`,
	`:`, `\:`,
)

// EscapeWiFi backslash-escapes the characters that delimit `WIFI:` fields.
func EscapeWiFi(value string) string {
	return wifiEscaper.Replace(value)
}

// String renders the network as `WIFI:T:<enc>;S:<ssid>;P:<password>;H:<hidden>;;`.
// Fields always appear in that order so equal networks produce equal payloads.
func (w WiFi) String() string {
	var b strings.Builder
	b.WriteString("WIFI:")
	b.WriteString("T:" + w.Encryption + ";")
	b.WriteString("S:" + EscapeWiFi(w.SSID) + ";")
	b.WriteString("P:" + EscapeWiFi(w.Password) + ";")
	b.WriteString("H:" + strconv.FormatBool(w.Hidden) + ";")
	b.WriteString(";")
	return b.String()
}
