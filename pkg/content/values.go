package content

import (
	"encoding/json"
	"sort"
	"strconv"
	"strings"
)

// Values maps field names to collected input. Entries hold strings or bools;
// numbers decoded from JSON are accepted and read back in their shortest
// decimal form. Missing entries read as the zero value.
type Values map[string]any

// String returns the value of name as text.
func (v Values) String(name string) string {
	s, _ := asString(v[name])
	return s
}

// Trimmed returns String(name) without surrounding whitespace.
func (v Values) Trimmed(name string) string {
	return strings.TrimSpace(v.String(name))
}

// Bool returns the value of name as a boolean. Checkbox style strings such as
// "on" and "yes" count as true.
func (v Values) Bool(name string) bool {
	b, _ := asBool(v[name])
	return b
}

// Keys returns the populated field names in lexical order.
func (v Values) Keys() []string {
	keys := make([]string, 0, len(v))
	for key := range v {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

func asString(raw any) (string, bool) {
	switch value := raw.(type) {
	case nil:
		return "", true
	case string:
		return value, true
	case json.Number:
		return value.String(), true
	case float64:
		return strconv.FormatFloat(value, 'f', -1, 64), true
	case int:
		return strconv.Itoa(value), true
	case int64:
		return strconv.FormatInt(value, 10), true
	default:
		return "", false
	}
}

func asBool(raw any) (bool, bool) {
	switch value := raw.(type) {
	case nil:
		return false, true
	case bool:
		return value, true
	case string:
		switch strings.ToLower(strings.TrimSpace(value)) {
		case "", "false", "off", "0", "no":
			return false, true
		case "true", "on", "1", "yes":
			return true, true
		}
	}
	return false, false
}
