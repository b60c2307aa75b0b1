package content

import (
	"math"
	"strconv"
	"strings"

	"github.com/goliatone/go-qrform/pkg/payload"
)

// Formatter validates the values of one content type and serialises them into
// the payload embedded in the QR symbol. Format assumes Validate succeeded.
type Formatter interface {
	Type() TypeID
	Validate(Values) error
	Format(Values) string
}

type checker interface {
	check(Values) []*ValidationError
}

func firstProblem(problems []*ValidationError) error {
	if len(problems) == 0 {
		return nil
	}
	return problems[0]
}

type textFormatter struct{}

func (textFormatter) Type() TypeID { return Text }

func (f textFormatter) Validate(v Values) error { return firstProblem(f.check(v)) }

func (textFormatter) check(v Values) []*ValidationError { return checkFields(Text, v) }

func (textFormatter) Format(v Values) string { return v.String("text") }

type linkFormatter struct{}

func (linkFormatter) Type() TypeID { return Link }

func (f linkFormatter) Validate(v Values) error { return firstProblem(f.check(v)) }

func (linkFormatter) check(v Values) []*ValidationError { return checkFields(Link, v) }

func (linkFormatter) Format(v Values) string { return v.String("url") }

type phoneFormatter struct{}

func (phoneFormatter) Type() TypeID { return Phone }

func (f phoneFormatter) Validate(v Values) error { return firstProblem(f.check(v)) }

func (phoneFormatter) check(v Values) []*ValidationError { return checkFields(Phone, v) }

func (phoneFormatter) Format(v Values) string { return v.String("phone") }

type smsFormatter struct{}

func (smsFormatter) Type() TypeID { return SMS }

func (f smsFormatter) Validate(v Values) error { return firstProblem(f.check(v)) }

func (smsFormatter) check(v Values) []*ValidationError { return checkFields(SMS, v) }

func (smsFormatter) Format(v Values) string {
	return payload.SMS(v.Trimmed("phone"), v.String("message"))
}

type emailFormatter struct{}

func (emailFormatter) Type() TypeID { return Email }

func (f emailFormatter) Validate(v Values) error { return firstProblem(f.check(v)) }

func (emailFormatter) check(v Values) []*ValidationError { return checkFields(Email, v) }

func (emailFormatter) Format(v Values) string {
	return payload.Mailto(v.Trimmed("email"), v.String("subject"), v.String("body"))
}

type geoFormatter struct{}

func (geoFormatter) Type() TypeID { return Geolocation }

func (f geoFormatter) Validate(v Values) error { return firstProblem(f.check(v)) }

func (geoFormatter) check(v Values) []*ValidationError {
	problems := checkFields(Geolocation, v)
	if len(problems) > 0 {
		return problems
	}
	if p := checkCoordinate(v, "latitude", 90); p != nil {
		problems = append(problems, p)
	}
	if p := checkCoordinate(v, "longitude", 180); p != nil {
		problems = append(problems, p)
	}
	return problems
}

func (geoFormatter) Format(v Values) string {
	return payload.Geo(v.Trimmed("latitude"), v.Trimmed("longitude"))
}

func checkCoordinate(v Values, name string, limit float64) *ValidationError {
	n, err := strconv.ParseFloat(v.Trimmed(name), 64)
	if err != nil || math.IsNaN(n) || math.IsInf(n, 0) {
		return &ValidationError{Field: name, Reason: "must be a number"}
	}
	if n < -limit || n > limit {
		return &ValidationError{Field: name, Reason: "must be between -" + strconv.Itoa(int(limit)) + " and " + strconv.Itoa(int(limit))}
	}
	return nil
}

type wifiFormatter struct{}

func (wifiFormatter) Type() TypeID { return WiFi }

func (f wifiFormatter) Validate(v Values) error { return firstProblem(f.check(v)) }

func (wifiFormatter) check(v Values) []*ValidationError { return checkFields(WiFi, v) }

func (wifiFormatter) Format(v Values) string {
	fields, _ := Fields(WiFi)
	encryption, _ := enumValue(fields[1], v)
	return payload.WiFi{
		SSID:       v.String("ssid"),
		Encryption: encryption,
		Password:   v.String("password"),
		Hidden:     v.Bool("hidden"),
	}.String()
}

type vcardFormatter struct{}

func (vcardFormatter) Type() TypeID { return VCard }

func (f vcardFormatter) Validate(v Values) error { return firstProblem(f.check(v)) }

func (vcardFormatter) check(v Values) []*ValidationError {
	problems := checkFields(VCard, v)
	if v.Trimmed("firstName") == "" && v.Trimmed("lastName") == "" {
		problems = append(problems, &ValidationError{Field: "firstName", Reason: "first or last name is required"})
	}
	return problems
}

func (vcardFormatter) Format(v Values) string {
	return payload.Contact{
		FirstName:    v.Trimmed("firstName"),
		LastName:     v.Trimmed("lastName"),
		JobTitle:     v.Trimmed("jobTitle"),
		Organisation: v.Trimmed("organisation"),
		Phone:        v.Trimmed("phone"),
		Email:        v.Trimmed("email"),
		Homepage:     v.Trimmed("homepage"),
	}.String()
}

// checkFields applies the rules every type shares: known keys only, value
// shapes matching the field kind, required fields present and enums within
// their options. Problems follow field order; unknown keys come last.
func checkFields(id TypeID, v Values) []*ValidationError {
	specs, _ := Fields(id)
	known := make(map[string]struct{}, len(specs))
	var problems []*ValidationError

	for _, spec := range specs {
		known[spec.Name] = struct{}{}
		raw := v[spec.Name]

		if spec.Kind == Boolean {
			if _, ok := asBool(raw); !ok {
				problems = append(problems, &ValidationError{Field: spec.Name, Reason: "must be a boolean"})
			}
			continue
		}

		text, ok := asString(raw)
		if !ok {
			problems = append(problems, &ValidationError{Field: spec.Name, Reason: "must be text"})
			continue
		}
		if spec.Kind == Enum {
			if _, ok := enumValue(spec, v); !ok {
				problems = append(problems, &ValidationError{
					Field:  spec.Name,
					Reason: "must be one of " + strings.Join(spec.Options, ", "),
				})
			}
			continue
		}
		if spec.Required && strings.TrimSpace(text) == "" {
			problems = append(problems, &ValidationError{Field: spec.Name, Reason: "is required"})
		}
	}

	for _, key := range v.Keys() {
		if _, ok := known[key]; !ok {
			problems = append(problems, &ValidationError{Field: key, Reason: "unknown field"})
		}
	}
	return problems
}

// enumValue resolves an enum entry case-insensitively to its canonical
// option, falling back to the default when blank.
func enumValue(spec FieldSpec, v Values) (string, bool) {
	value := v.Trimmed(spec.Name)
	if value == "" {
		value = spec.Default
	}
	for _, option := range spec.Options {
		if strings.EqualFold(option, value) {
			return option, true
		}
	}
	return value, false
}
