package content

// Fields returns the ordered field descriptors for id. The slice is freshly
// built on every call and may be modified by the caller.
func Fields(id TypeID) ([]FieldSpec, error) {
	switch id {
	case Text:
		return []FieldSpec{
			{Name: "text", Label: "Text", Kind: MultiLineText, Required: true},
		}, nil
	case Link:
		return []FieldSpec{
			{Name: "url", Label: "Link", Kind: ShortText, Required: true},
		}, nil
	case Email:
		return []FieldSpec{
			{Name: "email", Label: "Email", Kind: ShortText, Required: true},
			{Name: "subject", Label: "Subject", Kind: ShortText},
			{Name: "body", Label: "Text", Kind: MultiLineText},
		}, nil
	case Phone:
		return []FieldSpec{
			{Name: "phone", Label: "Phone number", Kind: ShortText, Required: true},
		}, nil
	case SMS:
		return []FieldSpec{
			{Name: "phone", Label: "Phone number", Kind: ShortText, Required: true},
			{Name: "message", Label: "SMS text", Kind: MultiLineText},
		}, nil
	case Geolocation:
		return []FieldSpec{
			{Name: "latitude", Label: "Latitude", Kind: ShortText, Required: true},
			{Name: "longitude", Label: "Longitude", Kind: ShortText, Required: true},
		}, nil
	case WiFi:
		return []FieldSpec{
			{Name: "ssid", Label: "SSID", Kind: ShortText, Required: true},
			{Name: "encryption", Label: "Encryption", Kind: Enum, Options: []string{"WPA", "WEP"}, Default: "WPA"},
			{Name: "password", Label: "Password", Kind: Password},
			{Name: "hidden", Label: "Hidden", Kind: Boolean},
		}, nil
	case VCard:
		return []FieldSpec{
			{Name: "firstName", Label: "First name", Kind: ShortText},
			{Name: "lastName", Label: "Last name", Kind: ShortText},
			{Name: "jobTitle", Label: "Job title", Kind: ShortText},
			{Name: "organisation", Label: "Organisation", Kind: ShortText},
			{Name: "phone", Label: "Phone number", Kind: ShortText},
			{Name: "email", Label: "Email", Kind: ShortText},
			{Name: "homepage", Label: "Homepage", Kind: ShortText},
		}, nil
	default:
		return nil, &UnknownTypeError{Name: id.String()}
	}
}

// FormatterFor returns the formatter variant handling id.
func FormatterFor(id TypeID) (Formatter, error) {
	switch id {
	case Text:
		return textFormatter{}, nil
	case Link:
		return linkFormatter{}, nil
	case Email:
		return emailFormatter{}, nil
	case Phone:
		return phoneFormatter{}, nil
	case SMS:
		return smsFormatter{}, nil
	case Geolocation:
		return geoFormatter{}, nil
	case WiFi:
		return wifiFormatter{}, nil
	case VCard:
		return vcardFormatter{}, nil
	default:
		return nil, &UnknownTypeError{Name: id.String()}
	}
}

// Describe returns the descriptor for id.
func Describe(id TypeID) (Descriptor, error) {
	fields, err := Fields(id)
	if err != nil {
		return Descriptor{}, err
	}
	return Descriptor{ID: id, Label: id.Label(), Fields: fields}, nil
}

// DescribeAll returns descriptors for every type in display order.
func DescribeAll() []Descriptor {
	types := Types()
	out := make([]Descriptor, 0, len(types))
	for _, id := range types {
		desc, _ := Describe(id)
		out = append(out, desc)
	}
	return out
}

// ValidateAll reports every problem with values instead of stopping at the
// first, for forms that annotate each field at once.
func ValidateAll(id TypeID, values Values) ([]*ValidationError, error) {
	f, err := FormatterFor(id)
	if err != nil {
		return nil, err
	}
	return f.(checker).check(values), nil
}
