package filter

import "strings"

const (
	pairSep = ','
	nameSep = '.'
)

var (
	nameEscaper  = strings.NewReplacer("%", "%25", ",", "%2C", ".", "%2E")
	valueEscaper = strings.NewReplacer("%", "%25", ",", "%2C")
)

// Serialize encodes s as comma-separated "name.value" pairs.
// Names come in insertion order and values within a name in insertion order,
// so equal states always encode identically.
func Serialize(s State) string {
	var b strings.Builder
	for _, name := range s.names {
		for _, v := range s.values[name] {
			if b.Len() > 0 {
				b.WriteByte(pairSep)
			}
			b.WriteString(nameEscaper.Replace(name))
			b.WriteByte(nameSep)
			b.WriteString(valueEscaper.Replace(v))
		}
	}
	return b.String()
}

// Parse decodes a Serialize string. Input it does not recognise yields an empty
// state: a missing separator, an empty name or value, or a bad escape anywhere
// discards the whole string.
func Parse(raw string) State {
	if raw == "" {
		return State{}
	}

	var s State
	for _, segment := range strings.Split(raw, string(pairSep)) {
		rawName, rawValue, ok := strings.Cut(segment, string(nameSep))
		if !ok {
			return State{}
		}
		name, ok := unescape(rawName)
		if !ok || name == "" {
			return State{}
		}
		value, ok := unescape(rawValue)
		if !ok || value == "" {
			return State{}
		}
		s = s.Apply(name, append(s.values[name], value))
	}
	return s
}

// unescape decodes the three escapes Serialize produces and rejects anything else after '%'.
func unescape(s string) (string, bool) {
	if strings.IndexByte(s, '%') < 0 {
		return s, true
	}
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if s[i] != '%' {
			b.WriteByte(s[i])
			continue
		}
		if i+2 >= len(s) {
			return "", false
		}
		switch strings.ToUpper(s[i+1 : i+3]) {
		case "2C":
			b.WriteByte(',')
		case "2E":
			b.WriteByte('.')
		case "25":
			b.WriteByte('%')
		default:
			return "", false
		}
		i += 2
	}
	return b.String(), true
}
