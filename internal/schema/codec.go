package schema

import (
	"fmt"
	"strconv"
	"strings"
)

// ErrInvalidNumber is returned by [Decode] when a numeric field's buffer
// text does not parse. Callers are expected to run [Validate] first, so
// hitting this indicates a skipped validation step.
var ErrInvalidNumber = fmt.Errorf("invalid number")

// listSeparator joins list fields when encoding; decoding splits on the
// bare comma and trims, so the round trip is lossless for trimmed elements.
const listSeparator = ", "

// Encode converts a wire entity into its text buffer form. Every schema
// field is present in the result; fields missing from the entity encode as
// the empty string.
func Encode(e Entity, s Schema) Buffer {
	buf := make(Buffer, len(s.Fields))
	for _, f := range s.Fields {
		buf[f.Name] = encodeField(e[f.Name], f.Type)
	}
	return buf
}

// Decode converts a validated buffer back into a wire entity. ID fields
// parse to int64, number fields to float64, list fields split on commas
// with each element trimmed and empty elements dropped.
func Decode(b Buffer, s Schema) (Entity, error) {
	entity := make(Entity, len(s.Fields))
	for _, f := range s.Fields {
		text := b[f.Name]
		switch f.Type {
		case ID:
			id, err := strconv.ParseInt(strings.TrimSpace(text), 10, 64)
			if err != nil {
				return nil, fmt.Errorf("%w: field %q: %q", ErrInvalidNumber, f.Name, text)
			}
			entity[f.Name] = id
		case Number:
			n, err := strconv.ParseFloat(strings.TrimSpace(text), 64)
			if err != nil {
				return nil, fmt.Errorf("%w: field %q: %q", ErrInvalidNumber, f.Name, text)
			}
			entity[f.Name] = n
		case List:
			entity[f.Name] = splitList(text)
		default:
			entity[f.Name] = text
		}
	}
	return entity, nil
}

func encodeField(value any, t FieldType) string {
	if value == nil {
		return ""
	}

	switch t {
	case ID:
		switch v := value.(type) {
		case int64:
			return strconv.FormatInt(v, 10)
		case int:
			return strconv.Itoa(v)
		case float64:
			return strconv.FormatInt(int64(v), 10)
		}
	case Number:
		switch v := value.(type) {
		case float64:
			return strconv.FormatFloat(v, 'f', -1, 64)
		case int64:
			return strconv.FormatInt(v, 10)
		case int:
			return strconv.Itoa(v)
		}
	case List:
		switch v := value.(type) {
		case []string:
			return strings.Join(v, listSeparator)
		case []any:
			parts := make([]string, len(v))
			for i, item := range v {
				parts[i] = fmt.Sprintf("%v", item)
			}
			return strings.Join(parts, listSeparator)
		}
	}

	return fmt.Sprintf("%v", value)
}

func splitList(text string) []string {
	items := []string{}
	for _, piece := range strings.Split(text, ",") {
		piece = strings.TrimSpace(piece)
		if piece != "" {
			items = append(items, piece)
		}
	}
	return items
}
