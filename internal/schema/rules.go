package schema

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Rule checks one field's buffer text and returns a human-readable error
// message, or the empty string when the text is acceptable. Rules never
// panic; any text, including the empty string, yields a definite answer.
type Rule func(text string) string

// Result maps field names to error messages. A field absent from the
// result is valid.
type Result map[string]string

// Valid reports whether the result contains no errors.
func (r Result) Valid() bool { return len(r) == 0 }

// Validate runs every schema rule against the buffer and collects the
// first failing rule's message per field. It is pure and total: the key
// set of the result is always a subset of the schema's field names.
func Validate(b Buffer, s Schema) Result {
	result := Result{}
	for _, f := range s.Fields {
		text := b[f.Name]
		for _, rule := range f.Rules {
			if msg := rule(text); msg != "" {
				result[f.Name] = msg
				break
			}
		}
	}
	return result
}

var (
	urlPattern    = regexp.MustCompile(`^https?://.+`)
	base64Pattern = regexp.MustCompile(`^data:image/.+;base64,`)
	emailPattern  = regexp.MustCompile(`^\S+@\S+\.\S+$`)
)

// RequiredPositiveInteger fails unless the text parses to an integer > 0.
func RequiredPositiveInteger() Rule {
	return func(text string) string {
		n, err := strconv.ParseInt(strings.TrimSpace(text), 10, 64)
		if err != nil || n <= 0 {
			return "must be a positive whole number"
		}
		return ""
	}
}

// MinLength fails unless the trimmed text is at least n characters.
func MinLength(n int) Rule {
	return func(text string) string {
		if len(strings.TrimSpace(text)) < n {
			return fmt.Sprintf("must be at least %d characters", n)
		}
		return ""
	}
}

// NumericRange fails unless the text parses to a number in [lo, hi].
func NumericRange(lo, hi float64) Rule {
	return func(text string) string {
		n, err := strconv.ParseFloat(strings.TrimSpace(text), 64)
		if err != nil || n < lo || n > hi {
			return fmt.Sprintf("must be a number between %v and %v", lo, hi)
		}
		return ""
	}
}

// URLOrBase64Image fails unless the text is an http(s) URL or an inline
// base64 image data URI.
func URLOrBase64Image() Rule {
	return func(text string) string {
		if urlPattern.MatchString(text) || base64Pattern.MatchString(text) {
			return ""
		}
		return "must be an image URL or base64 data URI"
	}
}

// URL fails unless the text is an http(s) URL.
func URL() Rule {
	return func(text string) string {
		if urlPattern.MatchString(text) {
			return ""
		}
		return "must be a valid http(s) URL"
	}
}

// NonEmptyCommaList fails unless the trimmed text is non-empty. Applied to
// list fields before splitting.
func NonEmptyCommaList() Rule {
	return func(text string) string {
		if strings.TrimSpace(text) == "" {
			return "must list at least one item"
		}
		return ""
	}
}

// RequiredDate fails unless the text is non-empty.
func RequiredDate() Rule {
	return func(text string) string {
		if strings.TrimSpace(text) == "" {
			return "must provide a date"
		}
		return ""
	}
}

// Email fails unless the text looks like an email address.
func Email() Rule {
	return func(text string) string {
		if emailPattern.MatchString(strings.TrimSpace(text)) {
			return ""
		}
		return "must be a valid email address"
	}
}
