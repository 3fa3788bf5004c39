package common

import (
	"strings"
	"unicode"
)

// HeaderGuard turns a logical file identifier such as "common/log.h_NN" into
// a preprocessor guard token ("__COMMON_LOG_H_NN").
func HeaderGuard(id string) string {
	r := strings.NewReplacer("/", "_", "\\", "_", ".", "_")
	return "__" + strings.ToUpper(r.Replace(id))
}

// TitleJoin splits s on sep, title-cases every segment and joins them back
// without separators: "gramina_foo_bar" -> "GraminaFooBar".
//
// A letter is upper-cased when it follows a non-letter and lower-cased
// otherwise, so "vec2d" becomes "Vec2D".
func TitleJoin(s, sep string) string {
	if s == "" {
		return ""
	}

	var words []string
	if sep == "" {
		words = []string{s}
	} else {
		words = strings.Split(s, sep)
	}

	var result strings.Builder
	for _, word := range words {
		result.WriteString(title(word))
	}
	return result.String()
}

func title(word string) string {
	var b strings.Builder
	prevLetter := false
	for _, r := range word {
		if unicode.IsLetter(r) {
			if prevLetter {
				b.WriteRune(unicode.ToLower(r))
			} else {
				b.WriteRune(unicode.ToUpper(r))
			}
			prevLetter = true
			continue
		}
		prevLetter = false
		b.WriteRune(r)
	}
	return b.String()
}

// ToSnakeCase converts a PascalCase or camelCase identifier to snake_case.
func ToSnakeCase(s string) string {
	if s == "" {
		return ""
	}
	var b strings.Builder
	runes := []rune(s)
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		isUpper := r >= 'A' && r <= 'Z'

		if i > 0 && isUpper {
			prevIsLower := runes[i-1] >= 'a' && runes[i-1] <= 'z'
			// "XMLParser" -> "xml_parser", not "x_m_l_parser"
			nextIsLower := i+1 < len(runes) && runes[i+1] >= 'a' && runes[i+1] <= 'z'
			if prevIsLower || nextIsLower {
				b.WriteByte('_')
			}
		}
		b.WriteRune(r)
	}
	return strings.ToLower(b.String())
}
