package grading

import "unicode"

// NormalizeLabel reduces free-form input to a canonical option label:
// the first significant rune, mapped to its ASCII form and uppercased.
// "2", " 2 ", "2.", "2. 昭和42年的10元" and full-width "２" all yield
// "2". Input with no leading label yields "", the unmatched sentinel,
// which never equals a real label, so malformed input fails closed as
// "incorrect" rather than erroring.
func NormalizeLabel(s string) string {
	for _, r := range s {
		if unicode.IsSpace(r) {
			continue
		}
		switch {
		case r >= '0' && r <= '9':
			return string(r)
		case r >= '０' && r <= '９': // full-width digits
			return string('0' + (r - '０'))
		case r >= 'a' && r <= 'z':
			return string(unicode.ToUpper(r))
		case r >= 'A' && r <= 'Z':
			return string(r)
		case r >= 'ａ' && r <= 'ｚ': // full-width letters
			return string('A' + (r - 'ａ'))
		case r >= 'Ａ' && r <= 'Ｚ':
			return string('A' + (r - 'Ａ'))
		default:
			// First significant rune is not a label.
			return ""
		}
	}
	return ""
}

// LabelsMatch compares two raw label strings after normalization.
// An unmatched sentinel on either side never matches.
func LabelsMatch(a, b string) bool {
	na, nb := NormalizeLabel(a), NormalizeLabel(b)
	return na != "" && na == nb
}
