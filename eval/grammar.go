package eval

import "strings"

// pluralIrregular is the small irregular-noun table named in the spec.
var pluralIrregular = map[string]string{
	"child":  "children",
	"man":    "men",
	"woman":  "women",
	"mouse":  "mice",
	"goose":  "geese",
	"person": "people",
	"foot":   "feet",
	"tooth":  "teeth",
}

var singularIrregular = reverseTable(pluralIrregular)

func reverseTable(m map[string]string) map[string]string {
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[v] = k
	}
	return out
}

// pastTenseIrregular covers the most common irregular verbs; anything not
// listed falls back to the regular -ed rule.
var pastTenseIrregular = map[string]string{
	"be":    "was",
	"go":    "went",
	"have":  "had",
	"do":    "did",
	"see":   "saw",
	"eat":   "ate",
	"give":  "gave",
	"take":  "took",
	"make":  "made",
	"run":   "ran",
	"come":  "came",
	"say":   "said",
	"get":   "got",
	"know":  "knew",
	"think": "thought",
	"find":  "found",
	"write": "wrote",
	"speak": "spoke",
	"break": "broke",
	"bring": "brought",
	"buy":   "bought",
	"catch": "caught",
}

func isVowel(b byte) bool {
	switch b {
	case 'a', 'e', 'i', 'o', 'u', 'A', 'E', 'I', 'O', 'U':
		return true
	}
	return false
}

// addSForm implements the shared "append s / es / ies" suffix rule used by
// both pluralForm and presentTense's 3rd-person-singular adjustment.
func addSForm(word string) string {
	lower := strings.ToLower(word)
	switch {
	case strings.HasSuffix(lower, "y") && len(word) > 1 && !isVowel(word[len(word)-2]):
		return word[:len(word)-1] + "ies"
	case strings.HasSuffix(lower, "s") || strings.HasSuffix(lower, "x") || strings.HasSuffix(lower, "z") ||
		strings.HasSuffix(lower, "ch") || strings.HasSuffix(lower, "sh"):
		return word + "es"
	default:
		return word + "s"
	}
}

// PluralForm implements the spec's pluralization rule table.
func PluralForm(word string) string {
	if repl, ok := pluralIrregular[strings.ToLower(word)]; ok {
		return matchCase(word, repl)
	}
	return addSForm(word)
}

// SingularForm is the best-effort inverse of PluralForm.
func SingularForm(word string) string {
	lower := strings.ToLower(word)
	if repl, ok := singularIrregular[lower]; ok {
		return matchCase(word, repl)
	}
	switch {
	case strings.HasSuffix(lower, "ies") && len(word) > 3:
		return word[:len(word)-3] + "y"
	case strings.HasSuffix(lower, "ses") || strings.HasSuffix(lower, "xes") || strings.HasSuffix(lower, "zes") ||
		strings.HasSuffix(lower, "ches") || strings.HasSuffix(lower, "shes"):
		return word[:len(word)-2]
	case strings.HasSuffix(lower, "s") && !strings.HasSuffix(lower, "ss"):
		return word[:len(word)-1]
	default:
		return word
	}
}

// PastTense implements the spec's irregular-table-else-regular rule.
func PastTense(word string) string {
	lower := strings.ToLower(word)
	if repl, ok := pastTenseIrregular[lower]; ok {
		return matchCase(word, repl)
	}
	switch {
	case strings.HasSuffix(lower, "e"):
		return word + "d"
	case strings.HasSuffix(lower, "y") && len(word) > 1 && !isVowel(word[len(word)-2]):
		return word[:len(word)-1] + "ied"
	case shouldDoubleFinalConsonant(lower):
		return word + string(word[len(word)-1]) + "ed"
	default:
		return word + "ed"
	}
}

// shouldDoubleFinalConsonant approximates the CVC (consonant-vowel-consonant)
// doubling rule for short regular verbs ("stop" -> "stopped").
func shouldDoubleFinalConsonant(lower string) bool {
	n := len(lower)
	if n < 3 {
		return false
	}
	last := lower[n-1]
	mid := lower[n-2]
	first := lower[n-3]
	return !isVowel(last) && isVowel(mid) && !isVowel(first) && last != 'w' && last != 'x' && last != 'y'
}

// PresentTense applies the 3rd-person-singular adjustment.
func PresentTense(word string) string {
	return addSForm(word)
}

// FutureTense prepends "will ".
func FutureTense(word string) string {
	return "will " + word
}

// PossessiveForm appends "'" after a trailing s, else "'s".
func PossessiveForm(word string) string {
	if strings.HasSuffix(word, "s") {
		return word + "'"
	}
	return word + "'s"
}

var copulas = map[string]bool{
	"is": true, "am": true, "are": true, "was": true, "were": true,
}

// NegativeForm appends " not" to copula forms, else prepends "does not ".
func NegativeForm(word string) string {
	if copulas[strings.ToLower(word)] {
		return word + " not"
	}
	return "does not " + word
}

// matchCase reuses the capitalization of the original word on a
// replacement drawn from a lookup table, so "Man" -> "Men" rather than
// always lower-casing irregular results.
func matchCase(original, replacement string) string {
	if original == "" || replacement == "" {
		return replacement
	}
	if strings.ToUpper(original) == original {
		return strings.ToUpper(replacement)
	}
	if isUpperFirst(original) {
		return strings.ToUpper(replacement[:1]) + replacement[1:]
	}
	return replacement
}

func isUpperFirst(s string) bool {
	r := s[0]
	return r >= 'A' && r <= 'Z'
}
