package corpus

import "strings"

// Stem reduces an English word to its Porter2 stem ("hopping" -> "hop",
// "relational" -> "relat"). Stemming before training collapses inflected
// forms onto one vocabulary entry, which densifies co-occurrence counts on
// small corpora. Non-English input passes through mostly untouched.
func Stem(word string) string {
	if len(word) <= 2 {
		return word
	}
	if stem, ok := stemExceptions[word]; ok {
		return stem
	}

	s := word
	if s[0] == '\'' {
		s = s[1:]
	}
	runes := []rune(s)
	if runes[0] == 'y' {
		runes[0] = 'Y'
	}
	s = string(runes)
	r1, r2 := porterRegions(runes)

	s = porterStep0(s)
	s = porterStep1a(s)

	for _, invariant := range stemInvariants {
		if s == invariant {
			return s
		}
	}

	s = porterStep1b(s, r1)
	s = porterStep1c(s)
	s = porterStep2(s, r1)
	s = porterStep3(s, r1, r2)
	s = porterStep4(s, r2)
	s = porterStep5(s, r1)

	return strings.ToLower(s)
}

// StemTokens stems every token, preserving order.
func StemTokens(tokens []string) []string {
	stemmed := make([]string, len(tokens))
	for i, token := range tokens {
		stemmed[i] = Stem(token)
	}
	return stemmed
}

// Stemmed returns a copy of the corpus with every token stemmed. Document
// count and order are preserved.
func (c Corpus) Stemmed() Corpus {
	out := make(Corpus, len(c))
	for i, doc := range c {
		out[i] = StemTokens(doc)
	}
	return out
}

// stemExceptions are irregular forms resolved before the algorithm runs.
var stemExceptions = map[string]string{
	"skis": "ski", "skies": "sky", "dying": "die", "lying": "lie", "tying": "tie",
	"idly": "idl", "gently": "gentl", "ugly": "ugli", "early": "earli",
	"only": "onli", "singly": "singl", "news": "news", "howe": "howe",
	"atlas": "atlas", "cosmos": "cosmos", "bias": "bias", "andes": "andes",
}

// stemInvariants are left alone once step 1a has run.
var stemInvariants = []string{
	"inning", "outing", "canning", "herring", "earring", "proceed", "exceed", "succeed",
}

// isVowel reports whether runes[i] acts as a vowel. A 'y' counts as a vowel
// only after a consonant; out-of-range indices are consonants.
func isVowel(runes []rune, i int) bool {
	if i < 0 || i >= len(runes) {
		return false
	}
	switch runes[i] {
	case 'a', 'e', 'i', 'o', 'u':
		return true
	case 'y':
		if i == 0 {
			return false
		}
		switch runes[i-1] {
		case 'a', 'e', 'i', 'o', 'u':
			return false
		default:
			return true
		}
	}
	return false
}

// porterRegions computes R1 and R2, the positions after the first and second
// vowel-consonant pair. Suffix removal only fires inside these regions.
func porterRegions(runes []rune) (r1, r2 int) {
	r1 = len(runes)
	r2 = len(runes)
	for i := 1; i < len(runes); i++ {
		if !isVowel(runes, i) && isVowel(runes, i-1) {
			r1 = i + 1
			break
		}
	}
	for i := r1 + 1; i < len(runes); i++ {
		if !isVowel(runes, i) && isVowel(runes, i-1) {
			r2 = i + 1
			break
		}
	}
	return
}

func endsWithShortSyllable(s string) bool {
	runes := []rune(s)
	l := len(runes)
	if l < 2 {
		return false
	}
	if l >= 3 && !isVowel(runes, l-3) && isVowel(runes, l-2) && !isVowel(runes, l-1) {
		last := runes[l-1]
		if last != 'w' && last != 'x' && last != 'y' {
			return true
		}
	}
	if l == 2 && isVowel(runes, 0) && !isVowel(runes, 1) {
		return true
	}
	return false
}

// cutSuffix replaces old with new only when the suffix starts at or after
// regionStart.
func cutSuffix(s string, regionStart int, old, new string) (string, bool) {
	if strings.HasSuffix(s, old) {
		if len(s)-len(old) >= regionStart {
			return s[:len(s)-len(old)] + new, true
		}
	}
	return s, false
}

func porterStep0(s string) string {
	if strings.HasSuffix(s, "'s'") {
		return s[:len(s)-3]
	}
	if strings.HasSuffix(s, "'s") {
		return s[:len(s)-2]
	}
	if strings.HasSuffix(s, "'") {
		return s[:len(s)-1]
	}
	return s
}

func porterStep1a(s string) string {
	if strings.HasSuffix(s, "sses") {
		return s[:len(s)-2]
	}
	if strings.HasSuffix(s, "ies") {
		return s[:len(s)-2]
	}
	if strings.HasSuffix(s, "s") && !strings.HasSuffix(s, "ss") {
		if len(s) > 2 {
			runes := []rune(s[:len(s)-1])
			for i := range runes {
				if isVowel(runes, i) {
					return s[:len(s)-1]
				}
			}
		}
	}
	return s
}

func porterStep1b(s string, r1 int) string {
	if strings.HasSuffix(s, "eed") || strings.HasSuffix(s, "eedly") {
		if res, ok := cutSuffix(s, r1, "eed", "ee"); ok {
			return res
		}
		if res, ok := cutSuffix(s, r1, "eedly", "ee"); ok {
			return res
		}
		return s
	}

	stem := ""
	removed := false
	if strings.HasSuffix(s, "ed") || strings.HasSuffix(s, "edly") {
		stem = s[:len(s)-2]
		if strings.HasSuffix(s, "edly") {
			stem = s[:len(s)-4]
		}
		removed = true
	} else if strings.HasSuffix(s, "ing") || strings.HasSuffix(s, "ingly") {
		stem = s[:len(s)-3]
		if strings.HasSuffix(s, "ingly") {
			stem = s[:len(s)-5]
		}
		removed = true
	}
	if !removed {
		return s
	}

	runes := []rune(stem)
	hasVowel := false
	for i := range runes {
		if isVowel(runes, i) {
			hasVowel = true
			break
		}
	}
	if !hasVowel {
		return s
	}

	s = stem
	if strings.HasSuffix(s, "at") || strings.HasSuffix(s, "bl") || strings.HasSuffix(s, "iz") {
		return s + "e"
	}
	l := len(s)
	if l > 1 && s[l-1] == s[l-2] {
		last := s[l-1]
		if last != 'l' && last != 's' && last != 'z' {
			s = s[:l-1]
		}
	} else {
		stemR1, _ := porterRegions([]rune(s))
		if endsWithShortSyllable(s) && stemR1 == len(s) {
			s += "e"
		}
	}
	return s
}

func porterStep1c(s string) string {
	runes := []rune(s)
	l := len(runes)
	if l > 2 && (runes[l-1] == 'y' || runes[l-1] == 'Y') {
		if !isVowel(runes, l-2) {
			runes[l-1] = 'i'
			return string(runes)
		}
	}
	return s
}

func porterStep2(s string, r1 int) string {
	suffixes := []struct{ old, new string }{
		{"ational", "ate"}, {"tional", "tion"}, {"enci", "ence"}, {"anci", "ance"},
		{"izer", "ize"}, {"abli", "able"}, {"alli", "al"}, {"entli", "ent"},
		{"eli", "e"}, {"ousli", "ous"}, {"ization", "ize"}, {"ation", "ate"},
		{"ator", "ate"}, {"alism", "al"}, {"iveness", "ive"}, {"fulness", "ful"},
		{"ousness", "ous"}, {"aliti", "al"}, {"iviti", "ive"}, {"biliti", "ble"},
		{"logi", "log"},
	}
	for _, suf := range suffixes {
		if out, ok := cutSuffix(s, r1, suf.old, suf.new); ok {
			return out
		}
	}
	return s
}

func porterStep3(s string, r1, r2 int) string {
	suffixes := []struct{ old, new string }{
		{"icate", "ic"}, {"ative", ""}, {"alize", "al"}, {"iciti", "ic"},
		{"ical", "ic"}, {"ful", ""}, {"ness", ""},
	}
	for _, suf := range suffixes {
		region := r1
		if suf.old == "ative" {
			region = r2
		}
		if out, ok := cutSuffix(s, region, suf.old, suf.new); ok {
			return out
		}
	}
	return s
}

func porterStep4(s string, r2 int) string {
	suffixes := []string{
		"al", "ance", "ence", "er", "ic", "able", "ible", "ant", "ement",
		"ment", "ent", "ism", "ate", "iti", "ous", "ive", "ize",
	}
	if strings.HasSuffix(s, "ion") {
		if len(s)-3 >= r2 {
			stem := s[:len(s)-3]
			if strings.HasSuffix(stem, "s") || strings.HasSuffix(stem, "t") {
				return stem
			}
		}
	}
	for _, suf := range suffixes {
		if out, ok := cutSuffix(s, r2, suf, ""); ok {
			return out
		}
	}
	return s
}

func porterStep5(s string, r1 int) string {
	if strings.HasSuffix(s, "e") {
		stem := s[:len(s)-1]
		if len(stem) >= r1 {
			stemR1, _ := porterRegions([]rune(stem))
			if !endsWithShortSyllable(stem) || stemR1 != len(stem) {
				s = stem
			}
		}
	}
	if strings.HasSuffix(s, "ll") {
		if len(s)-2 >= r1 {
			s = s[:len(s)-1]
		}
	}
	return s
}
