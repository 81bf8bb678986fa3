package corpus

import "strings"

// stopWordSets maps a language name to its stop-word set.
var stopWordSets = map[string]map[string]struct{}{
	"english": englishStopWords,
	"italian": italianStopWords,
}

// StopWordLanguages returns the languages with a built-in stop-word set.
func StopWordLanguages() []string {
	return []string{"english", "italian"}
}

// FilterStopWords removes the common words of the given language from a
// token slice. An empty or unknown language returns the tokens unchanged, so
// filtering is strictly opt-in.
func FilterStopWords(tokens []string, language string) []string {
	set, ok := stopWordSets[strings.ToLower(language)]
	if !ok {
		return tokens
	}
	filtered := make([]string, 0, len(tokens))
	for _, token := range tokens {
		if _, isStopWord := set[token]; !isStopWord {
			filtered = append(filtered, token)
		}
	}
	return filtered
}

var englishStopWords = map[string]struct{}{
	"a": {}, "an": {}, "and": {}, "are": {}, "as": {}, "at": {}, "be": {}, "by": {},
	"for": {}, "from": {}, "has": {}, "he": {}, "in": {}, "is": {}, "it": {}, "its": {},
	"of": {}, "on": {}, "that": {}, "the": {}, "to": {}, "was": {}, "were": {}, "will": {}, "with": {},
}

var italianStopWords = map[string]struct{}{
	"a": {}, "ad": {}, "al": {}, "allo": {}, "ai": {}, "agli": {}, "all": {}, "agl": {}, "alla": {}, "alle": {},
	"con": {}, "col": {}, "coi": {}, "da": {}, "dal": {}, "dallo": {}, "dai": {}, "dagli": {}, "dall": {}, "dagl": {}, "dalla": {}, "dalle": {},
	"di": {}, "del": {}, "dello": {}, "dei": {}, "degli": {}, "dell": {}, "degl": {}, "della": {}, "delle": {},
	"e": {}, "ed": {}, "in": {}, "nel": {}, "nello": {}, "nei": {}, "negli": {}, "nell": {}, "negl": {}, "nella": {}, "nelle": {},
	"su": {}, "sul": {}, "sullo": {}, "sui": {}, "sugli": {}, "sull": {}, "sugl": {}, "sulla": {}, "sulle": {},
	"per": {}, "tra": {}, "contro": {}, "io": {}, "tu": {}, "lui": {}, "lei": {}, "noi": {}, "voi": {}, "loro": {},
	"mio": {}, "mia": {}, "miei": {}, "mie": {}, "tuo": {}, "tua": {}, "tuoi": {}, "tue": {}, "suo": {}, "sua": {}, "suoi": {}, "sue": {},
	"nostro": {}, "nostra": {}, "nostri": {}, "nostre": {}, "vostro": {}, "vostra": {}, "vostri": {}, "vostre": {},
	"mi": {}, "ti": {}, "ci": {}, "vi": {}, "lo": {}, "la": {}, "li": {}, "le": {}, "gli": {}, "ne": {},
	"il": {}, "un": {}, "uno": {}, "una": {}, "ma": {}, "se": {}, "perché": {}, "anche": {}, "come": {},
	"dov": {}, "dove": {}, "che": {}, "chi": {}, "cui": {}, "non": {}, "più": {}, "quale": {}, "quanto": {}, "quanti": {},
	"quanta": {}, "quante": {}, "quello": {}, "quelli": {}, "quella": {}, "quelle": {}, "questo": {}, "questi": {},
	"questa": {}, "queste": {}, "si": {}, "ho": {}, "hai": {}, "ha": {}, "abbiamo": {}, "avete": {}, "hanno": {},
	"è": {}, "sono": {}, "sei": {}, "siamo": {}, "siete": {}, "era": {}, "erano": {}, "essere": {},
}
