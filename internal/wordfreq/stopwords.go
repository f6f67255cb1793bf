package wordfreq

// Spanish function words that carry no topical signal.
var stopWords = map[string]struct{}{
	"de": {}, "la": {}, "y": {}, "el": {}, "en": {},
	"que": {}, "a": {}, "los": {}, "se": {}, "del": {},
	"por": {}, "las": {}, "un": {}, "una": {}, "con": {},
	"no": {}, "es": {}, "para": {}, "su": {}, "al": {},
}

func IsStopWord(word string) bool {
	_, ok := stopWords[word]
	return ok
}
