package sentiment

// Label is the verdict drawn from a polarity score.
type Label string

const (
	Positive Label = "positive"
	Negative Label = "negative"
	Neutral  Label = "neutral"
)

// Polarity beyond ±Threshold is no longer neutral.
const Threshold = 0.3

func Classify(polarity float64) Label {
	switch {
	case polarity > Threshold:
		return Positive
	case polarity < -Threshold:
		return Negative
	default:
		return Neutral
	}
}

var messages = map[string]map[Label]string{
	"es": {
		Positive: "El sentimiento del texto es positivo.",
		Negative: "El sentimiento del texto es negativo.",
		Neutral:  "El sentimiento del texto es neutral.",
	},
	"en": {
		Positive: "The sentiment of the text is positive.",
		Negative: "The sentiment of the text is negative.",
		Neutral:  "The sentiment of the text is neutral.",
	},
}

// Message is the spoken summary of the label in lang. Languages without a
// translation get the Spanish sentence.
func (l Label) Message(lang string) string {
	byLabel, ok := messages[lang]
	if !ok {
		byLabel = messages["es"]
	}
	if msg, ok := byLabel[l]; ok {
		return msg
	}
	return byLabel[Neutral]
}
