package emotion

// Lexicon maps each emotion label to the keyword set that scores it.
// Matching is per-token after normalization, so entries are single words.
type Lexicon map[Label][]string

// DefaultLexicon returns the built-in emotion keyword sets.
func DefaultLexicon() Lexicon {
	return Lexicon{
		LabelJoy:          joyWords(),
		LabelSadness:      sadnessWords(),
		LabelAnger:        angerWords(),
		LabelFear:         fearWords(),
		LabelDisgust:      disgustWords(),
		LabelTrust:        trustWords(),
		LabelAnticipation: anticipationWords(),
		LabelSurprise:     surpriseWords(),
	}
}

func joyWords() []string {
	return []string{
		"happy", "joy", "joyful", "glad", "delighted", "thrilled",
		"wonderful", "great", "awesome", "fantastic", "love", "loved",
		"excellent", "amazing", "cheerful", "pleased", "excited", "fun",
		"yay", "celebrate", "smile", "laughing", "perfect", "best",
	}
}

func sadnessWords() []string {
	return []string{
		"sad", "unhappy", "depressed", "miserable", "down", "crying",
		"cry", "tears", "heartbroken", "lonely", "grief", "gloomy",
		"disappointed", "disappointing", "hopeless", "lost", "hurt",
		"sorrow", "regret", "missing",
	}
}

func angerWords() []string {
	return []string{
		"angry", "mad", "furious", "annoyed", "irritated", "rage",
		"hate", "hated", "outraged", "frustrated", "frustrating",
		"infuriating", "pissed", "livid", "resent", "unfair",
	}
}

func fearWords() []string {
	return []string{
		"afraid", "scared", "terrified", "anxious", "anxiety", "worried",
		"worry", "nervous", "panic", "dread", "frightened", "fearful",
		"alarmed", "threat", "unsafe",
	}
}

func disgustWords() []string {
	return []string{
		"disgusting", "disgusted", "gross", "revolting", "nasty",
		"awful", "horrible", "terrible", "vile", "repulsive", "sickening",
		"yuck", "ugh",
	}
}

func trustWords() []string {
	return []string{
		"trust", "trusted", "reliable", "dependable", "honest", "loyal",
		"faith", "confident", "confidence", "sure", "safe", "secure",
		"believe", "count",
	}
}

func anticipationWords() []string {
	return []string{
		"anticipate", "expect", "expecting", "looking", "forward",
		"eager", "soon", "upcoming", "tomorrow", "hope", "hoping",
		"hopeful", "awaiting", "cant wait", "countdown", "planning",
	}
}

func surpriseWords() []string {
	return []string{
		"surprised", "surprising", "surprise", "shocked", "shocking",
		"astonished", "amazed", "unexpected", "unbelievable", "wow",
		"whoa", "sudden", "suddenly",
	}
}

// positiveLabels and negativeLabels partition the label set for polarity.
// Surprise is deliberately excluded from both: it carries no polarity on
// its own.
var positiveLabels = map[Label]bool{
	LabelJoy:          true,
	LabelTrust:        true,
	LabelAnticipation: true,
}

var negativeLabels = map[Label]bool{
	LabelSadness: true,
	LabelAnger:   true,
	LabelFear:    true,
	LabelDisgust: true,
}
