package sentiment

// defaultLexicon holds word polarities in [-1, 1]. Words missing from the map
// contribute nothing to the score.
var defaultLexicon = map[string]float64{ //nolint:gochecknoglobals // read-only lexicon
	// positive
	"aced":        0.5,
	"amazing":     0.6,
	"awesome":     1.0,
	"beautiful":   0.85,
	"best":        1.0,
	"brilliant":   0.9,
	"calm":        0.3,
	"cheerful":    0.6,
	"cool":        0.35,
	"delicious":   1.0,
	"delighted":   0.7,
	"enjoy":       0.4,
	"enjoyed":     0.4,
	"excellent":   1.0,
	"excited":     0.375,
	"exciting":    0.3,
	"fantastic":   0.4,
	"fine":        0.4,
	"fun":         0.3,
	"funny":       0.25,
	"glad":        0.5,
	"good":        0.7,
	"great":       0.8,
	"happy":       0.8,
	"helpful":     0.5,
	"hopeful":     0.5,
	"incredible":  0.9,
	"interesting": 0.5,
	"kind":        0.6,
	"love":        0.5,
	"loved":       0.7,
	"lovely":      0.5,
	"lucky":       0.33,
	"nice":        0.6,
	"perfect":     1.0,
	"pleased":     0.5,
	"proud":       0.8,
	"smart":       0.21,
	"super":       0.33,
	"thankful":    0.5,
	"win":         0.8,
	"won":         0.8,
	"wonderful":   1.0,
	"yay":         0.5,

	// negative
	"afraid":       -0.6,
	"alone":        -0.3,
	"angry":        -0.5,
	"annoyed":      -0.4,
	"awful":        -1.0,
	"bad":          -0.7,
	"boring":       -1.0,
	"bored":        -0.5,
	"broke":        -0.4,
	"cry":          -0.4,
	"crying":       -0.5,
	"depressed":    -0.7,
	"disappointed": -0.75,
	"down":         -0.16,
	"failed":       -0.5,
	"frustrated":   -0.6,
	"gloomy":       -0.5,
	"hard":         -0.3,
	"horrible":     -1.0,
	"hurt":         -0.5,
	"lonely":       -0.5,
	"lost":         -0.3,
	"mad":          -0.6,
	"miserable":    -0.9,
	"nervous":      -0.3,
	"sad":          -0.5,
	"scared":       -0.5,
	"sick":         -0.7,
	"sorry":        -0.5,
	"terrible":     -1.0,
	"tired":        -0.4,
	"ugly":         -0.7,
	"unfair":       -0.5,
	"unhappy":      -0.6,
	"upset":        -0.5,
	"worried":      -0.4,
	"worse":        -0.4,
	"worst":        -1.0,
	"wrong":        -0.5,
}

// defaultIntensifiers scale the next scored word.
var defaultIntensifiers = map[string]float64{ //nolint:gochecknoglobals // read-only lexicon
	"extremely":  1.5,
	"incredibly": 1.5,
	"quite":      1.1,
	"really":     1.3,
	"slightly":   0.5,
	"so":         1.3,
	"somewhat":   0.5,
	"totally":    1.4,
	"very":       1.3,
}

// defaultNegations flip and halve the next scored word.
var defaultNegations = []string{ //nolint:gochecknoglobals // read-only lexicon
	"aren't", "can't", "cannot", "didn't", "doesn't", "don't", "isn't",
	"never", "no", "not", "wasn't", "weren't", "won't",
}
