package cfp

// Markers holds the six phrases that delimit the sections of one language.
type Markers struct {
	Intro     string `json:"intro" yaml:"intro"`
	Quote     string `json:"quote" yaml:"quote"`
	Topics    string `json:"topics" yaml:"topics"`
	TopicsEnd string `json:"topicsEnd" yaml:"topicsEnd"`
	Facts     string `json:"facts" yaml:"facts"`
	Closing   string `json:"closing" yaml:"closing"`
}

var defaultMarkers = map[Lang]Markers{
	LangDE: {
		Intro:     "*Was kommt",
		Quote:     "Eine Grundsatzfrage",
		Topics:    "Wir laden zu Beiträgen ein",
		TopicsEnd: "Diese Themenfelder sind",
		Facts:     "Wir bitten um Einreichungen",
		Closing:   "Abstracts und Rückfragen",
	},
	LangEN: {
		Intro:     "*What comes",
		Quote:     "A fundamental question",
		Topics:    "We invite contributions",
		TopicsEnd: "These topics are indicative",
		Facts:     "We welcome submissions",
		Closing:   "Please send abstracts and questions to",
	},
}

// DefaultMarkers returns the built-in marker table for lang.
func DefaultMarkers(lang Lang) (Markers, bool) {
	m, ok := defaultMarkers[lang]
	return m, ok
}

// Merge returns m with every non-empty field of override applied.
func (m Markers) Merge(override Markers) Markers {
	if override.Intro != "" {
		m.Intro = override.Intro
	}
	if override.Quote != "" {
		m.Quote = override.Quote
	}
	if override.Topics != "" {
		m.Topics = override.Topics
	}
	if override.TopicsEnd != "" {
		m.TopicsEnd = override.TopicsEnd
	}
	if override.Facts != "" {
		m.Facts = override.Facts
	}
	if override.Closing != "" {
		m.Closing = override.Closing
	}
	return m
}
