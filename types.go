package cfp

// SectionSet is the result of extracting one document.
// All fields are empty when their markers are missing.
type SectionSet struct {
	IntroHTML   string  `json:"introHTML" yaml:"introHTML"`
	Quote       string  `json:"quote" yaml:"quote"`
	Topics      []Topic `json:"topics" yaml:"topics"`
	FactsSource string  `json:"factsSource" yaml:"factsSource"`
}

// Topic is one numbered entry of the topics block.
type Topic struct {
	Number   string `json:"number" yaml:"number"` // "01", "02", ...
	Title    string `json:"title" yaml:"title"`
	BodyHTML string `json:"bodyHTML" yaml:"bodyHTML"`
}

// FactEntry is one labelled submission fact.
type FactEntry struct {
	Label string `json:"label" yaml:"label"`
	Value string `json:"value" yaml:"value"`
}

// Document bundles everything extracted from one language's source.
type Document struct {
	Lang     Lang        `json:"lang" yaml:"lang"`
	Source   string      `json:"source" yaml:"source"`
	Sections SectionSet  `json:"sections" yaml:"sections"`
	Facts    []FactEntry `json:"facts" yaml:"facts"`
}
