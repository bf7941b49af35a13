// Package cfp extracts the sections of a bilingual call-for-papers document.
//
// # Quick Start
//
// Create an extractor and pass it the raw markdown and its language:
//
//	ex := cfp.NewExtractor()
//	sections := ex.Extract(markdown, cfp.LangEN)
//	facts := ex.ExtractFacts(sections.FactsSource, cfp.LangEN)
//
// Extraction never fails. Missing markers yield empty fields, and a document
// without topics is logged as a warning.
//
// # Sections
//
// A document is split by fixed marker phrases, one table per language:
//
//   - Intro: the rendered text between the emphasized intro line and the quote
//   - Quote: the question after the colon of the quote paragraph
//   - Topics: bold titles ending in a period, each followed by its body
//   - FactsSource: the raw markdown of the submission facts block
//
// Marker phrases can be overridden per language with WithMarkers.
//
// # Facts
//
// ExtractFacts pulls up to seven labelled values out of the facts block, in a
// fixed order: format, abstract length, deadline, languages, participant cap,
// fee and travel costs. Each is optional.
//
// # Rendering
//
// Service loads a document, extracts it and fills the page template:
//
//	svc, err := cfp.NewService(loader.New(map[string]string{"de": "cfp.de.md"}))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	res, err := svc.Render(ctx, cfp.LangDE)
//
// When the document cannot be loaded, Render returns ErrContentUnavailable
// together with a page that shows a single generic error message.
package cfp
