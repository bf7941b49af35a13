// Package pipeline implements the Markdown-to-HTML stages behind call-for-papers
// extraction and page rendering.
//
// This package handles:
//   - Markdown preprocessing (line normalization, blank-line compression)
//   - Markdown to HTML fragment conversion via Goldmark
//   - Markdown flattening to plain text, with strong emphasis kept as placeholders
//   - Fragment rendering for topics and facts lists
//   - Slot injection into a page template, addressed by element id
//
// Section location and fact matching live in the root cfp package. This
// package only knows about markup, not about marker phrases or languages.
package pipeline
