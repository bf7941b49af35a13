package cfp

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/alnah/go-cfp/internal/pipeline"
)

// factRule extracts one fact category from flattened facts text.
type factRule struct {
	label   string
	pattern *regexp.Regexp
	// value maps the submatches to the fact value. ok=false drops the fact.
	value func(groups []string) (string, bool)
}

// Strong emphasis spans in flattened text are bracketed by \x{E000} and \x{E001}.
var factRules = map[Lang][]factRule{
	LangDE: {
		{label: "Format", pattern: regexp.MustCompile(`\x{E000}Vorträge von ([^\x{E001}]+)\x{E001}`), value: prefixed("Vorträge, ")},
		{label: "Abstract", pattern: regexp.MustCompile(`\x{E000}Abstracts sollten ([^\x{E001}]+)\x{E001}`), value: captured},
		{label: "Deadline", pattern: regexp.MustCompile(`\x{E000}Einreichungsfrist ist der ([^\x{E001}]+)\x{E001}`), value: captured},
		{label: "Sprachen", pattern: regexp.MustCompile(`Konferenzsprachen sind ([^.\x{E000}\x{E001}]+)\.`), value: captured},
		{label: "Teilnehmer", pattern: regexp.MustCompile(`auf (\d+) Personen begrenzt`), value: participants("max. ", " Personen")},
		{label: "Gebühr", pattern: regexp.MustCompile(`keine Tagungsgebühr`), value: constant("keine")},
		{label: "Reisekosten", pattern: regexp.MustCompile(`Reise- und Übernachtungskosten (werden nicht|werden|können nicht) (?:übernommen|erstattet)`), value: travelDE},
	},
	LangEN: {
		{label: "Format", pattern: regexp.MustCompile(`\x{E000}Talks of ([^\x{E001}]+)\x{E001}`), value: prefixed("Talks, ")},
		{label: "Abstract", pattern: regexp.MustCompile(`\x{E000}Abstracts should ([^\x{E001}]+)\x{E001}`), value: captured},
		{label: "Deadline", pattern: regexp.MustCompile(`\x{E000}The submission deadline is ([^\x{E001}]+)\x{E001}`), value: captured},
		{label: "Languages", pattern: regexp.MustCompile(`(?i)conference languages are ([^.\x{E000}\x{E001}]+)\.`), value: captured},
		{label: "Participants", pattern: regexp.MustCompile(`(?i)limited to (\d+) participants`), value: participants("max. ", "")},
		{label: "Fee", pattern: regexp.MustCompile(`(?i)\bno conference fee\b`), value: constant("none")},
		{label: "Travel costs", pattern: regexp.MustCompile(`(?i)travel (?:and accommodation )?costs (cannot|will not|will) be (?:covered|reimbursed)`), value: travelEN},
	},
}

// ExtractFacts extracts submission facts with a default Extractor.
func ExtractFacts(factsSource string, lang Lang) []FactEntry {
	return defaultExtractor.ExtractFacts(factsSource, lang)
}

var defaultExtractor = NewExtractor()

// ExtractFacts returns the facts found in factsSource, in fixed category
// order. Categories that do not match, or whose capture is blank or not a
// number where one is expected, are omitted. Never fails.
func (e *Extractor) ExtractFacts(factsSource string, lang Lang) []FactEntry {
	rules, ok := factRules[lang]
	if !ok || strings.TrimSpace(factsSource) == "" {
		return nil
	}

	text := e.md.Flatten(factsSource)

	var facts []FactEntry
	for _, rule := range rules {
		groups := rule.pattern.FindStringSubmatch(text)
		if groups == nil {
			continue
		}
		value, ok := rule.value(groups)
		if !ok {
			continue
		}
		facts = append(facts, FactEntry{Label: rule.label, Value: value})
	}
	return facts
}

func captured(groups []string) (string, bool) {
	v := cleanValue(groups[1])
	return v, v != ""
}

func prefixed(prefix string) func([]string) (string, bool) {
	return func(groups []string) (string, bool) {
		v := cleanValue(groups[1])
		if v == "" {
			return "", false
		}
		return prefix + v, true
	}
}

func constant(v string) func([]string) (string, bool) {
	return func([]string) (string, bool) {
		return v, true
	}
}

// participants re-emits the captured count as a decimal between prefix and suffix.
func participants(prefix, suffix string) func([]string) (string, bool) {
	return func(groups []string) (string, bool) {
		n, err := strconv.Atoi(strings.TrimSpace(groups[1]))
		if err != nil {
			return "", false
		}
		return prefix + strconv.Itoa(n) + suffix, true
	}
}

func travelDE(groups []string) (string, bool) {
	if groups[1] == "werden" {
		return "werden übernommen", true
	}
	return "werden nicht übernommen", true
}

func travelEN(groups []string) (string, bool) {
	if strings.EqualFold(groups[1], "will") {
		return "covered", true
	}
	return "not covered", true
}

// cleanValue trims a capture and drops stray placeholders.
func cleanValue(s string) string {
	return strings.TrimSpace(pipeline.StripStrongPlaceholders(s))
}
