// Package classify parses a raw language-model reply into a structured
// outcome. Replies arrive as opaque strings that may wrap a JSON payload in a
// fenced block; an ordered list of extractor strategies locates the payload
// and a fixed classification rule maps it to one of three outcomes. The
// classifier never fails outright: worst case it returns a plain-text final
// result.
package classify

import (
	"encoding/json"
	"regexp"
	"strings"

	"github.com/hupe1980/a2acal/core"
)

// Outcome identifies what kind of result a reply represents.
type Outcome int

const (
	// OutcomePartial indicates an in-progress reply; the task keeps working.
	OutcomePartial Outcome = iota
	// OutcomeInputRequired indicates the model is asking the caller a question.
	OutcomeInputRequired
	// OutcomeFinal indicates a final result carrying text or structured data.
	OutcomeFinal
)

// Classification is the structured verdict for one completion chunk. Content
// is a core.TextPart or core.DataPart; for OutcomeInputRequired it carries
// the question to surface to the caller.
type Classification struct {
	Outcome Outcome
	Content core.Part
}

// Extractor locates a structured payload inside a raw reply. Extract returns
// the inner content and true on a match. Extractors are independently
// testable and tried in a deterministic first-match-wins order.
type Extractor interface {
	Extract(reply string) (string, bool)
}

// fenceExtractor matches one delimiter pattern against the whole reply.
type fenceExtractor struct {
	re *regexp.Regexp
}

func (f fenceExtractor) Extract(reply string) (string, bool) {
	m := f.re.FindStringSubmatch(reply)
	if m == nil {
		return "", false
	}
	return m[1], true
}

// defaultExtractors is the ordered delimiter chain: plain fenced block, json
// fenced block, tool_outputs fenced block. Order matters; the first match
// wins even when a later pattern would also match.
var defaultExtractors = []Extractor{
	fenceExtractor{regexp.MustCompile("(?s)```\n(.*?)\n```")},
	fenceExtractor{regexp.MustCompile("(?s)```json\\s*(.*?)\\s*```")},
	fenceExtractor{regexp.MustCompile("(?s)```tool_outputs\\s*(.*?)\\s*```")},
}

// processingMarker flags in-progress narration, which classifies as partial
// rather than a final text result. Matching is a case-insensitive substring
// check so variations like "...processing..." or "Processing Request..." all
// stay partial.
const processingMarker = "processing"

// Classifier turns raw completion chunks into Classifications.
type Classifier struct {
	extractors []Extractor
}

// New constructs a Classifier with the default extractor chain.
func New() *Classifier {
	return &Classifier{extractors: defaultExtractors}
}

// NewWithExtractors constructs a Classifier with a custom ordered chain.
func NewWithExtractors(extractors []Extractor) *Classifier {
	return &Classifier{extractors: extractors}
}

// Classify maps one reply to an outcome.
//
// Extraction: each extractor is tried in order; the first match's inner
// content is JSON-decoded, falling back to the raw matched text on decode
// failure. With no match the whole reply is decoded, falling back to the
// whole reply as plain text. Malformed content never raises.
//
// Rule: a decoded object with status "input_required" yields
// OutcomeInputRequired carrying its question; any other decoded object is a
// final data result; remaining plain text is a final text result unless it is
// empty or carries the in-progress narration marker, which is partial.
func (c *Classifier) Classify(reply string) Classification {
	for _, ex := range c.extractors {
		inner, matched := ex.Extract(reply)
		if !matched {
			continue
		}
		var data map[string]any
		if err := json.Unmarshal([]byte(inner), &data); err != nil || data == nil {
			// Matched but malformed: the raw matched text is the result.
			return Classification{Outcome: OutcomeFinal, Content: core.TextPart{Text: inner}}
		}
		return classifyData(data)
	}

	var data map[string]any
	if err := json.Unmarshal([]byte(reply), &data); err == nil && data != nil {
		return classifyData(data)
	}

	text := strings.TrimSpace(reply)
	if text == "" || strings.Contains(strings.ToLower(text), processingMarker) {
		return Classification{Outcome: OutcomePartial, Content: core.TextPart{Text: reply}}
	}
	return Classification{Outcome: OutcomeFinal, Content: core.TextPart{Text: reply}}
}

func classifyData(data map[string]any) Classification {
	if status, _ := data["status"].(string); status == "input_required" {
		question, _ := data["question"].(string)
		return Classification{Outcome: OutcomeInputRequired, Content: core.TextPart{Text: question}}
	}
	return Classification{Outcome: OutcomeFinal, Content: core.DataPart{Data: data}}
}
