package classify

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/a2acal/core"
)

func TestClassify_PartialChunks(t *testing.T) {
	c := New()

	tests := []struct {
		name  string
		reply string
	}{
		{"empty", ""},
		{"whitespace", "   \n  "},
		{"placeholder", "Processing Request..."},
		{"prefixed placeholder", "booking-agent: Processing Request..."},
		{"bare processing marker", "...processing..."},
		{"mixed case marker", "Currently PROCESSING your request"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := c.Classify(tt.reply)
			assert.Equal(t, OutcomePartial, got.Outcome)
		})
	}
}

func TestClassify_PlainTextIsFinal(t *testing.T) {
	c := New()

	got := c.Classify("The meeting is booked for Monday.")
	assert.Equal(t, OutcomeFinal, got.Outcome)
	assert.Equal(t, core.TextPart{Text: "The meeting is booked for Monday."}, got.Content)
}

func TestClassify_WholeReplyJSON(t *testing.T) {
	c := New()

	got := c.Classify(`{"status": "success", "message": "booked"}`)
	require.Equal(t, OutcomeFinal, got.Outcome)
	dp, ok := got.Content.(core.DataPart)
	require.True(t, ok)
	assert.Equal(t, "booked", dp.Data["message"])
}

func TestClassify_InputRequired(t *testing.T) {
	c := New()

	got := c.Classify(`{"status": "input_required", "question": "Which day works?"}`)
	require.Equal(t, OutcomeInputRequired, got.Outcome)
	assert.Equal(t, core.TextPart{Text: "Which day works?"}, got.Content)
}

func TestClassify_FencedJSON(t *testing.T) {
	c := New()

	reply := "Here is the result:\n```json\n{\"status\": \"input_required\", \"question\": \"Morning or afternoon?\"}\n```\nLet me know."
	got := c.Classify(reply)
	require.Equal(t, OutcomeInputRequired, got.Outcome)
	assert.Equal(t, core.TextPart{Text: "Morning or afternoon?"}, got.Content)
}

func TestClassify_ToolOutputsFence(t *testing.T) {
	c := New()

	reply := "```tool_outputs\n{\"status\": \"success\"}\n```"
	got := c.Classify(reply)
	require.Equal(t, OutcomeFinal, got.Outcome)
	dp, ok := got.Content.(core.DataPart)
	require.True(t, ok)
	assert.Equal(t, "success", dp.Data["status"])
}

func TestClassify_ExtractorOrderFirstMatchWins(t *testing.T) {
	c := New()

	// A plain fence and a json fence both present: the plain fence pattern
	// matches first and its inner content decides the outcome.
	reply := "```\n{\"a\": 1}\n```\n```json\n{\"status\": \"input_required\", \"question\": \"q\"}\n```"
	got := c.Classify(reply)
	require.Equal(t, OutcomeFinal, got.Outcome)
	dp, ok := got.Content.(core.DataPart)
	require.True(t, ok)
	assert.Equal(t, float64(1), dp.Data["a"])
}

func TestClassify_MalformedFencedBlock(t *testing.T) {
	c := New()

	// The block matches but its content is not valid JSON. The matched text
	// itself becomes the final result; classification never fails.
	got := c.Classify("```json\n{not json at all\n```")
	require.Equal(t, OutcomeFinal, got.Outcome)
	assert.Equal(t, core.TextPart{Text: "{not json at all"}, got.Content)
}

func TestClassify_StatusOtherThanInputRequired(t *testing.T) {
	c := New()

	got := c.Classify(`{"status": "completed", "result": "done"}`)
	require.Equal(t, OutcomeFinal, got.Outcome)
	_, ok := got.Content.(core.DataPart)
	assert.True(t, ok)
}

func TestNewWithExtractors(t *testing.T) {
	c := NewWithExtractors(nil)

	// Without extractors a fenced reply is not unwrapped; it fails whole-reply
	// decoding and lands as final text.
	got := c.Classify("```json\n{\"a\": 1}\n```")
	assert.Equal(t, OutcomeFinal, got.Outcome)
	assert.IsType(t, core.TextPart{}, got.Content)
}
