package model

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Compile time check to ensure MockModel satisfies the Model interface.
var _ Model = (*MockModel)(nil)

func collect(t *testing.T, respCh <-chan Response, errCh <-chan error) []Response {
	t.Helper()
	var got []Response
	for resp := range respCh {
		got = append(got, resp)
	}
	require.NoError(t, <-errCh)
	return got
}

func TestMockModel_ReplaysScript(t *testing.T) {
	m := NewMockModel("scripted")
	m.AddScript("hello",
		Response{Partial: true, Text: "he"},
		Response{Partial: true, Text: "llo"},
		Response{Text: "hello there", FinishReason: "stop"},
	)

	respCh, errCh := m.Generate(context.Background(), Request{
		Messages: []Message{{Role: "user", Text: "hello"}},
	})

	got := collect(t, respCh, errCh)
	require.Len(t, got, 3)
	assert.True(t, got[0].Partial)
	assert.Equal(t, "hello there", got[2].Text)
}

func TestMockModel_KeysOnToolResult(t *testing.T) {
	m := NewMockModel("scripted")
	m.AddScript("SUCCESS", Response{Text: "Booked.", FinishReason: "stop"})

	respCh, errCh := m.Generate(context.Background(), Request{
		Messages: []Message{
			{Role: "user", Text: "book it"},
			{Role: "assistant", ToolCalls: []ToolCall{{ID: "c1", Name: "request_meeting"}}},
			{Role: "tool", ToolResults: []ToolResult{{CallID: "c1", Name: "request_meeting", Content: "SUCCESS"}}},
		},
	})

	got := collect(t, respCh, errCh)
	require.Len(t, got, 1)
	assert.Equal(t, "Booked.", got[0].Text)
}

func TestMockModel_FallbackResponse(t *testing.T) {
	m := NewMockModel("scripted")

	respCh, errCh := m.Generate(context.Background(), Request{
		Messages: []Message{{Role: "user", Text: "unscripted"}},
	})

	got := collect(t, respCh, errCh)
	require.Len(t, got, 1)
	assert.Contains(t, got[0].Text, "unscripted")
}

func TestMockModel_NoMessages(t *testing.T) {
	m := NewMockModel("scripted")

	respCh, errCh := m.Generate(context.Background(), Request{})
	for range respCh {
	}
	assert.Error(t, <-errCh)
}

func TestMockModel_Info(t *testing.T) {
	m := NewMockModel("scripted")
	info := m.Info()
	assert.Equal(t, "scripted", info.Name)
	assert.Equal(t, "mock", info.Provider)
	assert.True(t, info.SupportsTools)
}
