package core

import (
	"encoding/json"
	"testing"
)

func TestNewStatusEvent(t *testing.T) {
	ev := NewStatusEvent("t1", "c1", TaskStateWorking, "Starting task...", false)
	if ev.Kind != EventKindStatus || ev.Final {
		t.Fatalf("unexpected status event: %+v", ev)
	}
	if ev.IsTaskComplete() || ev.RequireUserInput() {
		t.Error("working status must not complete or pause the task")
	}

	paused := NewStatusEvent("t1", "c1", TaskStateInputRequired, "Which day?", true)
	if !paused.RequireUserInput() || !paused.Final {
		t.Errorf("input_required status must pause and be final: %+v", paused)
	}
}

func TestNewArtifactEvent_AlwaysFinal(t *testing.T) {
	ev := NewArtifactEvent("t1", "c1", DataPart{Data: map[string]any{"ok": true}})
	if !ev.Final || !ev.IsTaskComplete() {
		t.Fatalf("artifact events must be final and complete: %+v", ev)
	}
	if ev.RequireUserInput() {
		t.Error("artifact events never pause the task")
	}
}

func TestEvent_MarshalJSON(t *testing.T) {
	ev := NewArtifactEvent("t1", "c1", DataPart{Data: map[string]any{"status": "success"}})

	raw, err := json.Marshal(ev)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}

	var wire map[string]any
	if err := json.Unmarshal(raw, &wire); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if wire["response_type"] != ResponseTypeData {
		t.Errorf("expected data response_type, got %v", wire["response_type"])
	}
	if wire["is_task_complete"] != true {
		t.Error("artifact wire form must report is_task_complete")
	}
	if wire["require_user_input"] != false {
		t.Error("artifact wire form must not require user input")
	}
	content, ok := wire["content"].(map[string]any)
	if !ok || content["status"] != "success" {
		t.Errorf("content should be the flattened data object, got %v", wire["content"])
	}

	text := NewStatusEvent("t1", "c1", TaskStateWorking, "hello", false)
	raw, err = json.Marshal(text)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	wire = map[string]any{}
	if err := json.Unmarshal(raw, &wire); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if wire["content"] != "hello" || wire["response_type"] != ResponseTypeText {
		t.Errorf("text wire form mismatch: %v", wire)
	}
}
