package core

// Part represents a polymorphic unit of event content. Concrete part types
// implement the unexported isPart marker enabling a closed set.
type Part interface{ isPart() }

// TextPart is a plain text content segment.
type TextPart struct {
	Text string // Plain UTF-8 text
}

// isPart implements the Part interface for TextPart.
func (TextPart) isPart() {}

// DataPart is a structured data segment (e.g., a decoded JSON object).
type DataPart struct {
	Data map[string]any // Structured key/value payload
}

// isPart implements the Part interface for DataPart.
func (DataPart) isPart() {}

// ResponseTypeText and ResponseTypeData are the wire labels describing which
// shape an event's content takes.
const (
	ResponseTypeText = "text"
	ResponseTypeData = "data"
)

// ResponseType returns the wire label for a part's content shape.
func ResponseType(p Part) string {
	if _, ok := p.(DataPart); ok {
		return ResponseTypeData
	}
	return ResponseTypeText
}

// partValue returns the JSON-serializable payload of a part.
func partValue(p Part) any {
	switch v := p.(type) {
	case TextPart:
		return v.Text
	case DataPart:
		return v.Data
	default:
		return nil
	}
}
