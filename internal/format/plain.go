package format

import (
	"fmt"

	"pkt.systems/simry/schema"
)

// PlainRenderer formats window events as plain text lines.
type PlainRenderer struct{}

// NewPlainRenderer returns a default plain-text renderer.
func NewPlainRenderer() *PlainRenderer {
	return &PlainRenderer{}
}

// FormatEvent converts a WindowEvent into a user-facing line. Events that
// carry nothing worth showing return an empty string.
func (p *PlainRenderer) FormatEvent(event schema.WindowEvent) string {
	switch event.Type {
	case schema.WindowEventBufferAdded:
		if event.Path != "" {
			return fmt.Sprintf("opened %s as tab %d", event.Path, event.Index)
		}
		return fmt.Sprintf("new buffer in tab %d", event.Index)
	case schema.WindowEventBufferSelected:
		return fmt.Sprintf("showing %s", bufferName(event))
	case schema.WindowEventTabActivated:
		return fmt.Sprintf("tab %d active", event.Index)
	case schema.WindowEventTabDeactivated:
		return fmt.Sprintf("tab %d inactive", event.Index)
	case schema.WindowEventOpenFailed:
		if event.Err != "" {
			return fmt.Sprintf("open %s: %s", event.Path, event.Err)
		}
		return fmt.Sprintf("open %s failed", event.Path)
	default:
		return ""
	}
}

// IsError reports whether the event describes a failure.
func (p *PlainRenderer) IsError(event schema.WindowEvent) bool {
	return event.Type == schema.WindowEventOpenFailed
}

func bufferName(event schema.WindowEvent) string {
	if event.Buffer.Name != "" {
		return event.Buffer.Name
	}
	if event.Tab.Label != "" {
		return event.Tab.Label
	}
	return fmt.Sprintf("tab %d", event.Index)
}
