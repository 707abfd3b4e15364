// Package contracts defines the message envelopes exchanged with the browser
// preview over the WebSocket channel.
package contracts

const (
	// MessageTypeRender replaces the browser content with a rendered fragment.
	MessageTypeRender = "render"
	// MessageTypeCursor moves the browser highlight/scroll position.
	MessageTypeCursor = "cursor"
	// MessageTypeGoToLine asks the editor to move its caret to a source line.
	MessageTypeGoToLine = "go_to_line"
)

// IncomingMessage is the minimal envelope used to route browser messages.
type IncomingMessage struct {
	Type string `json:"type"`
}

// GoToLineMessage requests a caret jump in the editor (1-based line).
type GoToLineMessage struct {
	Type string `json:"type"`
	Line int    `json:"line"`
}

// RenderMessage carries a rendered HTML fragment and its revision token.
// The receiver discards revisions older than the last one applied.
type RenderMessage struct {
	Type     string `json:"type"`
	HTML     string `json:"html"`
	Filename string `json:"filename"`
	Rev      uint64 `json:"rev"`
}

// CursorMessage carries the editor caret position, tagged with the revision
// it was computed against.
type CursorMessage struct {
	Type string `json:"type"`
	Line int    `json:"line"`
	Col  int    `json:"col"`
	Rev  uint64 `json:"rev"`
}
