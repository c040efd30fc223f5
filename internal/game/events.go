package game

// EventType tags an engine event for the audio/visual collaborators.
type EventType string

const (
	EventMove      EventType = "move"
	EventCapture   EventType = "capture"
	EventCheck     EventType = "check"
	EventCheckmate EventType = "checkmate"
	EventStalemate EventType = "stalemate"
	EventAbility   EventType = "ability"
	EventStatus    EventType = "status"
	EventTurn      EventType = "turn"
)

// Event is a fire-and-forget notification emitted by the session. No
// acknowledgment is expected; consumers pick cues off the Effect tag.
type Event struct {
	Type     EventType `json:"type"`
	Team     Team      `json:"team"`
	From     *Position `json:"from,omitempty"`
	To       *Position `json:"to,omitempty"`
	Effect   string    `json:"effect,omitempty"`
	Duration int       `json:"duration,omitempty"`
	Message  string    `json:"message,omitempty"`
}

// Listener consumes session events.
type Listener func(Event)
