package ws

import (
	"github.com/GriffinCanCode/webdesk/backend/internal/domain/desktop"
)

// Client message types
const (
	TypePointerDown = "pointer_down"
	TypePointerMove = "pointer_move"
	TypePointerUp   = "pointer_up"
	TypeKey         = "key"
	TypeInput       = "input"
	TypeScroll      = "scroll"
	TypeViewport    = "viewport"
	TypePing        = "ping"
)

// Server message types
const (
	TypeView  = "view"
	TypePong  = "pong"
	TypeError = "error"
)

// Terminal keys carried by TypeKey messages
const (
	KeyEnter     = "Enter"
	KeyArrowUp   = "ArrowUp"
	KeyArrowDown = "ArrowDown"
)

// ClientMessage is one frame sent by the browser
type ClientMessage struct {
	Type   string `json:"type"`
	App    string `json:"app,omitempty"`
	Target string `json:"target,omitempty"`
	X      int    `json:"x,omitempty"`
	Y      int    `json:"y,omitempty"`
	Key    string `json:"key,omitempty"`
	Value  string `json:"value,omitempty"`
	Width  int    `json:"width,omitempty"`
	Height int    `json:"height,omitempty"`
	Lines  int    `json:"lines,omitempty"`
}

// ServerMessage is one frame sent to the browser
type ServerMessage struct {
	Type    string        `json:"type"`
	View    *desktop.View `json:"view,omitempty"`
	Message string        `json:"message,omitempty"`
}

func errorMessage(msg string) ServerMessage {
	return ServerMessage{Type: TypeError, Message: msg}
}
