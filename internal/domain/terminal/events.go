package terminal

// Event is a keyboard or scroll event fed into Engine.Handle
type Event interface {
	isEvent()
}

// InputChanged replaces the input line
type InputChanged struct{ Value string }

// KeyEnter submits the current input
type KeyEnter struct{}

// KeyArrowUp browses back through history
type KeyArrowUp struct{}

// KeyArrowDown browses forward through history
type KeyArrowDown struct{}

// ScrollBy moves the scrollback view
type ScrollBy struct{ Lines int }

func (InputChanged) isEvent() {}
func (KeyEnter) isEvent()     {}
func (KeyArrowUp) isEvent()   {}
func (KeyArrowDown) isEvent() {}
func (ScrollBy) isEvent()     {}

// Handle applies one event. Enter returns the submission result.
func (e *Engine) Handle(ev Event) (Result, bool) {
	switch ev := ev.(type) {
	case InputChanged:
		e.SetInput(ev.Value)
	case KeyEnter:
		return e.Submit(e.input), true
	case KeyArrowUp:
		e.ArrowUp()
	case KeyArrowDown:
		e.ArrowDown()
	case ScrollBy:
		e.ScrollBy(ev.Lines)
	default:
		return Result{}, false
	}
	return Result{}, true
}
