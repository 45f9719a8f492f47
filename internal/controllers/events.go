package controllers

// Button identifies which pointer button produced an event.
type Button int

const (
	ButtonPrimary Button = iota + 1
	ButtonSecondary
)

func (b Button) String() string {
	switch b {
	case ButtonPrimary:
		return "primary"
	case ButtonSecondary:
		return "secondary"
	default:
		return "unknown"
	}
}

// PointerEvent is a click at display coordinates relative to the top-left
// corner of the rendered image.
type PointerEvent struct {
	Button Button
	X, Y   float64
}

// WheelEvent is one scroll tick. Positive Direction zooms in. Without
// Modifier the event belongs to the scroll container, not the controller.
type WheelEvent struct {
	Direction int
	Modifier  bool
}
