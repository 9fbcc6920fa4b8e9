package types

type MarkShape string

const (
	MarkShapeTriangleUp   MarkShape = "triangle_up"
	MarkShapeTriangleDown MarkShape = "triangle_down"
)

type MarkColor string

const (
	MarkColorRed   MarkColor = "red"
	MarkColorGreen MarkColor = "green"
)

// Mark describes how a chart annotates a signal.
type Mark struct {
	Color  MarkColor
	Shape  MarkShape
	Title  string
	Signal SignalEvent
}

// NewSignalMark maps a signal to its chart annotation: buys are green "B" up-triangles,
// sells are red "S" down-triangles.
func NewSignalMark(event SignalEvent) Mark {
	if event.Kind == SignalKindBuy {
		return Mark{
			Color:  MarkColorGreen,
			Shape:  MarkShapeTriangleUp,
			Title:  "B",
			Signal: event,
		}
	}

	return Mark{
		Color:  MarkColorRed,
		Shape:  MarkShapeTriangleDown,
		Title:  "S",
		Signal: event,
	}
}
