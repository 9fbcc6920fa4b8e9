package types

import "time"

type SignalKind string

const (
	// SignalKindBuy is emitted on an upside breakout confirmed by positive MACD
	SignalKindBuy SignalKind = "buy"
	// SignalKindSell is emitted on a downside breakout confirmed by negative MACD
	SignalKindSell SignalKind = "sell"
)

// SignalEvent is a discrete trade signal.
type SignalEvent struct {
	// Time is the timestamp of the bar that fired
	Time time.Time `json:"time"`
	// Price is the breakout price: the bar high for buys, the bar low for sells
	Price float64 `json:"price"`
	// Kind is buy or sell
	Kind SignalKind `json:"kind"`
}
