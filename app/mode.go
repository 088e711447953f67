package app

// Mode selects which consumer receives key events.
type Mode uint8

const (
	ModeNumpad Mode = iota
	ModeCalculator
)

func (m Mode) String() string {
	switch m {
	case ModeNumpad:
		return "numpad"
	case ModeCalculator:
		return "calculator"
	}
	return "unknown"
}
