//go:build !tinygo

package hal

// shiftMode constrains a host key binding on the state of Shift. Keys such
// as '=' and '8' carry a second symbol on a laptop keyboard, so the plain
// binding must not fire while the shifted one does.
type shiftMode int8

const (
	shiftAny shiftMode = iota
	shiftOff
	shiftOn
)

func (m shiftMode) accepts(shift bool) bool {
	switch m {
	case shiftOff:
		return !shift
	case shiftOn:
		return shift
	}
	return true
}
