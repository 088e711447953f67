//go:build !tinygo

package hal

import (
	"fmt"
	"sync"

	"padcalc/keypad"
)

// simKeypad is the host stand-in for the physical key matrix: switches that
// short a row line to a column line while pressed.
type simKeypad struct {
	mu      sync.Mutex
	pressed keypad.Grid[bool]

	cols [keypad.Cols]*virtualPin
	rows [keypad.Rows]*rowPin
	mode *virtualPin
}

func newSimKeypad() *simKeypad {
	kp := &simKeypad{}
	for c := range kp.cols {
		kp.cols[c] = newVirtualPin(fmt.Sprintf("COL%d", c), GPIOCapInput|GPIOCapOutput)
	}
	for r := range kp.rows {
		kp.rows[r] = &rowPin{kp: kp, row: r, name: fmt.Sprintf("ROW%d", r)}
	}
	// Mode switch: open (high) selects the numberpad.
	kp.mode = newVirtualPin("MODE", GPIOCapInput|GPIOCapPullUp)
	kp.mode.drive(true)
	return kp
}

// pins lists the keypad pins in GPIO id order: columns, rows, mode.
func (kp *simKeypad) pins() ([]GPIOPin, Pins) {
	var out []GPIOPin
	var p Pins
	for c, pin := range kp.cols {
		p.Cols[c] = len(out)
		out = append(out, pin)
	}
	for r, pin := range kp.rows {
		p.Rows[r] = len(out)
		out = append(out, pin)
	}
	p.Mode = len(out)
	out = append(out, kp.mode)
	return out, p
}

func (kp *simKeypad) set(c keypad.Cell, pressed bool) {
	if !c.Valid() {
		return
	}
	kp.mu.Lock()
	defer kp.mu.Unlock()
	kp.pressed.Set(c, pressed)
}

func (kp *simKeypad) isPressed(c keypad.Cell) bool {
	kp.mu.Lock()
	defer kp.mu.Unlock()
	return kp.pressed.At(c)
}

func (kp *simKeypad) releaseAll() {
	kp.mu.Lock()
	defer kp.mu.Unlock()
	kp.pressed.Reset()
}

type rowPin struct {
	kp   *simKeypad
	row  int
	name string

	mu         sync.Mutex
	configured bool
	pull       GPIOPull
}

func (p *rowPin) Name() string   { return p.name }
func (p *rowPin) Caps() GPIOCaps { return GPIOCapInput | GPIOCapPullUp }

func (p *rowPin) Configure(mode GPIOMode, pull GPIOPull) error {
	if err := checkConfig(p.name, p.Caps(), mode, pull); err != nil {
		return err
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.configured = true
	p.pull = pull
	return nil
}

// Read is low when a pressed key connects the row to a column driven low.
func (p *rowPin) Read() (bool, error) {
	p.mu.Lock()
	configured, pull := p.configured, p.pull
	p.mu.Unlock()
	if !configured {
		return false, fmt.Errorf("gpio: pin %s: not configured", p.name)
	}

	for c, col := range p.kp.cols {
		isOut, level := col.output()
		if !isOut || level {
			continue
		}
		if p.kp.isPressed(keypad.Cell{Row: p.row, Col: c}) {
			return false, nil
		}
	}
	return pull == GPIOPullUp, nil
}

func (p *rowPin) Write(level bool) error {
	_ = level
	return fmt.Errorf("gpio: pin %s: output unsupported", p.name)
}
