// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package netlib

import (
	"sync"
	"sync/atomic"

	"github.com/db47h/netsim"
	"github.com/pkg/errors"
)

// A Wire links two positions. It drives nothing.
//
type Wire struct {
	Base
	a, b *Pin
}

// NewWire returns a wire from a to b.
//
func NewWire(id int, a, b netsim.Point) *Wire {
	w := &Wire{}
	w.init("WIRE", id, a)
	w.a = w.newPin(pA, netsim.Point{})
	w.b = w.newPin(pB, netsim.Pt(b.X-a.X, b.Y-a.Y))
	w.a.linked = true
	w.b.linked = true
	return w
}

// A returns the pin at the start of the wire.
//
func (w *Wire) A() *Pin { return w.a }

// B returns the pin at the end of the wire.
//
func (w *Wire) B() *Pin { return w.b }

// Drive implements netsim.Component.
//
func (w *Wire) Drive(*netsim.IO) {}

// A Switch drives High or Low on its out pin at offset (0, 0) depending on
// its state. It is safe to toggle a switch while the circuit is running.
//
type Switch struct {
	Base
	on  atomic.Bool
	out *Pin
}

// NewSwitch returns a new switch in the off state.
//
func NewSwitch(id int, pos netsim.Point) *Switch {
	s := &Switch{}
	s.init("SWITCH", id, pos)
	s.out = s.newPin(pOut, netsim.Point{})
	return s
}

// Out returns the output pin.
//
func (s *Switch) Out() *Pin { return s.out }

// Set sets the switch state.
//
func (s *Switch) Set(on bool) { s.on.Store(on) }

// Toggle flips the switch state.
//
func (s *Switch) Toggle() {
	for {
		v := s.on.Load()
		if s.on.CompareAndSwap(v, !v) {
			return
		}
	}
}

// On returns the switch state.
//
func (s *Switch) On() bool { return s.on.Load() }

// Drive implements netsim.Component.
//
func (s *Switch) Drive(io *netsim.IO) { io.SetBool(s.out, s.on.Load()) }

// A Lamp records the state of the network its in pin at offset (0, 0) is
// connected to.
//
type Lamp struct {
	Base
	state atomic.Uint32
	in    *Pin
}

// NewLamp returns a new lamp.
//
func NewLamp(id int, pos netsim.Point) *Lamp {
	l := &Lamp{}
	l.init("LAMP", id, pos)
	l.in = l.newPin(pIn, netsim.Point{})
	return l
}

// In returns the input pin.
//
func (l *Lamp) In() *Pin { return l.in }

// State returns the state seen during the last tick.
//
func (l *Lamp) State() netsim.NetState { return netsim.NetState(l.state.Load()) }

// Lit returns true if the lamp saw a High state during the last tick.
//
func (l *Lamp) Lit() bool { return l.State() == netsim.High }

// Reset implements netsim.Component.
//
func (l *Lamp) Reset() { l.state.Store(uint32(netsim.Floating)) }

// Drive implements netsim.Component.
//
func (l *Lamp) Drive(io *netsim.IO) { l.state.Store(uint32(io.Get(l.in))) }

// An Input is a function based input.
//
//	Outputs: out (0, 0)
//	Function: out = f()
//
type Input struct {
	Base
	f   func() netsim.NetState
	out *Pin
}

// NewInput returns a new Input calling f once per tick.
//
func NewInput(id int, pos netsim.Point, f func() netsim.NetState) *Input {
	in := &Input{f: f}
	in.init("INPUT", id, pos)
	in.out = in.newPin(pOut, netsim.Point{})
	return in
}

// Out returns the output pin.
//
func (in *Input) Out() *Pin { return in.out }

// Drive implements netsim.Component.
//
func (in *Input) Drive(io *netsim.IO) { io.Set(in.out, in.f()) }

// An Output is a probe. Its function is called once per tick with the state
// of its pin.
//
//	Inputs: in (0, 0)
//	Function: f(in)
//
type Output struct {
	Base
	f  func(netsim.NetState)
	in *Pin
}

// NewOutput returns a new Output.
//
func NewOutput(id int, pos netsim.Point, f func(netsim.NetState)) *Output {
	o := &Output{f: f}
	o.init("OUTPUT", id, pos)
	o.in = o.newPin(pIn, netsim.Point{})
	return o
}

// In returns the input pin.
//
func (o *Output) In() *Pin { return o.in }

// Drive implements netsim.Component.
//
func (o *Output) Drive(io *netsim.IO) { o.f(io.Get(o.in)) }

// A BusInput drives an integer value onto the lanes bus0, bus1, ... of the
// network its out pin at offset (0, 0) is connected to. Bit 0 is the least
// significant bit.
//
type BusInput struct {
	Base
	lanes []string
	value atomic.Int64
	out   *Pin
}

// NewBusInput returns a new bus input of the given width. The bus name must
// not end with a digit.
//
func NewBusInput(id int, pos netsim.Point, bus string, width int) (*BusInput, error) {
	lanes, err := busLanes(bus, width)
	if err != nil {
		return nil, errors.Wrap(err, "bus input")
	}
	b := &BusInput{lanes: lanes}
	b.init("BUSIN", id, pos)
	b.out = b.newPin(pOut, netsim.Point{})
	return b, nil
}

// Out returns the output pin.
//
func (b *BusInput) Out() *Pin { return b.out }

// Set sets the value driven on the bus.
//
func (b *BusInput) Set(v int64) { b.value.Store(v) }

// Value returns the value driven on the bus.
//
func (b *BusInput) Value() int64 { return b.value.Load() }

// Drive implements netsim.Component.
//
func (b *BusInput) Drive(io *netsim.IO) {
	v := b.value.Load()
	for bit, lane := range b.lanes {
		io.SetLane(b.out, lane, netsim.StateOf(v&(1<<uint(bit)) != 0))
	}
}

// A BusProbe decodes the lanes of the network its in pin at offset (0, 0) is
// connected to.
//
type BusProbe struct {
	Base
	in *Pin

	mu    sync.Mutex
	buses []netsim.BusValue
}

// NewBusProbe returns a new bus probe.
//
func NewBusProbe(id int, pos netsim.Point) *BusProbe {
	p := &BusProbe{}
	p.init("PROBE", id, pos)
	p.in = p.newPin(pIn, netsim.Point{})
	return p
}

// In returns the input pin.
//
func (p *BusProbe) In() *Pin { return p.in }

// Buses returns the buses decoded during the last tick, sorted by name.
//
func (p *BusProbe) Buses() []netsim.BusValue {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]netsim.BusValue(nil), p.buses...)
}

// Value returns the value of the named bus decoded during the last tick.
//
func (p *BusProbe) Value(bus string) (int64, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, b := range p.buses {
		if b.Name == bus {
			return b.Value, true
		}
	}
	return 0, false
}

// Reset implements netsim.Component.
//
func (p *BusProbe) Reset() {
	p.mu.Lock()
	p.buses = nil
	p.mu.Unlock()
}

// Drive implements netsim.Component.
//
func (p *BusProbe) Drive(io *netsim.IO) {
	buses := netsim.DecodeBuses(io.Lanes(p.in), io.Source())
	p.mu.Lock()
	p.buses = buses
	p.mu.Unlock()
}
