// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package netlib

import (
	"github.com/db47h/netsim"
	"github.com/pkg/errors"
)

// A GateN applies a logic function lane by lane over the lanes bus0 ...
// bus<width-1> of its input networks.
//
//	Inputs: a (0, 0), b (0, 1)
//	Outputs: out (2, 0)
//	Function: for each lane, out = fn(a, b)
//
type GateN struct {
	Base
	lanes     []string
	fn        func(a, b bool) bool
	a, b, out *Pin
}

// NewGateN returns a new N-bits gate. The name gets the width appended.
//
func NewGateN(name string, id int, pos netsim.Point, bus string, width int, fn func(a, b bool) bool) (*GateN, error) {
	lanes, err := busLanes(bus, width)
	if err != nil {
		return nil, errors.Wrap(err, name)
	}
	g := &GateN{lanes: lanes, fn: fn}
	g.init(name+itoa(width), id, pos)
	g.a = g.newPin(pA, netsim.Pt(0, 0))
	g.b = g.newPin(pB, netsim.Pt(0, 1))
	g.out = g.newPin(pOut, netsim.Pt(2, 0))
	return g, nil
}

// NotN returns a N-bits NOT gate.
//
//	Inputs: in (0, 0)
//	Outputs: out (2, 0)
//	Function: for each lane, out = !in
//
func NotN(id int, pos netsim.Point, bus string, width int) (*GateN, error) {
	lanes, err := busLanes(bus, width)
	if err != nil {
		return nil, errors.Wrap(err, "NOT")
	}
	g := &GateN{lanes: lanes, fn: func(a, _ bool) bool { return !a }}
	g.init("NOT"+itoa(width), id, pos)
	g.a = g.newPin(pIn, netsim.Pt(0, 0))
	g.out = g.newPin(pOut, netsim.Pt(2, 0))
	return g, nil
}

// Drive implements netsim.Component.
//
func (g *GateN) Drive(io *netsim.IO) {
	for _, lane := range g.lanes {
		va, vb := io.Logic(io.GetLane(g.a, lane)), false
		if g.b != nil {
			vb = io.Logic(io.GetLane(g.b, lane))
		}
		io.SetLane(g.out, lane, netsim.StateOf(g.fn(va, vb)))
	}
}

// A MuxN is a multiplexer over the lanes bus0 ... bus<width-1>. Lane states
// are copied as is, undefined states included.
//
//	Inputs: a (0, 0), b (0, 1), sel (1, 2)
//	Outputs: out (2, 0)
//	Function: for each lane, if sel == 0 { out = a } else { out = b }
//
type MuxN struct {
	Base
	lanes          []string
	a, b, sel, out *Pin
}

// NewMuxN returns a new N-bits multiplexer.
//
func NewMuxN(id int, pos netsim.Point, bus string, width int) (*MuxN, error) {
	lanes, err := busLanes(bus, width)
	if err != nil {
		return nil, errors.Wrap(err, "MUX")
	}
	m := &MuxN{lanes: lanes}
	m.init("MUX"+itoa(width), id, pos)
	m.a = m.newPin(pA, netsim.Pt(0, 0))
	m.b = m.newPin(pB, netsim.Pt(0, 1))
	m.sel = m.newPin(pSel, netsim.Pt(1, 2))
	m.out = m.newPin(pOut, netsim.Pt(2, 0))
	return m, nil
}

// Drive implements netsim.Component.
//
func (m *MuxN) Drive(io *netsim.IO) {
	src := m.a
	if io.Bool(m.sel) {
		src = m.b
	}
	for _, lane := range m.lanes {
		io.SetLane(m.out, lane, io.GetLane(src, lane))
	}
}
