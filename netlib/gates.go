// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package netlib

import (
	"strconv"

	"github.com/db47h/netsim"
)

func itoa(i int) string { return strconv.Itoa(i) }

// A Gate is a logic gate with one or more inputs and a single output.
//
// Inputs in0, in1, ... are stacked vertically at offsets (0, i) and the output
// is at offset (2, 0). Undefined inputs read as random noise.
//
type Gate struct {
	Base
	fn  func(in []bool) bool
	in  []*Pin
	out *Pin
	buf []bool
}

// NewGate returns a custom gate computing fn over its inputs. fn must not
// retain the slice passed to it.
//
func NewGate(name string, id int, pos netsim.Point, inputs int, fn func(in []bool) bool) *Gate {
	if inputs < 1 {
		inputs = 1
	}
	g := &Gate{fn: fn, buf: make([]bool, inputs)}
	g.init(name, id, pos)
	for i := 0; i < inputs; i++ {
		g.in = append(g.in, g.newPin(pIn+itoa(i), netsim.Pt(0, i)))
	}
	g.out = g.newPin(pOut, netsim.Pt(2, 0))
	return g
}

// In returns input pin i.
//
func (g *Gate) In(i int) *Pin { return g.in[i] }

// Out returns the output pin.
//
func (g *Gate) Out() *Pin { return g.out }

// Drive implements netsim.Component.
//
func (g *Gate) Drive(io *netsim.IO) {
	for i, p := range g.in {
		g.buf[i] = io.Bool(p)
	}
	io.SetBool(g.out, g.fn(g.buf))
}

func and(in []bool) bool {
	for _, v := range in {
		if !v {
			return false
		}
	}
	return true
}

func or(in []bool) bool {
	for _, v := range in {
		if v {
			return true
		}
	}
	return false
}

func xor(in []bool) bool {
	r := false
	for _, v := range in {
		r = r != v
	}
	return r
}

// And returns an AND gate.
//
//	Inputs: in0 ... in<inputs-1>
//	Outputs: out
//	Function: out = in0 && in1 && ...
//
func And(id int, pos netsim.Point, inputs int) *Gate {
	return NewGate("AND", id, pos, inputs, and)
}

// Nand returns a NAND gate.
//
//	Function: out = !(in0 && in1 && ...)
//
func Nand(id int, pos netsim.Point, inputs int) *Gate {
	return NewGate("NAND", id, pos, inputs, func(in []bool) bool { return !and(in) })
}

// Or returns an OR gate.
//
//	Function: out = in0 || in1 || ...
//
func Or(id int, pos netsim.Point, inputs int) *Gate {
	return NewGate("OR", id, pos, inputs, or)
}

// Nor returns a NOR gate.
//
//	Function: out = !(in0 || in1 || ...)
//
func Nor(id int, pos netsim.Point, inputs int) *Gate {
	return NewGate("NOR", id, pos, inputs, func(in []bool) bool { return !or(in) })
}

// Xor returns an XOR gate. With more than two inputs, out is true if an odd
// number of inputs are true.
//
func Xor(id int, pos netsim.Point, inputs int) *Gate {
	return NewGate("XOR", id, pos, inputs, xor)
}

// Xnor returns an XNOR gate.
//
func Xnor(id int, pos netsim.Point, inputs int) *Gate {
	return NewGate("XNOR", id, pos, inputs, func(in []bool) bool { return !xor(in) })
}

// Not returns a NOT gate with its input named in0.
//
//	Inputs: in0
//	Outputs: out
//	Function: out = !in0
//
func Not(id int, pos netsim.Point) *Gate {
	return NewGate("NOT", id, pos, 1, func(in []bool) bool { return !in[0] })
}

// A Mux is a multiplexer.
//
//	Inputs: a (0, 0), b (0, 1), sel (1, 2)
//	Outputs: out (2, 0)
//	Function: if sel == 0 { out = a } else { out = b }
//
type Mux struct {
	Base
	a, b, sel, out *Pin
}

// NewMux returns a new multiplexer.
//
func NewMux(id int, pos netsim.Point) *Mux {
	m := &Mux{}
	m.init("MUX", id, pos)
	m.a = m.newPin(pA, netsim.Pt(0, 0))
	m.b = m.newPin(pB, netsim.Pt(0, 1))
	m.sel = m.newPin(pSel, netsim.Pt(1, 2))
	m.out = m.newPin(pOut, netsim.Pt(2, 0))
	return m
}

// Drive implements netsim.Component.
//
func (m *Mux) Drive(io *netsim.IO) {
	if io.Bool(m.sel) {
		io.SetBool(m.out, io.Bool(m.b))
	} else {
		io.SetBool(m.out, io.Bool(m.a))
	}
}

// A DMux is a demultiplexer.
//
//	Inputs: in (0, 0), sel (1, 1)
//	Outputs: a (2, 0), b (2, 1)
//	Function: if sel == 0 { a, b = in, 0 } else { a, b = 0, in }
//
type DMux struct {
	Base
	in, sel, a, b *Pin
}

// NewDMux returns a new demultiplexer.
//
func NewDMux(id int, pos netsim.Point) *DMux {
	d := &DMux{}
	d.init("DMUX", id, pos)
	d.in = d.newPin(pIn, netsim.Pt(0, 0))
	d.sel = d.newPin(pSel, netsim.Pt(1, 1))
	d.a = d.newPin(pA, netsim.Pt(2, 0))
	d.b = d.newPin(pB, netsim.Pt(2, 1))
	return d
}

// Drive implements netsim.Component.
//
func (d *DMux) Drive(io *netsim.IO) {
	in, sel := io.Bool(d.in), io.Bool(d.sel)
	io.SetBool(d.a, in && !sel)
	io.SetBool(d.b, in && sel)
}
