// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package netlib

import (
	"github.com/db47h/netsim"
	"github.com/pkg/errors"
)

// A BitAdder is a one bit half or full adder working on the default lane.
//
type BitAdder struct {
	Base
	a, b, cin *Pin
	s, cout   *Pin
}

// HalfAdder returns a half adder.
//
//	Inputs: a (0, 0), b (0, 1)
//	Outputs: s (2, 0), c (2, 1)
//	Function: s = lsb(a + b)
//	          c = msb(a + b)
//
func HalfAdder(id int, pos netsim.Point) *BitAdder {
	h := &BitAdder{}
	h.init("HALFADDER", id, pos)
	h.a = h.newPin(pA, netsim.Pt(0, 0))
	h.b = h.newPin(pB, netsim.Pt(0, 1))
	h.s = h.newPin("s", netsim.Pt(2, 0))
	h.cout = h.newPin("c", netsim.Pt(2, 1))
	return h
}

// FullAdder returns a full adder.
//
//	Inputs: a (0, 0), b (0, 1), cin (0, 2)
//	Outputs: s (2, 0), cout (2, 1)
//	Function: s = lsb(a + b + cin)
//	          cout = msb(a + b + cin)
//
func FullAdder(id int, pos netsim.Point) *BitAdder {
	f := &BitAdder{}
	f.init("FULLADDER", id, pos)
	f.a = f.newPin(pA, netsim.Pt(0, 0))
	f.b = f.newPin(pB, netsim.Pt(0, 1))
	f.cin = f.newPin("cin", netsim.Pt(0, 2))
	f.s = f.newPin("s", netsim.Pt(2, 0))
	f.cout = f.newPin("cout", netsim.Pt(2, 1))
	return f
}

// Drive implements netsim.Component.
//
func (ad *BitAdder) Drive(io *netsim.IO) {
	va, vb := io.Bool(ad.a), io.Bool(ad.b)
	s := va != vb
	c := va && vb
	if ad.cin != nil {
		vc := io.Bool(ad.cin)
		c = c || s && vc
		s = s != vc
	}
	io.SetBool(ad.s, s)
	io.SetBool(ad.cout, c)
}

// An Adder is a ripple carry adder over the lanes bus0 ... bus<width-1> of its
// a and b networks. The sum is driven on the same lanes of the out network.
//
//	Inputs: a (0, 0), b (0, 1)
//	Outputs: out (2, 0), c (2, 1)
//	Function: out = a + b, c is the carry out of the most significant bit.
//
type Adder struct {
	Base
	lanes     []string
	a, b, out *Pin
	c         *Pin
}

// NewAdder returns a new adder of the given width on the named bus.
//
func NewAdder(id int, pos netsim.Point, bus string, width int) (*Adder, error) {
	lanes, err := busLanes(bus, width)
	if err != nil {
		return nil, errors.Wrap(err, "adder")
	}
	ad := &Adder{lanes: lanes}
	ad.init("ADDER"+itoa(width), id, pos)
	ad.a = ad.newPin(pA, netsim.Pt(0, 0))
	ad.b = ad.newPin(pB, netsim.Pt(0, 1))
	ad.out = ad.newPin(pOut, netsim.Pt(2, 0))
	ad.c = ad.newPin("c", netsim.Pt(2, 1))
	return ad, nil
}

// Drive implements netsim.Component.
//
func (ad *Adder) Drive(io *netsim.IO) {
	c := false
	for _, lane := range ad.lanes {
		va, vb := io.Logic(io.GetLane(ad.a, lane)), io.Logic(io.GetLane(ad.b, lane))
		s0 := va != vb
		io.SetLane(ad.out, lane, netsim.StateOf(s0 != c))
		c = va && vb || s0 && c
	}
	io.SetBool(ad.c, c)
}
