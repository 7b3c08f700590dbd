// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package netlib

import "github.com/db47h/netsim"

// A Clock drives High for Period ticks then Low for Period ticks on its out
// pin at offset (0, 0).
//
type Clock struct {
	Base
	Period int
	count  int
	out    *Pin
}

// NewClock returns a new clock. A period less than 1 is set to 1.
//
func NewClock(id int, pos netsim.Point, period int) *Clock {
	if period < 1 {
		period = 1
	}
	c := &Clock{Period: period}
	c.init("CLOCK", id, pos)
	c.out = c.newPin(pOut, netsim.Point{})
	return c
}

// Out returns the output pin.
//
func (c *Clock) Out() *Pin { return c.out }

// Reset implements netsim.Component.
//
func (c *Clock) Reset() { c.count = 0 }

// Drive implements netsim.Component.
//
func (c *Clock) Drive(io *netsim.IO) {
	io.SetBool(c.out, (c.count/c.Period)&1 == 0)
	c.count++
	if c.count == 2*c.Period {
		c.count = 0
	}
}

// A DFF is a data flip flop latching its input on the rising edge of clk.
//
//	Inputs: in (0, 0), clk (0, 1)
//	Outputs: out (2, 0)
//	Function: out(t) = in(t-1) // where t is the clock cycle
//
type DFF struct {
	Base
	in, clk, out *Pin
	prev, cur    bool
}

// NewDFF returns a new data flip flop.
//
func NewDFF(id int, pos netsim.Point) *DFF {
	d := &DFF{}
	d.init("DFF", id, pos)
	d.in = d.newPin(pIn, netsim.Pt(0, 0))
	d.clk = d.newPin(pClk, netsim.Pt(0, 1))
	d.out = d.newPin(pOut, netsim.Pt(2, 0))
	return d
}

// Reset implements netsim.Component.
//
func (d *DFF) Reset() { d.prev, d.cur = false, false }

// Drive implements netsim.Component.
//
func (d *DFF) Drive(io *netsim.IO) {
	clk := io.Bool(d.clk)
	// raising edge?
	if clk && !d.prev {
		d.cur = io.Bool(d.in)
	}
	d.prev = clk
	io.SetBool(d.out, d.cur)
}
