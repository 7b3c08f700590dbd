// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package netsim

// IO gives components access to the circuit's networks while they are being
// driven. Reads return the states committed by the previous tick and writes
// are combined into the states of the current tick.
//
// An IO is only valid during a call to Component.Drive. Components must not
// call Circuit methods from Drive: the circuit is locked for the whole tick.
//
type IO struct {
	c *Circuit
}

// Get returns the state of the default lane of n's network.
//
func (d *IO) Get(n Node) NetState { return d.c.get(n, DefaultLane) }

// GetLane returns the state of a lane of n's network.
//
func (d *IO) GetLane(n Node, lane string) NetState { return d.c.get(n, lane) }

// Bool returns the logic value of the default lane of n's network. Undefined
// states return a random value on each call.
//
func (d *IO) Bool(n Node) bool { return d.c.get(n, DefaultLane).Logic(d.c.src) }

// Logic returns the logic value of s using the circuit's noise source.
//
func (d *IO) Logic(s NetState) bool { return s.Logic(d.c.src) }

// Set drives s onto the default lane of n's network.
//
func (d *IO) Set(n Node, s NetState) { d.SetLane(n, DefaultLane, s) }

// SetBool drives High or Low onto the default lane of n's network.
//
func (d *IO) SetBool(n Node, v bool) { d.SetLane(n, DefaultLane, StateOf(v)) }

// SetLane drives s onto a lane of n's network. It is a no-op if n is not
// connected to any network.
//
func (d *IO) SetLane(n Node, lane string, s NetState) {
	if nw := d.c.netFor(n); nw != nil {
		nw.drive(lane, s, d.c.policy)
	}
}

// WriteLanes drives every lane state of lanes onto n's network.
//
func (d *IO) WriteLanes(n Node, lanes map[string]NetState) {
	if len(lanes) == 0 {
		return
	}
	if nw := d.c.netFor(n); nw != nil {
		for lane, s := range lanes {
			nw.drive(lane, s, d.c.policy)
		}
	}
}

// Lanes returns a copy of the committed lane states of n's network, or nil if
// n is not connected to any network.
//
func (d *IO) Lanes(n Node) map[string]NetState {
	if nw := d.c.netFor(n); nw != nil {
		return nw.lanes()
	}
	return nil
}

// Ticks returns the number of the tick being run, starting at 0.
//
func (d *IO) Ticks() uint64 { return d.c.ticks }

// Source returns the circuit's noise source.
//
func (d *IO) Source() Source { return d.c.src }
