// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package netlib

import (
	"github.com/db47h/netsim"
	"github.com/pkg/errors"
)

// A Port exposes a node of a chip's inner circuit as a pin of the chip.
//
type Port struct {
	// Pin name. Must be unique within a chip.
	Name string
	// Node in the inner circuit.
	Node netsim.Node
	// Offset of the pin relative to the chip position.
	Offset netsim.Point
	// Output ports copy inner states out of the chip, input ports copy outer
	// states in.
	Output bool
}

type port struct {
	pin   *Pin
	inner netsim.Node
	out   bool
}

// A Chip packages a whole circuit into a single component.
//
// Every time the chip is driven, the lanes seen on its input pins are written
// onto the inner circuit, the inner circuit runs one tick, and the lanes of
// the inner output nodes are driven onto the output pins. Each level of
// nesting therefore adds one tick of propagation delay.
//
// An Xor chip could be built like this:
//
//	inner := netsim.NewCircuit(nil)
//	nand := netlib.Nand(0, netsim.Pt(0, 0), 2)
//	... // add more gates to inner
//	xor, err := netlib.NewChip("XOR", id, pos, inner,
//		netlib.Port{Name: "a", Node: nand.In(0), Offset: netsim.Pt(0, 0)},
//		netlib.Port{Name: "b", Node: nand.In(1), Offset: netsim.Pt(0, 1)},
//		netlib.Port{Name: "out", Node: last.Out(), Offset: netsim.Pt(2, 0), Output: true})
//
type Chip struct {
	Base
	inner *netsim.Circuit
	ports []port
}

// NewChip returns a new chip wrapping inner. The inner circuit is owned by the
// chip from then on and must not be driven by anyone else.
//
func NewChip(name string, id int, pos netsim.Point, inner *netsim.Circuit, ports ...Port) (*Chip, error) {
	if inner == nil {
		return nil, errors.New("nil inner circuit")
	}
	if inner.IsVirtual() {
		return nil, errors.Errorf("chip %s: inner circuit is virtual", name)
	}
	ch := &Chip{inner: inner}
	ch.init(name, id, pos)
	seen := make(map[string]bool, len(ports))
	for _, p := range ports {
		if p.Name == "" || p.Node == nil {
			return nil, errors.Errorf("chip %s: invalid port %q", name, p.Name)
		}
		if seen[p.Name] {
			return nil, errors.Errorf("chip %s: duplicate port %q", name, p.Name)
		}
		seen[p.Name] = true
		if _, ok := inner.NetOf(p.Node); !ok {
			return nil, errors.Errorf("chip %s: port %q not connected to the inner circuit", name, p.Name)
		}
		ch.ports = append(ch.ports, port{ch.newPin(p.Name, p.Offset), p.Node, p.Output})
	}
	return ch, nil
}

// Inner returns the chip's inner circuit.
//
func (ch *Chip) Inner() *netsim.Circuit { return ch.inner }

// Reset implements netsim.Component.
//
func (ch *Chip) Reset() { ch.inner.Reset() }

// Drive implements netsim.Component.
//
func (ch *Chip) Drive(io *netsim.IO) {
	for _, p := range ch.ports {
		if !p.out {
			ch.inner.WriteLanes(p.inner, io.Lanes(p.pin))
		}
	}
	ch.inner.Tick()
	for _, p := range ch.ports {
		if !p.out {
			continue
		}
		if lanes, ok := ch.inner.LaneMap(p.inner); ok {
			io.WriteLanes(p.pin, lanes)
		}
	}
}
