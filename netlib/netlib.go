// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Package netlib provides a library of reusable components for netsim.
//
// All components are built on Base, which owns the component's pins and
// provides no-op lifecycle hooks. Pin positions are relative to the
// component's position; moving a component with Move moves all its pins.
//
package netlib

import (
	"github.com/db47h/netsim"
	"github.com/pkg/errors"
)

// common pin names
const (
	pA   = "a"
	pB   = "b"
	pIn  = "in"
	pSel = "sel"
	pClk = "clk"
	pOut = "out"
)

// A Pin is a node of a component.
//
type Pin struct {
	owner  *Base
	name   string
	off    netsim.Point
	linked bool
}

// Name returns the pin name.
//
func (p *Pin) Name() string { return p.name }

// Position returns the absolute position of p.
//
func (p *Pin) Position() netsim.Point { return p.owner.Position().Add(p.off) }

// Equal returns true if other is p or if both are linked pins of the same
// component.
//
func (p *Pin) Equal(other netsim.Node) bool {
	o, ok := other.(*Pin)
	if !ok {
		return false
	}
	return p == o || p.linked && o.linked && p.owner == o.owner
}

func (p *Pin) String() string {
	return p.owner.name + "#" + itoa(p.owner.id) + "." + p.name
}

// Base implements the bookkeeping part of netsim.Component. It is meant to be
// embedded in concrete components, which only need to implement Drive.
//
type Base struct {
	name  string
	id    int
	pos   netsim.Point
	pins  []*Pin
	nodes []netsim.Node
}

func (b *Base) init(name string, id int, pos netsim.Point) {
	b.name, b.id, b.pos = name, id, pos
}

// newPin adds a pin at offset off relative to the component position.
//
func (b *Base) newPin(name string, off netsim.Point) *Pin {
	p := &Pin{owner: b, name: name, off: off}
	b.pins = append(b.pins, p)
	b.nodes = append(b.nodes, p)
	return p
}

// Name returns the component type name.
//
func (b *Base) Name() string { return b.name }

// ID implements netsim.Component.
//
func (b *Base) ID() int { return b.id }

// Position implements netsim.Component.
//
func (b *Base) Position() netsim.Point { return b.pos }

// Move moves the component to p. The component must then be reconnected
// with Circuit.Reconnect. Move must not be called while the circuit is
// reconnecting.
//
func (b *Base) Move(p netsim.Point) { b.pos = p }

// Nodes implements netsim.Component.
//
func (b *Base) Nodes() []netsim.Node { return b.nodes }

// Pin returns the pin with the given name or nil if there is no such pin.
//
func (b *Base) Pin(name string) *Pin {
	for _, p := range b.pins {
		if p.name == name {
			return p
		}
	}
	return nil
}

// Created implements netsim.Component.
//
func (b *Base) Created() {}

// Dispose implements netsim.Component.
//
func (b *Base) Dispose() {}

// Reset implements netsim.Component.
//
func (b *Base) Reset() {}

// busLanes returns the lane names bus0 ... bus<width-1>.
//
func busLanes(bus string, width int) ([]string, error) {
	if width < 1 || width > 64 {
		return nil, errors.Errorf("invalid bus width %d", width)
	}
	if n := len(bus); n > 0 && bus[n-1] >= '0' && bus[n-1] <= '9' {
		return nil, errors.Errorf("bus name %q ends with a digit", bus)
	}
	return netsim.ExpandLanes(bus + "[0.." + itoa(width-1) + "]")
}
