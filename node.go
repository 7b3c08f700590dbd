// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package netsim

// Point is an integer 2D coordinate.
//
type Point struct {
	X, Y int
}

// Add returns p+q.
//
func (p Point) Add(q Point) Point { return Point{p.X + q.X, p.Y + q.Y} }

// Pt is shorthand for Point{x, y}.
//
func Pt(x, y int) Point { return Point{x, y} }

// Rect is a rectangle with inclusive bounds.
//
type Rect struct {
	Min, Max Point
}

// A Node is a connection point owned by a Component.
//
// Nodes sharing the same position are always connected. Equal defines explicit
// links: two distinct nodes that report Equal are connected regardless of
// their positions (the two ends of a wire for example). Equal must be
// symmetric and every node must be equal to itself.
//
// Node implementations must be comparable (pointer types are the natural
// choice) since the circuit indexes nodes by identity.
//
type Node interface {
	Position() Point
	Equal(other Node) bool
}

// A Component is a part in a circuit. It owns a fixed set of nodes and
// drives values onto them once per tick.
//
type Component interface {
	// Nodes returns the component's nodes. The set must not change while
	// the component is registered in a circuit.
	Nodes() []Node
	// Position returns the component's position.
	Position() Point
	// ID returns a stable numeric identifier. See Circuit.NextFreeID.
	ID() int

	// Created is called once when the component is added to a circuit.
	Created()
	// Dispose is called once when the component is removed from a circuit.
	Dispose()
	// Reset clears any internal state.
	Reset()

	// Drive is called exactly once per tick. Implementations read the last
	// committed states through io and drive new states onto their nodes.
	Drive(io *IO)
}
