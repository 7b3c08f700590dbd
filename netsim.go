// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package netsim

import (
	"io"
	"log"
	"sync"
	"time"

	"github.com/pkg/errors"
)

// Options configure a new Circuit.
//
type Options struct {
	// Policy is the initial short circuit policy.
	Policy Policy
	// Source provides the noise read on Floating and ShortCircuit lanes. If
	// nil, a time seeded source is used.
	Source Source
	// Virtual marks a circuit that is never simulated (a preview instance).
	// Calling Tick on a virtual circuit panics.
	Virtual bool
	// Logger receives structural edit notifications. Defaults to a discarding
	// logger.
	Logger *log.Logger
}

// Circuit is the registry of components and the networks connecting their
// nodes. All methods are safe for concurrent use.
//
// Each network holds two lane maps: the primary one collects the states
// driven during a tick and the secondary one holds the states committed by
// the previous tick. Components only ever read the secondary map, so the
// order in which they are driven does not matter.
//
type Circuit struct {
	mu sync.RWMutex

	cs    []Component
	nets  []network
	free  []uint32       // free network slots
	owner map[Node]NetID // network of each registered node

	policy  Policy
	src     Source
	virtual bool
	log     *log.Logger
	ticks   uint64
	io      IO
}

// NewCircuit returns a new empty circuit.
//
func NewCircuit(opts *Options) *Circuit {
	if opts == nil {
		opts = &Options{}
	}
	c := &Circuit{
		owner:   make(map[Node]NetID),
		policy:  opts.Policy,
		src:     opts.Source,
		virtual: opts.Virtual,
		log:     opts.Logger,
	}
	if c.src == nil {
		c.src = NewSource(time.Now().UnixNano())
	}
	if c.log == nil {
		c.log = log.New(io.Discard, "", 0)
	}
	c.io.c = c
	return c
}

// IsVirtual returns true if c is a virtual circuit that cannot be simulated.
//
func (c *Circuit) IsVirtual() bool { return c.virtual }

// IsDriveable returns true if c can be simulated.
//
func (c *Circuit) IsDriveable() bool { return !c.virtual }

// Policy returns the short circuit policy.
//
func (c *Circuit) Policy() Policy {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.policy
}

// SetPolicy sets the short circuit policy. It takes effect on the next state
// written.
//
func (c *Circuit) SetPolicy(p Policy) {
	c.mu.Lock()
	c.policy = p
	c.mu.Unlock()
}

// Logic returns the boolean value of s, drawing from the circuit's noise
// source if s is undefined.
//
func (c *Circuit) Logic(s NetState) bool { return s.Logic(c.src) }

// Source returns the circuit's noise source.
//
func (c *Circuit) Source() Source { return c.src }

// Ticks returns the number of ticks run since the circuit was created.
//
func (c *Circuit) Ticks() uint64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.ticks
}

// Add registers cp, calls its Created hook and connects its nodes.
//
func (c *Circuit) Add(cp Component) {
	c.mu.Lock()
	defer c.mu.Unlock()
	cp.Created()
	c.cs = append(c.cs, cp)
	c.reconnect(cp.Nodes(), false)
	c.log.Printf("added component %d (%d nodes), %d networks", cp.ID(), len(cp.Nodes()), c.netCount())
}

// Remove unregisters cp, calls its Dispose hook and rebuilds the networks its
// nodes were part of without them. It returns false if cp was not registered.
//
func (c *Circuit) Remove(cp Component) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	i := c.indexOf(cp)
	if i < 0 {
		return false
	}
	cp.Dispose()
	copy(c.cs[i:], c.cs[i+1:])
	c.cs[len(c.cs)-1] = nil
	c.cs = c.cs[:len(c.cs)-1]
	c.reconnect(cp.Nodes(), true)
	c.log.Printf("removed component %d, %d networks", cp.ID(), c.netCount())
	return true
}

func (c *Circuit) indexOf(cp Component) int {
	for i, x := range c.cs {
		if x == cp {
			return i
		}
	}
	return -1
}

// Reconnect rebuilds the networks of the nodes of the given components. It
// must be called after any change affecting connectivity, like moving a
// component. If excludeSelf is true, the components' own nodes are left out
// of the rebuilt networks.
//
func (c *Circuit) Reconnect(excludeSelf bool, cs ...Component) {
	var nodes []Node
	for _, cp := range cs {
		nodes = append(nodes, cp.Nodes()...)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.reconnect(nodes, excludeSelf)
	c.log.Printf("reconnected %d nodes, %d networks", len(nodes), c.netCount())
}

// Clear removes all components and networks. Component Dispose hooks are not
// called.
//
func (c *Circuit) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cs = nil
	c.nets = nil
	c.free = nil
	c.owner = make(map[Node]NetID)
	c.log.Print("cleared circuit")
}

// Components returns the components matching pred in registration order. If
// pred is nil, all components are returned. The returned slice is a copy.
//
func (c *Circuit) Components(pred func(Component) bool) []Component {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]Component, 0, len(c.cs))
	for _, cp := range c.cs {
		if pred == nil || pred(cp) {
			out = append(out, cp)
		}
	}
	return out
}

// NextFreeID returns one more than the highest component ID in use, or 0 if
// the circuit is empty.
//
func (c *Circuit) NextFreeID() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if len(c.cs) == 0 {
		return 0
	}
	id := c.cs[0].ID()
	for _, cp := range c.cs[1:] {
		if n := cp.ID(); n > id {
			id = n
		}
	}
	return id + 1
}

// Bounds returns the bounding rectangle of the positions of the components
// matching px on the X axis and py on the Y axis. If py is nil, px is used for
// both axes; a nil px matches every component. The zero Rect is returned if
// no component matches either predicate.
//
func (c *Circuit) Bounds(px, py func(Component) bool) Rect {
	if py == nil {
		py = px
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	var r Rect
	var okX, okY bool
	for _, cp := range c.cs {
		p := cp.Position()
		if px == nil || px(cp) {
			if !okX || p.X < r.Min.X {
				r.Min.X = p.X
			}
			if !okX || p.X > r.Max.X {
				r.Max.X = p.X
			}
			okX = true
		}
		if py == nil || py(cp) {
			if !okY || p.Y < r.Min.Y {
				r.Min.Y = p.Y
			}
			if !okY || p.Y > r.Max.Y {
				r.Max.Y = p.Y
			}
			okY = true
		}
	}
	if !okX || !okY {
		return Rect{}
	}
	return r
}

// Tick advances the simulation by one step: it clears the primary lane maps,
// drives every component once in registration order and commits the primary
// lane maps into the secondary ones. Lanes nobody drove keep their previous
// state.
//
// Tick panics if c is virtual.
//
func (c *Circuit) Tick() {
	if c.virtual {
		panic(errors.New("cannot simulate a virtual circuit"))
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.nets {
		if n := &c.nets[i]; n.live {
			clear(n.pri)
		}
	}
	for _, cp := range c.cs {
		cp.Drive(&c.io)
	}
	for i := range c.nets {
		if n := &c.nets[i]; n.live {
			for lane, s := range n.pri {
				n.sec[lane] = s
			}
		}
	}
	c.ticks++
}

// Reset clears the primary lane maps, forces every known lane to Low and
// resets all components.
//
func (c *Circuit) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.nets {
		n := &c.nets[i]
		if !n.live {
			continue
		}
		clear(n.pri)
		for lane := range n.sec {
			n.sec[lane] = Low
		}
	}
	for _, cp := range c.cs {
		cp.Reset()
	}
	c.log.Printf("reset %d components", len(c.cs))
}

// NetState returns the committed state of the default lane of the network n
// belongs to. It returns Floating if n is not connected to anything or if the
// lane was never driven.
//
func (c *Circuit) NetState(n Node) NetState {
	return c.LaneState(n, DefaultLane)
}

// LaneState returns the committed state of the given lane of the network n
// belongs to.
//
func (c *Circuit) LaneState(n Node, lane string) NetState {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.get(n, lane)
}

// SetNetState drives s onto the default lane of the network n belongs to.
//
func (c *Circuit) SetNetState(n Node, s NetState) {
	c.SetLaneState(n, DefaultLane, s)
}

// SetLaneState drives s onto a lane of the network n belongs to. The state is
// combined with the states already driven this tick and is immediately
// visible to readers. It is a no-op if n is not in any network.
//
func (c *Circuit) SetLaneState(n Node, lane string, s NetState) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if nw := c.netFor(n); nw != nil {
		nw.sec[lane] = nw.drive(lane, s, c.policy)
	}
}

// WriteLanes drives all the lane states in lanes onto the network n belongs
// to, like SetLaneState.
//
func (c *Circuit) WriteLanes(n Node, lanes map[string]NetState) {
	if len(lanes) == 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if nw := c.netFor(n); nw != nil {
		for lane, s := range lanes {
			nw.sec[lane] = nw.drive(lane, s, c.policy)
		}
	}
}

// LaneMap returns a copy of the committed lane states of the network n
// belongs to. It returns false if n is not in any network.
//
func (c *Circuit) LaneMap(n Node) (map[string]NetState, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	nw := c.netFor(n)
	if nw == nil {
		return nil, false
	}
	return nw.lanes(), true
}

// IsNodeConnected returns true if n is in a network with at least one other
// node.
//
func (c *Circuit) IsNodeConnected(n Node) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	nw := c.netFor(n)
	return nw != nil && len(nw.nodes) > 1
}

// NetOf returns the handle of the network n belongs to. The handle becomes
// invalid after any structural edit.
//
func (c *Circuit) NetOf(n Node) (NetID, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.netOf(n)
}

// Members returns a copy of the nodes in network id. It returns false if id
// no longer refers to a live network.
//
func (c *Circuit) Members(id NetID) ([]Node, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	nw := c.net(id)
	if nw == nil {
		return nil, false
	}
	return append([]Node(nil), nw.nodes...), true
}

// NetCount returns the number of networks.
//
func (c *Circuit) NetCount() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.netCount()
}

func (c *Circuit) get(n Node, lane string) NetState {
	if nw := c.netFor(n); nw != nil {
		return nw.sec[lane]
	}
	return Floating
}
