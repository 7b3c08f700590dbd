// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package netsim

// NetID is a handle to a network in a circuit. Networks are torn down and
// rebuilt on every structural edit; a stale handle is detected and rejected.
//
// The zero NetID never refers to a network.
//
type NetID struct {
	slot, gen uint32
}

// A network is a set of connected nodes together with its lane maps.
//
type network struct {
	nodes []Node
	pri   map[string]NetState // states driven during the current tick
	sec   map[string]NetState // states committed by the last tick
	gen   uint32
	live  bool
}

// drive combines s into the primary state of lane and returns the result.
//
func (n *network) drive(lane string, s NetState, p Policy) NetState {
	r := Combine(n.pri[lane], s, p)
	n.pri[lane] = r
	return r
}

func (n *network) lanes() map[string]NetState {
	m := make(map[string]NetState, len(n.sec))
	for k, v := range n.sec {
		m[k] = v
	}
	return m
}

func (c *Circuit) net(id NetID) *network {
	if int(id.slot) >= len(c.nets) {
		return nil
	}
	n := &c.nets[id.slot]
	if !n.live || n.gen != id.gen {
		return nil
	}
	return n
}

// netOf returns the network n belongs to. Registered nodes are found by
// identity, other nodes by comparing them with every network member.
//
func (c *Circuit) netOf(n Node) (NetID, bool) {
	if id, ok := c.owner[n]; ok {
		return id, true
	}
	for i := range c.nets {
		nw := &c.nets[i]
		if !nw.live {
			continue
		}
		for _, m := range nw.nodes {
			if m.Equal(n) {
				return NetID{uint32(i), nw.gen}, true
			}
		}
	}
	return NetID{}, false
}

func (c *Circuit) netFor(n Node) *network {
	if id, ok := c.netOf(n); ok {
		return c.net(id)
	}
	return nil
}

func (c *Circuit) netCount() int {
	return len(c.nets) - len(c.free)
}

// newNet allocates a network for nodes with empty lane maps. Nodes that
// already belong to a network are only claimed if claim is true.
//
func (c *Circuit) newNet(nodes []Node, claim bool) NetID {
	var slot uint32
	if k := len(c.free); k > 0 {
		slot = c.free[k-1]
		c.free = c.free[:k-1]
	} else {
		slot = uint32(len(c.nets))
		c.nets = append(c.nets, network{})
	}
	n := &c.nets[slot]
	n.gen++
	n.live = true
	n.nodes = nodes
	n.pri = make(map[string]NetState)
	n.sec = make(map[string]NetState)
	id := NetID{slot, n.gen}
	for _, m := range nodes {
		if _, ok := c.owner[m]; claim || !ok {
			c.owner[m] = id
		}
	}
	return id
}

// removeNet tears down network id and returns its nodes.
//
func (c *Circuit) removeNet(id NetID) []Node {
	n := c.net(id)
	if n == nil {
		return nil
	}
	nodes := n.nodes
	for _, m := range nodes {
		if c.owner[m] == id {
			delete(c.owner, m)
		}
	}
	n.nodes, n.pri, n.sec = nil, nil, nil
	n.live = false
	c.free = append(c.free, id.slot)
	return nodes
}

// nodeSet is an insertion ordered set of nodes.
//
type nodeSet struct {
	m     map[Node]struct{}
	nodes []Node
}

func newNodeSet() *nodeSet {
	return &nodeSet{m: make(map[Node]struct{})}
}

func (s *nodeSet) add(n Node) {
	if _, ok := s.m[n]; !ok {
		s.m[n] = struct{}{}
		s.nodes = append(s.nodes, n)
	}
}

func (s *nodeSet) has(n Node) bool {
	_, ok := s.m[n]
	return ok
}

// layout is a snapshot of every registered node, indexed by position.
//
type layout struct {
	nodes []Node
	at    map[Point][]Node
}

func (c *Circuit) layout(excluded *nodeSet) *layout {
	l := &layout{at: make(map[Point][]Node)}
	for _, cp := range c.cs {
		for _, n := range cp.Nodes() {
			if excluded != nil && excluded.has(n) {
				continue
			}
			l.nodes = append(l.nodes, n)
			p := n.Position()
			l.at[p] = append(l.at[p], n)
		}
	}
	return l
}

// groupNode creates a network from every node equal to seed plus all nodes
// sharing a position with one of them. Nodes may still belong to another
// network after this; combineNets resolves that. It returns false if no
// registered node is equal to seed.
//
func (c *Circuit) groupNode(l *layout, seed Node) (NetID, bool) {
	set := newNodeSet()
	for _, n := range l.nodes {
		if !n.Equal(seed) {
			continue
		}
		set.add(n)
		for _, m := range l.at[n.Position()] {
			set.add(m)
		}
	}
	if len(set.nodes) == 0 {
		return NetID{}, false
	}
	return c.newNet(set.nodes, false), true
}

// combineNets merges network id with every other network sharing a node with
// it, into a new network.
//
func (c *Circuit) combineNets(id NetID) NetID {
	set := newNodeSet()
	for _, n := range c.removeNet(id) {
		if other, ok := c.owner[n]; ok {
			for _, m := range c.removeNet(other) {
				set.add(m)
			}
		} else {
			set.add(n)
		}
	}
	return c.newNet(set.nodes, true)
}

// reconnect tears down the networks of the given nodes and rebuilds the
// partition of their members from the current layout. If excludeSelf is
// true, nodes themselves are left out.
//
func (c *Circuit) reconnect(nodes []Node, excludeSelf bool) {
	cand := newNodeSet()
	for _, n := range nodes {
		if id, ok := c.netOf(n); ok {
			for _, m := range c.removeNet(id) {
				cand.add(m)
			}
		} else {
			cand.add(n)
		}
	}
	var excluded *nodeSet
	if excludeSelf {
		excluded = newNodeSet()
		for _, n := range nodes {
			excluded.add(n)
		}
	}
	l := c.layout(excluded)
	for _, n := range cand.nodes {
		if id, ok := c.groupNode(l, n); ok {
			c.combineNets(id)
		}
	}
}
