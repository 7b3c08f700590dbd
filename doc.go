/*
Package netsim provides the simulation engine of a digital logic circuit editor.

Components own nodes (connection points). Nodes at the same position, or
explicitly linked together like the two ends of a wire, form a network. The
Circuit keeps track of these networks as components are added, moved or
removed, and runs the simulation one tick at a time.

Each network carries any number of named lanes, so that a single wire can
carry a whole bus. Single bit components use DefaultLane. Lane states are
Floating (undriven), Low, High, or ShortCircuit when two drivers disagree.
How disagreements are resolved is selected by the circuit's Policy.

A tick clears the states driven during the previous tick, calls every
component's Drive method and commits the new states. Components read the
states committed by the previous tick, so the order in which they are driven
does not matter:

	c := netsim.NewCircuit(nil)
	c.Add(sw)   // drives its output node
	c.Add(lamp) // reads its input node, at the same position
	c.Tick()    // the switch state is now on the network
	c.Tick()    // and the lamp has seen it

The circuit never schedules ticks by itself. See cmd/netsim for a driver
running ticks at a fixed rate.

Package netlib provides a library of ready made components.
*/
package netsim
