// Package sankey models the flow graph handed to diagram renderers: a list
// of weighted directed edges between named nodes. Graphs are transient,
// derived fresh on every read, merged by concatenation, never mutated in
// place.
package sankey

import "fmt"

// Flow is one weighted edge. Colors are optional display hints carried
// through to the renderer.
type Flow struct {
	Source      string  `json:"source"`
	Target      string  `json:"target"`
	Value       float64 `json:"value"`
	SourceColor string  `json:"sourceColor,omitempty"`
	TargetColor string  `json:"targetColor,omitempty"`
}

// Node is a distinct endpoint appearing in the flow list.
type Node struct {
	ID    string `json:"id"`
	Color string `json:"color,omitempty"`
}

// Data is the renderer input contract.
type Data struct {
	Nodes []Node `json:"nodes"`
	Links []Flow `json:"links"`
}

// Graph is an ordered flow list. The zero value is usable.
type Graph struct {
	flows []Flow
}

// NewGraph builds a graph from initial flows.
func NewGraph(flows ...Flow) *Graph {
	g := &Graph{}
	g.Append(flows...)
	return g
}

// Append adds flows to the end of the list.
func (g *Graph) Append(flows ...Flow) {
	g.flows = append(g.flows, flows...)
}

// Merge concatenates another graph's flows onto this one. Merging is
// associative and order-preserving; node identity falls out of the union.
func (g *Graph) Merge(other *Graph) {
	if other == nil {
		return
	}
	g.flows = append(g.flows, other.flows...)
}

// Flows returns a copy of the edge list.
func (g *Graph) Flows() []Flow {
	out := make([]Flow, len(g.flows))
	copy(out, g.flows)
	return out
}

func (g *Graph) Len() int { return len(g.flows) }

// Nodes lists distinct endpoint ids in first-occurrence order, sources
// before targets within each flow. A node takes the first color any flow
// declares for it.
func (g *Graph) Nodes() []Node {
	var nodes []Node
	index := make(map[string]int)
	add := func(id, color string) {
		if i, ok := index[id]; ok {
			if nodes[i].Color == "" && color != "" {
				nodes[i].Color = color
			}
			return
		}
		index[id] = len(nodes)
		nodes = append(nodes, Node{ID: id, Color: color})
	}
	for _, f := range g.flows {
		add(f.Source, f.SourceColor)
		add(f.Target, f.TargetColor)
	}
	return nodes
}

// Data assembles the renderer contract: the derived node set plus the flow
// list.
func (g *Graph) Data() Data {
	return Data{Nodes: g.Nodes(), Links: g.Flows()}
}

// SankeyMATIC renders the graph in sankeymatic.com's plain-text input
// format, one "Source [value] Target" line per flow.
func (g *Graph) SankeyMATIC() string {
	out := ""
	for _, f := range g.flows {
		out += fmt.Sprintf("%s [%.2f] %s\n", f.Source, f.Value, f.Target)
	}
	return out
}
