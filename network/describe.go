package network

import (
	"fmt"

	"github.com/xlab/treeprint"
)

// Describe renders the topology and the current state of every node.
func (nw *Network) Describe() string {
	tree := treeprint.New()
	tree.SetValue(fmt.Sprintf("network: %d nodes, sink %d", len(nw.nodes), nw.sink.addr))
	for addr, node := range nw.nodes {
		status := node.Status().String()
		if nw.faulted[addr] {
			status = "excluded"
		}
		tree.AddNode(fmt.Sprintf("%s [%s] ip=%d in=%d out=%d steps=%d",
			node.Name, status, node.IP(), node.Input().Len(), node.OutputQueue().Len(), node.Steps()))
	}
	sink := tree.AddBranch(fmt.Sprintf("sink %d", nw.sink.addr))
	if nw.sink.has {
		sink.AddNode(fmt.Sprintf("last (%d, %d), %d received", nw.sink.last.X, nw.sink.last.Y, nw.sink.received))
	} else {
		sink.AddNode("empty")
	}
	return tree.String()
}

// DescribePipeline renders a chain of n amplifiers.
func DescribePipeline(phases []int64, feedback bool) string {
	tree := treeprint.New()
	kind := "linear"
	if feedback {
		kind = "feedback"
	}
	tree.SetValue(fmt.Sprintf("pipeline: %d amplifiers, %s", len(phases), kind))
	for i, phase := range phases {
		next := fmt.Sprintf("amp%d", i+1)
		if i == len(phases)-1 {
			next = "result"
			if feedback {
				next = "amp0"
			}
		}
		tree.AddNode(fmt.Sprintf("amp%d phase=%d -> %s", i, phase, next))
	}
	return tree.String()
}
