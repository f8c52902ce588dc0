package query

import (
	"fmt"
	"strings"
)

// PlanNode describes one deferred stage of a pipeline. Nodes are immutable
// once built and are shared between pipelines that reuse a stage.
type PlanNode struct {
	Op     string      // operation name, e.g. "Where", "Join"
	Detail string      // optional human-readable configuration
	Inputs []*PlanNode // upstream stages; joins have two
}

func newPlan(op, detail string, inputs ...*PlanNode) *PlanNode {
	return &PlanNode{Op: op, Detail: detail, Inputs: inputs}
}

// String returns the single-line description of the node.
func (n *PlanNode) String() string {
	if n == nil {
		return "Empty"
	}
	if n.Detail == "" {
		return n.Op
	}
	return fmt.Sprintf("%s(%s)", n.Op, n.Detail)
}

// Depth returns the number of stages on the longest path to a source.
func (n *PlanNode) Depth() int {
	if n == nil {
		return 0
	}
	deepest := 0
	for _, in := range n.Inputs {
		deepest = max(deepest, in.Depth())
	}
	return deepest + 1
}

// Explain renders the plan tree, root first, one stage per line.
func (n *PlanNode) Explain() string {
	var sb strings.Builder
	n.explain(&sb, 0)
	return sb.String()
}

func (n *PlanNode) explain(sb *strings.Builder, level int) {
	sb.WriteString(strings.Repeat("  ", level))
	sb.WriteString(n.String())
	sb.WriteString("\n")
	if n == nil {
		return
	}
	for _, in := range n.Inputs {
		in.explain(sb, level+1)
	}
}
