// Package types provides shared types for the studio service.
package types

// NodeKind classifies what role a node plays in a workflow.
type NodeKind string

const (
	NodeKindTrigger  NodeKind = "trigger"
	NodeKindAction   NodeKind = "action"
	NodeKindFunction NodeKind = "function"
	NodeKindWebhook  NodeKind = "webhook"
)

// Valid reports whether the kind belongs to the closed set.
func (k NodeKind) Valid() bool {
	switch k {
	case NodeKindTrigger, NodeKindAction, NodeKindFunction, NodeKindWebhook:
		return true
	}
	return false
}

// NodeKinds lists the closed set of kinds in a stable order.
func NodeKinds() []NodeKind {
	return []NodeKind{NodeKindTrigger, NodeKindAction, NodeKindFunction, NodeKindWebhook}
}

// WorkflowStatus is the informational state shown on the dashboard.
type WorkflowStatus string

const (
	WorkflowStatusIdle    WorkflowStatus = "idle"
	WorkflowStatusRunning WorkflowStatus = "running"
	WorkflowStatusSuccess WorkflowStatus = "success"
	WorkflowStatusError   WorkflowStatus = "error"
)

// Position is the top-left anchor of a node's rendered box.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Node is a unit of work in a workflow graph.
type Node struct {
	ID       string         `json:"id"`
	Name     string         `json:"name"`
	Kind     NodeKind       `json:"type"`
	Position Position       `json:"position"`
	Config   map[string]any `json:"data,omitempty"`
	Icon     string         `json:"icon,omitempty"`
}

// Clone returns a deep copy of the node.
func (n Node) Clone() Node {
	out := n
	if n.Config != nil {
		out.Config = make(map[string]any, len(n.Config))
		for k, v := range n.Config {
			out.Config[k] = v
		}
	}
	return out
}

// Connection is a directed edge from one node's output to another's input.
type Connection struct {
	ID     string `json:"id"`
	Source string `json:"source"`
	Target string `json:"target"`
}

// Workflow is the aggregate of nodes and connections being designed.
// Node and connection order is insertion order; it is used for stable
// iteration only and carries no topological meaning.
type Workflow struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	Description string         `json:"description,omitempty"`
	Active      bool           `json:"active"`
	Status      WorkflowStatus `json:"status,omitempty"`
	Nodes       []Node         `json:"nodes"`
	Connections []Connection   `json:"connections"`
	LastRun     string         `json:"lastRun,omitempty"`
}

// Clone returns a deep copy. Mutation always goes through a clone so that
// consumers holding a previous reference never observe a partial update.
func (w *Workflow) Clone() *Workflow {
	if w == nil {
		return nil
	}
	out := *w
	if w.Nodes != nil {
		out.Nodes = make([]Node, len(w.Nodes))
		for i, n := range w.Nodes {
			out.Nodes[i] = n.Clone()
		}
	}
	if w.Connections != nil {
		out.Connections = make([]Connection, len(w.Connections))
		copy(out.Connections, w.Connections)
	}
	return &out
}

// FindNode returns the node with the given id, or false when absent.
func (w *Workflow) FindNode(id string) (Node, bool) {
	for _, n := range w.Nodes {
		if n.ID == id {
			return n, true
		}
	}
	return Node{}, false
}
