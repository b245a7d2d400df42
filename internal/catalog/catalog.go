// Package catalog provides the node-kind palette backing the editor's
// "Add Node" surface: display metadata for each member of the closed kind
// set.
package catalog

import (
	"errors"
	"sync"

	"github.com/luminaflow/studio-go/pkg/types"
)

// ErrKindNotFound is returned when a kind is not in the catalog.
var ErrKindNotFound = errors.New("node kind not found")

// KindInfo describes how a node kind is presented and what role it plays.
type KindInfo struct {
	Kind        types.NodeKind `json:"kind"`
	Label       string         `json:"label"`
	Description string         `json:"description"`
	Color       string         `json:"color"`
	DefaultIcon string         `json:"default_icon"`
	Starts      bool           `json:"starts_workflow"` // triggers start a workflow; the others react
}

// Catalog is an in-memory, read-mostly kind registry.
type Catalog struct {
	mu    sync.RWMutex
	kinds map[types.NodeKind]KindInfo
	order []types.NodeKind
}

// New creates a catalog seeded with the built-in kinds.
func New() *Catalog {
	c := &Catalog{
		kinds: make(map[types.NodeKind]KindInfo),
	}
	for _, info := range builtinKinds() {
		c.kinds[info.Kind] = info
		c.order = append(c.order, info.Kind)
	}
	return c
}

// Get returns the info for a kind. Returns ErrKindNotFound if absent.
func (c *Catalog) Get(kind types.NodeKind) (KindInfo, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	info, ok := c.kinds[kind]
	if !ok {
		return KindInfo{}, ErrKindNotFound
	}
	return info, nil
}

// List returns all kinds in their seeded order.
func (c *Catalog) List() []KindInfo {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]KindInfo, 0, len(c.order))
	for _, k := range c.order {
		out = append(out, c.kinds[k])
	}
	return out
}

func builtinKinds() []KindInfo {
	return []KindInfo{
		{
			Kind:        types.NodeKindTrigger,
			Label:       "Trigger",
			Description: "Starts a workflow on a schedule or external signal",
			Color:       "green",
			DefaultIcon: "zap",
			Starts:      true,
		},
		{
			Kind:        types.NodeKindAction,
			Label:       "Action",
			Description: "Performs a side effect such as an HTTP request or email",
			Color:       "blue",
			DefaultIcon: "play",
		},
		{
			Kind:        types.NodeKindFunction,
			Label:       "Function",
			Description: "Transforms data with custom logic",
			Color:       "purple",
			DefaultIcon: "code",
		},
		{
			Kind:        types.NodeKindWebhook,
			Label:       "Webhook",
			Description: "Starts a workflow from an incoming HTTP call",
			Color:       "purple",
			DefaultIcon: "webhook",
			Starts:      true,
		},
	}
}
