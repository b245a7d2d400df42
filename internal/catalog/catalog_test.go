package catalog

import (
	"errors"
	"testing"

	"github.com/luminaflow/studio-go/pkg/types"
)

func TestCatalog(t *testing.T) {
	t.Run("seeds every valid node kind", func(t *testing.T) {
		c := New()

		for _, kind := range types.NodeKinds() {
			info, err := c.Get(kind)
			if err != nil {
				t.Fatalf("Get(%s) failed: %v", kind, err)
			}
			if info.Kind != kind {
				t.Errorf("info.Kind = %s, want %s", info.Kind, kind)
			}
			if info.Label == "" {
				t.Errorf("kind %s has no label", kind)
			}
		}
	})

	t.Run("unknown kind returns ErrKindNotFound", func(t *testing.T) {
		c := New()

		_, err := c.Get(types.NodeKind("database"))
		if !errors.Is(err, ErrKindNotFound) {
			t.Errorf("expected ErrKindNotFound, got %v", err)
		}
	})

	t.Run("list preserves seed order", func(t *testing.T) {
		c := New()

		infos := c.List()
		if len(infos) != len(types.NodeKinds()) {
			t.Fatalf("expected %d kinds, got %d", len(types.NodeKinds()), len(infos))
		}
		if infos[0].Kind != types.NodeKindTrigger {
			t.Errorf("first kind = %s, want %s", infos[0].Kind, types.NodeKindTrigger)
		}
	})

	t.Run("only triggers and webhooks start workflows", func(t *testing.T) {
		c := New()

		for _, info := range c.List() {
			starts := info.Kind == types.NodeKindTrigger || info.Kind == types.NodeKindWebhook
			if info.Starts != starts {
				t.Errorf("kind %s: Starts = %v, want %v", info.Kind, info.Starts, starts)
			}
		}
	})
}
