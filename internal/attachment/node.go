package attachment

import (
	"context"

	"voyage/shared/constant"
)

type node struct {
	name     string
	refs     []string
	remove   func(ctx context.Context) error
	children func(ctx context.Context) ([]Node, error)
}

// NewNode builds a Node from closures. children may be nil for leaves.
func NewNode(name string, refs []string, remove func(ctx context.Context) error, children func(ctx context.Context) ([]Node, error)) Node {
	return &node{name: name, refs: refs, remove: remove, children: children}
}

// Leaf is a node owning at most one reference and no children.
func Leaf(name, ref string, remove func(ctx context.Context) error) Node {
	refs := []string{}
	if ref != constant.Empty {
		refs = append(refs, ref)
	}

	return NewNode(name, refs, remove, nil)
}

func (n *node) String() string {
	return n.name
}

func (n *node) Refs() []string {
	return n.refs
}

func (n *node) Children(ctx context.Context) ([]Node, error) {
	if n.children == nil {
		return nil, nil
	}

	return n.children(ctx)
}

func (n *node) Remove(ctx context.Context) error {
	return n.remove(ctx)
}
