package domain

import (
	"encoding/json"
	"strings"
)

// Node is one element of a captured UI tree. A tree is immutable for the
// lifetime of the snapshot it came from: queries never mutate it, and the
// capture layer builds a fresh tree for every observed UI change.
//
// Identity for matching purposes is structural (Kind + ResourceID + Text).
// Pointer identity is meaningless across snapshots.
type Node struct {
	// Kind is the element class reported by the platform (e.g. "TextView").
	Kind string `json:"kind"`

	// ResourceID is the platform resource identifier, if any. It is opaque
	// and namespaced by the third party's build; matchers compare by suffix
	// only, because the namespace is not stable across app versions.
	ResourceID string `json:"resource_id,omitempty"`

	// Text is the visible text of the element, if any.
	Text string `json:"text,omitempty"`

	// Desc is the accessible description of the element, if any.
	Desc string `json:"desc,omitempty"`

	// Children are owned by this node, in capture order.
	Children []*Node `json:"children,omitempty"`

	// parent is a non-owning back-reference used for upward lookup only.
	// Rebuilt after deserialization; the links are lost on the wire.
	parent *Node
}

// DecodeTree unmarshals a captured tree and rebuilds parent back-references.
func DecodeTree(data []byte) (*Node, error) {
	var root Node
	if err := json.Unmarshal(data, &root); err != nil {
		return nil, err
	}
	root.RebuildParents()
	return &root, nil
}

// RebuildParents relinks the parent back-reference of every descendant.
func (n *Node) RebuildParents() {
	for _, c := range n.Children {
		c.parent = n
		c.RebuildParents()
	}
}

// Parent returns the parent node, or nil at the root.
func (n *Node) Parent() *Node {
	return n.parent
}

// FindFirst returns the first node matching pred in depth-first pre-order,
// or nil if none matches.
func (n *Node) FindFirst(pred func(*Node) bool) *Node {
	if pred(n) {
		return n
	}
	for _, c := range n.Children {
		if m := c.FindFirst(pred); m != nil {
			return m
		}
	}
	return nil
}

// FindAll returns every node matching pred, in the same depth-first
// pre-order as FindFirst.
func (n *Node) FindAll(pred func(*Node) bool) []*Node {
	var out []*Node
	n.walk(func(c *Node) {
		if pred(c) {
			out = append(out, c)
		}
	})
	return out
}

// Exists reports whether any node matches pred.
func (n *Node) Exists(pred func(*Node) bool) bool {
	return n.FindFirst(pred) != nil
}

func (n *Node) walk(fn func(*Node)) {
	fn(n)
	for _, c := range n.Children {
		c.walk(fn)
	}
}

// HasIDSuffix reports whether the node's resource identifier ends with s.
// Suffix comparison is the only supported identifier match; the prefix is
// build-dependent namespace noise.
func (n *Node) HasIDSuffix(s string) bool {
	return s != "" && strings.HasSuffix(n.ResourceID, s)
}

// TextEquals reports whether the node's visible text equals s, ignoring
// case and surrounding whitespace.
func (n *Node) TextEquals(s string) bool {
	return strings.EqualFold(strings.TrimSpace(n.Text), strings.TrimSpace(s))
}

// TextContains reports whether the node's visible text contains s,
// ignoring case.
func (n *Node) TextContains(s string) bool {
	return strings.Contains(strings.ToLower(n.Text), strings.ToLower(s))
}

// VisibleTexts returns every non-empty visible text in the subtree, in
// depth-first pre-order.
func (n *Node) VisibleTexts() []string {
	var out []string
	n.walk(func(c *Node) {
		if t := strings.TrimSpace(c.Text); t != "" {
			out = append(out, t)
		}
	})
	return out
}

// NearestAncestor walks up the parent chain (excluding n itself) and
// returns the first ancestor matching pred, or nil.
func (n *Node) NearestAncestor(pred func(*Node) bool) *Node {
	for p := n.parent; p != nil; p = p.parent {
		if pred(p) {
			return p
		}
	}
	return nil
}
