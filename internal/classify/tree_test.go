package classify_test

import (
	"github.com/sjtrotter/dashbuddy/pkg/domain"
)

// Tree-building helpers shared by the matcher tests. Resource identifiers
// carry a fake build namespace so suffix matching is actually exercised.

func group(children ...*domain.Node) *domain.Node {
	n := &domain.Node{Kind: "ViewGroup", Children: children}
	n.RebuildParents()
	return n
}

func idGroup(idSuffix string, children ...*domain.Node) *domain.Node {
	n := &domain.Node{Kind: "ViewGroup", ResourceID: "com.dd.dasher:id/" + idSuffix, Children: children}
	n.RebuildParents()
	return n
}

func text(s string) *domain.Node {
	return &domain.Node{Kind: "TextView", Text: s}
}

func idText(idSuffix, s string) *domain.Node {
	return &domain.Node{Kind: "TextView", ResourceID: "com.dd.dasher:id/" + idSuffix, Text: s}
}

func button(s string) *domain.Node {
	return &domain.Node{Kind: "Button", Text: s}
}
