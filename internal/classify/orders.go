package classify

import (
	"strings"

	"github.com/sjtrotter/dashbuddy/pkg/domain"
)

const (
	idSuffixStoreName  = "store_name"
	idSuffixOrderScope = "order_item"
	idSuffixOrderType  = "order_type"
)

// ExtractOrders groups the display-name leaves of an offer card into
// component orders.
//
// Each "store_name" leaf is grouped under its nearest enclosing order
// scope. Within a scope, a sibling type label classifies the order as a
// plain pickup or a shop-for-items order, and a sibling count label
// ("(3 items)" vs "(2 orders)") decides whether the scope is one order
// with N items or N separate single-item orders. The counted noun is the
// discriminator: "order" splits the scope, anything else does not.
func ExtractOrders(root *domain.Node) []domain.OrderLine {
	names := root.FindAll(func(n *domain.Node) bool {
		return n.HasIDSuffix(idSuffixStoreName) && strings.TrimSpace(n.Text) != ""
	})
	if len(names) == 0 {
		return nil
	}

	type scopeGroup struct {
		scope *domain.Node
		names []*domain.Node
	}
	var groups []*scopeGroup
	byScope := make(map[*domain.Node]*scopeGroup)

	for _, name := range names {
		scope := name.NearestAncestor(func(n *domain.Node) bool {
			return n.HasIDSuffix(idSuffixOrderScope)
		})
		if scope == nil {
			scope = name.Parent()
		}
		if scope == nil {
			scope = name
		}
		g, ok := byScope[scope]
		if !ok {
			g = &scopeGroup{scope: scope}
			byScope[scope] = g
			groups = append(groups, g)
		}
		g.names = append(g.names, name)
	}

	var out []domain.OrderLine
	for _, g := range groups {
		kind := scopeOrderKind(g.scope)
		count, noun := scopeCount(g.scope)

		for _, name := range g.names {
			merchant := strings.TrimSpace(name.Text)
			switch {
			case noun == "order" && count > 1:
				// N separate single-item orders from one merchant row.
				for i := 0; i < count; i++ {
					out = append(out, domain.OrderLine{Merchant: merchant, Kind: kind, ItemCount: 1})
				}
			case count > 0:
				out = append(out, domain.OrderLine{Merchant: merchant, Kind: kind, ItemCount: count})
			default:
				out = append(out, domain.OrderLine{Merchant: merchant, Kind: kind, ItemCount: 1})
			}
		}
	}
	return out
}

func scopeOrderKind(scope *domain.Node) domain.OrderKind {
	typeNode := scope.FindFirst(func(n *domain.Node) bool {
		return n.HasIDSuffix(idSuffixOrderType)
	})
	if typeNode != nil && typeNode.TextContains("shop") {
		return domain.OrderShop
	}
	// Without an explicit type label the scope text itself may carry it.
	if typeNode == nil && scope.Exists(func(n *domain.Node) bool { return n.TextContains("shop for items") }) {
		return domain.OrderShop
	}
	return domain.OrderPickup
}

func scopeCount(scope *domain.Node) (int, string) {
	countNode := scope.FindFirst(func(n *domain.Node) bool {
		_, _, ok := ParseItemCount(n.Text)
		return ok
	})
	if countNode == nil {
		return 0, ""
	}
	n, noun, _ := ParseItemCount(countNode.Text)
	return n, noun
}
