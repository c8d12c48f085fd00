package filterexpr

import (
	"fmt"
	"strings"
)

// Order is a parsed order_by clause.
type Order struct {
	Key  string
	Desc bool
}

// DefaultOrder sorts newest first.
var DefaultOrder = Order{Key: "submitted_at", Desc: true}

var orderKeys = map[string]struct{}{
	"submitted_at": {},
	"score":        {},
	"word":         {},
	"difficulty":   {},
}

// ParseOrderBy parses `"<key> [desc|asc]"` against the whitelisted keys.
// A blank input yields DefaultOrder.
func ParseOrderBy(orderBy string) (Order, error) {
	orderBy = strings.TrimSpace(orderBy)
	if orderBy == "" {
		return DefaultOrder, nil
	}

	fields := strings.Fields(strings.ToLower(orderBy))
	if len(fields) > 2 {
		return Order{}, fmt.Errorf("invalid order_by %q", orderBy)
	}

	key := fields[0]
	if _, ok := orderKeys[key]; !ok {
		return Order{}, fmt.Errorf("unknown order_by key %q", key)
	}

	order := Order{Key: key}
	if len(fields) == 2 {
		switch fields[1] {
		case "desc":
			order.Desc = true
		case "asc":
		default:
			return Order{}, fmt.Errorf("invalid order_by direction %q", fields[1])
		}
	}
	return order, nil
}
