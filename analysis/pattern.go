package analysis

import (
	"fmt"

	"github.com/rlch/gqlcore"
)

// ValidatePatterns runs Pass 4 (spec §4.6): for every GraphPattern, builds
// a connectivity graph over its element variables (nodes as vertices,
// edges connecting adjacent node patterns within a path) and reports
// DISCONNECTED_PATTERN when more than one connected component results.
func ValidatePatterns(prog *gql.Program, cfg gql.Config) []gql.Diagnostic {
	if !cfg.WarnOnDisconnectedPatterns {
		return nil
	}

	var diags []gql.Diagnostic

	gql.Walk(prog, gql.VisitorFunc(func(n gql.Node) bool {
		if gp, ok := n.(*gql.GraphPattern); ok {
			if d, disconnected := checkConnectivity(gp); disconnected {
				diags = append(diags, d)
			}
		}

		return true
	}))

	return diags
}

// unionFind is a minimal disjoint-set structure keyed by node identity
// string, used to group a GraphPattern's node patterns into connected
// components.
type unionFind struct {
	parent map[string]string
}

func newUnionFind() *unionFind {
	return &unionFind{parent: make(map[string]string)}
}

func (u *unionFind) find(x string) string {
	if _, ok := u.parent[x]; !ok {
		u.parent[x] = x
	}

	if u.parent[x] != x {
		u.parent[x] = u.find(u.parent[x])
	}

	return u.parent[x]
}

func (u *unionFind) union(a, b string) {
	ra, rb := u.find(a), u.find(b)
	if ra != rb {
		u.parent[ra] = rb
	}
}

// nodeKey returns a stable identity for a NodePattern: its declared
// variable name when present (so repeated references to the same variable
// across path patterns merge into one vertex, per spec §4.3's join-on-
// variable semantics), or a synthetic identifier unique to the pointer
// when anonymous.
func nodeKey(n *gql.NodePattern) string {
	if n.Variable != "" {
		return "$" + n.Variable
	}

	return fmt.Sprintf("#%p", n)
}

func checkConnectivity(gp *gql.GraphPattern) (gql.Diagnostic, bool) {
	uf := newUnionFind()

	var allKeys []string

	for _, path := range gp.Paths {
		lastKey := ""

		for _, el := range path.Elements {
			node, ok := el.(*gql.NodePattern)
			if !ok {
				continue
			}

			key := nodeKey(node)
			allKeys = append(allKeys, key)

			if lastKey != "" {
				uf.union(lastKey, key)
			}

			lastKey = key
		}
	}

	if len(allKeys) == 0 {
		return gql.Diagnostic{}, false
	}

	roots := make(map[string]bool)
	for _, k := range allKeys {
		roots[uf.find(k)] = true
	}

	if len(roots) <= 1 {
		return gql.Diagnostic{}, false
	}

	return gql.Diagnostic{
		Code:        gql.CodeDisconnectedPattern,
		Severity:    gql.SeverityWarning,
		Message:     "graph pattern has multiple disconnected components",
		PrimarySpan: gp.Span(),
	}, true
}
