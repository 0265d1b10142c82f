// Package locate resolves a user-typed path to a diagram node.
//
// The query is trimmed once, encoded with [jsonpath.Encode] and compared
// against node identifiers. Matching is exact: case and inner whitespace
// matter, and there is no partial or fuzzy matching.
//
//	r := locate.Locate("$.user.address.city", d.Nodes)
//	if r.Outcome == locate.Found {
//	    d.Highlight(r.ID)
//	}
package locate

import (
	"strings"

	"github.com/matzehuels/jsontree/pkg/errors"
	"github.com/matzehuels/jsontree/pkg/jsonpath"
	"github.com/matzehuels/jsontree/pkg/tree"
)

// Messages shown to the user for unsuccessful searches.
const (
	UsageHint      = "Enter a path like $.user.address.city or $.items[0].name"
	NoMatchMessage = "No match found"
)

// Outcome is the result kind of a search.
type Outcome int

const (
	InvalidQuery Outcome = iota
	NotFound
	Found
)

func (o Outcome) String() string {
	switch o {
	case InvalidQuery:
		return "invalid_query"
	case NotFound:
		return "not_found"
	case Found:
		return "found"
	default:
		return "unknown"
	}
}

// MarshalText encodes the outcome by name.
func (o Outcome) MarshalText() ([]byte, error) {
	return []byte(o.String()), nil
}

// Result describes a search. ID, Position and Node are set only when
// Outcome is Found.
type Result struct {
	Outcome  Outcome       `json:"outcome"`
	Query    string        `json:"query"`
	ID       string        `json:"id,omitempty"`
	Position tree.Position `json:"position"`
	Node     *tree.Node    `json:"node,omitempty"`
}

// Err converts an unsuccessful result into an error with a user message.
// It returns nil for Found.
func (r Result) Err() error {
	switch r.Outcome {
	case Found:
		return nil
	case InvalidQuery:
		return errors.New(errors.ErrCodeEmptyQuery, UsageHint)
	default:
		return errors.New(errors.ErrCodeNoMatch, NoMatchMessage)
	}
}

// Locate finds the node addressed by query. The first node with a matching
// identifier wins.
func Locate(query string, nodes []tree.Node) Result {
	q := strings.TrimSpace(query)
	if q == "" {
		return Result{Outcome: InvalidQuery, Query: q}
	}

	id := jsonpath.Encode(q)
	for i := range nodes {
		if nodes[i].ID == id {
			n := nodes[i]
			return Result{Outcome: Found, Query: q, ID: id, Position: n.Position, Node: &n}
		}
	}
	return Result{Outcome: NotFound, Query: q}
}
