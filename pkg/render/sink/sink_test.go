package sink

import (
	"github.com/matzehuels/jsontree/pkg/document"
	"github.com/matzehuels/jsontree/pkg/tree"
)

// sample builds {"user":{"name":"Ada"},"items":[1,2]}.
func sample() tree.Diagram {
	return tree.Build(document.Object(
		document.Member{Key: "user", Value: document.Object(
			document.Member{Key: "name", Value: document.String("Ada")},
		)},
		document.Member{Key: "items", Value: document.Array(
			document.Number(1),
			document.Number(2),
		)},
	))
}
