package tree_test

import (
	"fmt"

	"github.com/matzehuels/jsontree/pkg/document"
	"github.com/matzehuels/jsontree/pkg/tree"
)

func ExampleBuild() {
	v, err := document.ParseJSON([]byte(`{"items":[{"name":"item1"},{"name":"item2"}]}`))
	if err != nil {
		fmt.Println("Error:", err)
		return
	}

	d := tree.Build(v)
	for _, n := range d.Nodes {
		fmt.Printf("%-8s %4.0f %4.0f  %s\n", n.Type, n.Position.X, n.Position.Y, n.Label)
	}
	fmt.Println("edges:", len(d.Edges))
	// Output:
	// object    100   40  $
	// array     400   40  $.items
	// object    700   40  $.items[0]
	// primitive 1000   40  $.items[0].name: item1
	// object    700  160  $.items[1]
	// primitive 1000  160  $.items[1].name: item2
	// edges: 5
}
