package nodelink_test

import (
	"fmt"
	"strings"

	"github.com/matzehuels/jsontree/pkg/document"
	"github.com/matzehuels/jsontree/pkg/render/nodelink"
	"github.com/matzehuels/jsontree/pkg/tree"
)

func ExampleToDOT() {
	d := tree.Build(document.Array(document.Null()))
	dot := nodelink.ToDOT(d, nodelink.Options{})

	for _, line := range strings.Split(dot, "\n") {
		if strings.Contains(line, "->") {
			fmt.Println(strings.TrimSpace(line))
		}
	}
	// Output:
	// "$" -> "$_brk_0_" [id="e_$_$_brk_0_"];
}
