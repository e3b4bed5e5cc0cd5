package tree_test

import (
	"fmt"

	"github.com/matzehuels/awis/pkg/tree"
)

func ExampleRetrieve() {
	doc := tree.NewMapping(map[string]tree.Node{
		"TrafficData": tree.NewMapping(map[string]tree.Node{
			"Rank": tree.NewScalar("551"),
		}),
	})

	rank, ok := tree.Text(tree.Retrieve(doc, "TrafficData", "Rank"))
	fmt.Println(rank, ok)

	missing := tree.Retrieve(doc, "ContentData", "LinksInCount")
	fmt.Println(missing.Kind())
	// Output:
	// 551 true
	// absent
}
