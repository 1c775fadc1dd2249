package model

// FlatNode is a node with a depth and breadcrumb instead of children.
type FlatNode struct {
	Path   Path   `yaml:"p"            json:"p"`
	Role   Role   `yaml:"r"            json:"r"`
	Name   string `yaml:"n"            json:"n"`
	State  string `yaml:"s,omitempty"  json:"s,omitempty"`
	Depth  int    `yaml:"d"            json:"d"`
	Crumbs string `yaml:"bc,omitempty" json:"bc,omitempty"`
}

// FlattenNodes converts the tree below root into a flat list in traversal
// order. The root itself is not included. Crumbs shows the ancestor roles
// joined with " > ".
func FlattenNodes(root *Node) []FlatNode {
	var result []FlatNode
	for _, c := range root.Children {
		flattenRecursive(c, "", 0, &result)
	}
	return result
}

func flattenRecursive(n *Node, parentCrumbs string, depth int, result *[]FlatNode) {
	*result = append(*result, FlatNode{
		Path:   n.Path,
		Role:   n.Role,
		Name:   n.Name,
		State:  n.State,
		Depth:  depth,
		Crumbs: parentCrumbs,
	})

	crumbs := n.Role.String()
	if parentCrumbs != "" {
		crumbs = parentCrumbs + " > " + crumbs
	}
	for _, c := range n.Children {
		flattenRecursive(c, crumbs, depth+1, result)
	}
}
