package page

// Kind identifies a node of the page's render tree.
type Kind string

const (
	KindRoot     Kind = "root"
	KindHeader   Kind = "header"
	KindMain     Kind = "main"
	KindHero     Kind = "hero"
	KindAbout    Kind = "about"
	KindSkills   Kind = "skills"
	KindProjects Kind = "projects"
	KindContact  Kind = "contact"
	KindFooter   Kind = "footer"
	KindToaster  Kind = "toaster"
)

// Node is an opaque presentational unit. Containers carry the element they
// wrap their children in; leaves are rendered by the template named after
// their Kind.
type Node struct {
	Kind     Kind
	Tag      string
	Class    string
	Children []Node
}

// IsLeaf reports whether the node is rendered by a template of its own.
func (n Node) IsLeaf() bool {
	return n.Tag == ""
}

// Sections is the fixed order of the content sections inside <main>.
var Sections = []Kind{KindHero, KindAbout, KindSkills, KindProjects, KindContact}

// Compose builds the page's render tree. The order is fixed: a header, a
// main region holding the content sections, a footer and the toaster.
func Compose() Node {
	main := Node{Kind: KindMain, Tag: "main"}
	for _, k := range Sections {
		main.Children = append(main.Children, Node{Kind: k})
	}

	return Node{
		Kind:  KindRoot,
		Tag:   "div",
		Class: "min-h-screen bg-background",
		Children: []Node{
			{Kind: KindHeader},
			main,
			{Kind: KindFooter},
			{Kind: KindToaster},
		},
	}
}

// Walk visits n and its descendants depth first, in render order.
func Walk(n Node, fn func(Node)) {
	fn(n)
	for _, c := range n.Children {
		Walk(c, fn)
	}
}

// Leaves returns the kinds of the leaf nodes in render order.
func Leaves(n Node) []Kind {
	var out []Kind
	Walk(n, func(n Node) {
		if n.IsLeaf() {
			out = append(out, n.Kind)
		}
	})
	return out
}

func (n Node) clone() Node {
	c := n
	if n.Children != nil {
		c.Children = make([]Node, len(n.Children))
		for i, child := range n.Children {
			c.Children[i] = child.clone()
		}
	}
	return c
}
