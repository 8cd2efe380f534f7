package sdghtml

import (
	"fmt"
	"strconv"

	"github.com/xlab/treeprint"
)

// Dump renders the node hierarchy below n for debugging. Tokens are shown with their kind and
// quoted text.
func Dump(n Node) string {
	tree := treeprint.NewWithRoot(nodeLabel(n))
	dumpChildren(tree, n)
	return tree.String()
}

func dumpChildren(tree treeprint.Tree, n Node) {
	for _, c := range n.Children() {
		if t, ok := c.(*Token); ok {
			tree.AddNode(nodeLabel(t))
			continue
		}
		dumpChildren(tree.AddBranch(nodeLabel(c)), c)
	}
}

func nodeLabel(n Node) string {
	switch n := n.(type) {
	case *Token:
		return n.Kind.String() + " " + strconv.Quote(n.Text())
	case *Element:
		return "Element <" + n.Name() + ">"
	case *OpeningTag:
		return "OpeningTag"
	case *ClosingTag:
		return "ClosingTag"
	case *Continuation:
		return "Continuation"
	case *Attributes:
		return "Attributes"
	case *Attribute:
		return "Attribute " + n.Key()
	case *AttributeValue:
		return "AttributeValue"
	case *Text:
		return "Text"
	case *Comment:
		return "Comment"
	case *Document:
		return "Document"
	default:
		return fmt.Sprintf("%T", n)
	}
}
