package formatter

import (
	"github.com/xlab/treeprint"

	"github.com/oakwood-commons/confviz/internal/document"
)

// TreeOptions controls tree output.
type TreeOptions struct {
	// Root labels the top of the tree; "." when empty.
	Root string
	// NoValues hides leaf values.
	NoValues bool
	// MaxDepth limits nesting below the root (0 = unlimited).
	MaxDepth int
	// MaxStringLen clips leaf values (0 = unlimited).
	MaxStringLen int
}

// FormatTree renders a document as an ASCII tree in source key order.
func FormatTree(doc *document.Value, opts TreeOptions) string {
	var tree treeprint.Tree
	if opts.Root != "" {
		tree = treeprint.NewWithRoot(opts.Root)
	} else {
		tree = treeprint.New()
	}
	addChildren(tree, doc, opts, 0)
	return tree.String()
}

func addChildren(branch treeprint.Tree, v *document.Value, opts TreeOptions, depth int) {
	switch v.Kind() {
	case document.ObjectKind:
		for _, key := range v.Keys() {
			child, _ := v.Get(key)
			addValue(branch, key, child, opts, depth)
		}
	case document.ArrayKind:
		for i := 0; i < v.Len(); i++ {
			addValue(branch, indexLabel(i), v.Index(i), opts, depth)
		}
	default:
		branch.AddNode(scalarText(v, opts.MaxStringLen))
	}
}

func addValue(branch treeprint.Tree, key string, v *document.Value, opts TreeOptions, depth int) {
	if opts.MaxDepth > 0 && depth >= opts.MaxDepth {
		branch.AddNode(formatKeyValue(key, ellipsis))
		return
	}
	if empty := emptyText(v); empty != "" {
		if opts.NoValues {
			branch.AddNode(key)
		} else {
			branch.AddNode(formatKeyValue(key, empty))
		}
		return
	}
	switch v.Kind() {
	case document.ObjectKind, document.ArrayKind:
		addChildren(branch.AddBranch(key), v, opts, depth+1)
	default:
		if opts.NoValues {
			branch.AddNode(key)
		} else {
			branch.AddNode(formatKeyValue(key, scalarText(v, opts.MaxStringLen)))
		}
	}
}
