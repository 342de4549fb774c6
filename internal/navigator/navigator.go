package navigator

import (
	"fmt"

	"github.com/oakwood-commons/confviz/internal/document"
)

// Node is one entry of the navigation tree. Scalars are leaves; no node is created for a
// scalar's own value.
type Node struct {
	Label    string
	Path     string
	Section  string
	Depth    int
	Kind     document.Kind
	Children []*Node
}

// Leaf reports whether the node has nothing to expand.
func (n *Node) Leaf() bool {
	return len(n.Children) == 0
}

// BuildSectionTrees returns one root node per top-level key of root, in source order.
// Non-object roots have no sections.
func BuildSectionTrees(root *document.Value) []*Node {
	if root.Kind() != document.ObjectKind {
		return nil
	}
	keys := root.Keys()
	out := make([]*Node, 0, len(keys))
	for _, key := range keys {
		child, _ := root.Get(key)
		path := JoinKey("", key)
		out = append(out, &Node{
			Label:    key,
			Path:     path,
			Section:  key,
			Kind:     child.Kind(),
			Children: BuildTree(child, path, key, 1),
		})
	}
	return out
}

// BuildTree returns the child nodes of v, recursively. Every object member and array
// item contributes exactly one node labelled by its key or [index].
func BuildTree(v *document.Value, prefix, section string, depth int) []*Node {
	switch v.Kind() {
	case document.ObjectKind:
		keys := v.Keys()
		out := make([]*Node, 0, len(keys))
		for _, key := range keys {
			child, _ := v.Get(key)
			path := JoinKey(prefix, key)
			out = append(out, &Node{
				Label:    key,
				Path:     path,
				Section:  section,
				Depth:    depth,
				Kind:     child.Kind(),
				Children: BuildTree(child, path, section, depth+1),
			})
		}
		return out
	case document.ArrayKind:
		out := make([]*Node, 0, v.Len())
		for i := 0; i < v.Len(); i++ {
			child := v.Index(i)
			path := JoinIndex(prefix, i)
			out = append(out, &Node{
				Label:    fmt.Sprintf("[%d]", i),
				Path:     path,
				Section:  section,
				Depth:    depth,
				Kind:     child.Kind(),
				Children: BuildTree(child, path, section, depth+1),
			})
		}
		return out
	default:
		return nil
	}
}

// Walk visits nodes depth-first in display order. Returning false stops the walk.
func Walk(nodes []*Node, fn func(*Node) bool) bool {
	for _, n := range nodes {
		if !fn(n) {
			return false
		}
		if !Walk(n.Children, fn) {
			return false
		}
	}
	return true
}

// Flatten lists the nodes visible when only the paths in expanded are open.
func Flatten(roots []*Node, expanded map[string]bool) []*Node {
	var out []*Node
	var visit func([]*Node)
	visit = func(nodes []*Node) {
		for _, n := range nodes {
			out = append(out, n)
			if expanded[n.Path] {
				visit(n.Children)
			}
		}
	}
	visit(roots)
	return out
}

// Find returns the node with the given path.
func Find(roots []*Node, path string) *Node {
	var found *Node
	Walk(roots, func(n *Node) bool {
		if n.Path == path {
			found = n
			return false
		}
		return true
	})
	return found
}

// Ancestors returns the paths of every node above path, root first.
func Ancestors(path string) []string {
	segs, err := ParsePath(path)
	if err != nil {
		return nil
	}
	out := make([]string, 0, len(segs))
	for i := 1; i < len(segs); i++ {
		out = append(out, ReconstructPath(segs[:i]))
	}
	return out
}

// Lookup resolves a path against a document root.
func Lookup(root *document.Value, path string) (*document.Value, error) {
	segs, err := ParsePath(path)
	if err != nil {
		return nil, err
	}
	cur := root
	for _, s := range segs {
		switch v := s.(type) {
		case Field:
			cur, err = member(cur, v.Name)
		case QuotedKey:
			cur, err = member(cur, v.Name)
		case ArrayIndex:
			if cur.Kind() != document.ArrayKind {
				return nil, fmt.Errorf("cannot index %s with [%d]", cur.Kind(), v.Index)
			}
			next := cur.Index(v.Index)
			if next == nil {
				return nil, fmt.Errorf("index %d out of range", v.Index)
			}
			cur = next
		}
		if err != nil {
			return nil, err
		}
	}
	return cur, nil
}

func member(v *document.Value, key string) (*document.Value, error) {
	if v.Kind() != document.ObjectKind {
		return nil, fmt.Errorf("cannot descend into %s at '%s'", v.Kind(), key)
	}
	child, ok := v.Get(key)
	if !ok {
		return nil, fmt.Errorf("key '%s' not found", key)
	}
	return child, nil
}
