package formatter

import (
	"fmt"
	"strings"

	"github.com/oakwood-commons/confviz/internal/document"
)

// MermaidOptions controls Mermaid flowchart output.
type MermaidOptions struct {
	// Direction is TD, LR, BT or RL. Default TD.
	Direction    string
	NoValues     bool
	MaxDepth     int
	MaxStringLen int
}

type mermaidBuilder struct {
	lines  []string
	nodeID int
	opts   MermaidOptions
}

// FormatMermaid renders a document as a Mermaid flowchart rooted at label.
func FormatMermaid(doc *document.Value, label string, opts MermaidOptions) string {
	if opts.Direction == "" {
		opts.Direction = "TD"
	}
	if label == "" {
		label = "root"
	}
	b := &mermaidBuilder{lines: []string{"graph " + opts.Direction}, opts: opts}
	root := b.nextID()
	b.addNode(root, label, "")
	b.children(root, doc, 0)
	return strings.Join(b.lines, "\n") + "\n"
}

func (b *mermaidBuilder) nextID() string {
	id := fmt.Sprintf("n%d", b.nodeID)
	b.nodeID++
	return id
}

func (b *mermaidBuilder) addNode(id, key, value string) {
	label := key
	if value != "" && !b.opts.NoValues {
		label = formatKeyValue(key, value)
	}
	// labels are emitted quoted
	label = strings.ReplaceAll(label, `"`, `'`)
	label = strings.ReplaceAll(label, "\r", "")
	label = strings.ReplaceAll(label, "\n", " ")
	b.lines = append(b.lines, fmt.Sprintf("    %s[%q]", id, label))
}

func (b *mermaidBuilder) addEdge(from, to string) {
	b.lines = append(b.lines, fmt.Sprintf("    %s --> %s", from, to))
}

func (b *mermaidBuilder) children(parent string, v *document.Value, depth int) {
	switch v.Kind() {
	case document.ObjectKind:
		for _, key := range v.Keys() {
			child, _ := v.Get(key)
			b.value(parent, key, child, depth)
		}
	case document.ArrayKind:
		for i := 0; i < v.Len(); i++ {
			b.value(parent, indexLabel(i), v.Index(i), depth)
		}
	default:
		id := b.nextID()
		b.addNode(id, scalarText(v, b.opts.MaxStringLen), "")
		b.addEdge(parent, id)
	}
}

func (b *mermaidBuilder) value(parent, key string, v *document.Value, depth int) {
	id := b.nextID()
	if b.opts.MaxDepth > 0 && depth >= b.opts.MaxDepth {
		b.addNode(id, ellipsis, "")
		b.addEdge(parent, id)
		return
	}
	if empty := emptyText(v); empty != "" {
		b.addNode(id, key, empty)
		b.addEdge(parent, id)
		return
	}
	switch v.Kind() {
	case document.ObjectKind, document.ArrayKind:
		b.addNode(id, key, "")
		b.addEdge(parent, id)
		b.children(id, v, depth+1)
	default:
		b.addNode(id, key, scalarText(v, b.opts.MaxStringLen))
		b.addEdge(parent, id)
	}
}
