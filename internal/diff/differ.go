package diff

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	jsonpatch "github.com/evanphx/json-patch"
	"github.com/go-logr/logr"
	diffpatch "github.com/sergi/go-diff/diffmatchpatch"

	"github.com/oakwood-commons/confviz/internal/document"
)

// Unavailable is shown in place of the structural diff when none can be produced.
const Unavailable = "Error generating diff or diff engine not available."

// Format names a Differ implementation.
type Format string

const (
	FormatMergePatch Format = "merge-patch"
	FormatLines      Format = "lines"
)

// Formats lists the accepted Format values.
var Formats = []Format{FormatMergePatch, FormatLines}

// ErrNoChanges is returned by differs when the documents are equal. Callers render it as
// an empty delta rather than the placeholder.
var ErrNoChanges = errors.New("documents are identical")

// Differ produces a machine-readable delta between two documents.
type Differ interface {
	Diff(a, b *document.Value) (string, error)
}

// New returns the Differ for f.
func New(f Format) (Differ, error) {
	switch f {
	case FormatMergePatch, "":
		return MergePatchDiffer{}, nil
	case FormatLines:
		return LineDiffer{}, nil
	default:
		return nil, fmt.Errorf("unknown diff format %q (want one of %v)", f, Formats)
	}
}

// MergePatchDiffer describes b as an RFC 7386 merge patch applied to a.
type MergePatchDiffer struct{}

func (MergePatchDiffer) Diff(a, b *document.Value) (string, error) {
	left, err := a.MarshalJSON()
	if err != nil {
		return "", err
	}
	right, err := b.MarshalJSON()
	if err != nil {
		return "", err
	}
	patch, err := jsonpatch.CreateMergePatch(left, right)
	if err != nil {
		return "", fmt.Errorf("create merge patch: %w", err)
	}
	if string(patch) == "{}" {
		return "", ErrNoChanges
	}
	var out bytes.Buffer
	if err := json.Indent(&out, patch, "", "  "); err != nil {
		return "", err
	}
	return out.String(), nil
}

// LineDiffer compares the indented documents line by line.
type LineDiffer struct{}

func (LineDiffer) Diff(a, b *document.Value) (string, error) {
	left, err := a.Indented()
	if err != nil {
		return "", err
	}
	right, err := b.Indented()
	if err != nil {
		return "", err
	}
	dmp := diffpatch.New()
	l, r, lines := dmp.DiffLinesToChars(left+"\n", right+"\n")
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(l, r, false), lines)

	var out strings.Builder
	changed := false
	for _, d := range diffs {
		prefix := "  "
		switch d.Type {
		case diffpatch.DiffInsert:
			prefix, changed = "+ ", true
		case diffpatch.DiffDelete:
			prefix, changed = "- ", true
		}
		for _, line := range strings.SplitAfter(d.Text, "\n") {
			if line == "" {
				continue
			}
			out.WriteString(prefix)
			out.WriteString(line)
		}
	}
	if !changed {
		return "", ErrNoChanges
	}
	return strings.TrimRight(out.String(), "\n"), nil
}

// Text runs d and folds failures into the placeholder. A nil differ is unavailable.
// Identical documents produce an empty string.
func Text(d Differ, a, b *document.Value, log logr.Logger) (text string) {
	if d == nil {
		return Unavailable
	}
	defer func() {
		if r := recover(); r != nil {
			log.Info("diff engine panicked", "panic", fmt.Sprint(r))
			text = Unavailable
		}
	}()
	out, err := d.Diff(a, b)
	switch {
	case errors.Is(err, ErrNoChanges):
		return ""
	case err != nil:
		log.Info("diff failed", "error", err.Error())
		return Unavailable
	}
	return out
}
