package diff

import (
	"errors"
	"testing"

	"github.com/go-logr/logr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oakwood-commons/confviz/internal/document"
)

type failingDiffer struct{ panic bool }

func (f failingDiffer) Diff(_, _ *document.Value) (string, error) {
	if f.panic {
		panic("boom")
	}
	return "", errors.New("engine offline")
}

func TestMergePatchDiffer(t *testing.T) {
	a := document.MustParseJSON(`{"a": 1, "keep": true, "gone": "x"}`)
	b := document.MustParseJSON(`{"a": 2, "keep": true, "new": [1]}`)
	out, err := MergePatchDiffer{}.Diff(a, b)
	require.NoError(t, err)
	assert.JSONEq(t, `{"a": 2, "gone": null, "new": [1]}`, out)
	assert.Contains(t, out, "\n  \"a\": 2")

	_, err = MergePatchDiffer{}.Diff(a, a)
	assert.ErrorIs(t, err, ErrNoChanges)
}

func TestLineDiffer(t *testing.T) {
	a := document.MustParseJSON(`{"a": 1, "b": "same"}`)
	b := document.MustParseJSON(`{"a": 2, "b": "same"}`)
	out, err := LineDiffer{}.Diff(a, b)
	require.NoError(t, err)
	assert.Contains(t, out, "-   \"a\": 1,")
	assert.Contains(t, out, "+   \"a\": 2,")
	assert.Contains(t, out, "    \"b\": \"same\"")

	_, err = LineDiffer{}.Diff(a, a)
	assert.ErrorIs(t, err, ErrNoChanges)
}

func TestTextFallsBackToPlaceholder(t *testing.T) {
	a := document.MustParseJSON(`{"a": 1}`)
	b := document.MustParseJSON(`{"a": 2}`)
	log := logr.Discard()

	assert.Equal(t, Unavailable, Text(nil, a, b, log))
	assert.Equal(t, Unavailable, Text(failingDiffer{}, a, b, log))
	assert.Equal(t, Unavailable, Text(failingDiffer{panic: true}, a, b, log))
	assert.Equal(t, "", Text(MergePatchDiffer{}, a, a, log))
	assert.JSONEq(t, `{"a": 2}`, Text(MergePatchDiffer{}, a, b, log))
}

func TestNewDiffer(t *testing.T) {
	d, err := New(FormatLines)
	require.NoError(t, err)
	assert.IsType(t, LineDiffer{}, d)

	d, err = New("")
	require.NoError(t, err)
	assert.IsType(t, MergePatchDiffer{}, d)

	_, err = New("xml")
	assert.Error(t, err)
}
