package document

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseJSONKeepsKeyOrder(t *testing.T) {
	v, err := ParseJSON([]byte(`{"zeta": 1, "alpha": {"b": true, "a": null}, "mid": [1, "x"]}`))
	require.NoError(t, err)
	assert.Equal(t, ObjectKind, v.Kind())
	assert.Equal(t, []string{"zeta", "alpha", "mid"}, v.Keys())

	alpha, ok := v.Get("alpha")
	require.True(t, ok)
	assert.Equal(t, []string{"b", "a"}, alpha.Keys())

	mid, _ := v.Get("mid")
	assert.Equal(t, 2, mid.Len())
	assert.Equal(t, "x", mid.Index(1).Text())
	assert.Nil(t, mid.Index(2))
}

func TestParseJSONNumberText(t *testing.T) {
	v := MustParseJSON(`{"timeout": 30, "ratio": 1.50, "big": 1e3}`)
	timeout, _ := v.Get("timeout")
	ratio, _ := v.Get("ratio")
	big, _ := v.Get("big")
	assert.Equal(t, "30", timeout.Text())
	assert.Equal(t, "1.50", ratio.Text())
	assert.Equal(t, "1e3", big.Text())
}

func TestParseJSONErrors(t *testing.T) {
	for name, input := range map[string]string{
		"truncated": `{"a": 1`,
		"trailing":  `{"a": 1} {"b": 2}`,
		"empty":     ``,
		"garbage":   `nope`,
	} {
		t.Run(name, func(t *testing.T) {
			_, err := ParseJSON([]byte(input))
			assert.Error(t, err)
		})
	}
}

func TestMarshalJSONRoundTripsOrder(t *testing.T) {
	src := `{"b":1,"a":{"y":"two","x":[true,null,2.0]}}`
	v := MustParseJSON(src)
	out, err := v.MarshalJSON()
	require.NoError(t, err)
	assert.Equal(t, src, string(out))
}

func TestEqual(t *testing.T) {
	assert.True(t, Number("1").Equal(Number("1.0")))
	assert.False(t, Number("1").Equal(String("1")))
	assert.True(t, Null().Equal(nil))
	assert.False(t, Bool(true).Equal(Bool(false)))
	assert.True(t, MustParseJSON(`{"a":1,"b":2}`).Equal(MustParseJSON(`{"b":2,"a":1}`)))
	assert.False(t, MustParseJSON(`[1,2]`).Equal(MustParseJSON(`[2,1]`)))
	assert.False(t, MustParseJSON(`{}`).Equal(MustParseJSON(`[]`)))
}

func TestParseYAMLKeepsOrder(t *testing.T) {
	v, err := ParseYAML([]byte("zeta: 1\nalpha:\n  - on\n  - 2.5\n  - ~\nname: hello\n"))
	require.NoError(t, err)
	assert.Equal(t, []string{"zeta", "alpha", "name"}, v.Keys())
	alpha, _ := v.Get("alpha")
	assert.Equal(t, StringKind, alpha.Index(0).Kind())
	assert.Equal(t, NumberKind, alpha.Index(1).Kind())
	assert.Equal(t, NullKind, alpha.Index(2).Kind())
}

func TestFromInterfaceSortsKeys(t *testing.T) {
	v, err := FromInterface(map[string]any{"b": int64(2), "a": []any{1.5, "x", nil}})
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, v.Keys())
	b, _ := v.Get("b")
	assert.Equal(t, "2", b.Text())
}

func TestInterface(t *testing.T) {
	v := MustParseJSON(`{"n": 3, "f": 0.5, "s": "x", "l": [true]}`)
	got := v.Interface().(map[string]any)
	assert.Equal(t, int64(3), got["n"])
	assert.Equal(t, 0.5, got["f"])
	assert.Equal(t, "x", got["s"])
	assert.Equal(t, []any{true}, got["l"])
}
