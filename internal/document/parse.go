package document

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"sort"
	"strconv"

	"gopkg.in/yaml.v3"
)

// ParseJSON parses a single JSON document, preserving object key order and number text.
func ParseJSON(data []byte) (*Value, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	v, err := decodeValue(dec)
	if err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("invalid JSON: unexpected data after top-level value")
	}
	return v, nil
}

func decodeValue(dec *json.Decoder) (*Value, error) {
	tok, err := dec.Token()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, io.ErrUnexpectedEOF
		}
		return nil, err
	}
	return decodeFromToken(dec, tok)
}

func decodeFromToken(dec *json.Decoder, tok json.Token) (*Value, error) {
	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			var members []Member
			for dec.More() {
				keyTok, err := dec.Token()
				if err != nil {
					return nil, err
				}
				key, ok := keyTok.(string)
				if !ok {
					return nil, fmt.Errorf("object key is %T, not string", keyTok)
				}
				child, err := decodeValue(dec)
				if err != nil {
					return nil, err
				}
				members = append(members, Member{Key: key, Value: child})
			}
			if _, err := dec.Token(); err != nil {
				return nil, err
			}
			return Object(members...), nil
		case '[':
			var items []*Value
			for dec.More() {
				child, err := decodeValue(dec)
				if err != nil {
					return nil, err
				}
				items = append(items, child)
			}
			if _, err := dec.Token(); err != nil {
				return nil, err
			}
			return Array(items...), nil
		default:
			return nil, fmt.Errorf("unexpected delimiter %q", t)
		}
	case json.Number:
		return Number(t.String()), nil
	case string:
		return String(t), nil
	case bool:
		return Bool(t), nil
	case nil:
		return Null(), nil
	default:
		return nil, fmt.Errorf("unexpected token %T", tok)
	}
}

// ParseYAML parses the first YAML document, keeping mapping order.
func ParseYAML(data []byte) (*Value, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("invalid YAML: %w", err)
	}
	if len(doc.Content) == 0 {
		return Null(), nil
	}
	return FromYAMLNode(doc.Content[0])
}

// FromYAMLNode converts a yaml.v3 node tree into a Value.
func FromYAMLNode(n *yaml.Node) (*Value, error) {
	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return Null(), nil
		}
		return FromYAMLNode(n.Content[0])
	case yaml.MappingNode:
		members := make([]Member, 0, len(n.Content)/2)
		for i := 0; i+1 < len(n.Content); i += 2 {
			child, err := FromYAMLNode(n.Content[i+1])
			if err != nil {
				return nil, err
			}
			members = append(members, Member{Key: n.Content[i].Value, Value: child})
		}
		return Object(members...), nil
	case yaml.SequenceNode:
		items := make([]*Value, 0, len(n.Content))
		for _, c := range n.Content {
			child, err := FromYAMLNode(c)
			if err != nil {
				return nil, err
			}
			items = append(items, child)
		}
		return Array(items...), nil
	case yaml.AliasNode:
		if n.Alias == nil {
			return Null(), nil
		}
		return FromYAMLNode(n.Alias)
	case yaml.ScalarNode:
		switch n.ShortTag() {
		case "!!null":
			return Null(), nil
		case "!!bool":
			var b bool
			if err := n.Decode(&b); err != nil {
				return nil, err
			}
			return Bool(b), nil
		case "!!int", "!!float":
			return Number(n.Value), nil
		default:
			return String(n.Value), nil
		}
	default:
		return nil, fmt.Errorf("unsupported YAML node kind %d", n.Kind)
	}
}

// FromInterface converts decoded Go values (maps, slices, scalars) into a Value. Map
// keys have no source order here, so they are sorted.
func FromInterface(in any) (*Value, error) {
	switch t := in.(type) {
	case nil:
		return Null(), nil
	case *Value:
		return t, nil
	case bool:
		return Bool(t), nil
	case string:
		return String(t), nil
	case json.Number:
		return Number(t.String()), nil
	case int:
		return Number(strconv.Itoa(t)), nil
	case int64:
		return Number(strconv.FormatInt(t, 10)), nil
	case float64:
		if math.IsInf(t, 0) || math.IsNaN(t) {
			return nil, fmt.Errorf("number %v has no JSON form", t)
		}
		return Number(strconv.FormatFloat(t, 'f', -1, 64)), nil
	case map[string]any:
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		members := make([]Member, 0, len(keys))
		for _, k := range keys {
			child, err := FromInterface(t[k])
			if err != nil {
				return nil, fmt.Errorf("%s: %w", k, err)
			}
			members = append(members, Member{Key: k, Value: child})
		}
		return Object(members...), nil
	case []any:
		items := make([]*Value, 0, len(t))
		for i, it := range t {
			child, err := FromInterface(it)
			if err != nil {
				return nil, fmt.Errorf("[%d]: %w", i, err)
			}
			items = append(items, child)
		}
		return Array(items...), nil
	default:
		return String(fmt.Sprint(t)), nil
	}
}

// MustParseJSON is ParseJSON for fixtures; it panics on error.
func MustParseJSON(s string) *Value {
	v, err := ParseJSON([]byte(s))
	if err != nil {
		panic(err)
	}
	return v
}
