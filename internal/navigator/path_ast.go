package navigator

import (
	"fmt"
	"strconv"
	"strings"
)

// Segment is one parsed step of a path: Field, QuotedKey or ArrayIndex.
type Segment interface{}

// Field represents a simple dotted field name.
type Field struct {
	Name string
}

// QuotedKey represents a field accessed via bracket-quoted key: ["key"]
type QuotedKey struct {
	Name string
}

// ArrayIndex represents an array index like [0]
type ArrayIndex struct {
	Index int
}

// JoinKey appends an object member to a path. Keys that cannot be written as a bare
// dotted field use the quoted bracket form, which keeps every path unambiguous.
func JoinKey(prefix, key string) string {
	if needsQuoting(key) {
		return prefix + "[" + strconv.Quote(key) + "]"
	}
	if prefix == "" {
		return key
	}
	return prefix + "." + key
}

// JoinIndex appends an array index to a path.
func JoinIndex(prefix string, index int) string {
	return prefix + "[" + strconv.Itoa(index) + "]"
}

func needsQuoting(key string) bool {
	if key == "" {
		return true
	}
	for _, r := range key {
		switch r {
		case '.', '[', ']', '"', '\\', ' ', '\t', '\n', '\r':
			return true
		}
	}
	return false
}

// ParsePath parses a path produced by JoinKey/JoinIndex back into segments.
// Example: shared.endpoints[0]["x.y"]
func ParsePath(input string) ([]Segment, error) {
	var segs []Segment
	i := 0
	for i < len(input) {
		ch := input[i]
		switch {
		case ch == '.':
			if i == 0 || i == len(input)-1 {
				return nil, fmt.Errorf("path %q: unexpected '.' at %d", input, i)
			}
			i++
		case ch == '[':
			if i+1 < len(input) && input[i+1] == '"' {
				end, err := quotedEnd(input, i+1)
				if err != nil {
					return nil, err
				}
				name, err := strconv.Unquote(input[i+1 : end+1])
				if err != nil {
					return nil, fmt.Errorf("path %q: %w", input, err)
				}
				if end+1 >= len(input) || input[end+1] != ']' {
					return nil, fmt.Errorf("path %q: missing ']' after quoted key", input)
				}
				segs = append(segs, QuotedKey{Name: name})
				i = end + 2
				continue
			}
			end := strings.IndexByte(input[i:], ']')
			if end == -1 {
				return nil, fmt.Errorf("path %q: unterminated '['", input)
			}
			n, err := strconv.Atoi(input[i+1 : i+end])
			if err != nil || n < 0 {
				return nil, fmt.Errorf("path %q: invalid index %q", input, input[i+1:i+end])
			}
			segs = append(segs, ArrayIndex{Index: n})
			i += end + 1
		default:
			j := i
			for j < len(input) && input[j] != '.' && input[j] != '[' {
				j++
			}
			segs = append(segs, Field{Name: input[i:j]})
			i = j
		}
	}
	return segs, nil
}

// quotedEnd returns the index of the closing quote of the string starting at start.
func quotedEnd(input string, start int) (int, error) {
	for j := start + 1; j < len(input); j++ {
		switch input[j] {
		case '\\':
			j++
		case '"':
			return j, nil
		}
	}
	return 0, fmt.Errorf("path %q: unterminated quoted key", input)
}

// ReconstructPath rebuilds a path string from segments.
func ReconstructPath(segs []Segment) string {
	path := ""
	for _, s := range segs {
		switch v := s.(type) {
		case Field:
			path = JoinKey(path, v.Name)
		case QuotedKey:
			path = JoinKey(path, v.Name)
		case ArrayIndex:
			path = JoinIndex(path, v.Index)
		}
	}
	return path
}

// SectionOf returns the top-level key a path belongs to.
func SectionOf(path string) string {
	segs, err := ParsePath(path)
	if err != nil || len(segs) == 0 {
		return ""
	}
	switch v := segs[0].(type) {
	case Field:
		return v.Name
	case QuotedKey:
		return v.Name
	}
	return ""
}
