package schema

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strconv"

	json "github.com/goccy/go-json"
)

type jsonKind int

const (
	jsonNull jsonKind = iota
	jsonBool
	jsonNumber
	jsonString
	jsonArray
	jsonObject
)

func (k jsonKind) String() string {
	switch k {
	case jsonNull:
		return "null"
	case jsonBool:
		return "boolean"
	case jsonNumber:
		return "number"
	case jsonString:
		return "string"
	case jsonArray:
		return "array"
	case jsonObject:
		return "object"
	default:
		return "jsonKind(" + strconv.Itoa(int(k)) + ")"
	}
}

// jsonNode is a decoded JSON value that keeps object members in document
// order and remembers repeated keys instead of overwriting them.
type jsonNode struct {
	kind    jsonKind
	text    string // string value, or number literal
	boolean bool
	elems   []*jsonNode
	members []jsonMember
	// dups lists keys that occurred more than once, in order of repetition.
	dups []string
}

type jsonMember struct {
	key   string
	value *jsonNode
}

// member returns the first value stored under key.
func (n *jsonNode) member(key string) (*jsonNode, bool) {
	for _, m := range n.members {
		if m.key == key {
			return m.value, true
		}
	}

	return nil, false
}

var errTrailingData = errors.New("unexpected data after top-level value")

// decodeTree decodes exactly one JSON value from r.
func decodeTree(r io.Reader) (*jsonNode, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}

	root, err := buildNode(dec, tok)
	if err != nil {
		return nil, err
	}

	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		if err == nil {
			err = errTrailingData
		}

		return nil, err
	}

	return root, nil
}

func decodeTreeBytes(data []byte) (*jsonNode, error) {
	return decodeTree(bytes.NewReader(data))
}

func buildNode(dec *json.Decoder, tok any) (*jsonNode, error) {
	switch v := tok.(type) {
	case json.Delim:
		switch v {
		case '{':
			return buildObject(dec)
		case '[':
			return buildArray(dec)
		default:
			return nil, fmt.Errorf("unexpected delimiter %q", rune(v))
		}
	case string:
		return &jsonNode{kind: jsonString, text: v}, nil
	case json.Number:
		return &jsonNode{kind: jsonNumber, text: string(v)}, nil
	case float64:
		return &jsonNode{kind: jsonNumber, text: strconv.FormatFloat(v, 'g', -1, 64)}, nil
	case bool:
		return &jsonNode{kind: jsonBool, boolean: v}, nil
	case nil:
		return &jsonNode{kind: jsonNull}, nil
	default:
		return nil, fmt.Errorf("unexpected token %v", tok)
	}
}

func buildObject(dec *json.Decoder) (*jsonNode, error) {
	n := &jsonNode{kind: jsonObject}
	seen := make(map[string]struct{})

	for {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}

		if d, ok := tok.(json.Delim); ok && d == '}' {
			return n, nil
		}

		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("expected object key, got %v", tok)
		}

		valTok, err := dec.Token()
		if err != nil {
			return nil, err
		}

		val, err := buildNode(dec, valTok)
		if err != nil {
			return nil, err
		}

		if _, dup := seen[key]; dup {
			n.dups = append(n.dups, key)
			continue
		}

		seen[key] = struct{}{}
		n.members = append(n.members, jsonMember{key: key, value: val})
	}
}

func buildArray(dec *json.Decoder) (*jsonNode, error) {
	n := &jsonNode{kind: jsonArray}

	for {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}

		if d, ok := tok.(json.Delim); ok && d == ']' {
			return n, nil
		}

		elem, err := buildNode(dec, tok)
		if err != nil {
			return nil, err
		}

		n.elems = append(n.elems, elem)
	}
}
