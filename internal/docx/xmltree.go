// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package docx

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
)

// node is a namespace-agnostic XML element. WordprocessingML mixes
// paragraphs, runs and tables in document order, which struct decoding
// would lose, so the body is read into a tree first.
type node struct {
	local    string
	attrs    []xml.Attr
	children []*node
	text     string
}

func parseXML(data []byte) (*node, error) {
	dec := xml.NewDecoder(bytes.NewReader(data))
	root := &node{}
	stack := []*node{root}
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			t = t.Copy()
			n := &node{local: t.Name.Local, attrs: t.Attr}
			parent := stack[len(stack)-1]
			parent.children = append(parent.children, n)
			stack = append(stack, n)
		case xml.EndElement:
			if len(stack) > 1 {
				stack = stack[:len(stack)-1]
			}
		case xml.CharData:
			cur := stack[len(stack)-1]
			cur.text += string(t)
		}
	}
	if len(root.children) == 0 {
		return nil, fmt.Errorf("no root element")
	}
	return root.children[0], nil
}

// attr returns the value of the first attribute with the given local name.
func (n *node) attr(local string) string {
	for _, a := range n.attrs {
		if a.Name.Local == local {
			return a.Value
		}
	}
	return ""
}

// first returns the first direct child with the given local name.
func (n *node) first(local string) *node {
	for _, c := range n.children {
		if c.local == local {
			return c
		}
	}
	return nil
}

// all returns every direct child with the given local name.
func (n *node) all(local string) []*node {
	var out []*node
	for _, c := range n.children {
		if c.local == local {
			out = append(out, c)
		}
	}
	return out
}

// find returns the first descendant with the given local name, depth first.
func (n *node) find(local string) *node {
	for _, c := range n.children {
		if c.local == local {
			return c
		}
		if d := c.find(local); d != nil {
			return d
		}
	}
	return nil
}
