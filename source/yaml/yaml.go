// Package yaml is the YAML driver. Documents are parsed into a yaml.v3 node
// tree and replayed as engine tokens, so YAML codebooks get the same key
// order, duplicate-key and depth handling as JSON ones.
package yaml

import (
	"errors"
	"fmt"
	"strconv"

	yamlv3 "gopkg.in/yaml.v3"

	eng "github.com/reoring/codebook/internal/engine"
)

// Driver returns the YAML driver.
func Driver() eng.Driver { return driver{} }

type driver struct{}

func (driver) NewBytes(b []byte) eng.TokenSource { return NewBytes(b) }
func (driver) Name() string                      { return "yaml.v3" }

// NewBytes parses b and returns its tokens. A parse failure is returned by
// the first NextToken call.
func NewBytes(b []byte) eng.TokenSource {
	var doc yamlv3.Node
	if err := yamlv3.Unmarshal(b, &doc); err != nil {
		return failed{err: err}
	}
	var w walker
	if err := w.node(&doc, 0); err != nil {
		return failed{err: err}
	}
	return eng.NewTokens(w.toks)
}

type failed struct{ err error }

func (f failed) NextToken() (eng.Token, error) { return eng.Token{}, f.err }
func (failed) Location() int64                 { return -1 }

// maxAliasDepth bounds alias nesting so self-referencing anchors fail.
const maxAliasDepth = 64

// maxAliasExpansions bounds the total number of aliases replayed per
// document. Nested anchors otherwise expand exponentially.
const maxAliasExpansions = 10000

// yaml.v3 does not expose byte positions.
const noOffset = -1

var (
	errAliasDepth      = errors.New("yaml: alias nesting too deep")
	errAliasExpansions = fmt.Errorf("yaml: more than %d alias expansions", maxAliasExpansions)
)

type walker struct {
	toks     []eng.Token
	expanded int
}

func (w *walker) emit(t eng.Token) { w.toks = append(w.toks, t) }

func (w *walker) node(n *yamlv3.Node, aliases int) error {
	switch n.Kind {
	case 0:
		// empty input
		return nil
	case yamlv3.DocumentNode:
		if len(n.Content) == 0 {
			w.emit(eng.Token{Kind: eng.KindNull, Offset: -1})
			return nil
		}
		return w.node(n.Content[0], aliases)
	case yamlv3.AliasNode:
		if aliases >= maxAliasDepth || n.Alias == nil {
			return errAliasDepth
		}
		if w.expanded++; w.expanded > maxAliasExpansions {
			return errAliasExpansions
		}
		return w.node(n.Alias, aliases+1)
	case yamlv3.MappingNode:
		w.emit(eng.Token{Kind: eng.KindBeginObject, Offset: noOffset})
		for i := 0; i+1 < len(n.Content); i += 2 {
			k := n.Content[i]
			if k.Kind == yamlv3.AliasNode && k.Alias != nil {
				k = k.Alias
			}
			if k.Kind != yamlv3.ScalarNode {
				return fmt.Errorf("yaml: line %d: mapping key must be a scalar", k.Line)
			}
			w.emit(eng.Token{Kind: eng.KindKey, String: keyText(k), Offset: noOffset})
			if err := w.node(n.Content[i+1], aliases); err != nil {
				return err
			}
		}
		w.emit(eng.Token{Kind: eng.KindEndObject, Offset: noOffset})
		return nil
	case yamlv3.SequenceNode:
		w.emit(eng.Token{Kind: eng.KindBeginArray, Offset: noOffset})
		for _, c := range n.Content {
			if err := w.node(c, aliases); err != nil {
				return err
			}
		}
		w.emit(eng.Token{Kind: eng.KindEndArray, Offset: noOffset})
		return nil
	case yamlv3.ScalarNode:
		t, err := scalar(n)
		if err != nil {
			return err
		}
		w.emit(t)
		return nil
	}
	return fmt.Errorf("yaml: line %d: unsupported node kind %d", n.Line, n.Kind)
}

// keyText renders a mapping key. A null key is spelled "null" so code
// tables written in YAML address the missing slot the same way JSON does.
func keyText(k *yamlv3.Node) string {
	if k.ShortTag() == "!!null" {
		return "null"
	}
	return k.Value
}

func scalar(n *yamlv3.Node) (eng.Token, error) {
	off := int64(noOffset)
	switch n.ShortTag() {
	case "!!null":
		return eng.Token{Kind: eng.KindNull, Offset: off}, nil
	case "!!bool":
		var b bool
		if err := n.Decode(&b); err != nil {
			return eng.Token{}, err
		}
		return eng.Token{Kind: eng.KindBool, Bool: b, Offset: off}, nil
	case "!!int":
		var i int64
		if err := n.Decode(&i); err != nil {
			var f float64
			if ferr := n.Decode(&f); ferr != nil {
				return eng.Token{}, err
			}
			return eng.Token{Kind: eng.KindNumber, Number: strconv.FormatFloat(f, 'g', -1, 64), Offset: off}, nil
		}
		return eng.Token{Kind: eng.KindNumber, Number: strconv.FormatInt(i, 10), Offset: off}, nil
	case "!!float":
		var f float64
		if err := n.Decode(&f); err != nil {
			return eng.Token{}, err
		}
		return eng.Token{Kind: eng.KindNumber, Number: strconv.FormatFloat(f, 'g', -1, 64), Offset: off}, nil
	}
	return eng.Token{Kind: eng.KindString, String: n.Value, Offset: off}, nil
}
