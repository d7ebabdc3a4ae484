// Package gojson is the default token driver, backed by goccy/go-json.
package gojson

import (
	"bytes"
	"io"
	"strconv"

	j "github.com/goccy/go-json"

	eng "github.com/reoring/codebook/internal/engine"
)

// Driver returns the go-json driver.
func Driver() eng.Driver { return driver{} }

type driver struct{}

func (driver) NewBytes(b []byte) eng.TokenSource { return NewBytes(b) }
func (driver) Name() string                      { return "go-json" }

// ---- engine.TokenSource implementation using go-json Decoder ----

type source struct {
	dec    *j.Decoder
	framer eng.Framer
}

// NewReader wraps an io.Reader into an engine.TokenSource for JSON using go-json.
// go-json does not expose input offsets, so Location reports -1.
func NewReader(r io.Reader) eng.TokenSource {
	dec := j.NewDecoder(r)
	dec.UseNumber()
	return &source{dec: dec}
}

// NewBytes wraps a byte slice into an engine.TokenSource for JSON using go-json.
func NewBytes(b []byte) eng.TokenSource { return NewReader(bytes.NewReader(b)) }

func (s *source) NextToken() (eng.Token, error) {
	tok, err := s.dec.Token()
	if err != nil {
		return eng.Token{}, err
	}
	switch v := tok.(type) {
	case j.Delim:
		return s.framer.Delim(rune(v), -1), nil
	case string:
		return s.framer.String(v, -1), nil
	case bool:
		return s.framer.Bool(v, -1), nil
	case j.Number:
		return s.framer.Number(string(v), -1), nil
	case float64:
		return s.framer.Number(strconv.FormatFloat(v, 'g', -1, 64), -1), nil
	}
	return s.framer.Null(-1), nil
}

func (s *source) Location() int64 { return -1 }
