// Package json is the encoding/json token driver.
package json

import (
	"bytes"
	"encoding/json"
	"io"
	"strconv"

	eng "github.com/reoring/codebook/internal/engine"
)

// Driver returns the encoding/json driver.
func Driver() eng.Driver { return driver{} }

type driver struct{}

func (driver) NewBytes(b []byte) eng.TokenSource { return NewBytes(b) }
func (driver) Name() string                      { return "encoding/json" }

type jsonSource struct {
	dec        *json.Decoder
	framer     eng.Framer
	lastOffset int64
}

// NewReader wraps an io.Reader into an engine.TokenSource for JSON.
func NewReader(r io.Reader) eng.TokenSource {
	dec := json.NewDecoder(r)
	dec.UseNumber()
	return &jsonSource{dec: dec, lastOffset: -1}
}

// NewBytes wraps a byte slice into an engine.TokenSource for JSON.
func NewBytes(b []byte) eng.TokenSource { return NewReader(bytes.NewReader(b)) }

func (s *jsonSource) NextToken() (eng.Token, error) {
	tok, err := s.dec.Token()
	if err != nil {
		return eng.Token{}, err
	}
	s.lastOffset = s.dec.InputOffset()

	switch v := tok.(type) {
	case json.Delim:
		return s.framer.Delim(rune(v), s.lastOffset), nil
	case string:
		return s.framer.String(v, s.lastOffset), nil
	case bool:
		return s.framer.Bool(v, s.lastOffset), nil
	case json.Number:
		return s.framer.Number(string(v), s.lastOffset), nil
	case float64:
		return s.framer.Number(strconv.FormatFloat(v, 'g', -1, 64), s.lastOffset), nil
	}
	return s.framer.Null(s.lastOffset), nil
}

func (s *jsonSource) Location() int64 { return s.lastOffset }
