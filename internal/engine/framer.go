package engine

import "io"

// Framer tracks container nesting for drivers whose decoders report object
// keys and string values alike. Each method returns the engine token for
// one decoder token.
type Framer struct {
	stack []frame
}

type frame struct {
	object       bool
	expectingKey bool
}

// Delim translates '{', '}', '[' or ']'.
func (f *Framer) Delim(d rune, off int64) Token {
	switch d {
	case '{':
		f.stack = append(f.stack, frame{object: true, expectingKey: true})
		return Token{Kind: KindBeginObject, Offset: off}
	case '[':
		f.stack = append(f.stack, frame{})
		return Token{Kind: KindBeginArray, Offset: off}
	case '}':
		f.pop()
		return Token{Kind: KindEndObject, Offset: off}
	default:
		f.pop()
		return Token{Kind: KindEndArray, Offset: off}
	}
}

// String translates a string, which is a key when an object awaits one.
func (f *Framer) String(s string, off int64) Token {
	if n := len(f.stack); n > 0 && f.stack[n-1].object && f.stack[n-1].expectingKey {
		f.stack[n-1].expectingKey = false
		return Token{Kind: KindKey, String: s, Offset: off}
	}
	f.valueDone()
	return Token{Kind: KindString, String: s, Offset: off}
}

// Number translates a number literal.
func (f *Framer) Number(lit string, off int64) Token {
	f.valueDone()
	return Token{Kind: KindNumber, Number: lit, Offset: off}
}

// Bool translates a boolean.
func (f *Framer) Bool(b bool, off int64) Token {
	f.valueDone()
	return Token{Kind: KindBool, Bool: b, Offset: off}
}

// Null translates null.
func (f *Framer) Null(off int64) Token {
	f.valueDone()
	return Token{Kind: KindNull, Offset: off}
}

func (f *Framer) pop() {
	if n := len(f.stack); n > 0 {
		f.stack = f.stack[:n-1]
	}
	f.valueDone()
}

// valueDone marks the pending key of the enclosing object as consumed.
func (f *Framer) valueDone() {
	if n := len(f.stack); n > 0 && f.stack[n-1].object {
		f.stack[n-1].expectingKey = true
	}
}

// Tokens replays a fixed token sequence. Drivers that build a whole
// document tree up front (YAML) hand their tokens to the engine this way.
type Tokens struct {
	toks []Token
	pos  int
}

// NewTokens returns a TokenSource over toks.
func NewTokens(toks []Token) *Tokens { return &Tokens{toks: toks} }

// NextToken returns io.EOF after the last token.
func (t *Tokens) NextToken() (Token, error) {
	if t.pos >= len(t.toks) {
		return Token{}, io.EOF
	}
	tok := t.toks[t.pos]
	t.pos++
	return tok, nil
}

// Location returns the offset of the last token handed out, -1 if unknown.
func (t *Tokens) Location() int64 {
	if t.pos == 0 {
		return -1
	}
	return t.toks[t.pos-1].Offset
}
