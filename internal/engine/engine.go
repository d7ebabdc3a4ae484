package engine

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	codebook "github.com/reoring/codebook"
)

// Kind represents token kinds from a generic source.
type Kind int

const (
	KindBeginObject Kind = iota
	KindEndObject
	KindBeginArray
	KindEndArray
	KindKey
	KindString
	KindNumber
	KindBool
	KindNull
)

// Token represents a streaming token with approximate input offset.
type Token struct {
	Kind   Kind
	String string
	Number string
	Bool   bool
	Offset int64
}

// TokenSource is a minimal interface required by the engine.
type TokenSource interface {
	NextToken() (Token, error)
	Location() int64
}

// ErrTrailingData reports content after the first complete document value.
var ErrTrailingData = errors.New("unexpected data after top-level value")

// DecodeTree builds a document tree from src. Objects become
// *codebook.Object so key order survives; numbers stay json.Number so no
// precision is lost before validation. The source must hold exactly one
// value.
func DecodeTree(src TokenSource) (any, error) {
	tok, err := src.NextToken()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, io.ErrUnexpectedEOF
		}
		return nil, err
	}
	v, err := decodeValue(src, tok)
	if err != nil {
		return nil, err
	}
	switch _, err := src.NextToken(); {
	case err == nil:
		return nil, ErrTrailingData
	case errors.Is(err, io.EOF):
		return v, nil
	default:
		return nil, err
	}
}

func decodeValue(src TokenSource, tok Token) (any, error) {
	switch tok.Kind {
	case KindBeginObject:
		return decodeObject(src)
	case KindBeginArray:
		return decodeArray(src)
	case KindString:
		return tok.String, nil
	case KindNumber:
		return json.Number(tok.Number), nil
	case KindBool:
		return tok.Bool, nil
	case KindNull:
		return nil, nil
	default:
		return nil, fmt.Errorf("unexpected token kind %d", tok.Kind)
	}
}

func decodeObject(src TokenSource) (any, error) {
	o := codebook.NewObject(8)
	for {
		tok, err := next(src)
		if err != nil {
			return nil, err
		}
		if tok.Kind == KindEndObject {
			return o, nil
		}
		if tok.Kind != KindKey {
			return nil, fmt.Errorf("expected object key, got token kind %d", tok.Kind)
		}
		vt, err := next(src)
		if err != nil {
			return nil, err
		}
		v, err := decodeValue(src, vt)
		if err != nil {
			return nil, err
		}
		// A repeated key keeps its first position and takes the last value,
		// as encoding/json does.
		o.Set(tok.String, v)
	}
}

func decodeArray(src TokenSource) (any, error) {
	arr := []any{}
	for {
		tok, err := next(src)
		if err != nil {
			return nil, err
		}
		if tok.Kind == KindEndArray {
			return arr, nil
		}
		v, err := decodeValue(src, tok)
		if err != nil {
			return nil, err
		}
		arr = append(arr, v)
	}
}

// next treats EOF inside a container as truncated input.
func next(src TokenSource) (Token, error) {
	tok, err := src.NextToken()
	if errors.Is(err, io.EOF) {
		return Token{}, io.ErrUnexpectedEOF
	}
	return tok, err
}

// Driver turns document bytes into a TokenSource.
type Driver interface {
	NewBytes(b []byte) TokenSource
	Name() string
}
