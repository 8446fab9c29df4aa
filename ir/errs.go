package ir

import (
	"errors"
	"fmt"

	"github.com/signadot/dotpath/format"
)

var (
	ErrTypeMismatch    = errors.New("type mismatch")
	ErrKeyNotFound     = errors.New("key not found")
	ErrIndexOutOfRange = errors.New("index out of range")
	ErrEmptyPath       = errors.New("empty path")
	ErrDecode          = errors.New("decode error")
	ErrBadFormat       = format.ErrBadFormat
)

// TypeMismatchError is returned when a path descends into or assigns onto
// a node whose type cannot hold the addressed child.
type TypeMismatchError struct {
	Path string // path of the offending node, "" for the root
	Want string
	Got  string
}

func (e *TypeMismatchError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("%s: expected %s but got %s", ErrTypeMismatch, e.Want, e.Got)
	}
	return fmt.Sprintf("%s at %q: expected %s but got %s", ErrTypeMismatch, e.Path, e.Want, e.Got)
}

func (e *TypeMismatchError) Unwrap() error { return ErrTypeMismatch }

// KeyNotFoundError is returned by Fetch when a path is absent and no
// default or fallback was given. Path is the key as supplied by the caller.
type KeyNotFoundError struct {
	Path string
}

func (e *KeyNotFoundError) Error() string {
	return fmt.Sprintf("%s: %q", ErrKeyNotFound, e.Path)
}

func (e *KeyNotFoundError) Unwrap() error { return ErrKeyNotFound }

func typeName(node *Node) string {
	if node == nil {
		return "nil"
	}
	return node.Type.String()
}
