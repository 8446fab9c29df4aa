package kpath

import (
	"strconv"
)

// Segment is one step of a path: exactly one of Field or Index is set.
type Segment struct {
	Field *string // Object field name (also array operators and lax indices)
	Index *int    // Array index, negative counts from the end
}

// Field returns a field segment.
func Field(name string) Segment {
	return Segment{Field: &name}
}

// Index returns an index segment.
func Index(i int) Segment {
	return Segment{Index: &i}
}

func (s Segment) IsField() bool { return s.Field != nil }
func (s Segment) IsIndex() bool { return s.Index != nil }

// Name returns the field name, or "" for an index segment.
func (s Segment) Name() string {
	if s.Field == nil {
		return ""
	}
	return *s.Field
}

// ListOp is the array operator named by a field segment.
type ListOp int

const (
	OpNone ListOp = iota
	OpPrepend
	OpAppend
)

func (op ListOp) String() string {
	switch op {
	case OpPrepend:
		return "prepend"
	case OpAppend:
		return "append"
	default:
		return "none"
	}
}

// ListOp reports which array operator, if any, the segment names.
func (s Segment) ListOp() ListOp {
	if s.Field == nil {
		return OpNone
	}
	switch *s.Field {
	case "-", "prepend", ">>":
		return OpPrepend
	case "+", "append", "<<":
		return OpAppend
	}
	return OpNone
}

// WantsArray reports whether a container created to hold the segment
// should be an array: index segments and array operators do.
func (s Segment) WantsArray() bool {
	return s.Index != nil || s.ListOp() != OpNone
}

// LaxIndex returns the array index the segment addresses when used against
// an array. Index segments return their index. Field segments whose text is
// exactly a decimal integer ("0", "-3" but not "03" or "+3") are coerced.
func (s Segment) LaxIndex() (int, bool) {
	if s.Index != nil {
		return *s.Index, true
	}
	if s.Field == nil {
		return 0, false
	}
	i, err := strconv.Atoi(*s.Field)
	if err != nil || strconv.Itoa(i) != *s.Field {
		return 0, false
	}
	return i, true
}

// String returns the segment as it appears in a built path, without any
// separating dot.
func (s Segment) String() string {
	if s.Index != nil {
		return "[" + strconv.Itoa(*s.Index) + "]"
	}
	if s.Field != nil {
		return *s.Field
	}
	return ""
}

// Equal reports whether two segments address the same step.
func (s Segment) Equal(o Segment) bool {
	if (s.Field == nil) != (o.Field == nil) || (s.Index == nil) != (o.Index == nil) {
		return false
	}
	if s.Field != nil {
		return *s.Field == *o.Field
	}
	if s.Index != nil {
		return *s.Index == *o.Index
	}
	return true
}
