package kpath

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/signadot/dotpath/debug"
)

var (
	ErrInvalidKeyType = errors.New("invalid key type")
	ErrSyntax         = errors.New("path syntax error")
)

// SyntaxError reports where strict parsing of a path failed.
type SyntaxError struct {
	Path   string
	Offset int
	Msg    string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%s: %s at offset %d in %q", ErrSyntax, e.Msg, e.Offset, e.Path)
}

func (e *SyntaxError) Unwrap() error { return ErrSyntax }

// Path is a parsed key path.
type Path []Segment

// String returns the path in dotted syntax, see Build.
func (p Path) String() string {
	return Build(p)
}

// Last returns the final segment. It panics on an empty path.
func (p Path) Last() Segment {
	return p[len(p)-1]
}

// Parent returns all but the final segment, or nil for paths of length
// 0 or 1.
func (p Path) Parent() Path {
	if len(p) <= 1 {
		return nil
	}
	return p[:len(p)-1]
}

// Append returns a new path with segs appended; p is not modified.
func (p Path) Append(segs ...Segment) Path {
	res := make(Path, 0, len(p)+len(segs))
	res = append(res, p...)
	return append(res, segs...)
}

// Equal reports whether both paths have equal segments.
func (p Path) Equal(o Path) bool {
	if len(p) != len(o) {
		return false
	}
	for i := range p {
		if !p[i].Equal(o[i]) {
			return false
		}
	}
	return true
}

func (p Path) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

func (p *Path) UnmarshalText(d []byte) error {
	pp, err := ParseStrict(string(d))
	if err != nil {
		return err
	}
	*p = pp
	return nil
}

// Parse turns a key into a Path. A string is parsed with ParseString; a
// Path or []Segment is returned as is. Any other key type fails with
// ErrInvalidKeyType.
func Parse(key any) (Path, error) {
	switch k := key.(type) {
	case string:
		return ParseString(k), nil
	case Path:
		return k, nil
	case []Segment:
		return Path(k), nil
	default:
		return nil, fmt.Errorf("%w: expected string or path but got %T", ErrInvalidKeyType, key)
	}
}

// ParseString parses a dotted path.
//
// Scanning is permissive: when the input stops matching the grammar, for
// example at an unmatched '[' or a stray ']', the remainder is discarded
// and the segments parsed so far are returned. Use ParseStrict to reject
// such input instead.
func ParseString(s string) Path {
	p, _ := parse(s, false)
	return p
}

// ParseStrict parses a dotted path, failing with a *SyntaxError where
// ParseString would silently truncate.
func ParseStrict(s string) (Path, error) {
	return parse(s, true)
}

func parse(s string, strict bool) (Path, error) {
	res := Path{}
	i := 0
	n := len(s)
	for i < n {
		switch s[i] {
		case '.':
			i++
		case ']':
			return stop(res, s, i, "unexpected ']'", strict)
		case '[':
			j := strings.IndexByte(s[i+1:], ']')
			if j == -1 {
				return stop(res, s, i, "unterminated '['", strict)
			}
			if j == 0 {
				// "[]]" addresses the field "]"
				k := strings.IndexByte(s[i+2:], ']')
				if k == -1 {
					return stop(res, s, i, "empty brackets", strict)
				}
				j = k + 1
			}
			res = append(res, bracketed(s[i+1:i+1+j]))
			i += j + 2
		default:
			j := strings.IndexAny(s[i:], ".[]")
			if j == -1 {
				j = n - i
			}
			res = append(res, Field(s[i:i+j]))
			i += j
		}
	}
	if debug.Parse() {
		debug.Logf("parsed %q into %d segments\n", s, len(res))
	}
	return res, nil
}

func stop(res Path, s string, off int, msg string, strict bool) (Path, error) {
	if strict {
		return nil, &SyntaxError{Path: s, Offset: off, Msg: msg}
	}
	if debug.Parse() {
		debug.Logf("truncating %q at offset %d: %s\n", s, off, msg)
	}
	return res, nil
}

// bracketed interprets the content between '[' and ']'.
func bracketed(c string) Segment {
	switch c {
	case "first":
		return Index(0)
	case "last":
		return Index(-1)
	}
	if isSignedDigits(c) {
		if i, err := strconv.Atoi(c); err == nil {
			return Index(i)
		}
	}
	return Field(c)
}

func isSignedDigits(c string) bool {
	if c != "" && c[0] == '-' {
		c = c[1:]
	}
	if c == "" {
		return false
	}
	for i := 0; i < len(c); i++ {
		if c[i] < '0' || c[i] > '9' {
			return false
		}
	}
	return true
}

// Build renders a path in dotted syntax: fields are joined with '.', and
// indices are rendered as [n] directly after the preceding segment.
//
// Examples:
//   - [Field(a), Field(b)] → "a.b"
//   - [Field(a), Index(0), Field(b)] → "a[0].b"
//   - [Index(-1)] → "[-1]"
func Build(p Path) string {
	var buf strings.Builder
	for i, seg := range p {
		if seg.Index != nil {
			buf.WriteString(seg.String())
			continue
		}
		if i > 0 {
			buf.WriteByte('.')
		}
		buf.WriteString(seg.Name())
	}
	return buf.String()
}

// IsPathLike reports whether key should be treated as a path rather than
// a plain single-level key: segment paths always are, strings are when
// they contain '.' or '['.
func IsPathLike(key any) bool {
	switch k := key.(type) {
	case Path, []Segment:
		return true
	case string:
		return strings.ContainsAny(k, ".[")
	}
	return false
}

// Pointer renders p as an RFC 6901 JSON pointer. A final append operator
// renders as "-" and a final prepend operator as "0", matching the RFC 6902
// add semantics. Negative indices cannot be expressed and fail with
// ErrSyntax.
func Pointer(p Path) (string, error) {
	var buf strings.Builder
	for i, seg := range p {
		buf.WriteByte('/')
		if seg.Index != nil {
			if *seg.Index < 0 {
				return "", fmt.Errorf("%w: negative index %d in pointer for %q", ErrSyntax, *seg.Index, p.String())
			}
			buf.WriteString(strconv.Itoa(*seg.Index))
			continue
		}
		if i == len(p)-1 {
			switch seg.ListOp() {
			case OpAppend:
				buf.WriteByte('-')
				continue
			case OpPrepend:
				buf.WriteByte('0')
				continue
			}
		}
		buf.WriteString(pointerEscaper.Replace(seg.Name()))
	}
	return buf.String(), nil
}

var pointerEscaper = strings.NewReplacer("~", "~0", "/", "~1")
