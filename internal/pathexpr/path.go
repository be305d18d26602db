package pathexpr

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// ErrInvalidPathSyntax is returned when a path cannot be split into segments
// and integer indices.
var ErrInvalidPathSyntax = errors.New("invalid path syntax")

// Segment is a single dot-separated part of a path.
type Segment struct {
	// Name is the member name or mapping key (text before the first '[').
	Name string
	// Indices are applied left to right as successive sequence lookups.
	Indices []int
}

// HasIndices reports whether the segment carries bracket groups.
func (s Segment) HasIndices() bool {
	return len(s.Indices) > 0
}

// String renders the segment in path syntax.
func (s Segment) String() string {
	var b strings.Builder

	b.WriteString(s.Name)

	for _, idx := range s.Indices {
		b.WriteByte('[')
		b.WriteString(strconv.Itoa(idx))
		b.WriteByte(']')
	}

	return b.String()
}

// Path is a parsed field path.
type Path struct {
	Segments []Segment
}

// IsRoot reports whether the path addresses the root value.
func (p Path) IsRoot() bool {
	return len(p.Segments) == 0
}

// String renders the path in canonical form.
func (p Path) String() string {
	parts := make([]string, len(p.Segments))
	for i, s := range p.Segments {
		parts[i] = s.String()
	}

	return strings.Join(parts, ".")
}

// Parent returns the path without its last segment, and that last segment.
// ok is false for the root path.
func (p Path) Parent() (parent Path, last Segment, ok bool) {
	if p.IsRoot() {
		return Path{}, Segment{}, false
	}

	n := len(p.Segments)

	return Path{Segments: p.Segments[:n-1]}, p.Segments[n-1], true
}

// Parse parses a field path string into a Path.
// Supports: "Field", "Nested.Field", "Items[0]", "Items[0][1].ProductID".
// The empty string parses to the root path.
func Parse(path string) (Path, error) {
	if path == "" {
		return Path{}, nil
	}

	var segments []Segment

	for part := range strings.SplitSeq(path, ".") {
		seg, err := parseSegment(part)
		if err != nil {
			return Path{}, fmt.Errorf("%w: path %q: %v", ErrInvalidPathSyntax, path, err)
		}

		segments = append(segments, seg)
	}

	return Path{Segments: segments}, nil
}

func parseSegment(part string) (Segment, error) {
	open := strings.IndexByte(part, '[')
	if open < 0 {
		if part == "" {
			return Segment{}, errors.New("empty segment")
		}

		if strings.IndexByte(part, ']') >= 0 {
			return Segment{}, fmt.Errorf("unexpected ']' in %q", part)
		}

		return Segment{Name: part}, nil
	}

	seg := Segment{Name: part[:open]}
	if seg.Name == "" {
		return Segment{}, fmt.Errorf("index without name in %q", part)
	}

	if strings.IndexByte(seg.Name, ']') >= 0 {
		return Segment{}, fmt.Errorf("unexpected ']' in %q", part)
	}

	rest := part[open:]
	for rest != "" {
		if rest[0] != '[' {
			return Segment{}, fmt.Errorf("unexpected %q after index in %q", rest, part)
		}

		end := strings.IndexByte(rest, ']')
		if end < 0 {
			return Segment{}, fmt.Errorf("unclosed '[' in %q", part)
		}

		idx, err := parseIndex(rest[1:end])
		if err != nil {
			return Segment{}, err
		}

		seg.Indices = append(seg.Indices, idx)
		rest = rest[end+1:]
	}

	return seg, nil
}

// parseIndex accepts only plain decimal digits; signs and spaces are rejected.
func parseIndex(s string) (int, error) {
	if s == "" {
		return 0, errors.New("empty index")
	}

	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, fmt.Errorf("index %q is not a non-negative integer", s)
		}
	}

	idx, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("index %q: %w", s, err)
	}

	return idx, nil
}

var indexPattern = regexp.MustCompile(`\[(\d+)\]`)

// Indices returns every well-formed bracket index found anywhere in s, in
// order of appearance. Malformed groups are skipped.
func Indices(s string) []int {
	var out []int

	for _, m := range indexPattern.FindAllStringSubmatch(s, -1) {
		idx, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}

		out = append(out, idx)
	}

	return out
}

// Child appends a member name to a prefix path.
func Child(prefix, name string) string {
	if prefix == "" {
		return name
	}

	return prefix + "." + name
}

// Element appends a sequence index to a prefix path.
func Element(prefix string, i int) string {
	return prefix + "[" + strconv.Itoa(i) + "]"
}
