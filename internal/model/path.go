package model

import (
	"strconv"
	"strings"
)

// Path addresses a node in the accessible tree. Segments are joined with
// "." and a segment may carry an ":index" disambiguator, e.g.
// "choices.container:0.radio:2". The empty path is the tree root.
type Path string

const (
	pathSep  = "."
	indexSep = ":"
)

// JoinPath appends a segment to a parent path.
func JoinPath(parent Path, segment string) Path {
	if parent == "" {
		return Path(segment)
	}
	return Path(string(parent) + pathSep + segment)
}

// Segment builds an "id:index" segment.
func Segment(id string, index int) string {
	return id + indexSep + strconv.Itoa(index)
}

// IsRoot reports whether p addresses the tree root.
func (p Path) IsRoot() bool { return p == "" }

// String returns the raw path.
func (p Path) String() string { return string(p) }

// Segments splits the path into its segments. The root path has none.
func (p Path) Segments() []string {
	if p == "" {
		return nil
	}
	return strings.Split(string(p), pathSep)
}

// Root returns the first segment, which is the owning widget's id.
func (p Path) Root() string {
	if i := strings.Index(string(p), pathSep); i >= 0 {
		return string(p[:i])
	}
	return string(p)
}

// Parent strips the last segment. The parent of a top-level path is the root.
func (p Path) Parent() Path {
	if i := strings.LastIndex(string(p), pathSep); i >= 0 {
		return p[:i]
	}
	return ""
}

// Last returns the final segment.
func (p Path) Last() string {
	if i := strings.LastIndex(string(p), pathSep); i >= 0 {
		return string(p[i+1:])
	}
	return string(p)
}

// Depth is the number of segments.
func (p Path) Depth() int {
	if p == "" {
		return 0
	}
	return strings.Count(string(p), pathSep) + 1
}

// ChildIndex extracts the trailing ":N" of the last segment.
func (p Path) ChildIndex() (int, bool) {
	last := p.Last()
	i := strings.LastIndex(last, indexSep)
	if i < 0 {
		return 0, false
	}
	n, err := strconv.Atoi(last[i+1:])
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}

// WithSuffix appends a segment to p.
func (p Path) WithSuffix(segment string) Path {
	return JoinPath(p, segment)
}

// HasSuffix reports whether p ends with the given literal suffix on a
// segment boundary, so "panel.close" matches "close" but "panel.enclose" does not.
func (p Path) HasSuffix(suffix string) bool {
	if suffix == "" {
		return false
	}
	s := string(p)
	if s == suffix {
		return true
	}
	return strings.HasSuffix(s, pathSep+suffix)
}

// Contains reports whether other is p itself or one of its descendants.
func (p Path) Contains(other Path) bool {
	if p == "" {
		return true
	}
	return other == p || strings.HasPrefix(string(other), string(p)+pathSep)
}

// relative strips p from the front of other. ok is false when other is
// not inside p.
func (p Path) relative(other Path) (Path, bool) {
	if p == "" {
		return other, true
	}
	if other == p {
		return "", true
	}
	if strings.HasPrefix(string(other), string(p)+pathSep) {
		return other[len(p)+len(pathSep):], true
	}
	return "", false
}
