package planfile

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	plancheckerrors "github.com/plancheck/plancheck/pkg/errors"
)

// ErrNotFound marks a well-formed path whose target is absent from the
// snapshot. Callers distinguish it from a *errors.PathError, which means the
// expression itself is malformed.
var ErrNotFound = errors.New("value not found")

// segment is one dot-separated component of a path expression: a map key
// followed by zero or more list indexes.
type segment struct {
	key     string
	indexes []int
}

// parsePath parses a dotted/indexed expression such as
// "resources[2].tags[0].key" into segments. A malformed expression yields a
// *errors.PathError.
func parsePath(path string) ([]segment, error) {
	if strings.TrimSpace(path) == "" {
		return nil, plancheckerrors.NewPathError(path, "empty expression")
	}

	raw := strings.Split(path, ".")
	segments := make([]segment, 0, len(raw))

	for _, part := range raw {
		if part == "" {
			return nil, plancheckerrors.NewPathError(path, "empty segment")
		}

		open := strings.IndexByte(part, '[')
		key := part
		rest := ""
		if open >= 0 {
			key = part[:open]
			rest = part[open:]
		}
		if key == "" {
			return nil, plancheckerrors.NewPathError(path, fmt.Sprintf("segment %q has no key", part))
		}
		if strings.ContainsAny(key, "]") {
			return nil, plancheckerrors.NewPathError(path, fmt.Sprintf("unexpected ']' in segment %q", part))
		}

		seg := segment{key: key}
		for rest != "" {
			if rest[0] != '[' {
				return nil, plancheckerrors.NewPathError(path, fmt.Sprintf("unexpected %q after index in segment %q", string(rest[0]), part))
			}
			close := strings.IndexByte(rest, ']')
			if close < 0 {
				return nil, plancheckerrors.NewPathError(path, fmt.Sprintf("unterminated index in segment %q", part))
			}
			idxText := rest[1:close]
			idx, err := strconv.Atoi(idxText)
			if err != nil || idx < 0 {
				return nil, plancheckerrors.NewPathError(path, fmt.Sprintf("invalid index %q in segment %q", idxText, part))
			}
			seg.indexes = append(seg.indexes, idx)
			rest = rest[close+1:]
		}

		segments = append(segments, seg)
	}

	return segments, nil
}

// resolve walks the value tree along the parsed segments. A missing key or
// out-of-range index yields ErrNotFound wrapped with location context.
func resolve(root Value, path string, segments []segment) (Value, error) {
	current := root
	for _, seg := range segments {
		next, ok := current.Key(seg.key)
		if !ok {
			return Null(), fmt.Errorf("%w: %s (missing key %q)", ErrNotFound, path, seg.key)
		}
		current = next

		for _, idx := range seg.indexes {
			item, ok := current.Index(idx)
			if !ok {
				return Null(), fmt.Errorf("%w: %s (index %d out of range)", ErrNotFound, path, idx)
			}
			current = item
		}
	}
	return current, nil
}
