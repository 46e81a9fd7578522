package router

import (
	"fmt"
	"strings"

	"github.com/dmitrymomot/spike/core/request"
)

// tree is the path-matching trie. It maps registered patterns to values
// and resolves request paths to the value plus the ordered captured
// parameters. Patterns are made of literal segments, {name} captures,
// and an optional trailing * wildcard.
//
// The trie is written once during Build and read-only afterwards.
type tree[T any] struct {
	root *node[T]
}

type node[T any] struct {
	static   map[string]*node[T]
	param    *node[T]
	wildcard *node[T]

	// capture name for param nodes
	key string

	value    T
	hasValue bool
	pattern  string
}

func newTree[T any]() *tree[T] {
	return &tree[T]{root: &node[T]{}}
}

// insert registers a value under the given pattern. Registering the same
// pattern twice, or a capture segment conflicting with an existing capture
// of a different name at the same position, is an error.
func (t *tree[T]) insert(pattern string, v T) error {
	if pattern == "" || pattern[0] != '/' {
		return fmt.Errorf("%w: %q", ErrInvalidPattern, pattern)
	}

	segs := splitPath(pattern)
	seen := make(map[string]struct{})
	n := t.root

	for i, seg := range segs {
		switch {
		case seg == "*":
			if i != len(segs)-1 {
				return fmt.Errorf("%w: %q", ErrWildcardPosition, pattern)
			}
			if n.wildcard == nil {
				n.wildcard = &node[T]{}
			}
			n = n.wildcard

		case len(seg) > 1 && seg[0] == '{' && seg[len(seg)-1] == '}':
			key := seg[1 : len(seg)-1]
			if key == "" {
				return fmt.Errorf("%w: empty capture in %q", ErrInvalidPattern, pattern)
			}
			if _, dup := seen[key]; dup {
				return fmt.Errorf("%w: %q in %q", ErrDuplicateParam, key, pattern)
			}
			seen[key] = struct{}{}
			if n.param == nil {
				n.param = &node[T]{key: key}
			} else if n.param.key != key {
				return fmt.Errorf("%w: capture {%s} conflicts with existing {%s}",
					ErrDuplicatePattern, key, n.param.key)
			}
			n = n.param

		case strings.ContainsAny(seg, "{}*"):
			return fmt.Errorf("%w: %q", ErrInvalidPattern, pattern)

		default:
			if n.static == nil {
				n.static = make(map[string]*node[T])
			}
			child, ok := n.static[seg]
			if !ok {
				child = &node[T]{}
				n.static[seg] = child
			}
			n = child
		}
	}

	if n.hasValue {
		return fmt.Errorf("%w: %q", ErrDuplicatePattern, pattern)
	}
	n.value = v
	n.hasValue = true
	n.pattern = pattern
	return nil
}

// match resolves a request path to its registered value and the captured
// parameters in capture order. Static segments win over captures; a
// trailing wildcard absorbs any remainder under the parameter name "*".
func (t *tree[T]) match(path string) (T, request.Params, bool) {
	n, params := t.root.match(splitPath(path), nil)
	if n == nil {
		var zero T
		return zero, nil, false
	}
	return n.value, params, true
}

func (n *node[T]) match(segs []string, params request.Params) (*node[T], request.Params) {
	if len(segs) == 0 {
		if n.hasValue {
			return n, params
		}
		return nil, nil
	}

	seg := segs[0]

	if child, ok := n.static[seg]; ok {
		if found, p := child.match(segs[1:], params); found != nil {
			return found, p
		}
	}

	if n.param != nil && seg != "" {
		captured := append(params, request.Param{Name: n.param.key, Value: seg})
		if found, p := n.param.match(segs[1:], captured); found != nil {
			return found, p
		}
	}

	if n.wildcard != nil && n.wildcard.hasValue {
		rest := strings.Join(segs, "/")
		return n.wildcard, append(params, request.Param{Name: "*", Value: rest})
	}

	return nil, nil
}

// patterns returns every registered pattern, for route introspection.
func (t *tree[T]) patterns() []string {
	var out []string
	t.root.collect(&out)
	return out
}

func (n *node[T]) collect(out *[]string) {
	if n.hasValue {
		*out = append(*out, n.pattern)
	}
	for _, child := range n.static {
		child.collect(out)
	}
	if n.param != nil {
		n.param.collect(out)
	}
	if n.wildcard != nil {
		n.wildcard.collect(out)
	}
}

func splitPath(p string) []string {
	p = strings.TrimPrefix(p, "/")
	if p == "" {
		return nil
	}
	return strings.Split(p, "/")
}
