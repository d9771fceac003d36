package firebasetest

import (
	"strconv"
	"strings"
)

// splitPath turns "users/info" into its segments, ignoring empty ones.
func splitPath(p string) []string {
	var segs []string
	for _, s := range strings.Split(p, "/") {
		if s != "" {
			segs = append(segs, s)
		}
	}
	return segs
}

func getNode(node any, segs []string) any {
	for _, seg := range segs {
		switch n := node.(type) {
		case map[string]any:
			node = n[seg]
		case []any:
			i, err := strconv.Atoi(seg)
			if err != nil || i < 0 || i >= len(n) {
				return nil
			}
			node = n[i]
		default:
			return nil
		}
	}
	return node
}

// setNode stores v below node and returns the new node. A nil v deletes;
// objects left empty disappear, as they do in the real database.
func setNode(node any, segs []string, v any) any {
	if len(segs) == 0 {
		return prune(v)
	}
	m, ok := node.(map[string]any)
	if !ok {
		m = arrayToMap(node)
	}
	child := setNode(m[segs[0]], segs[1:], v)
	if child == nil {
		delete(m, segs[0])
	} else {
		m[segs[0]] = child
	}
	if len(m) == 0 {
		return nil
	}
	return m
}

func arrayToMap(node any) map[string]any {
	m := make(map[string]any)
	if a, ok := node.([]any); ok {
		for i, v := range a {
			if v != nil {
				m[strconv.Itoa(i)] = v
			}
		}
	}
	return m
}

func prune(v any) any {
	switch n := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(n))
		for k, child := range n {
			if c := prune(child); c != nil {
				out[k] = c
			}
		}
		if len(out) == 0 {
			return nil
		}
		return out
	case []any:
		out := make([]any, 0, len(n))
		empty := true
		for _, child := range n {
			c := prune(child)
			if c != nil {
				empty = false
			}
			out = append(out, c)
		}
		if empty {
			return nil
		}
		return out
	default:
		return v
	}
}

// shallow replaces every child of an object by true.
func shallow(v any) any {
	m, ok := v.(map[string]any)
	if !ok {
		return v
	}
	out := make(map[string]any, len(m))
	for k := range m {
		out[k] = true
	}
	return out
}

// Data returns the value stored at path, nil when absent.
func (s *Server) Data(path string) any {
	s.mu.Lock()
	defer s.mu.Unlock()
	return clone(getNode(s.root, splitPath(path)))
}

func clone(v any) any {
	switch n := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(n))
		for k, child := range n {
			out[k] = clone(child)
		}
		return out
	case []any:
		out := make([]any, len(n))
		for i, child := range n {
			out[i] = clone(child)
		}
		return out
	default:
		return v
	}
}

// SetData seeds the database. A nil value deletes.
func (s *Server) SetData(path string, v any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.root = setNode(s.root, splitPath(path), v)
}
