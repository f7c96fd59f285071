package retained

import "strings"

// SplitPath splits a "/"-delimited widget address into its segments.
// Empty segments ("a//b", a leading or trailing slash) are dropped.
func SplitPath(path string) []string {
	parts := strings.Split(path, "/")
	out := parts[:0]
	for _, s := range parts {
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}

// Find resolves leaf through the container names in path, starting at root.
//
// With an empty path leaf is a widget of root. A single segment names a pane
// of root whose content holds leaf. With two or more segments the first names
// a tab control and the second one of its tabs, and resolution continues in
// that tab with the rest of the path; a first segment naming a pane instead
// descends into its content with the remaining segments.
//
// Any missing segment, a detached page or a nil root yields false.
func Find(root *Page, path []string, leaf string) (*Widget, bool) {
	for root != nil && !root.detached {
		if len(path) == 0 {
			w, ok := root.index[leaf]
			return w, ok
		}

		head, ok := root.index[path[0]]
		if !ok {
			return nil, false
		}
		switch {
		case head.content != nil:
			root, path = head.content, path[1:]
		case head.tabs != nil && len(path) >= 2:
			tab, ok := head.tabs.Page(path[1])
			if !ok {
				return nil, false
			}
			root, path = tab, path[2:]
		default:
			return nil, false
		}
	}
	return nil, false
}
