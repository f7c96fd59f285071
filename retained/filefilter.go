package retained

import "strings"

// FileFilter represents a file type filter for save and open dialogs.
type FileFilter struct {
	Name       string   // Display name (e.g., "Images")
	Extensions []string // File extensions without dots (e.g., []string{"png", "jpg", "jpeg"})
}

// Pattern returns the filter in the "*.png;*.jpg" form native dialogs take.
// A filter without extensions matches everything.
func (f FileFilter) Pattern() string {
	if len(f.Extensions) == 0 {
		return "*.*"
	}
	parts := make([]string, len(f.Extensions))
	for i, ext := range f.Extensions {
		parts[i] = "*." + strings.TrimPrefix(ext, ".")
	}
	return strings.Join(parts, ";")
}

// FilterIndex converts the 1-based filter index a native save dialog reports
// into a position in filters. Zero, negative and out-of-range indices select
// the first filter. It returns -1 when there are no filters.
func FilterIndex(filters []FileFilter, nativeIndex int) int {
	if len(filters) == 0 {
		return -1
	}
	if nativeIndex < 1 || nativeIndex > len(filters) {
		return 0
	}
	return nativeIndex - 1
}

// FilterExtension returns the default extension (without the dot) to append
// to a saved file name for the filter the user picked. It returns "" when
// there are no filters or the picked filter lists no extensions.
func FilterExtension(filters []FileFilter, nativeIndex int) string {
	i := FilterIndex(filters, nativeIndex)
	if i < 0 || len(filters[i].Extensions) == 0 {
		return ""
	}
	return strings.TrimPrefix(filters[i].Extensions[0], ".")
}
