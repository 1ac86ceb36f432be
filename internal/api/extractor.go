package api

import (
	"strconv"
	"strings"
)

// BrowseResponse is the raw JSON payload of a server response. Everything
// above the parser layer works with typed entities; this permissive tree
// never escapes the api package.
type BrowseResponse map[string]any

// getPath walks a nested path of map keys and array indices.
func getPath(data map[string]any, keys ...any) any {
	current := any(data)

	for _, key := range keys {
		switch k := key.(type) {
		case string:
			m, ok := current.(map[string]any)
			if !ok {
				return nil
			}
			current = m[k]
		case int:
			a, ok := current.([]any)
			if !ok || k >= len(a) {
				return nil
			}
			current = a[k]
		default:
			return nil
		}
	}

	return current
}

// getPathString gets a string value from a nested path. Numeric path
// segments index into arrays.
func getPathString(data map[string]any, keys ...string) string {
	if result := getPath(data, convertKeys(keys)...); result != nil {
		if s, ok := result.(string); ok {
			return s
		}
	}
	return ""
}

func convertKeys(keys []string) []any {
	converted := make([]any, len(keys))
	for i, k := range keys {
		if num, err := strconv.Atoi(k); err == nil {
			converted[i] = num
		} else {
			converted[i] = k
		}
	}
	return converted
}

// firstString tries each alias path in priority order and returns the first
// non-empty string.
func firstString(obj map[string]any, paths [][]string) string {
	for _, path := range paths {
		if s := getPathString(obj, path...); s != "" {
			return s
		}
	}
	return ""
}

func asSlice(v any) []any {
	s, _ := v.([]any)
	return s
}

func asMap(v any) map[string]any {
	m, _ := v.(map[string]any)
	return m
}

func mapSlice(slice []any) []map[string]any {
	var result []map[string]any
	for _, item := range slice {
		if m, ok := item.(map[string]any); ok {
			result = append(result, m)
		}
	}
	return result
}

// parseDuration normalizes a duration to seconds. It accepts a numeric
// seconds value or a colon-delimited MM:SS / H:MM:SS string. An absent or
// unparseable duration yields nil, never zero.
func parseDuration(value any) *float64 {
	switch v := value.(type) {
	case float64:
		if v < 0 {
			return nil
		}
		return &v
	case int:
		f := float64(v)
		if f < 0 {
			return nil
		}
		return &f
	case string:
		return parseDurationString(v)
	default:
		return nil
	}
}

func parseDurationString(duration string) *float64 {
	parts := strings.Split(strings.TrimSpace(duration), ":")
	if len(parts) < 2 || len(parts) > 3 {
		return nil
	}

	seconds := 0
	for i := 0; i < len(parts); i++ {
		val, err := strconv.Atoi(strings.TrimSpace(parts[i]))
		if err != nil || val < 0 {
			return nil
		}

		seconds = seconds*60 + val
	}

	result := float64(seconds)

	return &result
}

// parseTrackCount normalizes a track count to an integer. It accepts a plain
// number or a comma-grouped decimal string like "1,234".
func parseTrackCount(value any) *int {
	switch v := value.(type) {
	case float64:
		n := int(v)
		return &n
	case int:
		return &v
	case string:
		cleaned := strings.ReplaceAll(strings.TrimSpace(v), ",", "")
		// Strings like "1,234 songs" carry a trailing label.
		if idx := strings.IndexByte(cleaned, ' '); idx > 0 {
			cleaned = cleaned[:idx]
		}
		n, err := strconv.Atoi(cleaned)
		if err != nil {
			return nil
		}
		return &n
	default:
		return nil
	}
}

// findThumbnail returns the largest thumbnail URL, trying the known shapes.
func findThumbnail(obj map[string]any) string {
	paths := [][]any{
		{"thumbnail", "musicThumbnailRenderer", "thumbnail", "thumbnails"},
		{"thumbnailRenderer", "musicThumbnailRenderer", "thumbnail", "thumbnails"},
		{"thumbnail", "thumbnails"},
		{"thumbnails"},
	}

	for _, path := range paths {
		thumbs := asSlice(getPath(obj, path...))
		if len(thumbs) == 0 {
			continue
		}

		// The largest variant is conventionally last.
		if last := asMap(thumbs[len(thumbs)-1]); last != nil {
			if url, ok := last["url"].(string); ok {
				return url
			}
		}
	}

	return ""
}

// runsText concatenates all text runs under the given path, separators
// included, so callers can split on them.
func runsText(obj map[string]any, keys ...any) string {
	runs := asSlice(getPath(obj, append(keys, "runs")...))

	var b strings.Builder
	for _, run := range runs {
		if m := asMap(run); m != nil {
			if text, ok := m["text"].(string); ok {
				b.WriteString(text)
			}
		}
	}

	return b.String()
}

// crawl applies transform to every node of the tree, depth-first, without
// descending into nodes the transform accepted. Results are deduplicated by
// keyFunc.
func crawl[T any](data any, transform func(map[string]any) *T, keyFunc func(T) string) []T {
	var results []T
	seen := make(map[string]bool)

	var walk func(any)
	walk = func(value any) {
		if obj, ok := value.(map[string]any); ok {
			if result := transform(obj); result != nil {
				key := keyFunc(*result)
				if !seen[key] {
					results = append(results, *result)
					seen[key] = true
				}
				return
			}
		}

		switch v := value.(type) {
		case map[string]any:
			for _, val := range v {
				walk(val)
			}
		case BrowseResponse:
			for _, val := range v {
				walk(val)
			}
		case []any:
			for _, item := range v {
				walk(item)
			}
		}
	}

	walk(data)

	return results
}

// collectRendererKeys walks the tree and gathers the set of renderer-shape
// key names it contains. Used by the discovery tool only.
func collectRendererKeys(data any) []string {
	seen := make(map[string]bool)

	var walk func(any)
	walk = func(value any) {
		switch v := value.(type) {
		case map[string]any:
			for key, val := range v {
				if strings.HasSuffix(key, "Renderer") {
					seen[key] = true
				}
				walk(val)
			}
		case BrowseResponse:
			walk(map[string]any(v))
		case []any:
			for _, item := range v {
				walk(item)
			}
		}
	}

	walk(data)

	keys := make([]string, 0, len(seen))
	for key := range seen {
		keys = append(keys, key)
	}

	return keys
}
