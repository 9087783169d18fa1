package intake

import "strconv"

// flattenMaxDepth caps recursion into pathological payloads.
const flattenMaxDepth = 16

// FlattenJSON converts a decoded JSON value into a flat map keyed by
// dotted paths, with [i] suffixes for array elements.
func FlattenJSON(value any) map[string]any {
	out := make(map[string]any)
	flattenInto(out, "", value, 0)
	return out
}

func flattenInto(out map[string]any, prefix string, value any, depth int) {
	if depth > flattenMaxDepth {
		if prefix != "" {
			out[prefix] = "<truncated>"
		}
		return
	}

	switch v := value.(type) {
	case map[string]any:
		for k, child := range v {
			key := k
			if prefix != "" {
				key = prefix + "." + k
			}
			flattenInto(out, key, child, depth+1)
		}
	case []any:
		for i, child := range v {
			key := "[" + strconv.Itoa(i) + "]"
			if prefix != "" {
				key = prefix + key
			}
			flattenInto(out, key, child, depth+1)
		}
	default:
		if prefix == "" {
			out["value"] = v
			return
		}
		out[prefix] = v
	}
}
