package overlay

// Merge deep-merges an overlay value onto a base value and returns a new
// structure; neither input is mutated.
//
// Maps merge key-wise, overlay keys winning recursively. A plain []any in
// the overlay replaces the base array wholesale; an IndexPatch merges
// element-wise onto the base array, extending it when patched indices lie
// past its end. Scalars from the overlay win outright. A nil overlay keeps
// the base.
func Merge(base, over any) any {
	switch o := over.(type) {
	case map[string]any:
		bm, _ := base.(map[string]any)
		out := make(map[string]any, len(bm)+len(o))
		for k, v := range bm {
			out[k] = cloneValue(v)
		}
		for k, v := range o {
			out[k] = Merge(out[k], v)
		}
		return out
	case IndexPatch:
		barr, _ := base.([]any)
		n := len(barr)
		for i := range o {
			if i+1 > n {
				n = i + 1
			}
		}
		out := make([]any, n)
		for i, v := range barr {
			out[i] = cloneValue(v)
		}
		for i, v := range o {
			if i < 0 {
				continue
			}
			out[i] = Merge(out[i], v)
		}
		return out
	case []any:
		out := make([]any, len(o))
		for i, v := range o {
			out[i] = Merge(nil, v)
		}
		return out
	case nil:
		return cloneValue(base)
	default:
		return o
	}
}
