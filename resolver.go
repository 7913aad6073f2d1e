package hier

// lookupResult reports the outcome of one categorized search. path holds the
// category names visited from the searching node downward; the caller caches
// path[0].
type lookupResult struct {
	value    any
	found    bool
	path     []string
	cacheHit bool
	evicted  bool
}

// lookup searches categories for field. Each step short-circuits, in order:
//
//  1. direct name match: a subcategory literally named field is the value
//  2. cache probe (top level only): one non-recursive field read on the
//     hinted child; a miss evicts the stale entry and falls through to the
//     full search
//  3. one-level scan over every child's direct fields
//  4. recursive scan into children that themselves have categories
//
// Iteration order over siblings is map order and deliberately unspecified;
// absence is only declared after every child was tried. A missing field is
// reported as found=false, never as an error.
func lookup(categories map[string]*Table, field string, cache map[string]string, path []string) lookupResult {
	if child, ok := categories[field]; ok {
		return lookupResult{value: child, found: true, path: path}
	}

	evicted := false
	if cache != nil && len(path) == 0 {
		if name, ok := cache[field]; ok {
			if hinted, ok := categories[name]; ok && hinted != nil {
				if value, ok := hinted.fields[field]; ok {
					return lookupResult{
						value:    value,
						found:    true,
						path:     []string{name},
						cacheHit: true,
					}
				}
			}
			// The hint is best-effort: resolved through the live categories
			// map and never trusted beyond one probe, so a replaced or
			// removed child self-heals here instead of serving stale data.
			delete(cache, field)
			evicted = true
		}
	}

	for name, child := range categories {
		if child == nil {
			continue
		}
		if value, ok := child.fields[field]; ok {
			return lookupResult{
				value:   value,
				found:   true,
				path:    appendHop(path, name),
				evicted: evicted,
			}
		}
	}

	for name, child := range categories {
		if child == nil || len(child.categories) == 0 {
			continue
		}
		res := lookup(child.categories, field, cache, appendHop(path, name))
		if res.found {
			res.evicted = res.evicted || evicted
			return res
		}
		evicted = evicted || res.evicted
	}

	return lookupResult{path: path, evicted: evicted}
}

// appendHop copies before appending so sibling branches never share a
// backing array.
func appendHop(path []string, name string) []string {
	next := make([]string, 0, len(path)+1)
	next = append(next, path...)
	return append(next, name)
}
