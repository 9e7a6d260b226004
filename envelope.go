package svcerr

import (
	"encoding/json"
	"math"
	"strconv"
)

// lookup walks nested maps along path. Missing keys and non-map
// intermediates yield nil.
func lookup(response Response, path ...string) any {
	var cur any = map[string]any(response)
	for _, key := range path {
		m, ok := asMap(cur)
		if !ok {
			return nil
		}
		cur = m[key]
	}
	return cur
}

func asMap(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case map[string]any:
		return m, m != nil
	case Response:
		return m, m != nil
	case map[string]string:
		out := make(map[string]any, len(m))
		for k, s := range m {
			out[k] = s
		}
		return out, true
	}
	return nil, false
}

func lookupString(response Response, path ...string) string {
	s, _ := lookup(response, path...).(string)
	return s
}

// lookupInt accepts the numeric forms an envelope picks up on its way through
// SDKs and JSON decoders. Anything else, including fractional values, is 0.
func lookupInt(response Response, path ...string) int {
	switch n := lookup(response, path...).(type) {
	case int:
		return n
	case int32:
		return int(n)
	case int64:
		return int(n)
	case uint16:
		return int(n)
	case float64:
		if n == math.Trunc(n) {
			return int(n)
		}
	case json.Number:
		if i, err := n.Int64(); err == nil {
			return int(i)
		}
	case string:
		if i, err := strconv.Atoi(n); err == nil {
			return i
		}
	}
	return 0
}
