package webview

import (
	"fmt"
	"net/url"
	"strconv"
)

// intRange is an inclusive bound on an integer query parameter
type intRange struct {
	lo, hi int
}

// queryInt reads key from the query string, falling back to def when it is
// absent. Values outside r are rejected.
func queryInt(values url.Values, key string, def int, r intRange) (int, error) {
	raw := values.Get(key)
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s: %q is not an integer", key, raw)
	}
	if n < r.lo || n > r.hi {
		return 0, fmt.Errorf("%s: %d out of range [%d, %d]", key, n, r.lo, r.hi)
	}
	return n, nil
}
