package middleware

import "fmt"

// currentUserID renders the "user_id" context value for cache and rate
// limit keys.  JWT numeric claims decode as float64, so anything
// non-nil is formatted rather than type-asserted.  Anonymous requests
// key as "anon".
func currentUserID(v interface{}) string {
	if v == nil {
		return "anon"
	}
	switch t := v.(type) {
	case string:
		if t == "" {
			return "anon"
		}
		return t
	case float64:
		return fmt.Sprintf("%.0f", t)
	default:
		return fmt.Sprint(t)
	}
}
