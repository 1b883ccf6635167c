package waypoint

import "net/url"

// LogMaskVal replaces sensitive values before they are logged.
const LogMaskVal = "xxxxxx"

// Mask replaces all values stored under key in vals with a single LogMaskVal.
func Mask(vals url.Values, key string) {
	if _, ok := vals[key]; !ok {
		return
	}

	vals[key] = []string{LogMaskVal}
}

// MaskMap replaces the value stored under key in m, and in any map nested in m, with LogMaskVal.
func MaskMap(m map[string]any, key string) {
	for k, v := range m {
		if k == key {
			m[k] = LogMaskVal
			continue
		}

		if nested, ok := v.(map[string]any); ok {
			MaskMap(nested, key)
		}
	}
}
