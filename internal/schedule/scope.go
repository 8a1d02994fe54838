package schedule

// ScopeMatcher decides whether two resource scopes contend for the same
// physical or human resource. Scopes are opaque key/value maps; richer
// resource models plug in here without changing the detector's interface.
type ScopeMatcher func(a, b map[string]string) bool

// AnyPairMatch is the default matcher: the scopes contend when they share
// at least one identical key/value pair (same court, same judge, ...).
func AnyPairMatch(a, b map[string]string) bool {
	if len(a) == 0 || len(b) == 0 {
		return false
	}
	for k, v := range a {
		if other, ok := b[k]; ok && other == v {
			return true
		}
	}
	return false
}
