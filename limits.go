package keypager

const (
	// NoLimit disables the limit entirely. Incompatible with lookahead.
	NoLimit = -1
	// MaxLimit caps normalized page sizes.
	MaxLimit = 100
	// DefaultLimit replaces non-positive page sizes.
	DefaultLimit = 10
)

// IsNormalizedLimitMax brings limit into (0, maxLimit] and reports whether the
// input was already in range. Non-positive limits fall back to DefaultLimit,
// values above maxLimit are clamped to it.
func IsNormalizedLimitMax(limit int, maxLimit int) (int, bool) {
	if limit <= 0 {
		return DefaultLimit, false
	} else if limit > maxLimit {
		return maxLimit, false
	}

	return limit, true
}

// NormalizeLimitMax is IsNormalizedLimitMax without the in-range report.
func NormalizeLimitMax(limit int, maxLimit int) int {
	ret, _ := IsNormalizedLimitMax(limit, maxLimit)
	return ret
}

// NormalizeLimit normalizes limit against MaxLimit. Pager.WithLimit applies it
// to every limit except NoLimit.
func NormalizeLimit(limit int) int {
	return NormalizeLimitMax(limit, MaxLimit)
}
