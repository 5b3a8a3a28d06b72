package service

import (
	"time"

	"lemmyharvest/internal/services/harvest/domain"
)

// Hardcoded fallbacks applied field by field when the options bag is
// missing a key, or wholesale when the bag itself is absent
const (
	DefaultOldnessSeconds = 3600
	DefaultMaximumItems   = 100
	DefaultMinPostLength  = 10
)

// Option keys accepted in the loosely-typed bag
const (
	KeyMaxOldnessSeconds = "max_oldness_seconds"
	KeyMaximumItems      = "maximum_items_to_collect"
	KeyMinPostLength     = "min_post_length"
)

// ResolveParams normalizes the options bag into bounded values. Each field
// falls back to its own default when the key is missing or carries a
// non-numeric value; present numeric values pass through without range
// checks, negatives included
func ResolveParams(options map[string]any) domain.Params {
	return domain.Params{
		MaxOldness:    time.Duration(intOption(options, KeyMaxOldnessSeconds, DefaultOldnessSeconds)) * time.Second,
		MaxItems:      intOption(options, KeyMaximumItems, DefaultMaximumItems),
		MinPostLength: intOption(options, KeyMinPostLength, DefaultMinPostLength),
	}
}

// intOption reads one numeric key; JSON decoding hands numbers over as
// float64, direct callers as int, both are accepted
func intOption(options map[string]any, key string, def int) int {
	if len(options) == 0 {
		return def
	}
	v, ok := options[key]
	if !ok {
		return def
	}
	switch n := v.(type) {
	case int:
		return n
	case int32:
		return int(n)
	case int64:
		return int(n)
	case float64:
		return int(n)
	case float32:
		return int(n)
	default:
		return def
	}
}
