package operator

import "fmt"

// compareEqual, compareLess, and compareGreater implement Neo4j-style
// comparison semantics: numeric types compare numerically regardless
// of exact Go type (int32 vs float64), and anything else falls back to
// string comparison.

func compareEqual(actual, expected any) bool {
	if actual == nil && expected == nil {
		return true
	}
	if actual == nil || expected == nil {
		return false
	}
	an, aok := toFloat64(actual)
	en, eok := toFloat64(expected)
	if aok && eok {
		return an == en
	}
	return fmt.Sprintf("%v", actual) == fmt.Sprintf("%v", expected)
}

func compareLess(actual, expected any) bool {
	an, aok := toFloat64(actual)
	en, eok := toFloat64(expected)
	if aok && eok {
		return an < en
	}
	return fmt.Sprintf("%v", actual) < fmt.Sprintf("%v", expected)
}

func compareGreater(actual, expected any) bool {
	an, aok := toFloat64(actual)
	en, eok := toFloat64(expected)
	if aok && eok {
		return an > en
	}
	return fmt.Sprintf("%v", actual) > fmt.Sprintf("%v", expected)
}

func toFloat64(v any) (float64, bool) {
	switch n := v.(type) {
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case int:
		return float64(n), true
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case uint32:
		return float64(n), true
	default:
		return 0, false
	}
}
