package governance

// rules.go - normalization of heterogeneous column rule syntax into one
// canonical rule set.

import (
	"sort"
	"strings"
)

// Synonym groups. Every key is matched case-insensitively and maps to one
// canonical rule field.
var (
	notNullKeys = []string{
		"not_null",
		"notnull",
		"expect_column_values_to_not_be_null",
	}

	uniqueKeys = []string{
		"unique",
		"distinct",
		"expect_column_values_to_be_unique",
	}

	rangeKeys = []string{
		"accepted_range",
		"range",
		"between",
		"expect_column_values_to_be_between",
		"dbt_expectations.expect_column_values_to_be_between",
	}

	regexKeys = []string{"regex", "pattern", "match", "matches", "expression"}

	minKeys = []string{"min", "min_value", "gte", "lower_bound"}
	maxKeys = []string{"max", "max_value", "lte", "upper_bound"}

	// ruleCollectionKeys are consulted first-match: the first present and
	// non-empty collection wins, the rest are ignored even when present.
	ruleCollectionKeys = []string{"rules", "tests", "constraints"}
)

// Range holds the merged bounds of every range-like source on a column.
// At least one bound is always non-nil; an empty range is never stored.
type Range struct {
	Min any
	Max any
}

// RuleSet is the canonical, normalized form of one column's constraints.
// The zero value means "no constraints".
type RuleSet struct {
	NotNull bool
	Unique  bool
	Range   *Range
	Regex   any
}

// IsEmpty reports whether the rule set carries no constraint at all.
func (r RuleSet) IsEmpty() bool {
	return !r.NotNull && !r.Unique && r.Range == nil && r.Regex == nil
}

// NormalizeRules flattens every supported rule syntax on a column into a
// canonical RuleSet. It never fails: unrecognized keys, shapes, and absent
// fields simply contribute nothing.
//
// Sources are folded in a fixed order: the first non-empty rule collection
// (rules, then tests, then constraints), then flat column-level hints. The
// fold is a union; a later source can add flags and overwrite individual
// range bounds, but never clears anything an earlier source set. The one
// exception is the regex field, where a flat regex/pattern hint replaces a
// collection-sourced value (last write wins, kept for compatibility with
// existing governance files).
func NormalizeRules(col Column) RuleSet {
	var result RuleSet

	applyRuleCollection(&result, firstTruthy(col, ruleCollectionKeys))
	applyColumnHints(&result, col)

	return result
}

// applyRuleCollection folds an explicit rule collection into the result.
// The collection is either a mapping of rule keys to values or a sequence
// whose entries are bare key strings (boolean-true signals) or mappings.
func applyRuleCollection(result *RuleSet, collection any) {
	switch rules := collection.(type) {
	case map[string]any:
		for _, key := range sortedKeys(rules) {
			applyRule(result, key, rules[key])
		}
	case []any:
		for _, item := range rules {
			switch entry := item.(type) {
			case string:
				applyRule(result, entry, true)
			case map[string]any:
				for _, key := range sortedKeys(entry) {
					applyRule(result, key, entry[key])
				}
			}
		}
	}
}

// applyRule maps one rule key/value pair onto the canonical fields. An
// explicit false suppresses the boolean flags from this pair only; it does
// not clear a flag another source already set.
func applyRule(result *RuleSet, key string, value any) {
	lowered := strings.ToLower(key)

	switch {
	case containsKey(notNullKeys, lowered):
		if value != false {
			result.NotNull = true
		}
	case containsKey(uniqueKeys, lowered):
		if value != false {
			result.Unique = true
		}
	case containsKey(rangeKeys, lowered):
		mergeRange(result, value)
	case containsKey(regexKeys, lowered):
		regex := value
		if m, ok := value.(map[string]any); ok {
			regex = firstValue(m, regexKeys)
		}
		if truthy(regex) {
			result.Regex = regex
		}
	}
}

// applyColumnHints folds flat column-level hint fields into the result.
// Hints union with whatever the rule collection produced.
func applyColumnHints(result *RuleSet, col Column) {
	if truthy(col["unique"]) || truthy(col["distinct"]) {
		result.Unique = true
	}
	if truthy(col["not_null"]) || col["nullable"] == false {
		result.NotNull = true
	}

	minVal := firstValue(map[string]any(col), minKeys)
	maxVal := firstValue(map[string]any(col), maxKeys)
	setBounds(result, minVal, maxVal)

	regex := col["regex"]
	if !truthy(regex) {
		regex = col["pattern"]
	}
	if truthy(regex) {
		result.Regex = regex
	}
}

// mergeRange normalizes a range-like value and merges its bounds into the
// result. Accepted shapes: a mapping with any bound synonym, or an ordered
// two-element pair read positionally as (min, max). Anything else
// contributes nothing.
func mergeRange(result *RuleSet, value any) {
	var minVal, maxVal any

	switch v := value.(type) {
	case map[string]any:
		minVal = firstValue(v, minKeys)
		maxVal = firstValue(v, maxKeys)
	case []any:
		if len(v) == 2 {
			minVal, maxVal = v[0], v[1]
		}
	}

	setBounds(result, minVal, maxVal)
}

// setBounds merges non-nil bounds into the result's range. Each bound
// overwrites only its own side; a nil bound leaves a previously set value
// in place. When neither bound resolves, no range is stored at all.
func setBounds(result *RuleSet, minVal, maxVal any) {
	if minVal == nil && maxVal == nil {
		return
	}
	if result.Range == nil {
		result.Range = &Range{}
	}
	if minVal != nil {
		result.Range.Min = minVal
	}
	if maxVal != nil {
		result.Range.Max = maxVal
	}
}

// firstValue returns the first non-nil value in the mapping for the given
// candidate keys. This is the single lookup helper behind every synonym
// group.
func firstValue(m map[string]any, keys []string) any {
	for _, key := range keys {
		if v, ok := m[key]; ok && v != nil {
			return v
		}
	}
	return nil
}

// firstTruthy returns the first present, non-empty value for the candidate
// keys. Used for the rule collection lookup, where an empty collection
// falls through to the next name.
func firstTruthy(col Column, keys []string) any {
	for _, key := range keys {
		if v, ok := col[key]; ok && truthy(v) {
			return v
		}
	}
	return nil
}

// truthy reports whether a decoded YAML value reads as "present": nil,
// false, empty strings, zero numbers, and empty collections do not.
func truthy(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case string:
		return t != ""
	case int:
		return t != 0
	case int64:
		return t != 0
	case uint64:
		return t != 0
	case float64:
		return t != 0
	case []any:
		return len(t) > 0
	case map[string]any:
		return len(t) > 0
	default:
		return true
	}
}

func containsKey(keys []string, key string) bool {
	for _, k := range keys {
		if k == key {
			return true
		}
	}
	return false
}

// sortedKeys returns mapping keys in sorted order. Go map iteration order
// is randomized; rule application must be deterministic.
func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
