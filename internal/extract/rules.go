package extract

import "fmt"

// RuleFunc transforms one field's parsed data after assembly. The mapping
// passed in is a private copy, so a rule may mutate it freely; returning
// nil keeps the field unchanged.
type RuleFunc func(data *ParsedData, unparsedLines []string) *ParsedData

// RuleSet holds business rules keyed by the exact field name they apply to.
// The zero value and a nil set both apply nothing.
type RuleSet struct {
	rules map[string]RuleFunc
}

// NewRuleSet returns an empty rule set.
func NewRuleSet() *RuleSet {
	return &RuleSet{rules: make(map[string]RuleFunc)}
}

// Register binds fn to fieldName, replacing any earlier registration for
// the same name.
func (s *RuleSet) Register(fieldName string, fn RuleFunc) {
	if s.rules == nil {
		s.rules = make(map[string]RuleFunc)
	}
	s.rules[fieldName] = fn
}

// Names lists the registered field names in no particular order.
func (s *RuleSet) Names() []string {
	if s == nil {
		return nil
	}
	names := make([]string, 0, len(s.rules))
	for name := range s.rules {
		names = append(names, name)
	}
	return names
}

func (s *RuleSet) lookup(fieldName string) (RuleFunc, bool) {
	if s == nil {
		return nil, false
	}
	fn, ok := s.rules[fieldName]
	return fn, ok
}

// runRule applies fn to a copy of data. A panicking rule is recovered and
// reported as an error so the field keeps its pre-rule data.
func runRule(fn RuleFunc, data *ParsedData, unparsedLines []string) (result *ParsedData, err error) {
	defer func() {
		if r := recover(); r != nil {
			result, err = nil, fmt.Errorf("rule panicked: %v", r)
		}
	}()
	out := fn(copyParsedData(data), unparsedLines)
	if out == nil {
		return data, nil
	}
	return out, nil
}

// copyParsedData deep-copies a parsed mapping, including nested mappings
// and sequences.
func copyParsedData(m *ParsedData) *ParsedData {
	if m == nil {
		return nil
	}
	out := NewParsedData()
	for pair := m.Oldest(); pair != nil; pair = pair.Next() {
		out.Set(pair.Key, copyValue(pair.Value))
	}
	return out
}

func copyValue(v any) any {
	switch tv := v.(type) {
	case []string:
		return append([]string(nil), tv...)
	case []any:
		out := make([]any, len(tv))
		for i, e := range tv {
			out[i] = copyValue(e)
		}
		return out
	case *ParsedData:
		return copyParsedData(tv)
	default:
		return v
	}
}

// cleanParsedData drops empty values, filters empty cells out of
// sequences, and collapses single-element sequences to their element.
// Nested mappings are kept as they are.
func cleanParsedData(m *ParsedData) *ParsedData {
	if m == nil {
		return NewParsedData()
	}
	out := NewParsedData()
	for pair := m.Oldest(); pair != nil; pair = pair.Next() {
		switch v := pair.Value.(type) {
		case nil:
		case string:
			if v != "" {
				out.Set(pair.Key, v)
			}
		case []string:
			kept := make([]string, 0, len(v))
			for _, e := range v {
				if e != "" {
					kept = append(kept, e)
				}
			}
			switch len(kept) {
			case 0:
			case 1:
				out.Set(pair.Key, kept[0])
			default:
				out.Set(pair.Key, kept)
			}
		case []any:
			kept := make([]any, 0, len(v))
			for _, e := range v {
				if s, ok := e.(string); ok && s == "" {
					continue
				}
				kept = append(kept, e)
			}
			switch len(kept) {
			case 0:
			case 1:
				out.Set(pair.Key, kept[0])
			default:
				out.Set(pair.Key, kept)
			}
		default:
			out.Set(pair.Key, v)
		}
	}
	return out
}
