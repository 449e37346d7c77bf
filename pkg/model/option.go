package model

import "strings"

// OptionRef is a selectable {label, value} pair. Identity is Value, compared
// case-sensitively.
type OptionRef struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// Option builds an OptionRef.
func Option(value, label string) OptionRef {
	return OptionRef{Label: label, Value: value}
}

// IsZero reports whether the option carries neither label nor value.
func (o OptionRef) IsZero() bool {
	return o.Label == "" && o.Value == ""
}

// Selected reports whether the option counts as a selection: it needs a
// non-blank label.
func (o OptionRef) Selected() bool {
	return strings.TrimSpace(o.Label) != ""
}

// Same reports whether both options share the same identity.
func (o OptionRef) Same(other OptionRef) bool {
	return o.Value == other.Value
}

// ContainsOption reports whether list holds an option with the same value.
func ContainsOption(list []OptionRef, option OptionRef) bool {
	return IndexOfOption(list, option.Value) >= 0
}

// IndexOfOption returns the index of the first option carrying value, or -1.
func IndexOfOption(list []OptionRef, value string) int {
	for i, candidate := range list {
		if candidate.Value == value {
			return i
		}
	}
	return -1
}

// CloneOptions returns a copy of list; nil stays nil.
func CloneOptions(list []OptionRef) []OptionRef {
	if list == nil {
		return nil
	}
	return append([]OptionRef(nil), list...)
}

// OptionLabels returns the labels of list in order.
func OptionLabels(list []OptionRef) []string {
	out := make([]string, 0, len(list))
	for _, option := range list {
		out = append(out, option.Label)
	}
	return out
}
