package ui

import (
	"reflect"
	"testing"
)

func TestLevenshteinDistance(t *testing.T) {
	tests := []struct {
		s1       string
		s2       string
		expected int
	}{
		{"", "", 0},
		{"", "abc", 3},
		{"abc", "", 3},
		{"abc", "abc", 0},
		{"kitten", "sitting", 3},
		{"order:status", "order:stauts", 2},
		{"状态", "状太", 1},
	}

	for _, tt := range tests {
		t.Run(tt.s1+"_"+tt.s2, func(t *testing.T) {
			if got := LevenshteinDistance(tt.s1, tt.s2); got != tt.expected {
				t.Errorf("LevenshteinDistance(%q, %q) = %d; want %d", tt.s1, tt.s2, got, tt.expected)
			}
		})
	}
}

func TestFindSimilar(t *testing.T) {
	candidates := []string{"order:status", "order:type", "user:role", "Order:Status"}

	tests := []struct {
		name   string
		target string
		opts   *FuzzyMatchOptions
		want   []string
	}{
		{"typo", "order:stats", nil, []string{"order:status", "Order:Status"}},
		{"case sensitive", "order:stats", &FuzzyMatchOptions{CaseSensitive: true, MaxDistance: 2}, []string{"order:status"}},
		{"limit", "order:", &FuzzyMatchOptions{MaxDistance: 10, MaxSuggestions: 1}, []string{"order:type"}},
		{"none", "invoice", nil, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FindSimilar(tt.target, candidates, tt.opts)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("FindSimilar(%q) = %v; want %v", tt.target, got, tt.want)
			}
		})
	}
}
