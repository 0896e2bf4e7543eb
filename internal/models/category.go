package models

import (
	"fmt"
	"sort"
	"strings"
)

// DefaultCategories seeds the category set when the settings document is
// absent on first read.
var DefaultCategories = []string{
	"earpod", "headset", "earpiece", "smart watches", "chargers",
	"screen guards", "phone pouches", "ring lights", "phone stands", "cables",
}

// CategorySet is the ordered, duplicate-free set of product categories.
// Mutations return a new set; the receiver is never modified.
type CategorySet []string

// NewCategorySet normalizes raw values into a sorted, unique set.
func NewCategorySet(values []string) CategorySet {
	seen := map[string]struct{}{}
	out := make([]string, 0, len(values))
	for _, value := range values {
		value = strings.TrimSpace(value)
		if value == "" {
			continue
		}
		if _, ok := seen[value]; ok {
			continue
		}
		seen[value] = struct{}{}
		out = append(out, value)
	}
	sortCategories(out)
	return out
}

// Contains reports exact (case-sensitive) membership.
func (s CategorySet) Contains(name string) bool {
	for _, value := range s {
		if value == name {
			return true
		}
	}
	return false
}

// Add returns a new set including name.
func (s CategorySet) Add(name string) (CategorySet, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("category name is required")
	}
	if s.Contains(name) {
		return nil, fmt.Errorf("category already exists: %s", name)
	}
	out := append(append(CategorySet{}, s...), name)
	sortCategories(out)
	return out, nil
}

// Rename returns a new set with old replaced by new, re-sorted.
func (s CategorySet) Rename(oldName, newName string) (CategorySet, error) {
	newName = strings.TrimSpace(newName)
	if newName == "" {
		return nil, fmt.Errorf("category name is required")
	}
	if !s.Contains(oldName) {
		return nil, fmt.Errorf("category not found: %s", oldName)
	}
	if newName != oldName && s.Contains(newName) {
		return nil, fmt.Errorf("category already exists: %s", newName)
	}
	out := make(CategorySet, 0, len(s))
	for _, value := range s {
		if value == oldName {
			value = newName
		}
		out = append(out, value)
	}
	sortCategories(out)
	return out, nil
}

// Remove returns a new set without name.
func (s CategorySet) Remove(name string) (CategorySet, error) {
	if !s.Contains(name) {
		return nil, fmt.Errorf("category not found: %s", name)
	}
	out := make(CategorySet, 0, len(s))
	for _, value := range s {
		if value != name {
			out = append(out, value)
		}
	}
	return out, nil
}

func sortCategories(values []string) {
	sort.Slice(values, func(i, j int) bool {
		return strings.ToLower(values[i]) < strings.ToLower(values[j])
	})
}
