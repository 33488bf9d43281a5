// Package ignore decides which directory entries are excluded from a walk.
//
// A Set holds entry base names scoped to a single directory level. Rules pair a
// Set with an optional .gitignore matcher loaded for the same directory.
package ignore

import (
	"sort"
	"strings"

	gitignore "github.com/monochromegane/go-gitignore"
)

// Set is an immutable collection of entry names.
type Set struct {
	names map[string]struct{}
}

// NewSet builds a Set from names. Blank names are dropped.
func NewSet(names ...string) Set {
	set := Set{names: make(map[string]struct{}, len(names))}
	for _, name := range names {
		if name == "" {
			continue
		}
		set.names[name] = struct{}{}
	}
	return set
}

// EffectiveSet builds the ignore set of one directory from the raw lines of its
// ignore-list file. Entries are trimmed, blank entries are skipped, and the
// ignore-list file's own name is always included.
func EffectiveSet(rawEntries []string, ignoreFileName string) Set {
	trimmedEntries := make([]string, 0, len(rawEntries)+1)
	for _, rawEntry := range rawEntries {
		trimmedEntries = append(trimmedEntries, strings.TrimSpace(rawEntry))
	}
	trimmedEntries = append(trimmedEntries, ignoreFileName)
	return NewSet(trimmedEntries...)
}

// Contains reports whether name is a member of the set.
func (set Set) Contains(name string) bool {
	_, found := set.names[name]
	return found
}

// Len returns the number of names in the set.
func (set Set) Len() int {
	return len(set.names)
}

// Union returns a new Set holding the names of both sets.
func (set Set) Union(other Set) Set {
	merged := Set{names: make(map[string]struct{}, len(set.names)+len(other.names))}
	for name := range set.names {
		merged.names[name] = struct{}{}
	}
	for name := range other.names {
		merged.names[name] = struct{}{}
	}
	return merged
}

// Names returns the members in sorted order.
func (set Set) Names() []string {
	names := make([]string, 0, len(set.names))
	for name := range set.names {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// IsIgnored reports whether the entry named name is excluded by set.
func IsIgnored(name string, set Set) bool {
	return set.Contains(name)
}

// Rules are the exclusion rules for the immediate children of one directory.
type Rules struct {
	Names     Set
	gitIgnore gitignore.IgnoreMatcher
}

// NewRules combines a name set with an optional gitignore matcher.
func NewRules(names Set, matcher gitignore.IgnoreMatcher) Rules {
	return Rules{Names: names, gitIgnore: matcher}
}

// WithNames returns a copy of the rules whose name set also includes extra.
func (rules Rules) WithNames(extra Set) Rules {
	return Rules{Names: rules.Names.Union(extra), gitIgnore: rules.gitIgnore}
}

// Excludes reports whether the entry at path with base name name is excluded.
func (rules Rules) Excludes(path string, name string, isDirectory bool) bool {
	if IsIgnored(name, rules.Names) {
		return true
	}
	if rules.gitIgnore != nil && rules.gitIgnore.Match(path, isDirectory) {
		return true
	}
	return false
}
