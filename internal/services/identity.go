package services

import (
	"errors"
	"fmt"
	"station-metrics-service/internal/domain"
	"strings"
)

// ErrAliasCycle is returned when a rename would make a name resolve
// back to itself transitively.
var ErrAliasCycle = errors.New("alias rename would create a cycle")

// Alias chains are renames of renames (Jon -> John -> Johnny); anything
// deeper than this indicates corrupt data and resolution stops.
const maxAliasHops = 16

// NormalizeName trims, case-folds, and collapses internal whitespace so
// that spelling variants of one display name share a lookup key.
func NormalizeName(raw string) string {
	return strings.ToLower(strings.Join(strings.Fields(raw), " "))
}

// Resolve maps a raw display name to its canonical identity.
//
// The raw name is normalized before lookup; an unmapped normalized name
// is its own canonical form. Chains are followed to a fixed point with
// a hop bound, so a map that somehow contains a cycle still resolves
// deterministically instead of looping. Resolving an already-canonical
// name returns it unchanged.
func Resolve(raw string, aliases domain.AliasMap) string {
	name := NormalizeName(raw)
	for hop := 0; hop < maxAliasHops; hop++ {
		next, ok := aliases[name]
		if !ok {
			return name
		}
		next = NormalizeName(next)
		if next == name || next == "" {
			return name
		}
		name = next
	}
	return name
}

// Rename records that oldName's history belongs to newName.
//
// The input map is never mutated: the updated mapping comes back as a
// fresh copy, so concurrent readers of the old map stay consistent. A
// rename whose target already resolves back to oldName is rejected with
// ErrAliasCycle and the existing map is left as-is.
func Rename(oldName, newName string, aliases domain.AliasMap) (domain.AliasMap, error) {
	oldKey := NormalizeName(oldName)
	newKey := NormalizeName(newName)

	if oldKey == "" || newKey == "" {
		return nil, errors.New("rename: names must be non-empty")
	}
	if oldKey == newKey {
		return nil, fmt.Errorf("rename: %w: %q already resolves to itself", ErrAliasCycle, oldKey)
	}
	if Resolve(newKey, aliases) == oldKey {
		return nil, fmt.Errorf("rename: %w: %q resolves back to %q", ErrAliasCycle, newKey, oldKey)
	}

	updated := aliases.Clone()
	updated[oldKey] = newKey

	// Re-point existing entries that resolved to the old name, keeping
	// every chain one hop long after the rename.
	for raw, canonical := range updated {
		if raw != oldKey && NormalizeName(canonical) == oldKey {
			updated[raw] = newKey
		}
	}

	return updated, nil
}
