// Package flags provides feature flag support for opt-in behaviour.
// Flags are read-only after initialization and default to disabled.
package flags

import (
	"maps"

	"github.com/zjrosen/tsconv/internal/log"
)

const (
	// FlagLegacyUnits formats the raw extracted value as seconds even when
	// it was matched as milliseconds, reproducing the behaviour of older
	// releases where 13-digit values rendered far in the future.
	FlagLegacyUnits = "legacy-units"

	// FlagNoRecord disables writing conversions to history.
	FlagNoRecord = "no-record"
)

// Registry holds feature flag state loaded from configuration.
type Registry struct {
	flags map[string]bool
}

// New creates a Registry from a config map. A nil map disables every flag.
func New(flags map[string]bool) *Registry {
	r := &Registry{flags: make(map[string]bool, len(flags))}
	maps.Copy(r.flags, flags)
	log.Debug(log.CatConfig, "Feature flags initialized", "count", len(r.flags), "flags", r.All())
	return r
}

// Enabled returns true if the named flag is enabled.
// Unknown flags and nil registries report false.
func (r *Registry) Enabled(name string) bool {
	if r == nil {
		return false
	}
	value, exists := r.flags[name]
	if !exists {
		log.Debug(log.CatConfig, "Unknown flag accessed", "flag", name)
		return false
	}
	return value
}

// All returns a copy of all flags.
func (r *Registry) All() map[string]bool {
	if r == nil {
		return map[string]bool{}
	}
	return maps.Clone(r.flags)
}
