package flags

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRegistry_Enabled(t *testing.T) {
	tests := []struct {
		name     string
		registry *Registry
		flag     string
		expected bool
	}{
		{"enabled flag", New(map[string]bool{FlagLegacyUnits: true}), FlagLegacyUnits, true},
		{"disabled flag", New(map[string]bool{FlagLegacyUnits: false}), FlagLegacyUnits, false},
		{"unknown flag", New(map[string]bool{FlagLegacyUnits: true}), "unknown-flag", false},
		{"nil registry", nil, FlagNoRecord, false},
		{"nil map", New(nil), FlagNoRecord, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.expected, tt.registry.Enabled(tt.flag))
		})
	}
}

func TestRegistry_IsolatedFromInput(t *testing.T) {
	input := map[string]bool{FlagNoRecord: true}
	r := New(input)

	input[FlagNoRecord] = false
	require.True(t, r.Enabled(FlagNoRecord))

	all := r.All()
	all[FlagNoRecord] = false
	require.True(t, r.Enabled(FlagNoRecord))
}

func TestRegistry_AllOnNil(t *testing.T) {
	var r *Registry
	require.NotNil(t, r.All())
	require.Empty(t, r.All())
}
