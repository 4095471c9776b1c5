package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/airframe/battsizer/pkg/sizing"
)

func TestRootCmd_FlagNames(t *testing.T) {
	root := newRootCmd()

	// The trade-off knob and the mass budget must not share a name stem
	// that invites mixing a currency-per-minute value with kilograms.
	require.NotNil(t, root.Flags().Lookup("time-weight"))
	require.NotNil(t, root.Flags().Lookup("max-weight"))
	assert.Nil(t, root.Flags().Lookup("weight"))

	quick, _, err := root.Find([]string{"quick"})
	require.NoError(t, err)
	require.NotNil(t, quick.Flags().Lookup("time-weight"))
	assert.Nil(t, quick.Flags().Lookup("weight"))
}

func TestRootCmd_PrintsConvertedUnits(t *testing.T) {
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs([]string{})

	require.NoError(t, root.Execute())

	s := out.String()
	assert.Contains(t, s, "Optimal solution found:")
	assert.Contains(t, s, "Battery capacity:")
	assert.Contains(t, s, "32.00 Ah")
	assert.Contains(t, s, "mAh") // capacity echoed in mAh
	assert.Contains(t, s, " s)") // flight time echoed in seconds
}

func TestQuickCmd_Runs(t *testing.T) {
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs([]string{"quick"})

	require.NoError(t, root.Execute())

	s := out.String()
	assert.Contains(t, s, "Battery mass:")
	assert.NotContains(t, s, "Battery capacity:")
}

func TestRootCmd_InfeasibleSurfacesError(t *testing.T) {
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs([]string{"--max-weight", "0.1"})

	err := root.Execute()
	require.ErrorIs(t, err, sizing.ErrInfeasible)
}
