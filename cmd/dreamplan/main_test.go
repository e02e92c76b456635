package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testHousehold = `
profile:
  user:
    name: Riley
    age: 34
    income:
      gross_annual: 96000
      net_monthly: 6200
  north_star:
    title: Coastal cottage
    target_age: 55
    current_age: 34
    monthly_living_expenses: 4500
  fixed_expenses:
    housing: 1800
    utilities: 220
    childcare: 650
  variable_expenses:
    food: 600
  assets:
    savings: 12000
  debts:
    - id: visa
      name: Visa
      type: credit_card
      balance: 4200
      monthly_payment: 120
      interest_rate: 21.9
    - id: car
      name: Car loan
      type: auto_loan
      balance: 14500
      monthly_payment: 310
      interest_rate: 5.4
available_monthly: 1500
payoff:
  extra_monthly: 150
family:
  years: 10
  children:
    - name: Ava
      age: 3
`

// execute runs the root command with args after restoring every flag to its
// default, since flag state outlives a single Execute call.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	resetFlags(rootCmd)

	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetErr(&buf)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return buf.String(), err
}

func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		if sv, ok := f.Value.(pflag.SliceValue); ok {
			_ = sv.Replace(nil)
		} else {
			_ = f.Value.Set(f.DefValue)
		}
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

func householdFile(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "household.yaml")
	require.NoError(t, os.WriteFile(path, []byte(testHousehold), 0o644))
	return path
}

func TestRootCommand(t *testing.T) {
	require.NotNil(t, rootCmd)
	assert.Equal(t, "dreamplan", rootCmd.Use)
	assert.NotEmpty(t, rootCmd.Short)
	assert.NotEmpty(t, rootCmd.Long)
}

func TestRootCommand_Help(t *testing.T) {
	out, err := execute(t, "--help")
	require.NoError(t, err)
	assert.Contains(t, out, "Foundation, Dream and Life")
	assert.Contains(t, out, "--assumptions")
}

func TestCommandSubcommands(t *testing.T) {
	registered := map[string]bool{}
	for _, c := range rootCmd.Commands() {
		registered[c.Name()] = true
	}
	for _, name := range []string{"allocate", "amortize", "breakeven", "compare", "family", "health", "payoff", "validate", "version"} {
		assert.True(t, registered[name], "missing command %s", name)
	}
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "dreamplan dev")
}

func TestValidateCommand(t *testing.T) {
	path := householdFile(t)
	out, err := execute(t, "validate", path)
	require.NoError(t, err)
	assert.Contains(t, out, "is valid")
	assert.Contains(t, out, "balanced")
}

func TestValidateCommand_MissingFile(t *testing.T) {
	_, err := execute(t, "validate", filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorContains(t, err, "failed to read file")
}

func TestAllocateCommand(t *testing.T) {
	path := householdFile(t)

	out, err := execute(t, "allocate", path, "--strategy", "conservative")
	require.NoError(t, err)
	assert.Contains(t, out, "MONTHLY ALLOCATION (CONSERVATIVE)")
	assert.Contains(t, out, "$1500.00")
	assert.Contains(t, out, "FINANCIAL HEALTH")
}

func TestAllocateCommand_JSON(t *testing.T) {
	path := householdFile(t)

	out, err := execute(t, "allocate", path, "-f", "json", "--available", "2000")
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	allocation := decoded["allocation"].(map[string]any)
	assert.Equal(t, "2000", allocation["available"])
	assert.Equal(t, "balanced", allocation["strategy"])
}

func TestAllocateCommand_Compare(t *testing.T) {
	path := householdFile(t)

	out, err := execute(t, "allocate", path, "--compare")
	require.NoError(t, err)
	assert.Contains(t, out, "conservative")
	assert.Contains(t, out, "aggressive")
}

func TestAllocateCommand_InvalidAmount(t *testing.T) {
	path := householdFile(t)

	_, err := execute(t, "allocate", path, "--available=-5")
	assert.ErrorContains(t, err, "--available: amount must not be negative")
}

func TestPayoffCommand(t *testing.T) {
	path := householdFile(t)

	out, err := execute(t, "payoff", path)
	require.NoError(t, err)
	assert.Contains(t, out, "DEBT PAYOFF STRATEGIES")
	assert.Contains(t, out, "avalanche")
	assert.Contains(t, out, "snowball")
	assert.Contains(t, out, "DEBT TIMELINES AT CURRENT PAYMENTS")
}

func TestAmortizeCommand_FromFlags(t *testing.T) {
	out, err := execute(t, "amortize", "--balance", "1000", "--payment", "100")
	require.NoError(t, err)
	assert.Contains(t, out, "AMORTIZATION SCHEDULE")
	assert.Contains(t, out, "with $100.00/month")
}

func TestAmortizeCommand_FromFile(t *testing.T) {
	path := householdFile(t)

	out, err := execute(t, "amortize", path, "--debt", "visa", "--rows", "3", "--term", "24")
	require.NoError(t, err)
	assert.Contains(t, out, "AMORTIZATION: Visa")
	assert.Contains(t, out, "Showing 3 of")
	assert.Contains(t, out, "retires it in 24 months")
}

func TestFamilyCommand(t *testing.T) {
	path := householdFile(t)

	out, err := execute(t, "family", path, "--child-ages", "3,-1")
	require.NoError(t, err)
	assert.Contains(t, out, "FAMILY COST PROJECTION")
	assert.Contains(t, out, "DREAM RECOVERY")
}

func TestHealthCommand(t *testing.T) {
	path := householdFile(t)

	out, err := execute(t, "health", path)
	require.NoError(t, err)
	assert.Contains(t, out, "/ 100")
}

func TestCompareCommand(t *testing.T) {
	path := householdFile(t)

	out, err := execute(t, "compare", path, "--list-templates")
	require.NoError(t, err)
	assert.Contains(t, out, "raise_5pct")
	assert.Contains(t, out, "no_childcare")

	out, err = execute(t, "compare", path, "--with", "raise_10pct,debt_free", "-f", "json")
	require.NoError(t, err)
	var decoded map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	assert.Len(t, decoded["alternativeResults"], 2)

	_, err = execute(t, "compare", path)
	assert.ErrorContains(t, err, "nothing to compare")
}

func TestBreakevenCommand(t *testing.T) {
	path := householdFile(t)

	out, err := execute(t, "breakeven", path, "--months", "36", "-f", "json")
	require.NoError(t, err)
	var decoded map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	assert.Equal(t, true, decoded["success"])

	_, err = execute(t, "breakeven", path)
	assert.ErrorContains(t, err, "--months or --max-interest")
}

func TestUnsupportedFormat(t *testing.T) {
	path := householdFile(t)

	_, err := execute(t, "health", path, "-f", "html")
	assert.ErrorContains(t, err, "unsupported format")
}
