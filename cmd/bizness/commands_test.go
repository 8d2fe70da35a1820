package main

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Simplici0/bizness/internal/metrics"
	"github.com/Simplici0/bizness/internal/pricing"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	cmd := newRootCmd(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestCalcTable(t *testing.T) {
	out, err := execute(t, "calc",
		"-m", "Coffee Beans:kg=150000",
		"-m", "Milk=75000",
		"-m", "Sugar=28000",
		"--labor", "50000",
		"--overhead", "20000",
		"-q", "10",
	)
	require.NoError(t, err)

	assert.Contains(t, out, "Coffee Beans (kg)")
	assert.Regexp(t, `Total production cost\s+Rp 323\.000`, out)
	assert.Regexp(t, `HPP per unit\s+Rp 32\.300`, out)
	assert.Regexp(t, `Selling price\s+Rp 46\.143`, out)
	assert.Regexp(t, `Markup\s+43%`, out)
}

func TestCalcRecordsNoMetrics(t *testing.T) {
	before := testutil.CollectAndCount(metrics.CalculationsTotal)

	_, err := execute(t, "calc", "-m", "Flour=1000")
	require.NoError(t, err)

	assert.Equal(t, before, testutil.CollectAndCount(metrics.CalculationsTotal))
}

func TestCalcJSONClampsMargin(t *testing.T) {
	out, err := execute(t, "calc", "-m", "Flour=1000", "-q", "abc", "--margin", "95", "--json")
	require.NoError(t, err)

	var result pricing.Result
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.Equal(t, 1.0, result.Quantity)
	assert.InDelta(t, 1000, result.HPPPerUnit, 1e-9)
	assert.InDelta(t, 5000, result.SellingPrice, 1e-9)
}

func TestCalcRejectsMalformedMaterial(t *testing.T) {
	_, err := execute(t, "calc", "-m", "Flour")
	assert.ErrorContains(t, err, "expected name=price")
}

func TestParseMaterial(t *testing.T) {
	line, err := parseMaterial(" Milk : L = 75.000 ")
	require.NoError(t, err)
	assert.Equal(t, pricing.MaterialLine{Name: "Milk", Unit: "L", Price: "75.000"}, line)
}

func TestMigrateAndSeed(t *testing.T) {
	t.Setenv("ADMIN_EMAIL", "admin@bizness.com")
	t.Setenv("ADMIN_PASSWORD", "admin12345")
	t.Setenv("DEMO_PASSWORD", "demo12345")
	t.Setenv("LOG_LEVEL", "error")

	dbPath := filepath.Join(t.TempDir(), "cli.db")

	out, err := execute(t, "migrate", "--db", dbPath)
	require.NoError(t, err)
	assert.Contains(t, out, "applied 1 migration(s), schema version 1")

	out, err = execute(t, "seed", "--db", dbPath)
	require.NoError(t, err)
	assert.Contains(t, out, "seed completed: 34 inserted, 0 updated")

	out, err = execute(t, "seed", "--db", dbPath)
	require.NoError(t, err)
	assert.Contains(t, out, "seed completed: 0 inserted, 0 updated")
}
