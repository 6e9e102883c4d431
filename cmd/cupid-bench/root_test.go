package main

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jamesainslie/go-matchbench/internal/bench"
	"github.com/jamesainslie/go-matchbench/mapping"
)

var gold = mapping.Set{
	{Source: "DimWhat__OwningDomainNumber", Target: "DimTheme__Id"},
	{Source: "Customer__Name", Target: "DimCustomer__Name"},
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(append(args, "--log-level", "error"))
	err := cmd.Execute()
	return out.String(), err
}

func writeSet(t *testing.T, path string, set mapping.Set) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, mapping.WriteFile(path, set))
}

func TestVersion(t *testing.T) {
	out, err := run(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "cupid-bench dev")
}

func TestScore(t *testing.T) {
	tmp := t.TempDir()
	goldPath := filepath.Join(tmp, "gold.txt")
	runPath := filepath.Join(tmp, "run.txt")
	writeSet(t, goldPath, gold)
	writeSet(t, runPath, mapping.Set{gold[0], {Source: "A__x", Target: "B__y"}})

	out, err := run(t, "score", goldPath, runPath)
	require.NoError(t, err)
	assert.Contains(t, out, "Precision: 0.50  Recall: 0.50  F1: 0.50")
	assert.Contains(t, out, "(TP: 1, FP: 1, FN: 1)")
}

func TestScore_EmptyGold(t *testing.T) {
	tmp := t.TempDir()
	goldPath := filepath.Join(tmp, "gold.txt")
	runPath := filepath.Join(tmp, "run.txt")
	require.NoError(t, os.WriteFile(goldPath, nil, 0o644))
	writeSet(t, runPath, gold)

	_, err := run(t, "score", goldPath, runPath)
	assert.ErrorIs(t, err, bench.ErrEmptyGold)
}

func TestScore_Args(t *testing.T) {
	_, err := run(t, "score", "only-one")
	assert.Error(t, err)
}

func TestSweep_Validation(t *testing.T) {
	_, err := run(t, "sweep", "--output", t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "source is required")
	assert.Contains(t, err.Error(), "matcher.command is required")
}

func TestEvaluate(t *testing.T) {
	tmp := t.TempDir()
	goldPath := filepath.Join(tmp, "gold.txt")
	out := filepath.Join(tmp, "out")
	report := filepath.Join(tmp, "report.csv")
	writeSet(t, goldPath, gold)
	writeSet(t, filepath.Join(out, "j-0.1", "test_0.5.txt"), gold)
	writeSet(t, filepath.Join(out, "j-0.1", "test_0.6.txt"), gold[:1])

	stdout, err := run(t, "evaluate", "--gold", goldPath, "--output", out, "--no-plot", "--csv", report)
	require.NoError(t, err)

	lines := strings.Split(stdout, "\n")
	require.GreaterOrEqual(t, len(lines), 4)
	assert.Contains(t, lines[3], "0.1")
	assert.Contains(t, lines[3], "0.500")
	assert.Contains(t, lines[3], "1.00")

	f, err := os.Open(report)
	require.NoError(t, err)
	defer f.Close()
	records, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, "th_accept", records[0][1])
	assert.Equal(t, []string{"0.1", "0.6", "1.000000", "0.500000", "0.666667", "0.750000", "1"}, records[2])
}

func TestEvaluate_ConfigFromEnv(t *testing.T) {
	tmp := t.TempDir()
	goldPath := filepath.Join(tmp, "gold.txt")
	out := filepath.Join(tmp, "out")
	writeSet(t, goldPath, gold)
	writeSet(t, filepath.Join(out, "j-0.3", "test_0.4.txt"), gold)

	cfgPath := filepath.Join(tmp, "sweep.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("gold: missing.txt\noutput: "+out+"\n"), 0o644))
	t.Setenv("MATCHBENCH_CONFIG", cfgPath)

	// The file points at a missing gold standard; the env var overrides it.
	_, err := run(t, "evaluate", "--no-plot")
	require.Error(t, err)

	t.Setenv("MATCHBENCH_GOLD", goldPath)
	stdout, err := run(t, "evaluate", "--no-plot")
	require.NoError(t, err)
	assert.Contains(t, stdout, "0.3")
}

func TestEvaluate_MissingGold(t *testing.T) {
	_, err := run(t, "evaluate", "--output", t.TempDir(), "--no-plot")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "gold is required")
}
