package e2e

import (
	"bytes"
	"encoding/json"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSmokeFlow(t *testing.T) {
	home := t.TempDir()
	binaryPath := buildBinary(t)

	stdout, stderr, err := runIPD(t, binaryPath, home,
		"roster", "save", "smoke",
		"--agents", "TitForTat,AlwaysDefect,Grudger",
		"--rounds", "20",
	)
	require.NoError(t, err, "stderr: %s", stderr)
	assert.Contains(t, stdout, "Saved roster smoke (3 entrants)")

	stdout, stderr, err = runIPD(t, binaryPath, home, "run", "--roster", "smoke", "--format", "json")
	require.NoError(t, err, "stderr: %s", stderr)

	var report struct {
		RoundsPerMatch int `json:"rounds_per_match"`
		Standings      []struct {
			Rank  int    `json:"rank"`
			Agent string `json:"agent"`
		} `json:"standings"`
	}
	require.NoError(t, json.Unmarshal([]byte(stdout), &report))
	assert.Equal(t, 20, report.RoundsPerMatch)
	require.Len(t, report.Standings, 3)
	assert.Equal(t, 1, report.Standings[0].Rank)
	assert.Contains(t, stderr, "tournament completed")

	stdout, stderr, err = runIPD(t, binaryPath, home, "run", "--agents", "TitForTat,AlwaysDefect", "--rounds", "10", "--no-progress")
	require.NoError(t, err, "stderr: %s", stderr)
	assert.Contains(t, stdout, "*** WINNER: TitForTat ***")
}

func TestSmokeUnknownAgentExitsNonZero(t *testing.T) {
	home := t.TempDir()
	binaryPath := buildBinary(t)

	_, stderr, err := runIPD(t, binaryPath, home, "run", "--agents", "Pavlov", "--rounds", "10")
	require.Error(t, err)
	assert.Contains(t, stderr, "unknown agent")
}

func buildBinary(t *testing.T) string {
	t.Helper()

	binaryPath := filepath.Join(t.TempDir(), "ipd-e2e")
	cmd := exec.Command("go", "build", "-o", binaryPath, "./cmd/ipd")
	cmd.Dir = repoRoot(t)

	output, err := cmd.CombinedOutput()
	require.NoError(t, err, "build ipd binary: %s", string(output))
	return binaryPath
}

func runIPD(t *testing.T, binaryPath, home string, args ...string) (string, string, error) {
	t.Helper()

	cmd := exec.Command(binaryPath, args...)
	cmd.Env = append(os.Environ(), "HOME="+home)

	var stdout bytes.Buffer
	var stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	return stdout.String(), stderr.String(), err
}

func repoRoot(t *testing.T) string {
	t.Helper()

	wd, err := os.Getwd()
	require.NoError(t, err)
	return filepath.Clean(filepath.Join(wd, "..", ".."))
}
