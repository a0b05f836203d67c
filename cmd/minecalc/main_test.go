package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeScenario(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scenario.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestRunDefaultsText(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, run(nil, &out))
	assert.Contains(t, out.String(), "Financial results:")
	assert.Contains(t, out.String(), "Total cost: $ 4,362,600")
	assert.NotContains(t, out.String(), "Warnings:")
}

func TestRunYAMLAsJSON(t *testing.T) {
	path := writeScenario(t, "tonnesBlastedPeriod: 500000\n")

	var out bytes.Buffer
	require.NoError(t, run([]string{"-f", path, "--format", "json"}, &out))

	var doc jsonOutput
	require.NoError(t, json.Unmarshal(out.Bytes(), &doc))
	require.NotNil(t, doc.Results)
	assert.Equal(t, 500000.0, doc.Inputs.TonnesBlastedPeriod)
	assert.Len(t, doc.Warnings, 1)
	assert.Empty(t, doc.Errors)
}

func TestRunInvalidScenario(t *testing.T) {
	path := writeScenario(t, "tonnesMinedTarget: 0\n")

	var out bytes.Buffer
	err := run([]string{"-f", path}, &out)
	require.ErrorIs(t, err, errScenarioInvalid)
	assert.Contains(t, out.String(), "target tonnes mined must be > 0")
}

func TestRunRejectsBadArguments(t *testing.T) {
	var out bytes.Buffer
	assert.Error(t, run([]string{"--format", "xml"}, &out))
	assert.Error(t, run([]string{"-f", filepath.Join(t.TempDir(), "missing.yaml")}, &out))
	assert.Error(t, run([]string{"-f", writeScenario(t, "bogus: 1\n")}, &out))
}

func TestRunHelpIsCleanExit(t *testing.T) {
	var out bytes.Buffer
	assert.NoError(t, run([]string{"--help"}, &out))
	assert.Empty(t, out.String())
}
