package commands

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

// Commands replace the global logger, so these tests run sequentially.

func quietConfig(t *testing.T, extra string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	body := "logging:\n  level: disabled\n  format: json\n  output: stderr\n" + extra
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd, a := newRootCommand("test", "abc123", "today")
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := a.execute(context.Background(), cmd)
	return out.String(), err
}

// withoutDates drops the date lines, which follow the wall clock.
func withoutDates(out string) []string {
	var lines []string
	for _, l := range strings.Split(out, "\n") {
		if !strings.HasPrefix(l, "  date:") {
			lines = append(lines, l)
		}
	}
	return lines
}

//
// -----------------------------------------------------------------------------
// Root
// -----------------------------------------------------------------------------

// TestRoot_Version verifies the build information is reported.
func TestRoot_Version(t *testing.T) {
	out, err := run(t, "--version")
	require.NoError(t, err)
	assert.Contains(t, out, "test (commit: abc123, built: today)")
}

// TestRoot_InvalidPolicy verifies a bad policy flag fails validation.
func TestRoot_InvalidPolicy(t *testing.T) {
	_, err := run(t, "-c", quietConfig(t, ""), "--policy", "newest", "process")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Policy")
}

// TestRoot_MissingConfig verifies an unreadable config file is reported.
func TestRoot_MissingConfig(t *testing.T) {
	_, err := run(t, "-c", filepath.Join(t.TempDir(), "missing.yaml"), "process")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read config")
}

// TestRoot_LogFileReleasedOnFailure verifies a failing command still closes the
// log file and restores the global logger.
func TestRoot_LogFileReleasedOnFailure(t *testing.T) {
	dir := t.TempDir()
	logPath := filepath.Join(dir, "salesdemo.log")
	cfgPath := filepath.Join(dir, "config.yaml")
	body := "logging:\n  level: info\n  format: json\n  output: " + logPath + "\n"
	require.NoError(t, os.WriteFile(cfgPath, []byte(body), 0o600))

	cmd, a := newRootCommand("test", "abc123", "today")
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"-c", cfgPath, "process", "--quantity", "0"})

	require.Error(t, a.execute(context.Background(), cmd))
	assert.Nil(t, a.closer)

	log.Info().Msg("after close")
	raw, err := os.ReadFile(logPath)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "after close")
}

//
// -----------------------------------------------------------------------------
// Process
// -----------------------------------------------------------------------------

// TestProcess verifies the stock rule is applied by the production wiring only.
func TestProcess(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{name: "demo sale", args: []string{"process"}, want: "was processed successfully: true"},
		{name: "out of stock", args: []string{"process", "--quantity", "3"}, want: "was processed successfully: false"},
		{name: "stub ignores stock", args: []string{"process", "--stub", "-q", "10"}, want: "was processed successfully: true"},
		{name: "alternate policy", args: []string{"--policy", "alternate", "process"}, want: "was processed successfully: true"},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			out, err := run(t, append([]string{"-c", quietConfig(t, "")}, tc.args...)...)
			require.NoError(t, err)
			assert.Contains(t, out, "Foo__Bar")
			assert.Contains(t, out, tc.want)
		})
	}
}

// TestProcess_InvalidQuantity verifies the demo sale is validated before processing.
func TestProcess_InvalidQuantity(t *testing.T) {
	_, err := run(t, "-c", quietConfig(t, ""), "process", "--quantity", "0")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid sale")
}

// TestProcess_Metrics verifies the metrics flag prints the resolver counters.
func TestProcess_Metrics(t *testing.T) {
	out, err := run(t, "-c", quietConfig(t, ""), "--metrics", "process")
	require.NoError(t, err)
	assert.Contains(t, out, `graphioc_requests_total{status="ok"} 1`)
	assert.Contains(t, out, `graphioc_resolutions_total{kind="abstraction",strategy="registry"}`)
}

//
// -----------------------------------------------------------------------------
// Generate
// -----------------------------------------------------------------------------

// TestGenerate_YAML verifies generated sales are rendered and processed.
func TestGenerate_YAML(t *testing.T) {
	out, err := run(t, "-c", quietConfig(t, "seed: 42\n"), "generate", "-n", "4", "--max-quantity", "2", "-o", "yaml")
	require.NoError(t, err)

	var reports []saleReport
	require.NoError(t, yaml.Unmarshal([]byte(out), &reports))
	require.Len(t, reports, 4)
	for _, r := range reports {
		assert.NotEmpty(t, r.SaleID)
		assert.Contains(t, r.Customer, "__")
		assert.True(t, strings.HasSuffix(r.Email, "@example.com"))
		assert.True(t, r.Processed)
		require.NotEmpty(t, r.Lines)
		for _, l := range r.Lines {
			assert.GreaterOrEqual(t, l.Quantity, 1)
			assert.LessOrEqual(t, l.Quantity, 2)
		}
	}
}

// TestGenerate_Reproducible verifies a configured seed yields identical output.
func TestGenerate_Reproducible(t *testing.T) {
	path := quietConfig(t, "seed: 7\n")

	first, err := run(t, "-c", path, "generate", "--stub", "-n", "3")
	require.NoError(t, err)
	second, err := run(t, "-c", path, "generate", "--stub", "-n", "3")
	require.NoError(t, err)

	assert.Equal(t, withoutDates(first), withoutDates(second))
	assert.Equal(t, 3, strings.Count(first, "processed: true"))
}

// TestGenerate_Errors verifies the flag checks.
func TestGenerate_Errors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{name: "bad output", args: []string{"generate", "-o", "json"}, want: "unknown output format"},
		{name: "bad quantity", args: []string{"generate", "--max-quantity", "0"}, want: "max-quantity"},
		{name: "negative count", args: []string{"generate", "-n", "-1"}, want: "generate sales"},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			_, err := run(t, append([]string{"-c", quietConfig(t, "")}, tc.args...)...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.want)
		})
	}
}
