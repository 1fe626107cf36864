package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	wd, wdErr := os.Getwd()
	require.NoError(t, wdErr)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(wd) })
	appHandle = nil
	t.Cleanup(func() { appHandle = nil })

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestTestCommand(t *testing.T) {
	dir := t.TempDir()
	men := filepath.Join(dir, "men.csv")
	women := filepath.Join(dir, "women.csv")
	require.NoError(t, os.WriteFile(men, []byte("date,tournament,home_score,away_score\n2002-06-01,FIFA World Cup,0,1\n2006-06-09,FIFA World Cup,1,0\n2010-06-11,FIFA World Cup,0,0\n"), 0o600))
	require.NoError(t, os.WriteFile(women, []byte("date,tournament,home_score,away_score\n2003-09-20,FIFA World Cup,3,1\n2007-09-10,FIFA World Cup,11,0\n2011-06-26,FIFA World Cup,2,2\n"), 0o600))

	out, err := execute(t, "test", "--men", men, "--women", women, "--no-plot", "--no-save", "--log-level", "error")
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Contains(t, got, "p_val")
	assert.Contains(t, []any{"reject", "fail to reject"}, got["result"])
}

func TestTestCommandRejectsBadAlpha(t *testing.T) {
	_, err := execute(t, "test", "--men", "a.csv", "--women", "b.csv", "--alpha", "1.5")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--alpha")
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "wcgoals version: dev")
}
