package normalize

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/biggeezerdevelopment/jsonnum"
)

func parse(t *testing.T, args ...string) (*Config, error) {
	t.Helper()
	flags := pflag.NewFlagSet("normalize", pflag.ContinueOnError)
	AddFlags(flags)
	return ParseFlags(flags, args)
}

func TestParseFlags(t *testing.T) {
	config, err := parse(t, "--type", "int64", "--workers", "3", "--metrics", "a.json", "b.json")
	require.NoError(t, err)
	require.Equal(t, &Config{
		Type:    "int64",
		Workers: 3,
		Metrics: true,
		Files:   []string{"a.json", "b.json"},
	}, config)

	config, err = parse(t)
	require.NoError(t, err)
	require.Equal(t, "number", config.Type)
	require.Empty(t, config.Files)

	_, err = parse(t, "--type", "uint8")
	require.ErrorContains(t, err, "unknown --type")

	_, err = parse(t, "--workers", "-1")
	require.Error(t, err)
}

func run(t *testing.T, config *Config, stdin string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	err := Run(context.Background(), config, zap.NewNop(), strings.NewReader(stdin), &stdout, &stderr)
	return stdout.String(), stderr.String(), err
}

func TestRun_Stdin(t *testing.T) {
	tests := []struct {
		typ  string
		in   string
		want string
	}{
		{"int32", ` [ 1 , -2 , "42" ] `, "[1,-2,42]\n"},
		{"int64", "-9223372036854775808", "-9223372036854775808\n"},
		{"float64", "[3.0, 0.5]", "[3,0.5]\n"},
		{"float32", `"NaN"`, "\"NaN\"\n"},
		{"decimal", "0.10", "0.10\n"},
		{"number", "[1, 2.50]", "[1,2.50]\n"},
		{"int64", "[]", "[]\n"},
		{"int64", "null", "null\n"},
		{"float64", `{"a": [1.0, "x"], "b": {"c": 2.50}}`, `{"a":[1,"x"],"b":{"c":2.5}}` + "\n"},
	}
	for _, tt := range tests {
		t.Run(tt.typ+"/"+tt.in, func(t *testing.T) {
			out, _, err := run(t, &Config{Type: tt.typ}, tt.in)
			require.NoError(t, err)
			require.Equal(t, tt.want, out)
		})
	}
}

func TestRun_FilesKeepOrder(t *testing.T) {
	dir := t.TempDir()
	var files []string
	for i, doc := range []string{"[1,2]", "3", "[4, 5, 6]", "7"} {
		name := filepath.Join(dir, string(rune('a'+i))+".json")
		require.NoError(t, os.WriteFile(name, []byte(doc), 0o600))
		files = append(files, name)
	}

	out, _, err := run(t, &Config{Type: "int64", Workers: 2, Files: files}, "")
	require.NoError(t, err)
	require.Equal(t, "[1,2]\n3\n[4,5,6]\n7\n", out)
}

func TestRun_FailedInputsAreSkipped(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "good.json")
	bad := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(good, []byte("[10]"), 0o600))
	require.NoError(t, os.WriteFile(bad, []byte("[1.5]"), 0o600))

	out, stderr, err := run(t, &Config{Type: "int32", Metrics: true, Files: []string{bad, good}}, "")
	require.ErrorIs(t, err, jsonnum.ErrTypeMismatch)
	require.ErrorContains(t, err, "item 0")
	require.Equal(t, "[10]\n", out)
	require.Contains(t, stderr, `jsonnum_errors_total{kind="type_mismatch"} 1`)
}

func TestRun_TrailingData(t *testing.T) {
	_, _, err := run(t, &Config{Type: "int64"}, "1 2")
	require.ErrorIs(t, err, jsonnum.ErrInvalidJSON)
}

func TestRun_EmptyInput(t *testing.T) {
	_, _, err := run(t, &Config{Type: "int64"}, "  ")
	require.Error(t, err)
}

func TestRun_Metrics(t *testing.T) {
	_, stderr, err := run(t, &Config{Type: "decimal", Metrics: true}, "[1, 0.12345678901234567890]")
	require.NoError(t, err)
	require.Contains(t, stderr, "jsonnum_fast_path_total 1\n")
	require.Contains(t, stderr, "jsonnum_generic_total 1\n")
	require.Contains(t, stderr, "jsonnum_long_tokens_total 0\n")
}

func TestRun_MissingFile(t *testing.T) {
	_, _, err := run(t, &Config{Type: "int64", Files: []string{filepath.Join(t.TempDir(), "nope.json")}}, "")
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestCommand(t *testing.T) {
	c := Command()
	var stdout bytes.Buffer
	c.SetIn(strings.NewReader("[1,  2]"))
	c.SetOut(&stdout)
	c.SetErr(&bytes.Buffer{})
	c.SetArgs([]string{"--type", "int64"})
	require.NoError(t, c.ExecuteContext(context.Background()))
	require.Equal(t, "[1,2]\n", stdout.String())
}
