package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// execute runs the CLI in an isolated working directory and returns stdout
// and stderr.
func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cmd := newRootCmd()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestRootHelp(t *testing.T) {
	t.Chdir(t.TempDir())
	out, _, err := execute(t, "--help")
	require.NoError(t, err)
	assert.Contains(t, out, "Available Commands:")
	for _, name := range []string{"decode", "encode", "formats"} {
		assert.Contains(t, out, name)
	}
}

func TestFormats(t *testing.T) {
	t.Chdir(t.TempDir())
	out, _, err := execute(t, "formats")
	require.NoError(t, err)
	assert.Regexp(t, `QR_CODE\s+yes\s+yes\s+CHARACTER_SET,ERROR_CORRECTION,MARGIN,SYMBOL_VERSION`, out)
	assert.Regexp(t, `AZTEC\s+yes\s+yes`, out)
	assert.Regexp(t, `PDF_417\s+no\s+yes`, out)
	assert.Regexp(t, `RSS_14\s+yes\s+no`, out)
	assert.Regexp(t, `MAXICODE\s+no\s+no`, out)
}

func TestEncodeText(t *testing.T) {
	t.Chdir(t.TempDir())
	out, _, err := execute(t, "encode", "--margin", "0", "hello")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 21)
	assert.True(t, strings.HasPrefix(lines[0], "██████████████"))
}

func TestEncodeDecodeFiles(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	qr := filepath.Join(dir, "qr.png")
	_, _, err := execute(t, "encode", "--scale", "4", "--out", qr, "Hello, rxing!")
	require.NoError(t, err)

	ean := filepath.Join(dir, "ean.png")
	_, _, err = execute(t, "encode", "--format", "ean_13", "--width", "300", "--height", "120",
		"--out", ean, "4006381333931")
	require.NoError(t, err)

	out, _, err := execute(t, "decode", qr, ean)
	require.NoError(t, err)
	assert.Contains(t, out, qr+": [QR_CODE] Hello, rxing!")
	assert.Contains(t, out, ean+": [EAN_13] 4006381333931")

	out, _, err = execute(t, "decode", "--json", "--format", "QR_CODE", qr)
	require.NoError(t, err)
	var got decodeOutput
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, "QR_CODE", got.Format)
	assert.Equal(t, "Hello, rxing!", got.Text)
	assert.NotEmpty(t, got.Points)
}

func TestDecodeFailures(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	_, stderr, err := execute(t, "decode", filepath.Join(dir, "missing.png"))
	require.Error(t, err)
	assert.Contains(t, stderr, "ImageNotFound")

	hints := filepath.Join(dir, "hints.yaml")
	require.NoError(t, os.WriteFile(hints, []byte("NOT_A_HINT: true\n"), 0o600))
	_, _, err = execute(t, "decode", "--hints", hints, "whatever.png")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "UnknownHint")
}

func TestEncodeRejectsBadInput(t *testing.T) {
	t.Chdir(t.TempDir())

	_, _, err := execute(t, "encode", "--format", "EAN_13", "abc")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "EncodeError")

	_, _, err = execute(t, "encode", "--format", "MAXICODE", "abc")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "FormatNotEncodable")

	_, _, err = execute(t, "encode", "--format", "CODE_128", "--ec", "H", "abc")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "HintNotApplicable")
}

func TestMetricsFile(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	prom := filepath.Join(dir, "rxing.prom")
	_, _, err := execute(t, "--metrics-file", prom, "encode", "--format", "CODE_128", "ABC-1234")
	require.NoError(t, err)

	data, err := os.ReadFile(prom)
	require.NoError(t, err)
	assert.Contains(t, string(data), `rxing_encode_total{format="CODE_128",outcome="ok"} 1`)
}

func TestHintLayers(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hints.yaml")
	require.NoError(t, os.WriteFile(path, []byte("TRY_HARDER: false\nPOSSIBLE_FORMATS: [QR_CODE]\n"), 0o600))

	layers, err := hintLayers(map[string]interface{}{"TRY_HARDER": true, "PURE_BARCODE": true}, path)
	require.NoError(t, err)
	merged := mergeHints(append(layers, map[string]interface{}{"PURE_BARCODE": false})...)

	assert.Equal(t, false, merged["TRY_HARDER"])
	assert.Equal(t, false, merged["PURE_BARCODE"])
	assert.Equal(t, []interface{}{"QR_CODE"}, merged["POSSIBLE_FORMATS"])

	_, err = hintLayers(nil, filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
