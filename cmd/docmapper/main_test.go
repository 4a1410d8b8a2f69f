package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docmapper/internal/fieldtype"
	"docmapper/internal/mapping"
)

const simpleMapping = `
target:
  format: json
fields:
  - source: /r/name
    target: /out/name
  - source: /r/qty
    target: /out/qty
    source_type: integer
`

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func execute(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()

	var stdout, stderr bytes.Buffer

	cmd := newRootCmd()
	cmd.SetArgs(args)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)

	err := cmd.Execute()

	return stdout.String(), stderr.String(), err
}

func TestRunToFile(t *testing.T) {
	m := writeTemp(t, "m.yaml", simpleMapping)
	in := writeTemp(t, "in.xml", `<r><name>bolt</name><qty>3</qty></r>`)
	out := filepath.Join(t.TempDir(), "out.json")

	_, stderr, err := execute(t, "", "run", "-m", m, "-i", in, "-o", out)
	require.NoError(t, err, stderr)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.JSONEq(t, `{"out": {"name": "bolt", "qty": 3}}`, string(data))
}

func TestRunStdinToStdout(t *testing.T) {
	m := writeTemp(t, "m.yaml", `
fields:
  - source: /r/name
    target: /Out/label
`)

	stdout, _, err := execute(t, `<r><name>bolt</name></r>`, "run", "-m", m)
	require.NoError(t, err)
	assert.Contains(t, stdout, "<Out>")
	assert.Contains(t, stdout, "<label>bolt</label>")
}

func TestRunWithTemplate(t *testing.T) {
	m := writeTemp(t, "m.yaml", `
target:
  format: yaml
fields:
  - source: /r/name
    target: /out/name
`)
	tmpl := writeTemp(t, "base.yaml", "out:\n  kind: part\n")

	stdout, _, err := execute(t, `<r><name>bolt</name></r>`, "run", "-m", m, "--template", tmpl)
	require.NoError(t, err)
	assert.YAMLEq(t, "out:\n  kind: part\n  name: bolt\n", stdout)
}

func TestRunReportsFieldErrors(t *testing.T) {
	m := writeTemp(t, "m.yaml", simpleMapping)
	out := filepath.Join(t.TempDir(), "out.json")

	_, stderr, err := execute(t, `<r><name>bolt</name><qty>many</qty></r>`, "run", "-m", m, "-o", out)
	require.ErrorIs(t, err, errFieldsFailed)
	assert.Contains(t, stderr, "conversion_failed")

	// The fields that did map are still written.
	data, readErr := os.ReadFile(out)
	require.NoError(t, readErr)
	assert.JSONEq(t, `{"out": {"name": "bolt"}}`, string(data))
}

func TestRunStopOnError(t *testing.T) {
	m := writeTemp(t, "m.yaml", simpleMapping)
	out := filepath.Join(t.TempDir(), "out.json")

	_, _, err := execute(t, `<r><qty>many</qty><name>bolt</name></r>`,
		"run", "-m", m, "-o", out, "--stop-on-error")
	require.Error(t, err)
	assert.NoFileExists(t, out)
}

func TestRunInvalidMapping(t *testing.T) {
	m := writeTemp(t, "m.yaml", `
fields:
  - source: /r/name
`)

	_, stderr, err := execute(t, `<r/>`, "run", "-m", m)
	require.Error(t, err)
	assert.Contains(t, stderr, "missing_target")
}

func TestRunRequiresMapping(t *testing.T) {
	_, _, err := execute(t, "", "run")
	require.Error(t, err)
}

func TestRunVerboseLogs(t *testing.T) {
	m := writeTemp(t, "m.yaml", simpleMapping)

	_, stderr, err := execute(t, `<r><name>bolt</name><qty>3</qty></r>`, "run", "-v", "-m", m)
	require.NoError(t, err)
	assert.Contains(t, stderr, "Field written")
	assert.Contains(t, stderr, "Mapping complete")
}

func TestCheck(t *testing.T) {
	good := writeTemp(t, "good.yaml", simpleMapping)
	bad := writeTemp(t, "bad.yaml", `
version: "9"
fields:
  - source: /r/name
    target: /out/name
`)

	stdout, _, err := execute(t, "", "check", good)
	require.NoError(t, err)
	assert.Contains(t, stdout, good+": ok")

	stdout, _, err = execute(t, "", "check", good, bad)
	require.EqualError(t, err, "1 of 2 mapping files are invalid")
	assert.Contains(t, stdout, "unsupported_version")
}

func TestPaths(t *testing.T) {
	stdout, stderr, err := execute(t, "", "paths", "Order/items[]/@sku", "/a[")
	require.EqualError(t, err, "1 of 2 paths are invalid")
	assert.Equal(t, "/Order/items[]/@sku\n", stdout)
	assert.Contains(t, stderr, "/a[")

	stdout, _, err = execute(t, "", "paths", "--segments", "/Order/costs{net}")
	require.NoError(t, err)
	assert.Contains(t, stdout, "1 element costs collection=map wildcard=false")
}

func TestSuggest(t *testing.T) {
	src := writeTemp(t, "in.xml", `<r><name>bolt</name><qty>3</qty></r>`)
	tmpl := writeTemp(t, "out.json", `{"out": {"name": "x", "qty": 0, "color": ""}}`)

	stdout, stderr, err := execute(t, "", "suggest", "-s", src, "-t", tmpl)
	require.NoError(t, err)
	assert.Contains(t, stderr, "unmatched: /out/color")

	mf, err := mapping.Parse([]byte(stdout))
	require.NoError(t, err)
	assert.Equal(t, mapping.FormatJSON, mf.Target.Format)
	require.Len(t, mf.Fields, 2)
	assert.Equal(t, "/r/name", mf.Fields[0].Source)
	assert.Equal(t, mapping.StringOrArray{"/out/name"}, mf.Fields[0].Target)
	assert.Equal(t, fieldtype.TypeLong, mf.Fields[1].SourceType)

	// the draft maps the sample it was built from
	out := filepath.Join(t.TempDir(), "mapped.json")
	m := writeTemp(t, "draft.yaml", stdout)

	_, _, err = execute(t, "", "run", "-m", m, "-i", src, "-o", out)
	require.NoError(t, err)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.JSONEq(t, `{"out": {"name": "bolt", "qty": 3}}`, string(data))
}
