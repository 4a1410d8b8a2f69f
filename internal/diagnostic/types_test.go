package diagnostic

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiagnosticsBuckets(t *testing.T) {
	var d Diagnostics

	d.AddError("bad_path", "invalid path", "fields[0]", "/a//b")
	d.AddWarning("unused", "namespace never used", "", "")
	d.AddInfo("not_found", "no value", "fields[1]", "/a/b")
	d.Record(SeverityWarning, "/x", "streamed")

	assert.Len(t, d.Errors, 1)
	assert.Len(t, d.Warnings, 2)
	assert.Len(t, d.Infos, 1)
	assert.Equal(t, 4, d.Len())
	assert.True(t, d.HasErrors())
	assert.False(t, d.IsValid())

	all := d.All()
	require.Len(t, all, 4)
	assert.Equal(t, SeverityError, all[0].Severity)
	assert.Equal(t, SeverityInfo, all[3].Severity)
}

func TestDiagnosticString(t *testing.T) {
	tests := []struct {
		name string
		diag Diagnostic
		want string
	}{
		{"full", Diagnostic{Code: "bad_path", Message: "oops", Mapping: "fields[0]", FieldPath: "/a"}, "[fields[0]] /a: [bad_path] oops"},
		{"path only", Diagnostic{Message: "oops", FieldPath: "/a"}, "/a: oops"},
		{"bare", Diagnostic{Message: "oops"}, "oops"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.diag.String())
		})
	}
}

func TestDiagnosticsError(t *testing.T) {
	var d Diagnostics
	require.NoError(t, d.Error())

	d.AddError("a", "first", "", "")
	d.AddError("b", "second", "", "/p")
	d.AddWarning("c", "ignored", "", "")

	assert.EqualError(t, d.Error(), "[a] first; /p: [b] second")
}

func TestMerge(t *testing.T) {
	var a, b Diagnostics

	a.AddInfo("x", "one", "", "")
	b.AddError("y", "two", "", "")
	b.AddInfo("z", "three", "", "")

	a.Merge(b)

	assert.Len(t, a.Errors, 1)
	assert.Len(t, a.Infos, 2)
}

func TestSinks(t *testing.T) {
	var got []string

	collect := SinkFunc(func(severity Severity, path, message string) {
		got = append(got, severity.String()+" "+path+" "+message)
	})

	var d Diagnostics

	sink := Tee(collect, &d, Discard)
	sink.Record(SeverityError, "/a", "boom")

	assert.Equal(t, []string{"error /a boom"}, got)
	assert.Len(t, d.Errors, 1)
}

func TestSeverityString(t *testing.T) {
	assert.Equal(t, "info", SeverityInfo.String())
	assert.Equal(t, "warning", SeverityWarning.String())
	assert.Equal(t, "unknown", Severity(7).String())
}
