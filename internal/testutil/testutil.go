// Package testutil holds assertions shared by the tests of several packages.
package testutil

import (
	"testing"

	"github.com/pmezard/go-difflib/difflib"
	"gopkg.in/yaml.v3"
)

func ExpectNoDiff(t *testing.T, want, got string) {
	t.Helper()
	diff, _ := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(want),
		B:        difflib.SplitLines(got),
		FromFile: "want",
		ToFile:   "got",
		Context:  5,
	})
	if diff != "" {
		t.Error(diff)
	}
}

// ExpectYAMLEq compares two YAML documents after normalising both through
// the same encoder, so only content differences show in the diff.
func ExpectYAMLEq(t *testing.T, want, got string) {
	t.Helper()
	ExpectNoDiff(t, normalizeYAML(t, want), normalizeYAML(t, got))
}

func normalizeYAML(t *testing.T, doc string) string {
	t.Helper()
	var v interface{}
	if err := yaml.Unmarshal([]byte(doc), &v); err != nil {
		t.Fatalf("invalid YAML: %v\n%s", err, doc)
	}
	out, err := yaml.Marshal(v)
	if err != nil {
		t.Fatalf("re-encoding YAML: %v", err)
	}
	return string(out)
}
