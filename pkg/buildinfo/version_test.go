package buildinfo

import (
	"strings"
	"testing"
)

func TestTemplate(t *testing.T) {
	tpl := Template()
	if !strings.HasPrefix(tpl, "{{.Name}} version: ") {
		t.Errorf("Template() = %q", tpl)
	}
	if !strings.Contains(tpl, Version) || !strings.Contains(tpl, Commit) {
		t.Errorf("Template() = %q should include version and commit", tpl)
	}
}
