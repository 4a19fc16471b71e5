package status

import (
	"bytes"
	"strings"
	"testing"
)

func TestReporterDisabled(t *testing.T) {
	var buf bytes.Buffer
	r := NewWithWriter(&buf, false)

	r.Start("configuring")
	r.Succeed("configured")
	r.Fail("broke")
	r.Info("note")

	if buf.Len() != 0 {
		t.Errorf("disabled reporter wrote output: %q", buf.String())
	}
}

func TestReporterEnabled(t *testing.T) {
	var buf bytes.Buffer
	r := NewWithWriter(&buf, true)

	r.Start("configuring")
	r.Succeed("android configured")
	r.Fail("ios failed")
	r.Info("nothing to commit")

	out := buf.String()
	for _, want := range []string{"android configured", "ios failed", "nothing to commit"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}
