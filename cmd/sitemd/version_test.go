package main

import (
	"bytes"
	"strings"
	"testing"
)

func TestVersionCmd(t *testing.T) {
	t.Parallel()

	cmd := NewVersionCmd()
	var buf bytes.Buffer
	cmd.SetOut(&buf)

	if err := cmd.Execute(); err != nil {
		t.Fatalf("version command failed: %v", err)
	}

	output := buf.String()
	if !strings.Contains(output, "sitemd version") {
		t.Errorf("missing version line:\n%s", output)
	}
	if !strings.Contains(output, "commit:") {
		t.Errorf("missing commit line:\n%s", output)
	}
	if !strings.Contains(output, "built:") {
		t.Errorf("missing build date line:\n%s", output)
	}
}

func TestGetVersion(t *testing.T) {
	t.Run("prefers ldflags value", func(t *testing.T) {
		original := version
		defer func() { version = original }()

		version = "v1.2.3"
		if got := getVersion(); got != "v1.2.3" {
			t.Errorf("getVersion() = %q, want v1.2.3", got)
		}
	})

	t.Run("never returns empty", func(t *testing.T) {
		if got := getVersion(); got == "" {
			t.Error("getVersion() returned empty string")
		}
	})
}
