package cli

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func runCommand(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	cmd := NewRootCmd()
	var outBuf, errBuf bytes.Buffer
	cmd.SetOut(&outBuf)
	cmd.SetErr(&errBuf)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return outBuf.String(), errBuf.String(), err
}

func TestConfigSetAndShowRoundTrip(t *testing.T) {
	t.Setenv("TADA_CONFIG_DIR", t.TempDir())

	out, stderr, err := runCommand(t, "config", "set", "soundVolume", "0.25")
	if err != nil {
		t.Fatalf("set: %v\nstderr:\n%s", err, stderr)
	}
	if !strings.Contains(out, "0.25") {
		t.Fatalf("expected the new value echoed, got %q", out)
	}

	out, stderr, err = runCommand(t, "config", "show")
	if err != nil {
		t.Fatalf("show: %v\nstderr:\n%s", err, stderr)
	}
	if !strings.Contains(out, "soundVolume: 0.25") {
		t.Fatalf("expected the stored value in show output, got:\n%s", out)
	}
	if !strings.Contains(out, "intensityPolicy: flat") {
		t.Fatalf("expected defaults alongside stored values, got:\n%s", out)
	}
}

func TestConfigShowJSON(t *testing.T) {
	t.Setenv("TADA_CONFIG_DIR", t.TempDir())

	out, stderr, err := runCommand(t, "config", "show", "--json")
	if err != nil {
		t.Fatalf("show: %v\nstderr:\n%s", err, stderr)
	}
	var env struct {
		File     string         `json:"file"`
		Settings map[string]any `json:"settings"`
	}
	if err := json.Unmarshal([]byte(out), &env); err != nil {
		t.Fatalf("unmarshal output: %v\nstdout:\n%s", err, out)
	}
	if env.File == "" {
		t.Fatalf("expected the config path in output")
	}
	if got := env.Settings["throttleMs"]; got != float64(500) {
		t.Fatalf("expected default throttleMs 500, got %v", got)
	}
}

func TestConfigSetRejectsBadValues(t *testing.T) {
	t.Setenv("TADA_CONFIG_DIR", t.TempDir())

	if _, _, err := runCommand(t, "config", "set", "soundVolume", "2"); err == nil {
		t.Fatalf("expected an out-of-range value to be rejected")
	}
	if _, _, err := runCommand(t, "config", "set", "noSuchKey", "1"); err == nil {
		t.Fatalf("expected an unknown key to be rejected")
	}

	out, _, err := runCommand(t, "config", "show")
	if err != nil {
		t.Fatalf("show: %v", err)
	}
	if !strings.Contains(out, "soundVolume: 0.7") {
		t.Fatalf("expected the default to survive rejected writes, got:\n%s", out)
	}
}

func TestDoctorJSONReport(t *testing.T) {
	t.Setenv("TADA_CONFIG_DIR", t.TempDir())

	out, stderr, err := runCommand(t, "doctor", "--json")
	if err != nil {
		t.Fatalf("doctor: %v\nstderr:\n%s", err, stderr)
	}
	var report doctorReport
	if err := json.Unmarshal([]byte(out), &report); err != nil {
		t.Fatalf("unmarshal report: %v\nstdout:\n%s", err, out)
	}
	if report.ConfigFile == "" || report.SoundDir == "" {
		t.Fatalf("expected resolved paths, got %+v", report)
	}
	if report.ConfigPresent {
		t.Fatalf("expected a fresh dir to have no config file")
	}
	if got := report.Settings["intensityPolicy"]; got != "flat" {
		t.Fatalf("expected default intensity policy, got %v", got)
	}
}

func TestDoctorHumanOutput(t *testing.T) {
	t.Setenv("TADA_CONFIG_DIR", t.TempDir())

	out, stderr, err := runCommand(t, "doctor")
	if err != nil {
		t.Fatalf("doctor: %v\nstderr:\n%s", err, stderr)
	}
	for _, want := range []string{"config file:", "sound player:", "color profile:", "windows:"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in doctor output, got:\n%s", want, out)
		}
	}
}

func TestDocsListAndTopic(t *testing.T) {
	t.Setenv("TADA_CONFIG_DIR", t.TempDir())

	out, stderr, err := runCommand(t, "docs")
	if err != nil {
		t.Fatalf("docs: %v\nstderr:\n%s", err, stderr)
	}
	if !strings.Contains(out, "checklists") || !strings.Contains(out, "settings") {
		t.Fatalf("expected topic list, got:\n%s", out)
	}

	out, stderr, err = runCommand(t, "docs", "settings")
	if err != nil {
		t.Fatalf("docs settings: %v\nstderr:\n%s", err, stderr)
	}
	if !strings.Contains(out, "# Settings") {
		t.Fatalf("expected the settings guide, got:\n%s", out)
	}

	if _, _, err := runCommand(t, "docs", "nope"); err == nil {
		t.Fatalf("expected an unknown topic to error")
	}
}
