package cliconfig

import (
	"strings"
	"testing"
)

func TestExtractEnvFlagBare(t *testing.T) {
	value, rest := extractEnvFlag([]string{"-e", "ssh", "host"})
	if value != defaultEnvVar {
		t.Fatalf("got %q, want %q", value, defaultEnvVar)
	}
	if len(rest) != 2 || rest[0] != "ssh" || rest[1] != "host" {
		t.Fatalf("unexpected rest: %v", rest)
	}
}

func TestExtractEnvFlagWithValue(t *testing.T) {
	value, rest := extractEnvFlag([]string{"-e=MY_VAR", "ssh", "host"})
	if value != "MY_VAR" {
		t.Fatalf("got %q, want %q", value, "MY_VAR")
	}
	if len(rest) != 2 {
		t.Fatalf("unexpected rest: %v", rest)
	}
}

func TestExtractEnvFlagAbsent(t *testing.T) {
	value, rest := extractEnvFlag([]string{"-p", "secret", "ssh", "host"})
	if value != "" {
		t.Fatalf("got %q, want empty", value)
	}
	if len(rest) != 4 {
		t.Fatalf("expected args to pass through untouched, got %v", rest)
	}
}

func TestExtractEnvFlagStopsAtCommand(t *testing.T) {
	value, rest := extractEnvFlag([]string{"-p", "pw", "mycmd", "-e"})
	if value != "" {
		t.Fatalf("got %q, want empty: -e belongs to the child command", value)
	}
	want := []string{"-p", "pw", "mycmd", "-e"}
	if len(rest) != len(want) {
		t.Fatalf("unexpected rest: %v", rest)
	}
	for i, w := range want {
		if rest[i] != w {
			t.Fatalf("unexpected rest: %v", rest)
		}
	}
}

func TestDecodeDefaultsFile(t *testing.T) {
	defaults, err := decodeDefaultsFile(strings.NewReader("prompt: \"login:\"\nverbose: true\n"))
	if err != nil {
		t.Fatalf("decodeDefaultsFile: %v", err)
	}
	if defaults.prompt != "login:" || !defaults.verbose {
		t.Fatalf("unexpected defaults: %+v", defaults)
	}
}

func TestDecodeDefaultsFileMalformed(t *testing.T) {
	if _, err := decodeDefaultsFile(strings.NewReader("not: [valid: yaml")); err == nil {
		t.Fatalf("expected an error for malformed YAML")
	}
}
