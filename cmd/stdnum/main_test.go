package main

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/yourusername/open-stdnum-gateway/pkg/identifier"
)

func TestRunExitStatus(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want int
	}{
		{"all valid", []string{"0-306-40615-2", "0378-5955", "n78-890351"}, exitValid},
		{"one invalid", []string{"0-306-40615-2", "0306406151"}, exitInvalid},
		{"forced kind", []string{"--kind", "lccn", "85-2"}, exitValid},
		{"forced kind mismatch", []string{"-k", "issn", "0-306-40615-2"}, exitInvalid},
		{"no identifiers", nil, exitUsage},
		{"unknown kind", []string{"--kind", "doi", "x"}, exitUsage},
		{"unknown flag", []string{"--bogus", "x"}, exitUsage},
		{"unknown format", []string{"-o", "xml", "0378-5955"}, exitUsage},
		{"help", []string{"--help"}, exitValid},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var stdout, stderr bytes.Buffer
			if got := run(tt.args, &stdout, &stderr); got != tt.want {
				t.Errorf("exit = %d, want %d (stderr: %s)", got, tt.want, stderr.String())
			}
		})
	}
}

func TestRunText(t *testing.T) {
	var stdout, stderr bytes.Buffer
	run([]string{"0-306-40615-2", "hello"}, &stdout, &stderr)

	lines := strings.Split(strings.TrimSpace(stdout.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines: %q", len(lines), stdout.String())
	}
	if f := strings.Fields(lines[0]); len(f) != 4 || f[0] != "isbn" || f[2] != "valid" || f[3] != "9780306406157" {
		t.Errorf("line 1 = %q", lines[0])
	}
	if f := strings.Fields(lines[1]); f[0] != "?" || f[2] != "invalid" {
		t.Errorf("line 2 = %q", lines[1])
	}
}

func TestRunJSON(t *testing.T) {
	var stdout, stderr bytes.Buffer
	run([]string{"-o", "json", "9780306406157"}, &stdout, &stderr)

	var results []identifier.Result
	if err := json.Unmarshal(stdout.Bytes(), &results); err != nil {
		t.Fatalf("decode: %v\n%s", err, stdout.String())
	}
	if len(results) != 1 || results[0].ISBN10 != "0306406152" {
		t.Errorf("unexpected results: %+v", results)
	}
}

func TestRunYAML(t *testing.T) {
	var stdout, stderr bytes.Buffer
	run([]string{"--output", "yaml", "1043-383x"}, &stdout, &stderr)

	var results []identifier.Result
	if err := yaml.Unmarshal(stdout.Bytes(), &results); err != nil {
		t.Fatalf("decode: %v\n%s", err, stdout.String())
	}
	if len(results) != 1 || results[0].Kind != identifier.KindISSN || results[0].Normalized != "1043383X" {
		t.Errorf("unexpected results: %+v", results)
	}
}
