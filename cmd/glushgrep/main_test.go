package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestRun(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		stdin    string
		wantOut  string
		wantCode int
	}{
		{
			name:     "two patterns",
			args:     []string{"-e", "abc", "-e", "xyz"},
			stdin:    "zzabcxyzaa",
			wantOut:  "-:2:5:0:abc\n-:5:8:1:xyz\n",
			wantCode: 0,
		},
		{
			name:     "no match",
			args:     []string{"-e", "q+"},
			stdin:    "abc",
			wantCode: 1,
		},
		{
			name:     "longest",
			args:     []string{"-longest", "-e", "a+"},
			stdin:    "baab",
			wantOut:  "-:1:3:0:aa\n",
			wantCode: 0,
		},
		{
			name:     "overlap",
			args:     []string{"-overlap", "-longest", "-e", "a+"},
			stdin:    "baab",
			wantOut:  "-:1:3:0:aa\n-:2:3:0:a\n",
			wantCode: 0,
		},
		{
			name:     "no pattern",
			args:     nil,
			wantCode: 2,
		},
		{
			name:     "bad pattern",
			args:     []string{"-e", "("},
			wantCode: 2,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var stdout, stderr bytes.Buffer
			code := run(tt.args, strings.NewReader(tt.stdin), &stdout, &stderr)
			if code != tt.wantCode {
				t.Fatalf("run() = %d, want %d (stderr %q)", code, tt.wantCode, stderr.String())
			}
			if stdout.String() != tt.wantOut {
				t.Errorf("stdout = %q, want %q", stdout.String(), tt.wantOut)
			}
		})
	}
}

func TestRunStats(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := run([]string{"-stats", "-e", "abc", "-e", "xyz"}, strings.NewReader("zzabcxyzaa"), &stdout, &stderr)
	if code != 0 {
		t.Fatalf("run() = %d (stderr %q)", code, stderr.String())
	}
	want := "occurrences=2 extensions=2 direct=0 matches=2 finder=6B\n"
	if stderr.String() != want {
		t.Errorf("stderr = %q, want %q", stderr.String(), want)
	}
}

func TestRunFiles(t *testing.T) {
	dir := t.TempDir()
	name := filepath.Join(dir, "in.txt")
	if err := os.WriteFile(name, []byte("foo bar"), 0o600); err != nil {
		t.Fatal(err)
	}

	var stdout, stderr bytes.Buffer
	code := run([]string{"-e", "ba[rz]", name}, nil, &stdout, &stderr)
	if code != 0 {
		t.Fatalf("run() = %d, stderr %q", code, stderr.String())
	}
	if want := name + ":4:7:0:bar\n"; stdout.String() != want {
		t.Errorf("stdout = %q, want %q", stdout.String(), want)
	}

	code = run([]string{"-e", "x", filepath.Join(dir, "missing")}, nil, &stdout, &stderr)
	if code != 2 {
		t.Errorf("missing file: run() = %d, want 2", code)
	}
}
