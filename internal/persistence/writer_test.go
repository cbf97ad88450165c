package persistence

import (
	"math/big"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func makeResults(pairs ...any) []Result {
	var out []Result
	for i := 0; i < len(pairs); i += 2 {
		n, _ := new(big.Int).SetString(pairs[i].(string), 10)
		out = append(out, Result{Value: n, Persistence: pairs[i+1].(int)})
	}
	return out
}

func TestWriteResults(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		results   []Result
		wantLines []string
	}{
		{
			name:      "multiple results",
			results:   makeResults("256", 2, "277777788888899", 11, "7", 0),
			wantLines: []string{"256,2", "277777788888899,11", "7,0"},
		},
		{
			name:      "empty slice",
			results:   nil,
			wantLines: nil,
		},
		{
			name:      "single result",
			results:   makeResults("679", 5),
			wantLines: []string{"679,5"},
		},
		{
			name:      "very long value",
			results:   makeResults(strings.Repeat("7", 1000), 2),
			wantLines: []string{strings.Repeat("7", 1000) + ",2"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tmpDir := t.TempDir()
			path := filepath.Join(tmpDir, "results.csv")

			if err := WriteResults(tt.results, path); err != nil {
				t.Fatalf("WriteResults() error = %v", err)
			}

			content, err := os.ReadFile(path)
			if err != nil {
				t.Fatalf("Failed to read results file: %v", err)
			}

			if len(tt.wantLines) == 0 {
				if len(content) != 0 {
					t.Errorf("Expected empty file, got %d bytes", len(content))
				}
				return
			}

			lines := strings.Split(strings.TrimSpace(string(content)), "\n")
			if len(lines) != len(tt.wantLines) {
				t.Fatalf("Expected %d lines, got %d", len(tt.wantLines), len(lines))
			}
			for i, want := range tt.wantLines {
				if lines[i] != want {
					t.Errorf("Expected %s at line %d, got %s", want, i+1, lines[i])
				}
			}

			if content[len(content)-1] != '\n' {
				t.Error("Expected trailing newline in non-empty file")
			}
		})
	}
}

func TestWriteResults_InvalidPath(t *testing.T) {
	invalidPath := "/nonexistent/directory/that/should/not/exist/results.csv"

	err := WriteResults(makeResults("256", 2), invalidPath)
	if err == nil {
		t.Error("Expected error when writing to invalid path, got nil")
	}
}

func TestWriteResults_Overwrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "overwrite.csv")

	if err := WriteResults(makeResults("256", 2, "39", 3), path); err != nil {
		t.Fatalf("Initial WriteResults() error = %v", err)
	}
	if err := WriteResults(makeResults("77", 4), path); err != nil {
		t.Fatalf("Overwrite WriteResults() error = %v", err)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read results file: %v", err)
	}
	if string(content) != "77,4\n" {
		t.Errorf("Expected overwritten content %q, got %q", "77,4\n", string(content))
	}
}
