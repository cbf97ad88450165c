package persistence

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadNumbers(t *testing.T) {
	tmpDir := t.TempDir()

	tests := []struct {
		name    string
		content string
		want    []string
		wantErr bool
	}{
		{
			name: "valid file with multiple numbers",
			content: `256
277777788888899
10
7`,
			want: []string{"256", "277777788888899", "10", "7"},
		},
		{
			name:    "empty file",
			content: "",
			want:    nil,
		},
		{
			name:    "file with only whitespace",
			content: "   \n\t\n   \n",
			want:    nil,
		},
		{
			name: "file with empty lines",
			content: `39

77

679`,
			want: []string{"39", "77", "679"},
		},
		{
			name: "file with leading and trailing whitespace",
			content: `  39
	77
   679   `,
			want: []string{"39", "77", "679"},
		},
		{
			name:    "windows line endings",
			content: "25\r\n39\r\n",
			want:    []string{"25", "39"},
		},
		{
			name:    "very long number",
			content: strings.Repeat("7", 100000) + "\n",
			want:    []string{strings.Repeat("7", 100000)},
		},
		{
			name:    "negative number",
			content: "25\n-39\n",
			wantErr: true,
		},
		{
			name:    "non-numeric line",
			content: "25\nabc\n",
			wantErr: true,
		},
	}

	for i, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(tmpDir, "numbers_"+string(rune('a'+i))+".txt")
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0644))

			got, err := LoadNumbers(path)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrInvalidNumber))
				return
			}
			require.NoError(t, err)

			var gotStrings []string
			for _, n := range got {
				gotStrings = append(gotStrings, n.String())
			}
			assert.Equal(t, tt.want, gotStrings)
		})
	}
}

func TestLoadNumbers_ErrorMentionsLine(t *testing.T) {
	path := filepath.Join(t.TempDir(), "numbers.txt")
	require.NoError(t, os.WriteFile(path, []byte("1\n\n2\nthree\n"), 0644))

	_, err := LoadNumbers(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "numbers.txt:4")
}

func TestLoadNumbers_NonExistentFile(t *testing.T) {
	_, err := LoadNumbers("/nonexistent/file/that/does/not/exist.txt")
	assert.Error(t, err)
}
