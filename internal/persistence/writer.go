package persistence

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// WriteResults writes one "<value>,<persistence>" line per result,
// replacing any existing file.
func WriteResults(results []Result, outputPath string) error {
	var sb strings.Builder
	for _, r := range results {
		sb.WriteString(r.Value.String())
		sb.WriteByte(',')
		sb.WriteString(strconv.Itoa(r.Persistence))
		sb.WriteByte('\n')
	}

	if err := os.WriteFile(outputPath, []byte(sb.String()), 0644); err != nil {
		return fmt.Errorf("failed to write results file: %w", err)
	}

	return nil
}
