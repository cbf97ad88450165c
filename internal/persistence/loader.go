package persistence

import (
	"bufio"
	"fmt"
	"math/big"
	"os"
	"strings"
)

const (
	// Scanner buffer sizes; a single line may hold a number with tens of
	// thousands of digits.
	scannerInitialBuffer = 64 * 1024        // 64 KB
	scannerMaxBuffer     = 16 * 1024 * 1024 // 16 MB
)

// LoadNumbers reads one decimal number per line from filename.
// Lines are trimmed of whitespace and blank lines are skipped.
func LoadNumbers(filename string) ([]*big.Int, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open file %s: %w", filename, err)
	}
	defer f.Close()

	var numbers []*big.Int
	scanner := bufio.NewScanner(f)
	buf := make([]byte, 0, scannerInitialBuffer)
	scanner.Buffer(buf, scannerMaxBuffer)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		n, err := ParseNumber(line)
		if err != nil {
			return nil, fmt.Errorf("%s:%d: %w", filename, lineNo, err)
		}
		numbers = append(numbers, n)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading file %s: %w", filename, err)
	}

	return numbers, nil
}
