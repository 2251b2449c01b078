package program

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/colorfulnotion/intcode/vmerrors"
)

// Parse reads a comma separated list of decimal integers. Whitespace around
// items and a trailing newline are ignored.
func Parse(text string) ([]int64, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, fmt.Errorf("%w: empty program", vmerrors.ErrMalformedProgram)
	}
	items := strings.Split(text, ",")
	code := make([]int64, 0, len(items))
	for i, item := range items {
		v, err := strconv.ParseInt(strings.TrimSpace(item), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: item %d %q: %v", vmerrors.ErrMalformedProgram, i, item, err)
		}
		code = append(code, v)
	}
	return code, nil
}

// Load reads and parses the program stored at path.
func Load(path string) ([]int64, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read %s: %w", path, err)
	}
	code, err := Parse(string(data))
	if err != nil {
		return nil, fmt.Errorf("parse error in %s: %w", path, err)
	}
	return code, nil
}

// Format renders code back into its comma separated text form.
func Format(code []int64) string {
	var sb strings.Builder
	for i, v := range code {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(strconv.FormatInt(v, 10))
	}
	return sb.String()
}
