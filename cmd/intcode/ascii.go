package main

import (
	"strconv"
	"strings"
)

// encodeLine turns a line of text into character codes ending in a newline.
func encodeLine(line string) []int64 {
	codes := make([]int64, 0, len(line)+1)
	for _, r := range line {
		codes = append(codes, int64(r))
	}
	return append(codes, '\n')
}

// renderOutput prints values as comma separated integers, or as text when
// ascii is set. Values outside the ASCII range are printed as numbers on
// their own line.
func renderOutput(values []int64, ascii bool) string {
	if !ascii {
		parts := make([]string, len(values))
		for i, v := range values {
			parts[i] = strconv.FormatInt(v, 10)
		}
		return strings.Join(parts, ",")
	}
	var b strings.Builder
	for _, v := range values {
		if v >= 0 && v < 128 {
			b.WriteByte(byte(v))
			continue
		}
		if b.Len() > 0 && !strings.HasSuffix(b.String(), "\n") {
			b.WriteByte('\n')
		}
		b.WriteString(strconv.FormatInt(v, 10))
		b.WriteByte('\n')
	}
	return b.String()
}

// parseValues reads a comma separated list of integers. An empty string is
// no values.
func parseValues(s string) ([]int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	var values []int64
	for _, item := range strings.Split(s, ",") {
		v, err := strconv.ParseInt(strings.TrimSpace(item), 10, 64)
		if err != nil {
			return nil, err
		}
		values = append(values, v)
	}
	return values, nil
}
