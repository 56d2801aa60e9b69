package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// inputs collects the lines to process. Each argument is one line. Lines are
// also read from the file named by in, or from stdin if in is "-" or there
// are no arguments. Blank lines and lines starting with # are skipped.
func inputs(args []string, in string, stdin io.Reader) ([]string, error) {
	lines := append([]string(nil), args...)
	f, err := infile(in, stdin, len(args) == 0)
	if err != nil {
		return nil, err
	}
	if f == nil {
		return lines, nil
	}
	defer f.Close()
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		s := strings.TrimSpace(sc.Text())
		if s == "" || strings.HasPrefix(s, "#") {
			continue
		}
		lines = append(lines, s)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading input: %w", err)
	}
	return lines, nil
}

func infile(inname string, stdin io.Reader, std bool) (io.ReadCloser, error) {
	switch {
	case inname != "" && inname != "-":
		f, err := os.Open(inname)
		if err != nil {
			return nil, fmt.Errorf("opening input: %w", err)
		}
		return f, nil
	case inname == "-", std:
		return io.NopCloser(stdin), nil
	}
	return nil, nil
}
