package corpora

import (
	"bufio"
	"io"
	"strings"
)

// headTailLines keeps the head and tail of a line-oriented file: a line with
// 0-based index i survives when i <= nFirst or i >= total-nLast. Line
// terminators are preserved exactly, so writing the result back produces a
// byte-faithful excerpt of the input.
//
// Note the head bound is inclusive: nFirst=2 keeps three leading lines. A
// value of 0 still keeps the first line, which matters for files that carry
// a header.
func headTailLines(r io.Reader, nFirst, nLast int) ([]string, error) {
	lines, err := readLines(r)
	if err != nil {
		return nil, err
	}

	total := len(lines)
	kept := make([]string, 0, total)
	for i, line := range lines {
		if i <= nFirst || i >= total-nLast {
			kept = append(kept, line)
		}
	}
	return kept, nil
}

// readLines splits r into lines, each keeping its trailing newline if it has
// one. Unlike bufio.Scanner it has no line length limit.
func readLines(r io.Reader) ([]string, error) {
	br := bufio.NewReader(r)
	var lines []string
	for {
		line, err := br.ReadString('\n')
		if line != "" {
			lines = append(lines, line)
		}
		if err == io.EOF {
			return lines, nil
		}
		if err != nil {
			return nil, err
		}
	}
}

// joinLines concatenates kept lines back into file content.
func joinLines(lines []string) string {
	var b strings.Builder
	for _, line := range lines {
		b.WriteString(line)
	}
	return b.String()
}
