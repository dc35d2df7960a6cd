package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/andreyvit/diff"
)

// ErrMismatch is returned when the report differs from the expected one.
var ErrMismatch = errors.New("report differs from expected output")

// verify compares got with the contents of path. On mismatch a per key line
// diff is written to w.
func verify(path, got string, w io.Writer) error {
	want, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("expect: %w", err)
	}
	if string(want) == got {
		return nil
	}

	fmt.Fprintln(w, diff.LineDiff(
		diff.TrimLinesInString(entries(string(want))),
		diff.TrimLinesInString(entries(got))))
	return ErrMismatch
}

// entries puts every key of a report on its own line.
func entries(report string) string {
	report = strings.TrimSpace(report)
	report = strings.TrimPrefix(report, "{")
	report = strings.TrimSuffix(report, "}")
	return strings.ReplaceAll(report, ", ", "\n")
}
