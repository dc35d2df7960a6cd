package main

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/paulsonkoly/onebrc/decimal"
	"github.com/paulsonkoly/onebrc/logging"
	"github.com/paulsonkoly/onebrc/report"
	"github.com/paulsonkoly/onebrc/stats"
	"github.com/paulsonkoly/onebrc/tokenizer"
)

// maxLine bounds a row for the scanner.
const maxLine = 1 << 20

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: baseline <measurements-file>")
		os.Exit(2)
	}
	os.Exit(run(os.Args[1]))
}

func run(path string) int {
	log := logging.Component(logging.FromEnv(), "baseline")

	f, err := os.Open(path)
	if err != nil {
		log.Error("open", "err", err)
		return 1
	}
	defer f.Close()

	m, err := aggregate(f)
	if err != nil {
		log.Error("aggregation failed", "file", path, "err", err)
		return 1
	}

	if err := report.Write(os.Stdout, m); err != nil {
		log.Error("writing report", "err", err)
		return 1
	}
	return 0
}

// aggregate is the straightforward single goroutine pass over r, one line at a
// time. It is the reference the parallel modes are checked against.
func aggregate(r io.Reader) (*stats.Table, error) {
	m := stats.NewTable(0)

	scan := bufio.NewScanner(r)
	scan.Buffer(make([]byte, 0, 64*1024), maxLine)

	row := int64(0)
	for scan.Scan() {
		row++
		name, num, ok := bytes.Cut(scan.Bytes(), []byte{';'})
		if !ok {
			return nil, &tokenizer.ParseError{Row: row, Err: tokenizer.ErrMissingSeparator}
		}

		val, err := decimal.Parse(num)
		if err != nil {
			return nil, &tokenizer.ParseError{Row: row, Err: err}
		}
		m.InsertOrUpdate(name, val)
	}
	if err := scan.Err(); err != nil {
		return nil, err
	}
	return m, nil
}
