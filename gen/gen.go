package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/paulsonkoly/onebrc/generate"
	"github.com/paulsonkoly/onebrc/logging"
)

const usage = "usage: gen [-seed S] <count>"

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("gen", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprintln(stderr, usage)
		fs.PrintDefaults()
	}
	seed := fs.Uint64("seed", uint64(time.Now().UnixNano()), "random seed")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 1
	}

	if fs.NArg() < 1 {
		fmt.Fprintln(stderr, usage)
		return 1
	}
	count, err := strconv.Atoi(fs.Arg(0))
	if err != nil || count < 0 {
		fmt.Fprintf(stderr, "invalid count %q\n%s\n", fs.Arg(0), usage)
		return 1
	}

	if err := generate.Write(stdout, count, generate.NewRand(*seed)); err != nil {
		logging.Component(logging.FromEnv(), "gen").Error("writing rows", "err", err)
		return 1
	}
	return 0
}
