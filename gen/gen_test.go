package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRun(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := run([]string{"-seed", "1", "25"}, &stdout, &stderr)

	assert.Equal(t, 0, code)
	assert.Empty(t, stderr.String())
	assert.Equal(t, 25, strings.Count(stdout.String(), "\n"))
}

func TestRunUsage(t *testing.T) {
	for _, args := range [][]string{nil, {"many"}, {"-5"}, {"-seed"}} {
		var stdout, stderr bytes.Buffer
		code := run(args, &stdout, &stderr)

		assert.Equal(t, 1, code, "%q", args)
		assert.Empty(t, stdout.String())
		assert.Contains(t, stderr.String(), "usage: gen", "%q", args)
	}
}
