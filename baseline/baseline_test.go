package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/paulsonkoly/onebrc/decimal"
	"github.com/paulsonkoly/onebrc/generate"
	"github.com/paulsonkoly/onebrc/report"
	"github.com/paulsonkoly/onebrc/tokenizer"
)

func TestAggregate(t *testing.T) {
	m, err := aggregate(strings.NewReader("X;12.3\nY;7\nX;-2.5\nY;7"))
	require.NoError(t, err)
	assert.Equal(t, "{X=-2.5/4.9/12.3, Y=7.0/7.0/7.0}\n", report.Format(m))
}

func TestAggregateEmpty(t *testing.T) {
	m, err := aggregate(strings.NewReader(""))
	require.NoError(t, err)
	assert.Equal(t, "{}\n", report.Format(m))
}

func TestAggregateCount(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, generate.Write(&buf, 3000, generate.NewRand(9)))

	m, err := aggregate(&buf)
	require.NoError(t, err)

	var total int64
	for _, a := range m.All() {
		total += a.Count
	}
	assert.Equal(t, int64(3000), total)
}

func TestAggregateMalformed(t *testing.T) {
	_, err := aggregate(strings.NewReader("X;1\nY 2\n"))
	assert.ErrorIs(t, err, tokenizer.ErrMissingSeparator)

	_, err = aggregate(strings.NewReader("X;1\nY;2?\n"))
	assert.ErrorIs(t, err, decimal.ErrInvalidDigit)
}
