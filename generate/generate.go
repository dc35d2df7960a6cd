// Package generate writes synthetic measurement rows.
package generate

import (
	"bufio"
	"io"
	"math"
	"math/rand/v2"
	"strconv"
)

// Station is a weather station and its mean temperature.
type Station struct {
	Name string
	Mean float64
}

// Stations are the keys the generator draws from.
var Stations = []Station{
	{"Abha", 18.0}, {"Abidjan", 26.0}, {"Abéché", 29.4}, {"Accra", 26.4},
	{"Addis Ababa", 16.0}, {"Adelaide", 17.3}, {"Aden", 29.1}, {"Ahvaz", 25.4},
	{"Albuquerque", 14.0}, {"Alexandra", 11.0}, {"Alexandria", 20.0}, {"Algiers", 18.2},
	{"Alice Springs", 21.0}, {"Almaty", 10.0}, {"Amsterdam", 10.2}, {"Anadyr", -6.9},
	{"Anchorage", 2.8}, {"Andorra la Vella", 9.8}, {"Ankara", 12.0}, {"Antananarivo", 17.9},
	{"Bangkok", 28.6}, {"Bulawayo", 18.9}, {"Cracow", 9.3}, {"Dakar", 24.0},
	{"Hamburg", 9.7}, {"Honiara", 26.5}, {"Istanbul", 13.9}, {"Kraków", 8.9},
	{"Łódź", 8.2}, {"Nouakchott", 25.7}, {"Oranjestad", 28.1}, {"Palembang", 27.3},
	{"Reykjavík", 4.3}, {"Roseau", 26.2}, {"São Paulo", 19.8}, {"St. John's", 5.0},
	{"Tromsø", 2.9}, {"Ürümqi", 7.4}, {"Yakutsk", -8.8}, {"Zürich", 9.3},
}

const (
	stddev   = 10
	maxValue = 99.9
)

// Write writes count rows "name;value\n" to w. Values have exactly one
// fractional digit.
func Write(w io.Writer, count int, rng *rand.Rand) error {
	bw := bufio.NewWriterSize(w, 1<<20)
	line := make([]byte, 0, 64)

	for range count {
		s := Stations[rng.IntN(len(Stations))]
		v := math.Round((s.Mean+rng.NormFloat64()*stddev)*10) / 10
		v = max(-maxValue, min(maxValue, v))
		if v == 0 {
			v = 0 // no "-0.0"
		}

		line = append(line[:0], s.Name...)
		line = append(line, ';')
		line = strconv.AppendFloat(line, v, 'f', 1, 64)
		line = append(line, '\n')
		if _, err := bw.Write(line); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// NewRand returns the generator's random source for seed.
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}
