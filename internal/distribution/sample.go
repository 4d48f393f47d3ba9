// Package distribution is the plot shown by plotdemo: a scatter of normally
// distributed points with a histogram of each coordinate along its edges.
package distribution

import (
	"math/rand/v2"
	"slices"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/opd-ai/go-plotkit/internal/config"
)

// Random streams of the two coordinates. Both are seeded from
// PlotConfig.Seed, so a seed gives the same points on every run.
const (
	xStream = 1
	yStream = 2
)

// Sample is a set of points.
type Sample struct {
	X, Y []float64
}

// Len returns the number of points.
func (s Sample) Len() int { return len(s.X) }

// Summary holds the sample statistics of one coordinate.
type Summary struct {
	Mean, StdDev float64
}

// sampleKey identifies the inputs a Sample was generated from.
type sampleKey struct {
	samples int
	mean    float64
	stdDev  float64
	seed    uint64
}

func keyOf(pc config.PlotConfig) sampleKey {
	return sampleKey{samples: pc.Samples, mean: pc.Mean, stdDev: pc.StdDev, seed: pc.Seed}
}

// Generate draws pc.Samples points whose coordinates are independent and
// normally distributed with pc.Mean and pc.StdDev.
func Generate(pc config.PlotConfig) Sample {
	return Sample{
		X: normal(pc, xStream),
		Y: normal(pc, yStream),
	}
}

func normal(pc config.PlotConfig, stream uint64) []float64 {
	d := distuv.Normal{
		Mu:    pc.Mean,
		Sigma: pc.StdDev,
		Src:   rand.New(rand.NewPCG(pc.Seed, stream)),
	}
	out := make([]float64, max(pc.Samples, 0))
	for i := range out {
		out[i] = d.Rand()
	}
	return out
}

// Histogram counts the values falling into each of bins equal bins over
// [0, 1). Values outside that interval are not counted.
func Histogram(values []float64, bins int) []float64 {
	if bins < 1 {
		return nil
	}
	inside := make([]float64, 0, len(values))
	for _, v := range values {
		if v >= 0 && v < 1 {
			inside = append(inside, v)
		}
	}
	slices.Sort(inside)
	dividers := floats.Span(make([]float64, bins+1), 0, 1)
	return stat.Histogram(nil, dividers, inside, nil)
}

// BinCenters returns the midpoints of bins equal bins over [0, 1).
func BinCenters(bins int) []float64 {
	switch {
	case bins < 1:
		return nil
	case bins == 1:
		return []float64{0.5}
	}
	width := 1 / float64(bins)
	return floats.Span(make([]float64, bins), width/2, 1-width/2)
}

// Summarize returns the mean and standard deviation of values.
func Summarize(values []float64) Summary {
	switch len(values) {
	case 0:
		return Summary{}
	case 1:
		return Summary{Mean: values[0]}
	}
	mean, std := stat.MeanStdDev(values, nil)
	return Summary{Mean: mean, StdDev: std}
}
