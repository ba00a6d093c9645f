package metrics

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComputeDistribution(t *testing.T) {
	dist := computeDistribution([]float64{10, 20, 30, 40, 50})

	assert.Equal(t, 5, dist.Count)
	assert.Equal(t, 30.0, dist.Mean)
	assert.Equal(t, 30.0, dist.Median)
	assert.Equal(t, 10.0, dist.Min)
	assert.Equal(t, 50.0, dist.Max)
	assert.Equal(t, 50.0, dist.P95)
	assert.InDelta(t, 14.142, dist.StdDev, 0.001)
}

func TestComputeDistributionEmpty(t *testing.T) {
	assert.Equal(t, Distribution{}, computeDistribution(nil))
	assert.Equal(t, Distribution{}, computeDistribution([]float64{}))
}

func TestComputeDistributionSingleValue(t *testing.T) {
	dist := computeDistribution([]float64{42})

	assert.Equal(t, 1, dist.Count)
	assert.Equal(t, 42.0, dist.Mean)
	assert.Equal(t, 42.0, dist.Median)
	assert.Equal(t, 0.0, dist.StdDev)
	assert.Equal(t, 42.0, dist.P95)
}

func TestComputeDistributionEvenCountMedian(t *testing.T) {
	dist := computeDistribution([]float64{10, 20, 30, 40})

	// Even-length input averages the two middle values.
	assert.Equal(t, 25.0, dist.Median)
}

func TestComputeDistributionUnsortedInput(t *testing.T) {
	dist := computeDistribution([]float64{50, 10, 40, 20, 30})

	assert.Equal(t, 30.0, dist.Median)
	assert.Equal(t, 10.0, dist.Min)
	assert.Equal(t, 50.0, dist.Max)
}

func TestComputeDistributionLeavesInputAlone(t *testing.T) {
	in := []float64{3, 1, 2}
	computeDistribution(in)

	assert.Equal(t, []float64{3, 1, 2}, in)
}
