package stats_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sigview/internal/dataset"
	"sigview/internal/stats"
	"sigview/internal/table"
)

func sampleTable() *table.Table {
	return dataset.ToTable([]dataset.Row{
		{MetaFilename: "a", CenterFreqHz: 915e6, SNRDB: 10, MLWifiProb: 0.2, NumSamples: 10, AGC: true},
		{MetaFilename: "a", CenterFreqHz: 915e6, SNRDB: 20, MLWifiProb: 0.4, NumSamples: 20},
		{MetaFilename: "b", CenterFreqHz: 2.4e9, SNRDB: math.NaN(), MLWifiProb: 0.9, NumSamples: 30, AGC: true},
	})
}

func TestColumnNumeric(t *testing.T) {
	s, err := stats.Column(sampleTable(), dataset.ColSNRDB)
	require.NoError(t, err)
	assert.True(t, s.Numeric)
	assert.Equal(t, "float64", s.Kind)
	assert.Equal(t, 3, s.Count)
	assert.Equal(t, 1, s.NaN)
	assert.Equal(t, 3, s.Distinct)
	assert.InDelta(t, 15.0, s.Mean, 1e-12)
	assert.InDelta(t, math.Sqrt(50), s.StdDev, 1e-12)
	assert.Equal(t, 10.0, s.Min)
	assert.Equal(t, 20.0, s.Max)

	s, err = stats.Column(sampleTable(), dataset.ColNumSamples)
	require.NoError(t, err)
	assert.Equal(t, "uint64", s.Kind)
	assert.InDelta(t, 20.0, s.Mean, 1e-12)
	assert.Equal(t, 30.0, s.Max)
}

func TestColumnNonNumeric(t *testing.T) {
	s, err := stats.Column(sampleTable(), dataset.ColAGC)
	require.NoError(t, err)
	assert.False(t, s.Numeric)
	assert.Equal(t, 2, s.True)
	assert.Equal(t, 2, s.Distinct)

	s, err = stats.Column(sampleTable(), dataset.ColMetaFilename)
	require.NoError(t, err)
	assert.Equal(t, 2, s.Distinct)
	assert.Zero(t, s.Mean)
}

func TestColumnSingleValueHasZeroStdDev(t *testing.T) {
	tbl := dataset.ToTable([]dataset.Row{{SNRDB: 7}})
	s, err := stats.Column(tbl, dataset.ColSNRDB)
	require.NoError(t, err)
	assert.Equal(t, 7.0, s.Mean)
	assert.Zero(t, s.StdDev)
}

func TestSummarize(t *testing.T) {
	all, err := stats.Summarize(sampleTable())
	require.NoError(t, err)
	require.Len(t, all, 40)
	assert.Equal(t, dataset.ColMetaFilename, all[0].Column)

	some, err := stats.Summarize(sampleTable(), dataset.ColMLWifiProb, dataset.ColAGC)
	require.NoError(t, err)
	require.Len(t, some, 2)
	assert.Equal(t, dataset.ColMLWifiProb, some[0].Column)

	_, err = stats.Summarize(sampleTable(), "nope")
	assert.ErrorIs(t, err, stats.ErrUnknownColumn)
}

func TestOverview(t *testing.T) {
	h, err := stats.Overview(sampleTable())
	require.NoError(t, err)
	assert.Equal(t, 3, h.Rows)
	assert.InDelta(t, 0.5, h.MeanWifiProb, 1e-12)
	assert.InDelta(t, 15.0, h.MeanSNRDB, 1e-12)
	assert.Equal(t, 2, h.DistinctCenterFreqs)

	empty, err := stats.Overview(table.Empty(dataset.Schema))
	require.NoError(t, err)
	assert.Zero(t, empty.Rows)
	assert.Zero(t, empty.MeanWifiProb)

	_, err = stats.Overview(table.Empty(table.MustSchema(table.Field{Name: "x", Kind: table.KindString})))
	assert.ErrorIs(t, err, stats.ErrUnknownColumn)
}

func TestDistinctFoldsSignedZeroAndNaN(t *testing.T) {
	tbl := dataset.ToTable([]dataset.Row{
		{Gain: 0}, {Gain: math.Copysign(0, -1)}, {Gain: math.NaN()}, {Gain: math.NaN()},
	})
	n, err := stats.Distinct(tbl, dataset.ColGain)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}
