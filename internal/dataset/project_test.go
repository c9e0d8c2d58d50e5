package dataset_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sigview/internal/dataset"
	"sigview/internal/sigmf"
	"sigview/internal/testsupport"
)

func parseRecording(t *testing.T, r testsupport.Recording) *sigmf.ParsedFile {
	t.Helper()
	metaPath := testsupport.WriteRecording(t, t.TempDir(), r)
	parsed, err := sigmf.ParseFile(metaPath)
	require.NoError(t, err)
	return parsed
}

func TestProjectWithoutMLAnnotationsEmitsOneDefaultRow(t *testing.T) {
	parsed := parseRecording(t, testsupport.Recording{
		Name:      "plain",
		DataBytes: 8000,
		Global: map[string]any{
			"core:sample_rate": 1000.0,
			"core:author":      "ops",
			"core:hw":          "usrp-b210",
			"core:geolocation": map[string]any{"type": "Point", "coordinates": []float64{-77.1, 38.9}},
		},
		Annotations: []map[string]any{
			{"core:sample_start": 0, "core:sample_count": 10, "core:freq_lower_edge": 1e6, "core:freq_upper_edge": 2e6},
		},
	})

	rows, err := dataset.Project(parsed)
	require.NoError(t, err)
	require.Len(t, rows, 1)

	row := rows[0]
	assert.Equal(t, "plain.sigmf-meta", row.MetaFilename)
	assert.Equal(t, "plain.sigmf-data", row.DataFilename)
	assert.Equal(t, uint64(8000), row.FileSizeBytes)
	assert.Equal(t, uint64(1000), row.NumSamples)
	assert.InDelta(t, 1.0, row.DurationS, 1e-12)
	assert.Equal(t, "cf32_le", row.Datatype)
	assert.Equal(t, "1.0.0", row.SigMFVersion)
	assert.Equal(t, "ops", row.Author)
	assert.Equal(t, "usrp-b210", row.Hardware)
	assert.Equal(t, -77.1, row.Latitude)
	assert.Equal(t, 38.9, row.Longitude)
	assert.Equal(t, "Point", row.GeoType)
	assert.Equal(t, 1e6, row.FreqLowerEdgeHz)
	assert.Equal(t, 2e6, row.FreqUpperEdgeHz)

	// Every annotation-derived field keeps its default.
	defaults := dataset.Row{
		MetaFilename: row.MetaFilename, DataFilename: row.DataFilename,
		NumSamples: row.NumSamples, FileSizeBytes: row.FileSizeBytes, DurationS: row.DurationS,
		SampleRateHz: row.SampleRateHz, Datatype: row.Datatype, SigMFVersion: row.SigMFVersion,
		Author: row.Author, Hardware: row.Hardware, Latitude: row.Latitude, Longitude: row.Longitude,
		GeoType: row.GeoType, CenterFreqHz: row.CenterFreqHz, CaptureDatetime: row.CaptureDatetime,
		Gain: row.Gain, AGC: row.AGC, SequenceNum: row.SequenceNum,
		FreqLowerEdgeHz: row.FreqLowerEdgeHz, FreqUpperEdgeHz: row.FreqUpperEdgeHz,
	}
	assert.Equal(t, defaults, row)
}

func TestProjectEmitsOneRowPerMLAnnotation(t *testing.T) {
	parsed := parseRecording(t, testsupport.Recording{
		Name:      "multi",
		DataBytes: 800,
		Captures: []map[string]any{
			{"core:sample_start": 0, "core:frequency": 915e6},
		},
		Annotations: []map[string]any{
			{"core:sample_start": 0, "core:sample_count": 5, "core:freq_lower_edge": 914e6, "core:freq_upper_edge": 916e6},
			testsupport.MLAnnotation(915.1e6, map[string]any{
				"ds:snr":    12.5,
				"ds:askProb": 0.7,
				"ds:uuid":   "a",
				"ds:customClassifierProbs": []map[string]any{
					{"className": "wifi", "classProb": 0.5},
					{"className": "WIFI", "classProb": 0.9},
					{"className": "bluetooth", "classProb": 0.4},
				},
				"core:freq_lower_edge": 1.0,
			}),
			{"core:sample_start": 10, "core:sample_count": 5, "ds:pskProb": 0.25, "ds:ml_no_sig": true, "ds:sdr_handle": "sdr0"},
			{"core:sample_start": 20, "core:sample_count": 5, "ds:customClassifierProbs": []map[string]any{
				{"className": "radar", "classProb": 0.75},
				{"className": "cell", "classProb": 0.125},
			}},
		},
	})

	rows, err := dataset.Project(parsed)
	require.NoError(t, err)
	require.Len(t, rows, 3)

	for _, row := range rows {
		assert.Equal(t, "multi.sigmf-meta", row.MetaFilename)
		assert.Equal(t, uint64(100), row.NumSamples)
		assert.Equal(t, 915e6, row.CenterFreqHz)
		// Edges always come from the first annotation of the file.
		assert.Equal(t, 914e6, row.FreqLowerEdgeHz)
		assert.Equal(t, 916e6, row.FreqUpperEdgeHz)
	}

	assert.Equal(t, 915.1e6, rows[0].SigCenterFreqHz)
	assert.Equal(t, 12.5, rows[0].SNRDB)
	assert.Equal(t, 0.7, rows[0].MLASKProb)
	assert.Equal(t, "a", rows[0].SigUUID)
	assert.InDelta(t, 0.5, rows[0].MLWifiProb, 1e-6)
	assert.Zero(t, rows[0].MLCellProb)

	assert.Equal(t, 0.25, rows[1].MLPSKProb)
	assert.True(t, rows[1].MLNoSig)
	assert.Equal(t, "sdr0", rows[1].SDRHandle)
	assert.Zero(t, rows[1].SigCenterFreqHz)
	assert.Zero(t, rows[1].MLWifiProb)

	assert.InDelta(t, 0.75, rows[2].MLRadarProb, 1e-6)
	assert.InDelta(t, 0.125, rows[2].MLCellProb, 1e-6)
	assert.False(t, rows[2].MLNoSig)
}

func TestProjectCaptureScansAreIndependent(t *testing.T) {
	parsed := parseRecording(t, testsupport.Recording{
		Name:      "captures",
		DataBytes: 0,
		Captures: []map[string]any{
			{"core:sample_start": 0, "core:datetime": "2024-01-01T00:00:00Z"},
			{"core:sample_start": 10, "ds:agc": true, "ds:sequence_num": 7},
			{"core:sample_start": 20, "core:frequency": 2.4e9, "ds:gain": 30.0},
			{"core:sample_start": 30, "core:frequency": 5.8e9, "core:datetime": "later"},
		},
	})

	rows, err := dataset.Project(parsed)
	require.NoError(t, err)
	require.Len(t, rows, 1)

	row := rows[0]
	assert.Equal(t, 2.4e9, row.CenterFreqHz)
	assert.Equal(t, "2024-01-01T00:00:00Z", row.CaptureDatetime)
	assert.True(t, row.AGC)
	assert.Zero(t, row.Gain, "gain comes from the first capture carrying gain or agc")
	assert.Equal(t, uint64(7), row.SequenceNum)
}

func TestProjectNumSamplesTruncates(t *testing.T) {
	tests := []struct {
		datatype  string
		bytes     int64
		wantCount uint64
	}{
		{"cf32_le", 8, 1},
		{"cf32_le", 15, 1},
		{"cf32_le", 7, 0},
		{"ci16_le", 4, 1},
		{"ci16_le", 4099, 1024},
		{"ci16_le", 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.datatype, func(t *testing.T) {
			parsed := parseRecording(t, testsupport.Recording{Name: "n", Datatype: tt.datatype, DataBytes: tt.bytes})
			rows, err := dataset.Project(parsed)
			require.NoError(t, err)
			assert.Equal(t, tt.wantCount, rows[0].NumSamples)
			assert.Equal(t, uint64(tt.bytes), rows[0].FileSizeBytes)
		})
	}
}

func TestProjectNonPositiveSampleRateYieldsZeroDuration(t *testing.T) {
	for _, rate := range []float64{0, -48000} {
		parsed := parseRecording(t, testsupport.Recording{
			Name:      "rate",
			DataBytes: 80,
			Global:    map[string]any{"core:sample_rate": rate},
		})
		rows, err := dataset.Project(parsed)
		require.NoError(t, err)
		assert.Equal(t, uint64(10), rows[0].NumSamples)
		assert.Zero(t, rows[0].DurationS)
		assert.Equal(t, rate, rows[0].SampleRateHz)
	}
}

func TestProjectDataFileRemovedAfterParse(t *testing.T) {
	parsed := parseRecording(t, testsupport.Recording{Name: "gone", DataBytes: 64})
	require.NoError(t, os.Remove(parsed.DataPath))

	rows, err := dataset.Project(parsed)
	require.NoError(t, err)
	assert.Zero(t, rows[0].NumSamples)
	assert.Zero(t, rows[0].FileSizeBytes)
	assert.Equal(t, filepath.Base(parsed.DataPath), rows[0].DataFilename)
}

func TestProjectNilInput(t *testing.T) {
	_, err := dataset.Project(nil)
	assert.Error(t, err)
}

func TestRowValuesMatchSchema(t *testing.T) {
	row := dataset.Row{MetaFilename: "a", NumSamples: 3, AGC: true, MLWifiProb: 0.5, FreqUpperEdgeHz: 9}
	values := row.Values()
	require.Len(t, values, dataset.Schema.Len())

	for i, v := range values {
		assert.Equal(t, dataset.Schema.Field(i).Kind, v.Kind, dataset.Schema.Field(i).Name)
	}

	tbl := dataset.ToTable([]dataset.Row{row})
	col, err := tbl.Column(dataset.ColMLWifiProb)
	require.NoError(t, err)
	assert.Equal(t, 0.5, col[0].F64)
	col, err = tbl.Column(dataset.ColAGC)
	require.NoError(t, err)
	assert.True(t, col[0].Bool)
}

func TestSchemaColumnOrder(t *testing.T) {
	names := dataset.ColumnNames()
	require.Len(t, names, 40)
	assert.Equal(t, "meta_filename", names[0])
	assert.Equal(t, "num_samples", names[2])
	assert.Equal(t, "ml_no_sig", names[35])
	assert.Equal(t, "freq_upper_edge_hz", names[39])
}
