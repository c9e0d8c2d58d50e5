package export_test

import (
	"bytes"
	stdcsv "encoding/csv"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sigview/internal/config"
	"sigview/internal/dataset"
	"sigview/internal/export"
	"sigview/internal/fileutil"
	"sigview/internal/table"
)

func sampleTable() *table.Table {
	return dataset.ToTable([]dataset.Row{
		{MetaFilename: "a.sigmf-meta", DataFilename: "a.sigmf-data", NumSamples: 100, SNRDB: 12.5, AGC: true},
		{MetaFilename: "b,quoted.sigmf-meta", NumSamples: math.MaxUint64, MLWifiProb: 0.25, Latitude: -77.1},
	})
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, export.Write(&buf, sampleTable(), export.Options{Format: config.ExportFormatCSV}))

	records, err := stdcsv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, dataset.ColumnNames(), records[0])

	idx := func(name string) int {
		i, ok := dataset.Schema.Index(name)
		require.True(t, ok)
		return i
	}
	assert.Equal(t, "a.sigmf-meta", records[1][idx(dataset.ColMetaFilename)])
	assert.Equal(t, "b,quoted.sigmf-meta", records[2][idx(dataset.ColMetaFilename)])
	assert.Equal(t, "100", records[1][idx(dataset.ColNumSamples)])
	assert.Equal(t, "18446744073709551615", records[2][idx(dataset.ColNumSamples)])
	assert.Equal(t, "true", records[1][idx(dataset.ColAGC)])
	assert.Equal(t, "false", records[2][idx(dataset.ColAGC)])
	assert.Equal(t, "12.5", records[1][idx(dataset.ColSNRDB)])
}

func TestWriteCSVEmptyTableKeepsHeader(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, export.Write(&buf, table.Empty(dataset.Schema), export.Options{}))

	records, err := stdcsv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Len(t, records[0], 40)
}

func TestArrowRoundTripAcrossCodecs(t *testing.T) {
	tbl := sampleTable()
	for _, codec := range []string{config.CompressionNone, config.CompressionZstd, config.CompressionLZ4} {
		t.Run(codec, func(t *testing.T) {
			var buf bytes.Buffer
			opts := export.Options{Format: config.ExportFormatArrow, Compression: codec}
			require.NoError(t, export.Write(&buf, tbl, opts))

			got, err := export.ReadArrow(&buf, codec, dataset.Schema)
			require.NoError(t, err)
			assert.True(t, tbl.Equal(got))
		})
	}
}

func TestCSVRoundTripAcrossCodecs(t *testing.T) {
	tbl := dataset.ToTable([]dataset.Row{
		{MetaFilename: "a.sigmf-meta", NumSamples: math.MaxUint64, SNRDB: math.NaN(), Gain: math.Inf(-1), AGC: true, CenterFreqHz: 915e6},
		{MetaFilename: "b,\"quoted\".sigmf-meta", Author: "", MLWifiProb: 0.1 + 0.2, Latitude: -77.1, MLNoSig: true},
	})
	for _, codec := range []string{config.CompressionNone, config.CompressionZstd, config.CompressionLZ4} {
		t.Run(codec, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, export.Write(&buf, tbl, export.Options{Format: config.ExportFormatCSV, Compression: codec}))

			got, err := export.ReadCSV(&buf, codec, dataset.Schema)
			require.NoError(t, err)
			assert.True(t, tbl.Equal(got))
		})
	}
}

func TestReadCSVEmptyAndSchemaless(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, export.Write(&buf, table.Empty(dataset.Schema), export.Options{Format: config.ExportFormatCSV}))
	got, err := export.ReadCSV(&buf, config.CompressionNone, dataset.Schema)
	require.NoError(t, err)
	assert.Zero(t, got.NumRows())

	_, err = export.ReadCSV(bytes.NewReader(nil), config.CompressionNone, nil)
	assert.Error(t, err)
}

func TestReadFileDispatchesOnName(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"rows.csv", "rows.csv.lz4", "rows.arrow"} {
		path := filepath.Join(dir, name)
		_, err := export.WriteFile(path, sampleTable(), export.InferOptions(path, export.Options{}))
		require.NoError(t, err)

		got, err := export.ReadFile(path, dataset.Schema)
		require.NoError(t, err, name)
		assert.True(t, sampleTable().Equal(got), name)
	}
}

func TestCompressedOutputCarriesCodecMagic(t *testing.T) {
	tests := []struct {
		codec string
		magic []byte
	}{
		{config.CompressionZstd, []byte{0x28, 0xb5, 0x2f, 0xfd}},
		{config.CompressionLZ4, []byte{0x04, 0x22, 0x4d, 0x18}},
	}
	for _, tt := range tests {
		var buf bytes.Buffer
		require.NoError(t, export.Write(&buf, sampleTable(), export.Options{Format: config.ExportFormatCSV, Compression: tt.codec}))
		assert.True(t, bytes.HasPrefix(buf.Bytes(), tt.magic), tt.codec)
	}
}

func TestReadArrowDerivesSchema(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, export.Write(&buf, sampleTable(), export.Options{Format: config.ExportFormatArrow}))

	got, err := export.ReadArrow(&buf, config.CompressionNone, nil)
	require.NoError(t, err)
	assert.True(t, got.Schema().Equal(dataset.Schema))
	assert.Equal(t, 2, got.NumRows())
}

func TestWriteFileIsAtomicAndReadable(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "signals.arrow.zst")
	opts := export.InferOptions(path, export.Options{})
	assert.Equal(t, export.Options{Format: config.ExportFormatArrow, Compression: config.CompressionZstd}, opts)

	res, err := export.WriteFile(path, sampleTable(), opts)
	require.NoError(t, err)
	assert.Equal(t, path, res.Path)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, info.Size(), res.Bytes)
	sum, err := fileutil.FileSHA256(path)
	require.NoError(t, err)
	assert.Equal(t, sum, res.SHA256)

	got, err := export.ReadFile(path, dataset.Schema)
	require.NoError(t, err)
	assert.True(t, sampleTable().Equal(got))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestUnsupportedOptions(t *testing.T) {
	var buf bytes.Buffer
	err := export.Write(&buf, sampleTable(), export.Options{Format: "parquet"})
	assert.ErrorIs(t, err, export.ErrUnsupported)

	err = export.Write(&buf, sampleTable(), export.Options{Compression: "gzip"})
	assert.ErrorIs(t, err, export.ErrUnsupported)

	_, err = export.WriteFile(filepath.Join(t.TempDir(), "x"), sampleTable(), export.Options{Format: "xml"})
	assert.ErrorIs(t, err, export.ErrUnsupported)
}

func TestExtension(t *testing.T) {
	assert.Equal(t, ".csv", export.Options{}.Extension())
	assert.Equal(t, ".arrow.lz4", export.Options{Format: "ARROW", Compression: "lz4"}.Extension())
	assert.Equal(t, ".csv.zst", export.Options{Format: "csv", Compression: "zstd"}.Extension())
	assert.Empty(t, export.Options{Format: "bogus"}.Extension())

	base := export.Options{Format: config.ExportFormatArrow, Compression: config.CompressionLZ4}
	assert.Equal(t, base, export.InferOptions("out.bin", base))
	assert.Equal(t, export.Options{Format: config.ExportFormatCSV, Compression: config.CompressionLZ4}, export.InferOptions("OUT.CSV", base))
}

func TestFromConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Export.Format = config.ExportFormatArrow
	cfg.Export.Compression = config.CompressionZstd
	assert.Equal(t, ".arrow.zst", export.FromConfig(&cfg).Extension())
}
