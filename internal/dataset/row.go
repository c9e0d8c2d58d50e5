package dataset

import (
	"sigview/internal/table"
)

// Column names of the dataset schema, in schema order.
const (
	ColMetaFilename        = "meta_filename"
	ColDataFilename        = "data_filename"
	ColNumSamples          = "num_samples"
	ColFileSizeBytes       = "file_size_bytes"
	ColDurationS           = "duration_s"
	ColSampleRateHz        = "sample_rate_hz"
	ColDatatype            = "datatype"
	ColSigMFVersion        = "sigmf_version"
	ColAuthor              = "author"
	ColHardware            = "hardware"
	ColLatitude            = "latitude"
	ColLongitude           = "longitude"
	ColGeoType             = "geo_type"
	ColCenterFreqHz        = "center_freq_hz"
	ColCaptureDatetime     = "capture_datetime"
	ColGain                = "gain"
	ColAGC                 = "agc"
	ColSequenceNum         = "sequence_num"
	ColSNRDB               = "snr_db"
	ColPowerDBM            = "power_dbm"
	ColPowerDBFS           = "power_dbfs"
	ColSigBandwidthHz      = "sig_bandwidth_hz"
	ColSigCenterFreqHz     = "sig_center_freq_hz"
	ColMLASKProb           = "ml_ask_prob"
	ColMLPSKProb           = "ml_psk_prob"
	ColMLFSKProb           = "ml_fsk_prob"
	ColMLAMProb            = "ml_am_prob"
	ColMLFMProb            = "ml_fm_prob"
	ColMLOOKProb           = "ml_ook_prob"
	ColMLChirpProb         = "ml_chirp_prob"
	ColMLConstellationProb = "ml_constellation_prob"
	ColMLCSSProb           = "ml_css_prob"
	ColMLWifiProb          = "ml_wifi_prob"
	ColMLCellProb          = "ml_cell_prob"
	ColMLRadarProb         = "ml_radar_prob"
	ColMLNoSig             = "ml_no_sig"
	ColSigUUID             = "sig_uuid"
	ColSDRHandle           = "sdr_handle"
	ColFreqLowerEdgeHz     = "freq_lower_edge_hz"
	ColFreqUpperEdgeHz     = "freq_upper_edge_hz"
)

// Row is one flat dataset record. Absent source values are represented by
// the zero value of the field's type; there are no nulls.
type Row struct {
	MetaFilename  string
	DataFilename  string
	NumSamples    uint64
	FileSizeBytes uint64
	DurationS     float64
	SampleRateHz  float64
	Datatype      string
	SigMFVersion  string
	Author        string
	Hardware      string
	Latitude      float64
	Longitude     float64
	GeoType       string

	// Capture-derived.
	CenterFreqHz    float64
	CaptureDatetime string
	Gain            float64
	AGC             bool
	SequenceNum     uint64

	// Annotation-derived.
	SNRDB               float64
	PowerDBM            float64
	PowerDBFS           float64
	SigBandwidthHz      float64
	SigCenterFreqHz     float64
	MLASKProb           float64
	MLPSKProb           float64
	MLFSKProb           float64
	MLAMProb            float64
	MLFMProb            float64
	MLOOKProb           float64
	MLChirpProb         float64
	MLConstellationProb float64
	MLCSSProb           float64
	MLWifiProb          float64
	MLCellProb          float64
	MLRadarProb         float64
	MLNoSig             bool
	SigUUID             string
	SDRHandle           string

	// Taken from the first annotation of the file for every row.
	FreqLowerEdgeHz float64
	FreqUpperEdgeHz float64
}

type column struct {
	name string
	kind table.Kind
	get  func(*Row) table.Value
}

func str(name string, get func(*Row) string) column {
	return column{name, table.KindString, func(r *Row) table.Value { return table.String(get(r)) }}
}

func f64(name string, get func(*Row) float64) column {
	return column{name, table.KindFloat64, func(r *Row) table.Value { return table.Float64(get(r)) }}
}

func u64(name string, get func(*Row) uint64) column {
	return column{name, table.KindUint64, func(r *Row) table.Value { return table.Uint64(get(r)) }}
}

func boolean(name string, get func(*Row) bool) column {
	return column{name, table.KindBool, func(r *Row) table.Value { return table.Bool(get(r)) }}
}

var columns = []column{
	str(ColMetaFilename, func(r *Row) string { return r.MetaFilename }),
	str(ColDataFilename, func(r *Row) string { return r.DataFilename }),
	u64(ColNumSamples, func(r *Row) uint64 { return r.NumSamples }),
	u64(ColFileSizeBytes, func(r *Row) uint64 { return r.FileSizeBytes }),
	f64(ColDurationS, func(r *Row) float64 { return r.DurationS }),
	f64(ColSampleRateHz, func(r *Row) float64 { return r.SampleRateHz }),
	str(ColDatatype, func(r *Row) string { return r.Datatype }),
	str(ColSigMFVersion, func(r *Row) string { return r.SigMFVersion }),
	str(ColAuthor, func(r *Row) string { return r.Author }),
	str(ColHardware, func(r *Row) string { return r.Hardware }),
	f64(ColLatitude, func(r *Row) float64 { return r.Latitude }),
	f64(ColLongitude, func(r *Row) float64 { return r.Longitude }),
	str(ColGeoType, func(r *Row) string { return r.GeoType }),
	f64(ColCenterFreqHz, func(r *Row) float64 { return r.CenterFreqHz }),
	str(ColCaptureDatetime, func(r *Row) string { return r.CaptureDatetime }),
	f64(ColGain, func(r *Row) float64 { return r.Gain }),
	boolean(ColAGC, func(r *Row) bool { return r.AGC }),
	u64(ColSequenceNum, func(r *Row) uint64 { return r.SequenceNum }),
	f64(ColSNRDB, func(r *Row) float64 { return r.SNRDB }),
	f64(ColPowerDBM, func(r *Row) float64 { return r.PowerDBM }),
	f64(ColPowerDBFS, func(r *Row) float64 { return r.PowerDBFS }),
	f64(ColSigBandwidthHz, func(r *Row) float64 { return r.SigBandwidthHz }),
	f64(ColSigCenterFreqHz, func(r *Row) float64 { return r.SigCenterFreqHz }),
	f64(ColMLASKProb, func(r *Row) float64 { return r.MLASKProb }),
	f64(ColMLPSKProb, func(r *Row) float64 { return r.MLPSKProb }),
	f64(ColMLFSKProb, func(r *Row) float64 { return r.MLFSKProb }),
	f64(ColMLAMProb, func(r *Row) float64 { return r.MLAMProb }),
	f64(ColMLFMProb, func(r *Row) float64 { return r.MLFMProb }),
	f64(ColMLOOKProb, func(r *Row) float64 { return r.MLOOKProb }),
	f64(ColMLChirpProb, func(r *Row) float64 { return r.MLChirpProb }),
	f64(ColMLConstellationProb, func(r *Row) float64 { return r.MLConstellationProb }),
	f64(ColMLCSSProb, func(r *Row) float64 { return r.MLCSSProb }),
	f64(ColMLWifiProb, func(r *Row) float64 { return r.MLWifiProb }),
	f64(ColMLCellProb, func(r *Row) float64 { return r.MLCellProb }),
	f64(ColMLRadarProb, func(r *Row) float64 { return r.MLRadarProb }),
	boolean(ColMLNoSig, func(r *Row) bool { return r.MLNoSig }),
	str(ColSigUUID, func(r *Row) string { return r.SigUUID }),
	str(ColSDRHandle, func(r *Row) string { return r.SDRHandle }),
	f64(ColFreqLowerEdgeHz, func(r *Row) float64 { return r.FreqLowerEdgeHz }),
	f64(ColFreqUpperEdgeHz, func(r *Row) float64 { return r.FreqUpperEdgeHz }),
}

// Schema is the fixed, ordered dataset schema. Column names and kinds are a
// public contract shared by filtering, export, and the catalog.
var Schema = func() *table.Schema {
	fields := make([]table.Field, len(columns))
	for i, c := range columns {
		fields[i] = table.Field{Name: c.name, Kind: c.kind}
	}
	return table.MustSchema(fields...)
}()

// ColumnNames returns the schema column names in order.
func ColumnNames() []string {
	return Schema.Names()
}

// Values returns the row as table values in schema order.
func (r *Row) Values() []table.Value {
	out := make([]table.Value, len(columns))
	for i, c := range columns {
		out[i] = c.get(r)
	}
	return out
}

// ToTable converts rows into a table with the dataset schema.
func ToTable(rows []Row) *table.Table {
	b := table.NewBuilder(Schema, len(rows))
	for i := range rows {
		// Values always match Schema.
		_ = b.Append(rows[i].Values())
	}
	return b.Build()
}
