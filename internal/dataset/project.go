package dataset

import (
	"errors"
	"fmt"
	"io/fs"
	"math"
	"os"
	"path/filepath"

	"sigview/internal/sigmf"
)

// Custom classifier class names projected into fixed columns. Lookups are
// exact and case-sensitive; other classes are ignored.
const (
	ClassWifi  = "wifi"
	ClassCell  = "cell"
	ClassRadar = "radar"
)

// Project turns one parsed file into dataset rows: one row per ML annotation,
// or a single row with annotation fields at their defaults when the file has
// none. File, global, and capture fields are identical across the rows.
//
// The data file is stat'ed again; if it vanished since parsing, sample count
// and file size are zero.
func Project(pf *sigmf.ParsedFile) ([]Row, error) {
	if pf == nil || pf.Metadata == nil {
		return nil, errors.New("project: nil parsed file")
	}

	base, err := baseRow(pf)
	if err != nil {
		return nil, err
	}
	meta := pf.Metadata

	if len(meta.Annotations) > 0 {
		first := &meta.Annotations[0]
		base.FreqLowerEdgeHz = deref(first.FreqLowerEdge)
		base.FreqUpperEdgeHz = deref(first.FreqUpperEdge)
	}

	var rows []Row
	for i := range meta.Annotations {
		ann := &meta.Annotations[i]
		if !ann.IsML() {
			continue
		}
		row := base
		applyAnnotation(&row, ann)
		rows = append(rows, row)
	}
	if len(rows) == 0 {
		rows = append(rows, base)
	}
	return rows, nil
}

func baseRow(pf *sigmf.ParsedFile) (Row, error) {
	size, err := dataFileSize(pf.DataPath)
	if err != nil {
		return Row{}, err
	}

	global := pf.Metadata.Global
	row := Row{
		MetaFilename:  filepath.Base(pf.MetaPath),
		DataFilename:  filepath.Base(pf.DataPath),
		FileSizeBytes: size,
		SampleRateHz:  global.SampleRate,
		Datatype:      global.Datatype,
		SigMFVersion:  global.Version,
		Author:        deref(global.Author),
		Hardware:      deref(global.Hardware),
	}
	if sampleSize := uint64(pf.DataType.SampleSize()); sampleSize > 0 {
		row.NumSamples = size / sampleSize
	}
	row.DurationS = duration(row.NumSamples, global.SampleRate)

	if geo := global.Geolocation; geo != nil {
		row.Latitude = geo.Coordinate(0)
		row.Longitude = geo.Coordinate(1)
		row.GeoType = geo.Type
	}

	applyCaptures(&row, pf.Metadata.Captures)
	return row, nil
}

func dataFileSize(path string) (uint64, error) {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return 0, nil
		}
		return 0, fmt.Errorf("stat data file: %w", err)
	}
	if info.IsDir() || info.Size() < 0 {
		return 0, nil
	}
	return uint64(info.Size()), nil
}

// duration is zero when the sample rate cannot produce a finite, positive value.
func duration(numSamples uint64, sampleRate float64) float64 {
	if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		return 0
	}
	return float64(numSamples) / sampleRate
}

// applyCaptures fills capture-derived fields with three independent scans:
// frequency, timestamp, and gain/AGC may come from different captures.
func applyCaptures(row *Row, captures []sigmf.CaptureInfo) {
	for i := range captures {
		if f := captures[i].Frequency; f != nil {
			row.CenterFreqHz = *f
			break
		}
	}
	for i := range captures {
		if dt := captures[i].Datetime; dt != nil {
			row.CaptureDatetime = *dt
			break
		}
	}
	for i := range captures {
		c := &captures[i]
		if c.Gain == nil && c.AGC == nil {
			continue
		}
		row.Gain = deref(c.Gain)
		row.AGC = deref(c.AGC)
		row.SequenceNum = deref(c.SequenceNum)
		break
	}
}

func applyAnnotation(row *Row, ann *sigmf.AnnotationInfo) {
	row.SNRDB = deref(ann.SNR)
	row.PowerDBM = deref(ann.PowerDBM)
	row.PowerDBFS = deref(ann.PowerDBFS)
	row.SigBandwidthHz = deref(ann.Bandwidth)
	row.SigCenterFreqHz = deref(ann.CenterFreq)
	row.MLASKProb = deref(ann.ASKProb)
	row.MLPSKProb = deref(ann.PSKProb)
	row.MLFSKProb = deref(ann.FSKProb)
	row.MLAMProb = deref(ann.AnalogAMProb)
	row.MLFMProb = deref(ann.AnalogFMProb)
	row.MLOOKProb = deref(ann.OOKProb)
	row.MLChirpProb = deref(ann.ChirpProb)
	row.MLConstellationProb = deref(ann.ConstellationProb)
	row.MLCSSProb = deref(ann.CSSProb)
	row.MLWifiProb, _ = ann.ClassifierProb(ClassWifi)
	row.MLCellProb, _ = ann.ClassifierProb(ClassCell)
	row.MLRadarProb, _ = ann.ClassifierProb(ClassRadar)
	row.MLNoSig = deref(ann.NoSignal)
	row.SigUUID = deref(ann.UUID)
	row.SDRHandle = deref(ann.SDRHandle)
}

func deref[T any](p *T) T {
	if p == nil {
		var zero T
		return zero
	}
	return *p
}
