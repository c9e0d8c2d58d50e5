package sigmf

import (
	"encoding/json"
	"fmt"
)

// Metadata is one decoded SigMF metadata document.
type Metadata struct {
	Global      GlobalInfo       `json:"global"`
	Captures    []CaptureInfo    `json:"captures"`
	Annotations []AnnotationInfo `json:"annotations,omitempty"`
}

// GlobalInfo holds the recording-wide "global" object.
type GlobalInfo struct {
	Datatype    string       `json:"core:datatype"`
	SampleRate  float64      `json:"core:sample_rate"`
	Version     string       `json:"core:version"`
	Description *string      `json:"core:description,omitempty"`
	Author      *string      `json:"core:author,omitempty"`
	License     *string      `json:"core:license,omitempty"`
	Hardware    *string      `json:"core:hw,omitempty"`
	Geolocation *GeoLocation `json:"core:geolocation,omitempty"`
}

// GeoLocation is a GeoJSON-style point.
type GeoLocation struct {
	Type        string    `json:"type"`
	Coordinates []float64 `json:"coordinates"`
}

// Coordinate returns the coordinate at index i, or 0 when absent.
func (g *GeoLocation) Coordinate(i int) float64 {
	if g == nil || i < 0 || i >= len(g.Coordinates) {
		return 0
	}
	return g.Coordinates[i]
}

// CaptureInfo describes one capture segment. Keys this package does not model
// are kept verbatim in Extra.
type CaptureInfo struct {
	SampleStart *uint64  `json:"core:sample_start,omitempty"`
	Frequency   *float64 `json:"core:frequency,omitempty"`
	Datetime    *string  `json:"core:datetime,omitempty"`

	AGC         *bool    `json:"ds:agc,omitempty"`
	Gain        *float64 `json:"ds:gain,omitempty"`
	SequenceNum *uint64  `json:"ds:sequence_num,omitempty"`

	Extra map[string]any `json:"-"`
}

// AnnotationInfo describes one detected signal within a recording.
type AnnotationInfo struct {
	SampleStart   uint64   `json:"core:sample_start"`
	SampleCount   uint64   `json:"core:sample_count"`
	FreqLowerEdge *float64 `json:"core:freq_lower_edge,omitempty"`
	FreqUpperEdge *float64 `json:"core:freq_upper_edge,omitempty"`

	AnalogAMProb      *float64         `json:"ds:analogAmProb,omitempty"`
	AnalogFMProb      *float64         `json:"ds:analogFmProb,omitempty"`
	ASKProb           *float64         `json:"ds:askProb,omitempty"`
	FSKProb           *float64         `json:"ds:fskProb,omitempty"`
	PSKProb           *float64         `json:"ds:pskProb,omitempty"`
	ChirpProb         *float64         `json:"ds:chirpProb,omitempty"`
	ConstellationProb *float64         `json:"ds:constellationProb,omitempty"`
	CSSProb           *float64         `json:"ds:cssProb,omitempty"`
	OOKProb           *float64         `json:"ds:ook_prob,omitempty"`
	CustomClassifiers []ClassifierProb `json:"ds:customClassifierProbs,omitempty"`
	NoSignal          *bool            `json:"ds:ml_no_sig,omitempty"`
	SDRHandle         *string          `json:"ds:sdr_handle,omitempty"`
	Bandwidth         *float64         `json:"ds:sigBandwidth,omitempty"`
	CenterFreq        *float64         `json:"ds:sigCenterFreq,omitempty"`
	PowerDBFS         *float64         `json:"ds:sig_power_dbfs,omitempty"`
	PowerDBM          *float64         `json:"ds:sig_power_dbm,omitempty"`
	SNR               *float64         `json:"ds:snr,omitempty"`
	UUID              *string          `json:"ds:uuid,omitempty"`
}

// ClassifierProb is one named score from a custom classifier.
type ClassifierProb struct {
	ClassName string  `json:"className"`
	ClassProb float32 `json:"classProb"`
}

// IsML reports whether the annotation carries machine-detection output: a
// signal center frequency, an ASK or PSK probability, or at least one custom
// classifier score.
func (a *AnnotationInfo) IsML() bool {
	return a.CenterFreq != nil ||
		a.ASKProb != nil ||
		a.PSKProb != nil ||
		len(a.CustomClassifiers) > 0
}

// ClassifierProb returns the custom classifier score for className.
// Lookups are exact and case-sensitive; the first match wins.
func (a *AnnotationInfo) ClassifierProb(className string) (float64, bool) {
	if a == nil {
		return 0, false
	}
	for _, c := range a.CustomClassifiers {
		if c.ClassName == className {
			return float64(c.ClassProb), true
		}
	}
	return 0, false
}

// UnmarshalJSON decodes a metadata document and rejects documents without a
// global object or a captures array.
func (m *Metadata) UnmarshalJSON(data []byte) error {
	var aux struct {
		Global      *GlobalInfo      `json:"global"`
		Captures    *[]CaptureInfo   `json:"captures"`
		Annotations []AnnotationInfo `json:"annotations"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	if aux.Global == nil {
		return &missingFieldError{section: "document", field: "global"}
	}
	if aux.Captures == nil {
		return &missingFieldError{section: "document", field: "captures"}
	}
	m.Global = *aux.Global
	m.Captures = *aux.Captures
	m.Annotations = aux.Annotations
	return nil
}

// UnmarshalJSON enforces the required core:datatype, core:sample_rate and
// core:version keys.
func (g *GlobalInfo) UnmarshalJSON(data []byte) error {
	type alias GlobalInfo
	aux := struct {
		*alias
		Datatype   *string  `json:"core:datatype"`
		SampleRate *float64 `json:"core:sample_rate"`
		Version    *string  `json:"core:version"`
	}{alias: (*alias)(g)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	switch {
	case aux.Datatype == nil:
		return &missingFieldError{section: "global", field: "core:datatype"}
	case aux.SampleRate == nil:
		return &missingFieldError{section: "global", field: "core:sample_rate"}
	case aux.Version == nil:
		return &missingFieldError{section: "global", field: "core:version"}
	}
	g.Datatype = *aux.Datatype
	g.SampleRate = *aux.SampleRate
	g.Version = *aux.Version
	return nil
}

// UnmarshalJSON enforces the required core:sample_start and core:sample_count keys.
func (a *AnnotationInfo) UnmarshalJSON(data []byte) error {
	type alias AnnotationInfo
	aux := struct {
		*alias
		SampleStart *uint64 `json:"core:sample_start"`
		SampleCount *uint64 `json:"core:sample_count"`
	}{alias: (*alias)(a)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	if aux.SampleStart == nil {
		return &missingFieldError{section: "annotation", field: "core:sample_start"}
	}
	if aux.SampleCount == nil {
		return &missingFieldError{section: "annotation", field: "core:sample_count"}
	}
	a.SampleStart = *aux.SampleStart
	a.SampleCount = *aux.SampleCount
	return nil
}

// UnmarshalJSON enforces the required type and coordinates keys.
func (g *GeoLocation) UnmarshalJSON(data []byte) error {
	var aux struct {
		Type        *string    `json:"type"`
		Coordinates *[]float64 `json:"coordinates"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	if aux.Type == nil {
		return &missingFieldError{section: "core:geolocation", field: "type"}
	}
	if aux.Coordinates == nil {
		return &missingFieldError{section: "core:geolocation", field: "coordinates"}
	}
	g.Type = *aux.Type
	g.Coordinates = *aux.Coordinates
	return nil
}

// UnmarshalJSON enforces the required className and classProb keys.
func (c *ClassifierProb) UnmarshalJSON(data []byte) error {
	var aux struct {
		ClassName *string  `json:"className"`
		ClassProb *float32 `json:"classProb"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	if aux.ClassName == nil {
		return &missingFieldError{section: "ds:customClassifierProbs", field: "className"}
	}
	if aux.ClassProb == nil {
		return &missingFieldError{section: "ds:customClassifierProbs", field: "classProb"}
	}
	c.ClassName = *aux.ClassName
	c.ClassProb = *aux.ClassProb
	return nil
}

// UnmarshalJSON decodes the modeled capture keys and moves every other key
// into Extra.
func (c *CaptureInfo) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*c = CaptureInfo{}

	known := map[string]any{
		"core:sample_start": &c.SampleStart,
		"core:frequency":    &c.Frequency,
		"core:datetime":     &c.Datetime,
		"ds:agc":            &c.AGC,
		"ds:gain":           &c.Gain,
		"ds:sequence_num":   &c.SequenceNum,
	}
	for key, value := range raw {
		if target, ok := known[key]; ok {
			if err := json.Unmarshal(value, target); err != nil {
				return fmt.Errorf("capture %s: %w", key, err)
			}
			continue
		}
		var decoded any
		if err := json.Unmarshal(value, &decoded); err != nil {
			return fmt.Errorf("capture %s: %w", key, err)
		}
		if c.Extra == nil {
			c.Extra = make(map[string]any)
		}
		c.Extra[key] = decoded
	}
	return nil
}

// MarshalJSON writes the modeled keys followed by the extension bag.
func (c CaptureInfo) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(c.Extra)+6)
	for key, value := range c.Extra {
		out[key] = value
	}
	if c.SampleStart != nil {
		out["core:sample_start"] = *c.SampleStart
	}
	if c.Frequency != nil {
		out["core:frequency"] = *c.Frequency
	}
	if c.Datetime != nil {
		out["core:datetime"] = *c.Datetime
	}
	if c.AGC != nil {
		out["ds:agc"] = *c.AGC
	}
	if c.Gain != nil {
		out["ds:gain"] = *c.Gain
	}
	if c.SequenceNum != nil {
		out["ds:sequence_num"] = *c.SequenceNum
	}
	return json.Marshal(out)
}
