package sigmf

// DataType is the subset of SigMF sample encodings this package understands.
type DataType uint8

const (
	// CF32LE is complex float32 little-endian: 4 bytes I + 4 bytes Q.
	CF32LE DataType = iota + 1
	// CI16LE is complex int16 little-endian: 2 bytes I + 2 bytes Q.
	CI16LE
)

// ParseDataType resolves a core:datatype value. Only "cf32_le" and "ci16_le"
// are accepted; anything else returns an *UnsupportedDatatypeError.
func ParseDataType(value string) (DataType, error) {
	switch value {
	case "cf32_le":
		return CF32LE, nil
	case "ci16_le":
		return CI16LE, nil
	default:
		return 0, &UnsupportedDatatypeError{Datatype: value}
	}
}

// SampleSize returns the number of bytes a single sample occupies on disk.
func (d DataType) SampleSize() int {
	switch d {
	case CF32LE:
		return 8
	case CI16LE:
		return 4
	default:
		return 0
	}
}

// IsComplex reports whether samples carry both I and Q components.
// Every supported encoding is complex.
func (d DataType) IsComplex() bool {
	return d == CF32LE || d == CI16LE
}

func (d DataType) String() string {
	switch d {
	case CF32LE:
		return "cf32_le"
	case CI16LE:
		return "ci16_le"
	default:
		return "unknown"
	}
}
