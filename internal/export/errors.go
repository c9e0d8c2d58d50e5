package export

import "errors"

// ErrUnsupported is returned for unknown formats or compression codecs.
var ErrUnsupported = errors.New("unsupported export option")
