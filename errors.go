package capsim

import "errors"

// ErrInvalidParameter reports a parameter set that fails validation. It is
// raised before any week is simulated; a run never returns partial records
// alongside it.
var ErrInvalidParameter = errors.New("invalid parameter")

// ErrNumericOverflow reports a pot whose magnitude grew beyond the supported
// range during a run. The engine fails fast instead of emitting records it
// cannot faithfully render or persist.
var ErrNumericOverflow = errors.New("numeric overflow")
