package cc

import "errors"

// errHexFloatRejected is reported for each hex-float literal seen while
// --reject-hex-float is set.
var errHexFloatRejected = errors.New("hex-float literal rejected by --reject-hex-float")
