package streak

import "errors"

// ErrInvalidArgument is returned when observations violate the input contract:
// an unparseable day, or records of more than one entity in a single call.
var ErrInvalidArgument = errors.New("invalid argument")
