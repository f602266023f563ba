package jobs

import "errors"

var errPanicked = errors.New("job panicked")
