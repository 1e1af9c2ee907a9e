package depuri

import "errors"

// ErrInvalidReference is the sentinel wrapped by the Build* helpers.
var ErrInvalidReference = errors.New("invalid dependency reference")
