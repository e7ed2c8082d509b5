package verifyqueue

import "errors"

var ErrEmailRequired = errors.New("verifyqueue: email is required")
