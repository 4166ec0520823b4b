package resource

import "errors"

var errUnexpectedShape = errors.New("list payload is not an array")
