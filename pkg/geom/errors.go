package geom

import "errors"

var (
	ErrInvalidDimension = errors.New("invalid rectangle dimension")
	ErrInvalidRotation  = errors.New("invalid rectangle rotation")
	ErrInvalidCenter    = errors.New("invalid rectangle center")
)
