package renderer

import "errors"

var (
	ErrInvalidOptions   = errors.New("renderer: invalid options")
	ErrCameraNotDefined = errors.New("renderer: no camera defined")
	ErrWorldNotDefined  = errors.New("renderer: no world defined")
	ErrNoIntegrator     = errors.New("renderer: no integrator defined")
	ErrClosed           = errors.New("renderer: closed")
)
