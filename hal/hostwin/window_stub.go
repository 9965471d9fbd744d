//go:build !tinygo && !cgo

package hostwin

import (
	"errors"

	"rgbpanel/hal"
)

func Run(_ func(hal.HAL) (func() error, error)) error {
	return errors.New("window mode requires cgo (build/run with CGO_ENABLED=1)")
}

func RunOn(_ *hal.Host, _ func(hal.HAL) (func() error, error)) error {
	return Run(nil)
}
