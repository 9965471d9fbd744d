//go:build tinygo

package main

import (
	"rgbpanel/app"
	"rgbpanel/hal"
)

func main() {
	app.Run(hal.New())
}
