//go:build !tinygo

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"rgbpanel/app"
	"rgbpanel/hal"
	"rgbpanel/hal/hostwin"
	"rgbpanel/internal/buildinfo"
	"rgbpanel/internal/config"
)

func main() {
	var run hal.HeadlessConfig
	var version bool
	flag.BoolVar(&run.Enabled, "headless", false, "Run without a window.")
	flag.IntVar(&run.Hz, "hz", 60, "Tick rate in headless mode.")
	flag.Uint64Var(&run.Ticks, "ticks", 0, "Stop after N ticks in headless mode (0 = run forever).")
	flag.BoolVar(&version, "version", false, "Print the build version and exit.")

	cfg := config.Default()
	cfg.RegisterFlags(flag.CommandLine)
	flag.Parse()

	if version {
		fmt.Println("rgbpanel", buildinfo.Long())
		return
	}

	newApp := app.NewStep(cfg)
	var err error
	if run.Enabled {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()
		err = hal.RunHeadless(ctx, newApp, run)
		if errors.Is(err, context.Canceled) {
			return
		}
	} else {
		err = hostwin.Run(newApp)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
