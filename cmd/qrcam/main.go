package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/pflag"

	"qrcam"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	config := qrcam.DefaultConfig()

	fs := pflag.NewFlagSet("qrcam", pflag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.Usage = func() {}
	fs.StringVarP(&config.Device, "device", "d", config.Device, "Specify camera device path.")
	size := fs.StringP("size", "s", "", "Specify video dimensions (WxH, default 640x480).")
	fs.BoolVarP(&config.ShowFrameRate, "frame-rate", "f", false, "Show frame rate in screen.")
	fs.BoolVarP(&config.Verbose, "verbose", "v", false, "Show extra data for QR codes.")
	list := fs.BoolP("list", "l", false, "List formats supported by the device and exit.")
	help := fs.BoolP("help", "h", false, "Show this information.")
	fs.StringVar(&config.Driver, "driver", config.Driver, "Capture driver ("+qrcam.DriverGo4VL+" or "+qrcam.DriverMmap+").")
	fs.StringVar(&config.Format, "format", config.Format, "Camera pixel format ("+qrcam.FormatMJPEG+" or "+qrcam.FormatYUYV+").")
	fs.UintVar(&config.FramesPerSecond, "fps", config.FramesPerSecond, "Requested camera frame rate.")
	fs.StringVar(&config.Display, "display", config.Display, fmt.Sprintf("Display backend %v.", qrcam.DisplayBackends()))
	fs.StringVar(&config.LogFile, "log-file", "", "Append diagnostics to this file.")

	if err := fs.Parse(args); err != nil {
		fmt.Fprintln(stderr, "Error:", err)
		return 2
	}
	if *help {
		fmt.Fprintf(stdout, "Usage: qrcam [options]\n\nValid options are:\n\n")
		fs.SetOutput(stdout)
		fs.PrintDefaults()
		return 0
	}
	if *size != "" {
		w, h, err := qrcam.ParseSize(*size)
		if err != nil {
			fmt.Fprintln(stderr, "Error:", err)
			return 1
		}
		config.Width, config.Height = w, h
	}

	closeLog, err := qrcam.SetupLogging(config.Verbose, config.LogFile)
	if err != nil {
		fmt.Fprintln(stderr, "Error:", err)
		return 1
	}
	defer closeLog()

	if *list {
		if err := qrcam.ListFormats(config, stdout); err != nil {
			fmt.Fprintln(stderr, "Error:", err)
			return 1
		}
		return 0
	}

	if config.Verbose {
		fmt.Fprintf(stdout, "Camera Device: %s\n", config.Device)
		fmt.Fprintf(stdout, "Video Size:    %dx%d\n", config.Width, config.Height)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := qrcam.Run(ctx, config, stdout); err != nil && !errors.Is(err, context.Canceled) {
		fmt.Fprintln(stderr, "Error:", err)
		return 1
	}
	return 0
}
