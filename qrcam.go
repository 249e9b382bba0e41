package qrcam

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
)

const WindowTitle = "qrcam"

// Route diagnostics to stderr and, if given, a log file; returns function closing the file
func SetupLogging(verbose bool, logFile string) (func(), error) {
	level := slog.LevelInfo
	if verbose { level = slog.LevelDebug }
	var w io.Writer = os.Stderr
	closeFn := func() {}
	if logFile != "" {
		f, err := os.OpenFile(logFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0666)
		if err != nil { return nil, fmt.Errorf("open log file: %w", err) }
		w = io.MultiWriter(os.Stderr, f)
		closeFn = func() {
			f.Sync()
			f.Close()
		}
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})))
	return closeFn, nil
}

// Print device pixel formats and their frame sizes
func ListFormats(config *Config, out io.Writer) error {
	camera, err := OpenCamera(config)
	if err != nil { return err }
	defer camera.Close()
	formats, err := camera.Formats()
	if err != nil { return err }
	for _, f := range formats {
		fmt.Fprintln(out, f)
		fmt.Fprintf(out, "  %v\n", f.Sizes)
	}
	return nil
}

// Open camera, scanner, decoder and display, then scan until the user quits or an error occurs
func Run(ctx context.Context, config *Config, out io.Writer) (err error) {
	if errs := config.VerifyConfiguration(); len(errs) > 0 {
		return errors.Join(errs...)
	}
	width, height := int(config.Width), int(config.Height)

	camera, err := OpenCamera(config)
	if err != nil { return err }
	if err := camera.Start(ctx); err != nil { return err }
	defer closeLogged("camera", camera.Close)

	// scanner size must match the surface since the surface is the scanner's source
	scanner := NewScanner()
	if err := scanner.Resize(width, height); err != nil { return err }
	defer closeLogged("scanner", scanner.Close)

	decoder, err := NewMjpegDecoder(PixelFormatRGBA)
	if err != nil { return err }
	defer closeLogged("decoder", decoder.Close)

	display, err := OpenDisplay(config.Display, WindowTitle, width, height)
	if err != nil { return fmt.Errorf("open display: %w", err) }
	defer closeLogged("display", display.Close)

	loop := NewLoop(config, camera, decoder, scanner, display, out)
	err = display.Run(func() error { return loop.Run(ctx) })
	slog.Debug("Scan loop finished", "frames", loop.Frames(), "state", loop.State(), "error", err)
	return err
}

func closeLogged(what string, closeFn func() error) {
	if err := closeFn(); err != nil {
		slog.Warn("Closing error", "resource", what, "error", err)
	}
}
