package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/apiglot/apiglot"
	"github.com/fatih/color"
	"github.com/schollz/progressbar/v3"
	"golang.org/x/term"
)

var (
	blue    = color.New(color.FgBlue).SprintFunc()
	green   = color.New(color.FgGreen).SprintFunc()
	red     = color.New(color.FgRed).SprintFunc()
	yellow  = color.New(color.FgYellow).SprintFunc()
	inverse = color.New(color.ReverseVideo).SprintFunc()
	alert   = color.New(color.BgRed, color.FgWhite).SprintFunc()
)

// console prints Localizer progress. Requests in flight get a spinner with
// the elapsed time when out is a terminal.
type console struct {
	out         io.Writer
	errOut      io.Writer
	interactive bool
}

func newConsole(out, errOut io.Writer) *console {
	return &console{out: out, errOut: errOut, interactive: isTerminal(out)}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func (c *console) Entry(name string, isFile bool) {
	kind := "Directory"
	if isFile {
		kind = "File"
	}
	fmt.Fprintf(c.out, " - %s (%s)\n", name, kind)
}

func (c *console) Translating(path string, source, target apiglot.Locale) func(error) {
	msg := fmt.Sprintf("Translating %s from %s to %s", inverse(path), blue(source.Label()), green(target.Label()))
	start := time.Now()

	if !c.interactive {
		fmt.Fprintln(c.out, msg+"...")
		return func(err error) {
			c.finish(err, time.Since(start))
		}
	}

	bar := progressbar.NewOptions(-1,
		progressbar.OptionSetWriter(c.out),
		progressbar.OptionSetDescription(msg),
		progressbar.OptionSpinnerType(14),
		progressbar.OptionSetElapsedTime(true),
		progressbar.OptionClearOnFinish(),
	)
	stop := make(chan struct{})
	done := make(chan struct{})
	go func() {
		defer close(done)
		ticker := time.NewTicker(100 * time.Millisecond)
		defer ticker.Stop()
		for {
			select {
			case <-stop:
				return
			case <-ticker.C:
				_ = bar.Add(1)
			}
		}
	}()

	return func(err error) {
		close(stop)
		<-done
		_ = bar.Finish()
		fmt.Fprintln(c.out, msg)
		c.finish(err, time.Since(start))
	}
}

func (c *console) finish(err error, elapsed time.Duration) {
	if err != nil {
		fmt.Fprintf(c.errOut, "%s %v\n", red("Error during translation API call:"), err)
		return
	}
	fmt.Fprintln(c.out, yellow(fmt.Sprintf("Elapsed time: %s", elapsed.Round(time.Millisecond))))
}

func (c *console) Saved(path string) {
	fmt.Fprintln(c.out, green("Localized file saved to "+path))
}

func (c *console) Skipped(path, reason string) {
	fmt.Fprintf(c.errOut, "%s %s: %s\n", yellow("Skipping"), path, reason)
}

var _ apiglot.Reporter = (*console)(nil)
