// Command iirscript runs Starlark scripts with the Butterworth filter
// functions predeclared.
//
// Usage:
//
//	iirscript [flags] script.star [script.star ...]
//
// Example script:
//
//	x = tones(100, 1000, [2, 6, 20])
//	y = iir_filter(x, 100, lowcut=3, highcut=10)
//	print("peak after filtering:", peak(y, 100))
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/golang/glog"

	"github.com/cwbudde/algo-iir/internal/coeffstore"
	"github.com/cwbudde/algo-iir/script"
)

var timeout = flag.Duration("timeout", time.Minute, "Maximum run time per script.")

func main() {
	// Set defaults for glog flags. Can be overridden via cmdline.
	flag.Set("logtostderr", "false")
	flag.Set("stderrthreshold", "WARNING")
	flag.Parse()
	defer glog.Flush()

	if flag.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "Usage: iirscript [flags] script.star [script.star ...]")
		os.Exit(2)
	}

	host := &script.Host{
		Designer: &coeffstore.Designer{Store: coeffstore.NewMemory()},
		Print:    func(msg string) { fmt.Println(msg) },
	}

	for _, path := range flag.Args() {
		if err := runFile(host, path); err != nil {
			glog.Exit(err)
		}
	}
}

func runFile(host *script.Host, path string) error {
	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	glog.V(1).Infof("running %s", path)
	if _, err := host.ExecFile(ctx, path, nil); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return nil
}
