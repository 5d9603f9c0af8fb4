// Command iirfilter applies a Butterworth filter to columns of a CSV table or
// to the channels of an audio file.
//
// Usage:
//
//	iirfilter [flags] -in input -out output
//
// Which of -lowcut and -highcut are given selects the band: both give a
// bandpass, -lowcut alone a highpass, -highcut alone a lowpass.
//
// Examples:
//
//	iirfilter -in data.csv -out filtered.csv -column signal -fs 100 -lowcut 3 -highcut 10
//	iirfilter -in take.wav -out take_hp.wav -lowcut 80 -order 2
//	iirfilter -in take.ogg -out take_lp.wav -highcut 4000 -cache sqlite -sqliteFile /tmp/iir.db
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/golang/glog"

	"github.com/cwbudde/algo-iir/dsp/filter/butter"
	"github.com/cwbudde/algo-iir/dsp/spectrum"
	"github.com/cwbudde/algo-iir/dsp/window"
	"github.com/cwbudde/algo-iir/frame"
	"github.com/cwbudde/algo-iir/internal/audioio"
	"github.com/cwbudde/algo-iir/internal/coeffstore"
	"github.com/cwbudde/algo-iir/stats"
)

var (
	in       = flag.String("in", "", "Input file: .csv, .wav, .aif/.aiff, .mp3 or .ogg.")
	out      = flag.String("out", "", "Output file: .csv or .wav.")
	columns  = flag.String("column", "", "Comma-separated columns to filter. Defaults to every column (CSV) or channel (audio).")
	fs       = flag.Float64("fs", 0, "Sampling frequency in Hz. Required for CSV input; audio defaults to the file's rate.")
	lowcut   = flag.Float64("lowcut", 0, "Lower cutoff in Hz.")
	highcut  = flag.Float64("highcut", 0, "Upper cutoff in Hz.")
	order    = flag.Int("order", butter.DefaultOrder, "Filter order.")
	bitDepth = flag.Int("bitDepth", 0, "WAV output bit depth (16, 24, 32). Defaults to the input depth or 16.")
	win      = flag.String("window", "hann", "Window used for the spectral peak summary.")

	cache      = flag.String("cache", "", "Coefficient cache to use (one of: memory, sqlite, mysql). Empty disables caching.")
	sqliteFile = flag.String("sqliteFile", "/tmp/iirfilter.db", "File path of the sqlite DB file to use.")

	mysqlServer       = flag.String("mysqlServer", "127.0.0.1:3306", "MySQL TCP server endpoint to connect to (IP/DNS and port).")
	mysqlUser         = flag.String("mysqlUser", "", "MySQL DB user.")
	mysqlPasswordFile = flag.String("mysqlPasswordFile", "", "Path to the file containing the password for the MySQL user.")
	mysqlDBName       = flag.String("mysqlDBName", "iir", "Name of the DB to use.")
)

func main() {
	// Set defaults for glog flags. Can be overridden via cmdline.
	flag.Set("logtostderr", "false")
	flag.Set("stderrthreshold", "WARNING")
	flag.Set("v", "1")
	flag.Parse()
	defer glog.Flush()

	if err := run(context.Background()); err != nil {
		glog.Exit(err)
	}
}

func run(ctx context.Context) error {
	if *in == "" || *out == "" {
		flag.Usage()
		return fmt.Errorf("both -in and -out are required")
	}

	set := map[string]bool{}
	flag.Visit(func(f *flag.Flag) { set[f.Name] = true })

	store, closeStore, err := coeffstore.Open(ctx, cacheConfig())
	if err != nil {
		return err
	}
	defer closeStore()

	var designer frame.Designer
	if store != nil {
		designer = &coeffstore.Designer{Store: store}
	}

	tbl, rate, depth, err := load(*in)
	if err != nil {
		return err
	}
	if set["fs"] {
		rate = *fs
	}
	if rate <= 0 {
		return fmt.Errorf("-fs is required for %s input", filepath.Ext(*in))
	}

	cmd := frame.Command{SampleRate: rate, Designer: designer, Progress: frame.GlogProgress{}}
	if set["lowcut"] {
		cmd.LowCut = lowcut
	}
	if set["highcut"] {
		cmd.HighCut = highcut
	}
	if set["order"] {
		cmd.Order = order
	}

	names := tbl.Names()
	if *columns != "" {
		names = strings.Split(*columns, ",")
	}

	jobID, err := frame.FilterColumns(ctx, tbl, cmd, names...)
	if err != nil {
		return err
	}
	glog.Infof("[%s] filtered %d columns of %s", jobID, len(names), *in)

	if err := summarize(ctx, os.Stdout, tbl, cmd, names); err != nil {
		return err
	}

	outputs := make([]string, len(names))
	for i, n := range names {
		outputs[i] = frame.OutputPrefix + n
	}
	return save(*out, tbl, outputs, rate, depth)
}

func cacheConfig() coeffstore.Config {
	cfg := coeffstore.Config{
		Backend:     *cache,
		SQLiteFile:  *sqliteFile,
		MySQLServer: *mysqlServer,
		MySQLUser:   *mysqlUser,
		MySQLDBName: *mysqlDBName,
	}
	if *mysqlPasswordFile != "" {
		pass, err := os.ReadFile(*mysqlPasswordFile)
		if err != nil {
			glog.Exitf("unable to read MySQL password file %q: %s", *mysqlPasswordFile, err)
		}
		cfg.MySQLPassword = strings.TrimSpace(string(pass))
	}
	return cfg
}

func load(path string) (*frame.Frame, float64, int, error) {
	if strings.EqualFold(filepath.Ext(path), ".csv") {
		f, err := os.Open(path)
		if err != nil {
			return nil, 0, 0, fmt.Errorf("failed to open input file: %w", err)
		}
		defer f.Close()

		tbl, err := frame.ReadCSV(f)
		return tbl, 0, 0, err
	}

	a, err := audioio.Decode(path)
	if err != nil {
		return nil, 0, 0, err
	}
	return a.Frame, float64(a.SampleRate), a.BitDepth, nil
}

func save(path string, tbl *frame.Frame, outputs []string, rate float64, depth int) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		if err := frame.WriteCSV(f, tbl); err != nil {
			_ = f.Close()
			return err
		}
		return f.Close()
	case ".wav":
		if *bitDepth != 0 {
			depth = *bitDepth
		}
		if depth == 0 {
			depth = 16
		}
		sr, err := audioio.WAVSampleRate(rate)
		if err != nil {
			return err
		}
		return audioio.WriteWAV(path, tbl, outputs, sr, depth)
	default:
		return fmt.Errorf("unsupported output format %q", filepath.Ext(path))
	}
}

func summarize(ctx context.Context, w *os.File, tbl *frame.Frame, cmd frame.Command, names []string) error {
	c, err := cmd.Design(ctx)
	if err != nil {
		return err
	}

	wt, err := window.ParseType(*win)
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "%s, order %d, fs %g Hz, %d coefficients, stable %t\n",
		c.Band, c.Order, c.SampleRate, len(c.B), c.Stable())

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "column\tinput peak (Hz)\toutput peak (Hz)\tinput RMS (dBFS)\tgain (dB)")
	for _, n := range names {
		src, err := tbl.Column(n)
		if err != nil {
			return err
		}
		dst, err := tbl.Column(frame.OutputPrefix + n)
		if err != nil {
			return err
		}
		before, err := spectrum.DominantFrequency(src, cmd.SampleRate, spectrum.WithWindow(wt))
		if err != nil {
			return err
		}
		after, err := spectrum.DominantFrequency(dst, cmd.SampleRate, spectrum.WithWindow(wt))
		if err != nil {
			return err
		}
		fmt.Fprintf(tw, "%s\t%.3f\t%.3f\t%.2f\t%.2f\n",
			n, before, after, stats.Measure(src).RMSdB(), stats.GainDB(src, dst))
	}
	return tw.Flush()
}
