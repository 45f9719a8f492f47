package cli

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"strconv"
	"strings"

	"hsv-masker/internal/config"
	"hsv-masker/internal/logger"
	"hsv-masker/internal/models"
	"hsv-masker/internal/processing"
)

// Point is a display-space coordinate given on the command line.
type Point struct {
	X float64
	Y float64
}

func (p Point) String() string {
	return fmt.Sprintf("%g,%g", p.X, p.Y)
}

// Options are the parsed command-line flags.
type Options struct {
	ConfigPath string

	In    string
	Out   string
	Range *models.HSVRange
	Pick  *Point
	Erase []Point

	LogLevel string
	LogJSON  bool
	Backend  string
	Async    bool

	set map[string]bool
}

// Parse reads flags from args (without the program name). Usage and errors
// are written to output.
func Parse(name string, args []string, output io.Writer) (*Options, error) {
	opts := &Options{set: make(map[string]bool)}

	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(output)

	fs.StringVar(&opts.ConfigPath, "config", "", "path to the JSON config file")
	fs.StringVar(&opts.In, "in", "", "input image; runs without a window when set")
	fs.StringVar(&opts.Out, "out", "", "output path for the masked image")
	fs.Func("range", "HSV range as h0,h1,s0,s1,v0,v1", func(value string) error {
		r, err := ParseRange(value)
		if err != nil {
			return err
		}
		opts.Range = &r
		return nil
	})
	fs.Func("pick", "pick the colour at display position x,y", func(value string) error {
		p, err := ParsePoint(value)
		if err != nil {
			return err
		}
		opts.Pick = &p
		return nil
	})
	fs.Func("erase", "erase around display position x,y (repeatable)", func(value string) error {
		p, err := ParsePoint(value)
		if err != nil {
			return err
		}
		opts.Erase = append(opts.Erase, p)
		return nil
	})
	fs.StringVar(&opts.LogLevel, "log-level", "", "debug, info, warn or error")
	fs.BoolVar(&opts.LogJSON, "log-json", false, "write JSON logs to stderr")
	fs.StringVar(&opts.Backend, "backend", "", "processing backend: native or opencv")
	fs.BoolVar(&opts.Async, "async", false, "recompute masks on a background worker")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	fs.Visit(func(f *flag.Flag) {
		opts.set[f.Name] = true
	})

	if fs.NArg() > 0 {
		return nil, fmt.Errorf("unexpected arguments: %s", strings.Join(fs.Args(), " "))
	}
	if err := opts.validate(); err != nil {
		return nil, err
	}
	return opts, nil
}

func (o *Options) validate() error {
	var errs []error

	if o.In != "" && o.Out == "" {
		errs = append(errs, errors.New("-out is required with -in"))
	}
	if o.In == "" && (o.Out != "" || o.Pick != nil || len(o.Erase) > 0) {
		errs = append(errs, errors.New("-out, -pick and -erase need -in"))
	}
	if o.set["log-level"] {
		if _, err := logger.ParseLevel(o.LogLevel); err != nil {
			errs = append(errs, err)
		}
	}
	if o.set["backend"] {
		if err := processing.ValidateName(o.Backend); err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}

// Headless reports whether a single image should be processed without a
// window.
func (o *Options) Headless() bool {
	return o.In != ""
}

// IsSet reports whether the named flag appeared on the command line.
func (o *Options) IsSet(name string) bool {
	return o.set[name]
}

// Apply overrides cfg with every flag given explicitly.
func (o *Options) Apply(cfg *config.Config) {
	if o.set["log-level"] {
		cfg.LogLevel = o.LogLevel
	}
	if o.set["backend"] {
		cfg.Backend = o.Backend
	}
	if o.set["async"] {
		cfg.AsyncRecompute = o.Async
	}
	if o.Range != nil {
		cfg.InitialRange = *o.Range
	}
}

// ParseRange parses "h0,h1,s0,s1,v0,v1".
func ParseRange(value string) (models.HSVRange, error) {
	parts := strings.Split(value, ",")
	if len(parts) != 6 {
		return models.HSVRange{}, fmt.Errorf("range %q: want 6 comma separated values, got %d", value, len(parts))
	}

	r := models.FullRange()
	for i, c := range models.Components() {
		n, err := strconv.Atoi(strings.TrimSpace(parts[i]))
		if err != nil {
			return models.HSVRange{}, fmt.Errorf("range %q: %s: %w", value, c, err)
		}
		if r, err = r.With(c, n); err != nil {
			return models.HSVRange{}, fmt.Errorf("range %q: %w", value, err)
		}
	}
	return r, nil
}

// ParsePoint parses "x,y".
func ParsePoint(value string) (Point, error) {
	xs, ys, ok := strings.Cut(value, ",")
	if !ok {
		return Point{}, fmt.Errorf("point %q: want x,y", value)
	}
	x, err := strconv.ParseFloat(strings.TrimSpace(xs), 64)
	if err != nil {
		return Point{}, fmt.Errorf("point %q: %w", value, err)
	}
	y, err := strconv.ParseFloat(strings.TrimSpace(ys), 64)
	if err != nil {
		return Point{}, fmt.Errorf("point %q: %w", value, err)
	}
	return Point{X: x, Y: y}, nil
}
