package main

import (
	"context"
	"flag"
	"fmt"
	"time"

	"cloud.google.com/go/storage"
	"github.com/caarlos0/env/v11"

	"github.com/carbocation/lightcurve"
	"github.com/carbocation/lightcurve/aavso"
	"github.com/carbocation/lightcurve/photometry"
)

// EnvPrefix is prepended to every environment variable name in Config.
const EnvPrefix = "LIGHTCURVE_"

// Config holds command configuration. Environment variables supply the
// defaults; flags override them.
type Config struct {
	Input      string `env:"INPUT"`
	Band       string `env:"BAND"`
	Out        string `env:"OUT"         envDefault:"-"`
	OffsetsOut string `env:"OFFSETS_OUT"`

	MinObservations int     `env:"MIN_OBS"       envDefault:"10"`
	OffsetMin       float64 `env:"OFFSET_MIN"    envDefault:"-2"`
	OffsetMax       float64 `env:"OFFSET_MAX"    envDefault:"2"`
	OffsetPoints    int     `env:"OFFSET_POINTS" envDefault:"1500"`
	Workers         int     `env:"WORKERS"`

	Timeout time.Duration `env:"TIMEOUT"`

	// JD window bounds, as a bare JD or a calendar date.
	From  string `env:"FROM"`
	Until string `env:"UNTIL"`

	Exclude          string  `env:"EXCLUDE"`
	ExcludeTolerance float64 `env:"EXCLUDE_TOLERANCE" envDefault:"0.001"`

	GCPCredentials string `env:"GCP_CREDENTIALS"`
}

// ParseConfig parses the environment and then args into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}

	fs.StringVar(&cfg.Input, "input", cfg.Input, "AAVSO-style delimited observations. Local path, gs://bucket/object, http(s) URL or - for stdin. May be gzip, zip, xz, bzip2 or zlib compressed.")
	fs.StringVar(&cfg.Band, "band", cfg.Band, "Photometric band to keep, e.g. V. Required.")
	fs.StringVar(&cfg.Out, "out", cfg.Out, "Where to write the composite light curve. Local path, gs://bucket/object or - for stdout.")
	fs.StringVar(&cfg.OffsetsOut, "offsets-out", cfg.OffsetsOut, "(Optional) Where to write the per-observer offset log. Local path or gs://bucket/object.")
	fs.IntVar(&cfg.MinObservations, "min-obs", cfg.MinObservations, "Observers with fewer observations in the band are dropped.")
	fs.Float64Var(&cfg.OffsetMin, "offset-min", cfg.OffsetMin, "Smallest candidate magnitude offset.")
	fs.Float64Var(&cfg.OffsetMax, "offset-max", cfg.OffsetMax, "Largest candidate magnitude offset.")
	fs.IntVar(&cfg.OffsetPoints, "offset-points", cfg.OffsetPoints, "Number of evenly spaced candidate offsets, both ends included.")
	fs.IntVar(&cfg.Workers, "workers", cfg.Workers, "Goroutines used to score candidate offsets. 0 means one per CPU.")
	fs.DurationVar(&cfg.Timeout, "timeout", cfg.Timeout, "(Optional) Abort the run after this long, e.g. 5m. 0 means no limit.")
	fs.StringVar(&cfg.From, "from", cfg.From, "(Optional) Drop observations before this JD or date, e.g. 2459000.5 or 2020-05-31.")
	fs.StringVar(&cfg.Until, "until", cfg.Until, "(Optional) Drop observations after this JD or date.")
	fs.StringVar(&cfg.Exclude, "exclude", cfg.Exclude, "(Optional) File listing JDs of observations to remove, one per line or in a JD column.")
	fs.Float64Var(&cfg.ExcludeTolerance, "exclude-tolerance", cfg.ExcludeTolerance, "Observations within this many days of an excluded JD are removed.")
	fs.StringVar(&cfg.GCPCredentials, "gcp-credentials", cfg.GCPCredentials, "(Optional) Service account JSON used for gs:// paths. Application default credentials are used otherwise.")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	if cfg.Input == "" {
		return Config{}, fmt.Errorf("an input is required")
	}
	if cfg.Band == "" {
		return Config{}, fmt.Errorf("a band is required")
	}
	if cfg.Timeout < 0 {
		return Config{}, fmt.Errorf("timeout must not be negative, got %s", cfg.Timeout)
	}

	return cfg, nil
}

// Paths returns every location the run reads or writes.
func (cfg Config) Paths() []string {
	out := []string{cfg.Input, cfg.Out}
	if cfg.OffsetsOut != "" {
		out = append(out, cfg.OffsetsOut)
	}
	if cfg.Exclude != "" {
		out = append(out, cfg.Exclude)
	}
	return out
}

// Params resolves cfg into pipeline parameters. The exclusion list, if any,
// is read through client.
func (cfg Config) Params(ctx context.Context, client *storage.Client) (photometry.Params, error) {
	params := photometry.DefaultParams(cfg.Band)
	params.MinObservations = cfg.MinObservations
	params.Grid = photometry.OffsetGrid{Min: cfg.OffsetMin, Max: cfg.OffsetMax, Points: cfg.OffsetPoints}
	params.Workers = cfg.Workers
	params.ExcludeTolerance = cfg.ExcludeTolerance

	var err error
	if params.From, err = lightcurve.ParseJD(cfg.From); err != nil {
		return params, fmt.Errorf("-from: %w", err)
	}
	if params.Until, err = lightcurve.ParseJD(cfg.Until); err != nil {
		return params, fmt.Errorf("-until: %w", err)
	}

	if cfg.Exclude != "" {
		if params.Exclude, err = readExclusions(ctx, cfg.Exclude, client); err != nil {
			return params, fmt.Errorf("-exclude %s: %w", cfg.Exclude, err)
		}
	}

	return params, params.Validate()
}

func readExclusions(ctx context.Context, path string, client *storage.Client) ([]float64, error) {
	f, err := lightcurve.OpenInput(ctx, path, client)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return aavso.ReadJDList(f)
}
