// lightcurve merges the photometry of many observers into one composite light
// curve. Each observer's series is shifted by the constant magnitude offset
// that makes the combined curve smoothest, largest group first.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"cloud.google.com/go/storage"
	"github.com/carbocation/pfx"
	"google.golang.org/api/option"

	"github.com/carbocation/lightcurve"
	"github.com/carbocation/lightcurve/aavso"
	_ "github.com/carbocation/lightcurve/compileinfoprint"
	"github.com/carbocation/lightcurve/photometry"
)

func main() {
	cfg, err := ParseConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		log.Println(err)
		flag.PrintDefaults()
		os.Exit(1)
	}

	ctx := context.Background()
	if cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.Timeout)
		defer cancel()
	}

	if err := run(ctx, cfg, log.Default()); err != nil {
		log.Fatalln(err)
	}
}

func run(ctx context.Context, cfg Config, logger *log.Logger) error {
	var client *storage.Client
	if lightcurve.NeedsStorageClient(cfg.Paths()...) {
		var err error
		client, err = newStorageClient(ctx, cfg.GCPCredentials)
		if err != nil {
			return err
		}
		defer client.Close()
	}

	params, err := cfg.Params(ctx, client)
	if err != nil {
		return err
	}

	records, err := aavso.ReadFile(ctx, cfg.Input, client)
	if err != nil {
		return err
	}
	logger.Printf("Read %d records from %s\n", len(records), cfg.Input)

	result, err := photometry.Run(ctx, records, params, logger)
	if err != nil {
		return err
	}

	for _, g := range result.Groups {
		logger.Printf("%s (%s to %s)\n", g, lightcurve.JDToTime(g.FirstJD).Format("2006-01-02"), lightcurve.JDToTime(g.LastJD).Format("2006-01-02"))
	}
	if len(result.Dropped) > 0 {
		logger.Printf("Dropped observers with fewer than %d observations: %v\n", params.MinObservations, result.Dropped)
	}

	if err := writeTo(ctx, cfg.Out, client, func(w io.Writer) error {
		return aavso.WriteComposite(w, result.Composite)
	}); err != nil {
		return err
	}
	logger.Printf("Wrote %d composite observations to %s\n", result.Composite.Len(), cfg.Out)

	if cfg.OffsetsOut == "" {
		for _, entry := range result.Offsets {
			logger.Printf("Offset %s (%d observations): %.6f\n", entry.Observer, entry.Observations, entry.Offset)
		}
		return nil
	}

	if err := writeTo(ctx, cfg.OffsetsOut, client, func(w io.Writer) error {
		return aavso.WriteOffsetLog(w, result.Offsets)
	}); err != nil {
		return err
	}
	logger.Printf("Wrote %d offsets to %s\n", len(result.Offsets), cfg.OffsetsOut)

	return nil
}

func newStorageClient(ctx context.Context, credentials string) (*storage.Client, error) {
	var opts []option.ClientOption
	if credentials != "" {
		path, err := lightcurve.ExpandHome(credentials)
		if err != nil {
			return nil, pfx.Err(err)
		}
		opts = append(opts, option.WithCredentialsFile(path))
	}

	client, err := storage.NewClient(ctx, opts...)
	if err != nil {
		return nil, pfx.Err(err)
	}

	return client, nil
}

// writeTo runs write against path. For gs:// paths the object is only
// committed by Close, so its error is what decides success.
func writeTo(ctx context.Context, path string, client *storage.Client, write func(io.Writer) error) error {
	w, err := lightcurve.CreateOutput(ctx, path, client)
	if err != nil {
		return err
	}

	if err := write(w); err != nil {
		w.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}

	if err := w.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", path, err)
	}

	return nil
}
