// qxgen generates typed Go wrappers from YAML class manifests.
//
//	qxgen -dir ./classes -out ./widgets -pkg widgets
//
// With -watch it keeps running and regenerates whenever a manifest in
// -dir changes.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/evandropoa/qooxdoo/class"
	"github.com/evandropoa/qooxdoo/classdef"
	"github.com/evandropoa/qooxdoo/compiler/gen"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if !errors.Is(err, flag.ErrHelp) {
			fmt.Fprintf(os.Stderr, "qxgen: %v\n", err)
		}
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("qxgen", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var (
		dir     = fs.String("dir", ".", "directory holding the class manifests")
		out     = fs.String("out", "", "output directory (required)")
		pkg     = fs.String("pkg", "", "generated package name (defaults to the base name of -out)")
		workers = fs.Int("workers", 0, "parallel render workers (0 means GOMAXPROCS)")
		stubs   = fs.Bool("stubs", true, "bind members missing from the catalog to no-op stubs")
		watch   = fs.Bool("watch", false, "regenerate when a manifest changes")
		verbose = fs.Bool("v", false, "enable debug logging")
	)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *out == "" {
		fs.Usage()
		return errors.New("missing -out")
	}
	if *pkg == "" {
		*pkg = packageName(*out)
	}

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	log := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	genOpts := []gen.Option{gen.WithPackage(*pkg)}
	defOpts := []classdef.Option{classdef.WithLogger(log)}
	if *workers > 0 {
		genOpts = append(genOpts, gen.WithWorkers(*workers))
		defOpts = append(defOpts, classdef.WithConcurrency(*workers))
	}
	if *stubs {
		defOpts = append(defOpts, classdef.WithStubMembers())
	}
	g, err := gen.New(genOpts...)
	if err != nil {
		return err
	}

	reg := class.NewRegistry(class.WithLogger(log))
	generate := func(files []*classdef.File) error {
		if err := classdef.Apply(reg, files, defOpts...); err != nil {
			return err
		}
		paths, err := g.WriteAll(ctx, reg, *out)
		if err != nil {
			return err
		}
		for _, p := range paths {
			fmt.Fprintln(stdout, p)
		}
		return nil
	}

	files, err := classdef.LoadDir(ctx, *dir, defOpts...)
	if err != nil {
		return err
	}
	if err := generate(files); err != nil {
		return err
	}
	if !*watch {
		return nil
	}

	w, err := classdef.NewWatcher(*dir, defOpts...)
	if err != nil {
		return err
	}
	defer w.Close()
	log.Info("watching manifests", "dir", *dir)
	if err := w.Run(ctx, generate); !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
