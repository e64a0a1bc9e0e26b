package classdef

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"golang.org/x/sync/errgroup"

	"github.com/evandropoa/qooxdoo"
)

// LoadFiles reads and parses the manifests at paths in parallel. Files are
// returned in the order given; every failure is reported.
func LoadFiles(ctx context.Context, paths []string, opts ...Option) ([]*File, error) {
	cfg := newConfig(opts)
	files := make([]*File, len(paths))
	errs := make([]error, len(paths))

	var eg errgroup.Group
	eg.SetLimit(cfg.concurrency)
	for i, path := range paths {
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				errs[i] = err
				return nil
			}
			data, err := os.ReadFile(path)
			if err != nil {
				errs[i] = fmt.Errorf("classdef: %w", err)
				return nil
			}
			files[i], errs[i] = Parse(path, data)
			return nil
		})
	}
	_ = eg.Wait()
	if err := qooxdoo.NewAggregateError(errs...); err != nil {
		return nil, err
	}
	return files, nil
}

// LoadDir loads every .yaml and .yml manifest directly inside dir, in
// lexical order.
func LoadDir(ctx context.Context, dir string, opts ...Option) ([]*File, error) {
	paths, err := manifests(dir)
	if err != nil {
		return nil, err
	}
	return LoadFiles(ctx, paths, opts...)
}

func manifests(dir string) ([]string, error) {
	var paths []string
	for _, pattern := range []string{"*.yaml", "*.yml"} {
		matches, err := filepath.Glob(filepath.Join(dir, pattern))
		if err != nil {
			return nil, fmt.Errorf("classdef: %w", err)
		}
		paths = append(paths, matches...)
	}
	slices.Sort(paths)
	return paths, nil
}

func isManifest(path string) bool {
	switch filepath.Ext(path) {
	case ".yaml", ".yml":
		return true
	}
	return false
}
