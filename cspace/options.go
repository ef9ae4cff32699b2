// SPDX-License-Identifier: MIT
// Package cspace - functional options.
//
// Option constructors validate and panic on meaningless input; builders
// themselves return errors.

package cspace

import (
	"fmt"
	"log/slog"
)

// Option configures a Builder or BuildAll.
type Option func(*config)

type config struct {
	interval float64
	cells    *CellTable
	logger   *slog.Logger
	workers  int
}

const defaultWorkers = 4

func newConfig(opts ...Option) config {
	cfg := config{
		interval: DefaultInterval,
		logger:   slog.Default(),
		workers:  defaultWorkers,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// WithInterval sets the quantization step in degrees, in (0, 360].
func WithInterval(deg float64) Option {
	if !(deg > 0 && deg <= fullTurn) {
		panic(fmt.Sprintf("cspace: WithInterval(%g)", deg))
	}
	return func(c *config) { c.interval = deg }
}

// WithCellTable shares an interning table between builders.
func WithCellTable(t *CellTable) Option {
	if t == nil {
		panic("cspace: WithCellTable(nil)")
	}
	return func(c *config) { c.cells = t }
}

// WithLogger sets the logger used for build progress.
func WithLogger(l *slog.Logger) Option {
	if l == nil {
		panic("cspace: WithLogger(nil)")
	}
	return func(c *config) { c.logger = l }
}

// WithWorkers bounds how many bones BuildAll builds at once.
func WithWorkers(n int) Option {
	if n < 1 {
		panic(fmt.Sprintf("cspace: WithWorkers(%d)", n))
	}
	return func(c *config) { c.workers = n }
}
