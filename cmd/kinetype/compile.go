/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/urfave/cli/v3"

	"kinetype/internal/config"
	"kinetype/internal/layout"
	applog "kinetype/internal/log"
	"kinetype/internal/timeline"
)

func compileCommand() *cli.Command {
	return &cli.Command{
		Name:      "compile",
		Usage:     "Compile annotated text from a file, stdin, or a JSON job into timeline JSON",
		ArgsUsage: "[input.txt | -]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "job",
				Usage: "Path to a JSON job file describing the compile request",
			},
			&cli.FloatFlag{
				Name:  "gap",
				Usage: "Seconds between adjacent segments; negative values overlap them",
			},
			&cli.FloatFlag{
				Name:  "width",
				Usage: "Canvas width override",
			},
			&cli.FloatFlag{
				Name:  "height",
				Usage: "Canvas height override",
			},
			&cli.IntFlag{
				Name:  "seed",
				Usage: "Jitter seed for reproducible placement (0 = fresh seed)",
			},
			&cli.StringFlag{
				Name:    "out",
				Aliases: []string{"o"},
				Usage:   "Output file (default stdout)",
			},
			&cli.BoolFlag{
				Name:  "pretty",
				Value: true,
				Usage: "Indent the JSON output",
			},
			&cli.BoolFlag{
				Name:  "watch",
				Usage: "Keep running and recompile whenever the input file changes",
			},
		},
		Action: runCompile,
	}
}

// request is a fully resolved compile invocation: text plus every
// parameter after config, job file, and flag overrides are merged.
type request struct {
	text   string
	path   string // source file on disk; empty for stdin
	gap    float64
	seed   int64
	layout layout.Config
}

func runCompile(ctx context.Context, cmd *cli.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	req, err := resolveRequest(cmd, cfg)
	if err != nil {
		return err
	}

	if cmd.Bool("watch") {
		if req.path == "" {
			return fmt.Errorf("--watch requires a file input, not stdin")
		}
		return watchLoop(ctx, cmd, cfg, req.path)
	}

	return compileOnce(cmd, req)
}

// resolveRequest reads the input text and merges parameters. Precedence,
// lowest to highest: config file, job file, command-line flags.
func resolveRequest(cmd *cli.Command, cfg config.AppConfig) (request, error) {
	req := request{
		gap:    cfg.Compile.Gap,
		seed:   cfg.Compile.Seed,
		layout: cfg.Layout,
	}

	if jobPath := cmd.String("job"); jobPath != "" {
		job, err := loadJob(jobPath)
		if err != nil {
			return req, err
		}
		req.text = job.Text
		req.path = jobPath
		if job.Gap != nil {
			req.gap = *job.Gap
		}
		if job.Seed != nil {
			req.seed = *job.Seed
		}
		if job.Canvas != nil {
			req.layout.Width = job.Canvas.Width
			req.layout.Height = job.Canvas.Height
		}
	} else {
		in := cmd.Args().First()
		if in == "" || in == "-" {
			data, err := io.ReadAll(os.Stdin)
			if err != nil {
				return req, fmt.Errorf("read stdin: %w", err)
			}
			req.text = string(data)
		} else {
			data, err := os.ReadFile(in)
			if err != nil {
				return req, fmt.Errorf("read input %s: %w", in, err)
			}
			req.text = string(data)
			req.path = in
		}
	}

	if cmd.IsSet("gap") {
		req.gap = cmd.Float("gap")
	}
	if cmd.IsSet("seed") {
		req.seed = int64(cmd.Int("seed"))
	}
	if cmd.IsSet("width") {
		req.layout.Width = cmd.Float("width")
	}
	if cmd.IsSet("height") {
		req.layout.Height = cmd.Float("height")
	}
	if err := req.layout.Validate(); err != nil {
		return req, fmt.Errorf("layout: %w", err)
	}
	return req, nil
}

func compileOnce(cmd *cli.Command, req request) error {
	logger := applog.WithComponent("compile")

	var opts []timeline.Option
	if req.seed != 0 {
		opts = append(opts, timeline.WithSeed(req.seed))
	}

	res, diags := timeline.CompileWithDiagnostics(req.text, req.gap, req.layout, opts...)
	for _, d := range diags {
		logger.Warn("tag skipped",
			slog.String("raw", d.Raw),
			slog.Int("offset", d.Offset),
			slog.String("reason", d.Err.Error()))
	}
	logger.Info("compiled",
		slog.Int("segments", len(res.Segments)),
		slog.Float64("totalDuration", res.TotalDuration))

	return writeResult(cmd, res)
}

func writeResult(cmd *cli.Command, res timeline.Result) error {
	var (
		data []byte
		err  error
	)
	if cmd.Bool("pretty") {
		data, err = json.MarshalIndent(res, "", "  ")
	} else {
		data, err = json.Marshal(res)
	}
	if err != nil {
		return fmt.Errorf("encode result: %w", err)
	}
	data = append(data, '\n')

	out := cmd.String("out")
	if out == "" {
		_, err = os.Stdout.Write(data)
		return err
	}
	if err := os.WriteFile(out, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", out, err)
	}
	return nil
}

// watchLoop compiles once, then recompiles on every change to the input
// file until ctx is cancelled. Events are debounced so editors that
// write in several bursts trigger a single recompile.
func watchLoop(ctx context.Context, cmd *cli.Command, cfg config.AppConfig, path string) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()

	// Watch the directory, not the file: editors often replace the file
	// on save, which would drop a direct file watch.
	if err := w.Add(filepath.Dir(path)); err != nil {
		return err
	}

	logger := applog.WithComponent("watch")
	logger.Info("watching", slog.String("input", path))

	recompile := func() {
		req, err := resolveRequest(cmd, cfg)
		if err != nil {
			logger.Error("reload failed", slog.String("error", err.Error()))
			return
		}
		if err := compileOnce(cmd, req); err != nil {
			logger.Error("compile failed", slog.String("error", err.Error()))
		}
	}
	recompile()

	var debounce *time.Timer
	var debounceCh <-chan time.Time

	scheduleRecompile := func() {
		if debounce == nil {
			debounce = time.NewTimer(200 * time.Millisecond)
			debounceCh = debounce.C
		} else {
			debounce.Reset(200 * time.Millisecond)
		}
	}

	for {
		select {
		case <-ctx.Done():
			if debounce != nil {
				debounce.Stop()
			}
			logger.Info("watch stopped")
			return nil

		case <-debounceCh:
			recompile()

		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != filepath.Clean(path) {
				continue
			}
			if ev.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Rename) == 0 {
				continue
			}
			scheduleRecompile()

		case watchErr, ok := <-w.Errors:
			if !ok {
				return nil
			}
			logger.Error("watch error", slog.String("error", watchErr.Error()))
		}
	}
}
