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
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/urfave/cli/v3"
	"golang.org/x/sync/errgroup"

	applog "kinetype/internal/log"
	"kinetype/internal/timeline"
)

func batchCommand() *cli.Command {
	return &cli.Command{
		Name:      "batch",
		Usage:     "Compile many annotated text files concurrently",
		ArgsUsage: "<input.txt>...",
		Flags: []cli.Flag{
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
				Usage: "Jitter seed applied to every input (0 = fresh seed)",
			},
			&cli.StringFlag{
				Name:  "out-dir",
				Usage: "Directory for the .timeline.json outputs (default: next to each input)",
			},
			&cli.IntFlag{
				Name:  "jobs",
				Usage: "Maximum concurrent compiles (0 = number of CPUs)",
			},
		},
		Action: runBatch,
	}
}

func runBatch(ctx context.Context, cmd *cli.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	inputs := cmd.Args().Slice()
	if len(inputs) == 0 {
		return fmt.Errorf("batch: no input files given")
	}

	gap := cfg.Compile.Gap
	if cmd.IsSet("gap") {
		gap = cmd.Float("gap")
	}
	seed := cfg.Compile.Seed
	if cmd.IsSet("seed") {
		seed = int64(cmd.Int("seed"))
	}
	lcfg := cfg.Layout
	if cmd.IsSet("width") {
		lcfg.Width = cmd.Float("width")
	}
	if cmd.IsSet("height") {
		lcfg.Height = cmd.Float("height")
	}
	if err := lcfg.Validate(); err != nil {
		return fmt.Errorf("layout: %w", err)
	}

	outDir := cmd.String("out-dir")
	if outDir != "" {
		if err := os.MkdirAll(outDir, 0o755); err != nil {
			return fmt.Errorf("create out-dir %s: %w", outDir, err)
		}
	}

	limit := int(cmd.Int("jobs"))
	if limit <= 0 {
		limit = runtime.GOMAXPROCS(0)
	}

	logger := applog.WithComponent("batch")

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	for _, in := range inputs {
		in := in
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			data, err := os.ReadFile(in)
			if err != nil {
				return fmt.Errorf("read input %s: %w", in, err)
			}

			var opts []timeline.Option
			if seed != 0 {
				opts = append(opts, timeline.WithSeed(seed))
			}
			res := timeline.Compile(string(data), gap, lcfg, opts...)

			out := batchOutputPath(in, outDir)
			encoded, err := json.MarshalIndent(res, "", "  ")
			if err != nil {
				return fmt.Errorf("encode %s: %w", in, err)
			}
			encoded = append(encoded, '\n')
			if err := os.WriteFile(out, encoded, 0o644); err != nil {
				return fmt.Errorf("write %s: %w", out, err)
			}

			logger.Info("compiled",
				slog.String("input", in),
				slog.String("output", out),
				slog.Int("segments", len(res.Segments)),
				slog.Float64("totalDuration", res.TotalDuration))
			return nil
		})
	}
	return g.Wait()
}

// batchOutputPath maps input.txt to input.timeline.json, optionally
// redirected into outDir.
func batchOutputPath(in, outDir string) string {
	base := strings.TrimSuffix(filepath.Base(in), filepath.Ext(in)) + ".timeline.json"
	if outDir != "" {
		return filepath.Join(outDir, base)
	}
	return filepath.Join(filepath.Dir(in), base)
}
