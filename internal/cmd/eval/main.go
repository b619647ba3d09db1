// Copyright 2025 Florian Zenker (flo@znkr.io)
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// eval validates the diff engine on the history of a git repository: for every changed file, it
// computes diffs in several variants and checks that every edit script reconstructs both versions
// of the file and is normalized. Optionally, it writes statistics for every diff to a CSV file.
package main

import (
	"context"
	"encoding/csv"
	"errors"
	"flag"
	"fmt"
	"math"
	"math/rand/v2"
	"os"
	"os/signal"
	"runtime"
	"strconv"
	"strings"
	"sync/atomic"
	"time"
	"unicode/utf8"

	"github.com/peterbourgon/ff/v3"
	"golang.org/x/sync/errgroup"
	"znkr.io/semdiff/internal/cmd/eval/internal/git"
)

type config struct {
	repo     string
	sample   int
	parallel int
	stats    string
	validate bool
}

func main() {
	var cfg config
	fs := flag.NewFlagSet("eval", flag.ExitOnError)
	fs.StringVar(&cfg.repo, "repo", "", "repository to use for evaluation")
	fs.IntVar(&cfg.sample, "sample", 0, "if >0, sample commits to the value of the flag")
	fs.IntVar(&cfg.parallel, "parallel", runtime.GOMAXPROCS(0), "number of evaluations to run in parallel")
	fs.StringVar(&cfg.stats, "stats", "", "file to store stats in")
	fs.BoolVar(&cfg.validate, "validate", true, "if validation should be performed")
	if err := ff.Parse(fs, os.Args[1:], ff.WithEnvVarPrefix("SEMDIFF_EVAL")); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	if fs.NArg() > 0 {
		fmt.Fprintf(os.Stderr, "error: unexpected command line arguments: %v\n", fs.Args())
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := run(ctx, &cfg); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

var bars = []string{
	" ",
	"▏",
	"▎",
	"▍",
	"▌",
	"▋",
	"▊",
	"▉",
	"█",
}

type change struct {
	commitID string
	filename string
	old, new string
}

func run(ctx context.Context, cfg *config) error {
	start := time.Now()
	var commitsDone, processed, failures atomic.Int64

	repo, err := git.Open(ctx, cfg.repo)
	if err != nil {
		return fmt.Errorf("opening git repository: %v", err)
	}
	defer repo.Close()

	commitIDs, err := repo.RevList(ctx)
	if err != nil {
		return fmt.Errorf("reading rev-list: %v", err)
	}
	if cfg.sample > 0 && cfg.sample < len(commitIDs) {
		rand.Shuffle(len(commitIDs), func(i, j int) {
			commitIDs[i], commitIDs[j] = commitIDs[j], commitIDs[i]
		})
		commitIDs = commitIDs[:cfg.sample]
	}

	var stats *csv.Writer
	if cfg.stats != "" {
		f, err := os.Create(cfg.stats)
		if err != nil {
			return fmt.Errorf("creating stats file: %v", err)
		}
		defer f.Close()
		stats = csv.NewWriter(f)
		stats.Write([]string{"commit_id", "file", "variant", "N", "M", "levenshtein", "edits", "duration_ns"})
	}

	notes := make(chan note)
	changes := make(chan change)
	var results chan result
	if stats != nil {
		results = make(chan result)
	}

	g, ctx := errgroup.WithContext(ctx)

	// Read changes.
	g.Go(func() error {
		defer close(changes)
		for _, commitID := range commitIDs {
			files, err := repo.DiffTree(ctx, commitID)
			if err != nil {
				return fmt.Errorf("processing commit %s: %v", commitID, err)
			}
			for _, file := range files {
				blobs, err := repo.ReadBlobs(file.OldID, file.NewID)
				if err != nil {
					return fmt.Errorf("reading %s:%s: %v", commitID, file.Name, err)
				}
				if !utf8.ValidString(blobs[0]) || !utf8.ValidString(blobs[1]) {
					continue // binary file
				}
				select {
				case changes <- change{commitID: commitID, filename: file.Name, old: blobs[0], new: blobs[1]}:
				case <-ctx.Done():
					return ctx.Err()
				}
			}
			commitsDone.Add(1)
		}
		return nil
	})

	// Evaluate changes.
	var workers errgroup.Group
	for range max(1, cfg.parallel) {
		workers.Go(func() error {
			for ch := range changes {
				rs, ns := evaluate(ch, cfg.validate)
				for _, n := range ns {
					failures.Add(1)
					notes <- n
				}
				if results != nil {
					for _, r := range rs {
						results <- r
					}
				}
				processed.Add(1)
			}
			return nil
		})
	}
	g.Go(func() error {
		err := workers.Wait()
		if results != nil {
			close(results)
		}
		return err
	})

	// Write stats.
	if stats != nil {
		g.Go(func() error {
			for r := range results {
				stats.Write([]string{
					r.commitID,
					r.file,
					r.variant,
					strconv.Itoa(r.N),
					strconv.Itoa(r.M),
					strconv.Itoa(r.levenshtein),
					strconv.Itoa(r.edits),
					strconv.FormatInt(r.duration.Nanoseconds(), 10),
				})
			}
			stats.Flush()
			if err := stats.Error(); err != nil {
				return fmt.Errorf("writing stats: %v", err)
			}
			return nil
		})
	}

	// Render progress and notes. Notes are only sent by the workers, this goroutine is the only
	// one writing to stdout.
	render := func() {
		const width = 60
		commits := commitsDone.Load()
		processed := processed.Load()
		progress := 1.0
		if len(commitIDs) > 0 {
			progress = float64(commits) / float64(len(commitIDs))
		}
		whole := int(progress * width)
		remainder := math.Mod(progress*width, 1)
		last := bars[max(0, min(len(bars)-1, int(remainder*float64(len(bars)))))]
		if width-whole < 1 {
			last = ""
		}
		bar := strings.Repeat(bars[len(bars)-1], whole) + last
		var commitsPerSec, procPerSec int
		if commits > 0 {
			commitsPerSec = int((time.Duration(commits) * time.Second) / time.Since(start))
		}
		if processed > 0 {
			procPerSec = int((time.Duration(processed) * time.Second) / time.Since(start))
		}
		fmt.Printf("\r[%-*s] % 3.1f%% (%d commits/s, %d evals/s) ", width, bar, 100*progress, commitsPerSec, procPerSec)
	}
	done := make(chan struct{})
	rendered := make(chan struct{})
	go func() {
		defer close(rendered)
		ticker := time.NewTicker(200 * time.Millisecond)
		defer ticker.Stop()
		for {
			select {
			case note := <-notes:
				fmt.Printf("\r%s: %s\n", note.prefix, note.msg)
				render()
			case <-ticker.C:
				render()
			case <-done:
				render()
				fmt.Printf("\n")
				return
			}
		}
	}()

	err = g.Wait()
	close(done)
	<-rendered

	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	if n := failures.Load(); n > 0 {
		return fmt.Errorf("%d validation failures", n)
	}
	return err
}
