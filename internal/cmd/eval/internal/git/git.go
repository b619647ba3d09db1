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

// Package git provides a simplified git interface for reading a repository for evaluations.
package git

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strconv"
	"strings"
	"sync"
)

// zeroID is the object ID git uses for a file that doesn't exist on one side of a change.
const zeroID = "0000000000000000000000000000000000000000"

// Repo is a git repository on disk. It's safe for concurrent use.
type Repo struct {
	dir string

	mu    sync.Mutex // guards the cat-file process
	cmd   *exec.Cmd
	stdin io.WriteCloser
	out   *bufio.Reader
}

// Open opens the repository in dir and starts a git cat-file process to read blobs. The process
// is stopped when ctx is done or Close is called.
func Open(ctx context.Context, dir string) (*Repo, error) {
	if _, err := os.Stat(dir); err != nil {
		return nil, err
	}

	cmd := exec.CommandContext(ctx, "git", "-C", dir, "cat-file", "--batch")
	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, fmt.Errorf("connecting stdin: %v", err)
	}
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("connecting stdout: %v", err)
	}
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("starting git cat-file: %v", err)
	}
	return &Repo{
		dir:   dir,
		cmd:   cmd,
		stdin: stdin,
		out:   bufio.NewReader(stdout),
	}, nil
}

// Close stops the cat-file process.
func (r *Repo) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.stdin.Close(); err != nil {
		return err
	}
	return r.cmd.Wait()
}

// RevList returns the IDs of all non-merge commits reachable from HEAD.
func (r *Repo) RevList(ctx context.Context) ([]string, error) {
	out, err := r.git(ctx, "rev-list", "--no-merges", "HEAD")
	if err != nil {
		return nil, err
	}
	return strings.Fields(out), nil
}

// FileDiff describes a file changed by a commit.
type FileDiff struct {
	Name  string
	OldID string // zero ID if the file was added
	NewID string // zero ID if the file was deleted
}

// DiffTree returns the files changed by a commit compared to its first parent.
func (r *Repo) DiffTree(ctx context.Context, commit string) ([]FileDiff, error) {
	out, err := r.git(ctx, "diff-tree", "-r", commit)
	if err != nil {
		return nil, err
	}
	var ret []FileDiff
	for line := range strings.Lines(out) {
		line = strings.TrimSuffix(line, "\n")
		if line == commit || line == "" {
			continue
		}
		// :<old mode> <new mode> <old id> <new id> <status>\t<name>
		meta, name, ok := strings.Cut(line, "\t")
		if !ok || !strings.HasPrefix(meta, ":") {
			return nil, fmt.Errorf("unexpected diff-tree line: %q", line)
		}
		fields := strings.Fields(meta[1:])
		if len(fields) != 5 {
			return nil, fmt.Errorf("found %d fields, expected 5: %q", len(fields), line)
		}
		ret = append(ret, FileDiff{
			Name:  name,
			OldID: fields[2],
			NewID: fields[3],
		})
	}
	return ret, nil
}

// ReadBlobs returns the contents of the given blobs. The zero ID reads as an empty blob.
func (r *Repo) ReadBlobs(ids ...string) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]string, len(ids))
	for i, id := range ids {
		if id == zeroID {
			continue
		}
		if _, err := fmt.Fprintf(r.stdin, "%s\n", id); err != nil {
			return nil, fmt.Errorf("writing to git cat-file: %v", err)
		}
		// <id> <type> <size>\n<contents>\n
		header, err := r.out.ReadString('\n')
		if err != nil {
			return nil, fmt.Errorf("reading from git cat-file: %v", err)
		}
		fields := strings.Fields(header)
		if len(fields) != 3 {
			return nil, fmt.Errorf("unexpected git cat-file header: %q", header)
		}
		if fields[0] != id {
			return nil, fmt.Errorf("ids don't match %s vs %s", fields[0], id)
		}
		if fields[1] != "blob" {
			return nil, fmt.Errorf("object %s is a %s, not a blob", id, fields[1])
		}
		n, err := strconv.Atoi(fields[2])
		if err != nil {
			return nil, fmt.Errorf("parsing object size: %v", err)
		}
		buf := make([]byte, n+1)
		if _, err := io.ReadFull(r.out, buf); err != nil {
			return nil, fmt.Errorf("reading object %s: %v", id, err)
		}
		out[i] = string(buf[:n])
	}
	return out, nil
}

func (r *Repo) git(ctx context.Context, args ...string) (string, error) {
	var wout, werr strings.Builder
	cmd := exec.CommandContext(ctx, "git", append([]string{"-C", r.dir}, args...)...)
	cmd.Stdout = &wout
	cmd.Stderr = &werr
	if err := cmd.Run(); err != nil {
		if errors.Is(ctx.Err(), context.Canceled) {
			return "", ctx.Err()
		}
		return "", fmt.Errorf("running git command %v: %v\n%s", cmd, err, werr.String())
	}
	return wout.String(), nil
}
