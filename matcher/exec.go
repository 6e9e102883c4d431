// Package matcher provides Matcher implementations for matchbench.
package matcher

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"strings"

	matchbench "github.com/jamesainslie/go-matchbench"
	"github.com/jamesainslie/go-matchbench/internal/bench"
	"github.com/jamesainslie/go-matchbench/mapping"
)

// Output is the similarity structure produced by Exec: the program's
// standard output.
type Output []byte

// Exec runs an external matcher program once per grid cell. Trees and the
// category model are passed as file paths; the program prints its leaf
// mappings on standard output in mapping file form.
//
// The program is invoked as
//
//	<Command> <Args...> --source S --target T [--categories C]
//	    --th-accept A --th-low L --th-high H
//	    --leaf-w-struct LW --w-struct W --th-ns N
type Exec struct {
	Command string
	Args    []string
	Env     []string // appended to the current environment
	Dir     string
	Logger  *slog.Logger
}

var _ matchbench.Matcher = (*Exec)(nil)

// Match runs the program for one cell.
func (e *Exec) Match(ctx context.Context, source, target matchbench.Tree, categories matchbench.Categories, p matchbench.Params) (matchbench.Similarity, error) {
	args, err := e.args(source, target, categories, p)
	if err != nil {
		return nil, err
	}

	cmd := exec.CommandContext(ctx, e.Command, args...)
	cmd.Dir = e.Dir
	cmd.Env = append(os.Environ(), e.Env...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	e.logger().Debug("running matcher", "command", e.Command, "args", args)
	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg != "" {
			return nil, fmt.Errorf("%s: %w: %s", e.Command, err, msg)
		}
		return nil, fmt.Errorf("%s: %w", e.Command, err)
	}
	return Output(stdout.Bytes()), nil
}

// LeafMappings parses the program output captured by Match.
func (e *Exec) LeafMappings(_ context.Context, _, _ matchbench.Tree, sim matchbench.Similarity, _ float64) (mapping.Set, error) {
	out, ok := sim.(Output)
	if !ok {
		return nil, fmt.Errorf("unexpected similarity type %T", sim)
	}
	return mapping.Parse(bytes.NewReader(out))
}

func (e *Exec) args(source, target matchbench.Tree, categories matchbench.Categories, p matchbench.Params) ([]string, error) {
	src, ok := source.(string)
	if !ok {
		return nil, fmt.Errorf("source tree must be a path, got %T", source)
	}
	dst, ok := target.(string)
	if !ok {
		return nil, fmt.Errorf("target tree must be a path, got %T", target)
	}

	args := append([]string{}, e.Args...)
	args = append(args, "--source", src, "--target", dst)
	if categories != nil {
		cats, ok := categories.(string)
		if !ok {
			return nil, fmt.Errorf("categories must be a path, got %T", categories)
		}
		if cats != "" {
			args = append(args, "--categories", cats)
		}
	}
	return append(args,
		"--th-accept", bench.FormatValue(p.Accept),
		"--th-low", bench.FormatValue(p.Low),
		"--th-high", bench.FormatValue(p.High),
		"--leaf-w-struct", bench.FormatValue(p.LeafStruct),
		"--w-struct", bench.FormatValue(p.Struct),
		"--th-ns", bench.FormatValue(p.NameThreshold),
	), nil
}

func (e *Exec) logger() *slog.Logger {
	if e.Logger != nil {
		return e.Logger
	}
	return slog.Default()
}
