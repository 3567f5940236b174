package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jsamuelsen/flashcard-builder/internal/app"
	"github.com/jsamuelsen/flashcard-builder/internal/domain"
)

// errInvalid is returned when at least one file failed validation.
var errInvalid = errors.New("validation failed")

type fileReport struct {
	stats    domain.CollectionStats
	problems []string
}

func newValidateCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "validate FILE...",
		Short: "Check collection files",
		Long: `Parse each collection file, print its size and list any problems such
as blank names, duplicate names or cards missing a side.

Files are checked concurrently. The command fails if any file is malformed or
has problems.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(cmd, e, args)
		},
	}
}

func runValidate(cmd *cobra.Command, e *env, paths []string) error {
	codec := e.codec()

	fns := make([]func(context.Context) (fileReport, error), len(paths))
	for i, path := range paths {
		fns[i] = func(ctx context.Context) (fileReport, error) {
			if err := ctx.Err(); err != nil {
				return fileReport{}, err
			}

			f, err := os.Open(path)
			if err != nil {
				return fileReport{}, err
			}
			defer f.Close()

			c, err := codec.DecodeCollection(f)
			if err != nil {
				return fileReport{}, err
			}

			return fileReport{stats: c.Stats(), problems: c.Problems()}, nil
		}
	}

	failed := false
	out := cmd.OutOrStdout()

	for i, r := range app.ParallelPartial(cmd.Context(), fns...) {
		switch {
		case r.Err != nil:
			failed = true
			fmt.Fprintf(out, "%s: %v\n", paths[i], r.Err)
		case len(r.Value.problems) > 0:
			failed = true
			fmt.Fprintf(out, "%s: %d problems\n", paths[i], len(r.Value.problems))

			for _, p := range r.Value.problems {
				fmt.Fprintf(out, "  - %s\n", p)
			}
		default:
			fmt.Fprintf(out, "%s: ok, ", paths[i])
			printStats(out, r.Value.stats)
		}
	}

	if failed {
		return errInvalid
	}

	return nil
}
