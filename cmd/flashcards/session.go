package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/jsamuelsen/flashcard-builder/internal/adapters/interchange"
	"github.com/jsamuelsen/flashcard-builder/internal/adapters/memory"
	"github.com/jsamuelsen/flashcard-builder/internal/app"
	"github.com/jsamuelsen/flashcard-builder/internal/domain"
	"github.com/jsamuelsen/flashcard-builder/internal/ports"
)

// session is an in-memory study session loaded from one collection file.
type session struct {
	store    *memory.Store
	nav      *app.Navigator
	library  *app.LibraryService
	transfer *app.TransferService
}

func newSession(e *env, recorder ports.StudyRecorder) *session {
	store := memory.NewStore(memory.StoreConfig{Logger: e.logger})

	return &session{
		store:   store,
		nav:     app.NewNavigator(app.NavigatorConfig{Store: store, Logger: e.logger}),
		library: app.NewLibraryService(app.LibraryServiceConfig{Store: store, Logger: e.logger}),
		transfer: app.NewTransferService(app.TransferServiceConfig{
			Store:    store,
			Codec:    e.codec(),
			Recorder: recorder,
			Logger:   e.logger,
		}),
	}
}

// openSession loads the collection file at path into a new session.
func openSession(ctx context.Context, e *env, path string) (*session, error) {
	s := newSession(e, nil)

	if err := s.load(ctx, path); err != nil {
		return nil, err
	}

	return s, nil
}

func (s *session) load(ctx context.Context, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening collection: %w", err)
	}
	defer f.Close()

	if _, err := s.transfer.ImportCollection(ctx, f); err != nil {
		return fmt.Errorf("loading %s: %w", path, err)
	}

	return nil
}

// writeArtifacts writes each artifact into dir and reports the paths on out.
func writeArtifacts(out io.Writer, dir string, artifacts ...app.Artifact) error {
	for _, a := range artifacts {
		path, err := interchange.WriteFile(dir, a.Filename, a.Body)
		if err != nil {
			return err
		}

		fmt.Fprintf(out, "wrote %s\n", path)
	}

	return nil
}

// promptConfirmer asks each question on out and reads a y/N answer from in.
// Anything but y or yes declines, including end of input.
func promptConfirmer(in io.Reader, out io.Writer) ports.Confirmer {
	reader := bufio.NewReader(in)

	return ports.ConfirmFunc(func(ctx context.Context, p ports.Prompt) (bool, error) {
		if err := ctx.Err(); err != nil {
			return false, err
		}

		fmt.Fprintf(out, "%s [y/N] ", p.Message)

		line, err := reader.ReadString('\n')
		if err != nil && line == "" {
			fmt.Fprintln(out)
			return false, nil
		}

		switch strings.ToLower(strings.TrimSpace(line)) {
		case "y", "yes":
			return true, nil
		default:
			return false, nil
		}
	})
}

func printStats(out io.Writer, st domain.CollectionStats) {
	fmt.Fprintf(out, "%d subjects, %d topics, %d cards\n", st.Subjects, st.Topics, st.Cards)
}
