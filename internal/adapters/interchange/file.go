package interchange

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// SeedHealthCheckName is the health check name of a SeedFile.
const SeedHealthCheckName = "seed-file"

// SeedFile is the interchange document a server imports at startup and may
// export back to on shutdown. It reports as a health check so a missing or
// unreadable file shows up on the readiness probe.
type SeedFile struct {
	path string
}

// NewSeedFile creates a seed file at path.
func NewSeedFile(path string) *SeedFile {
	return &SeedFile{path: path}
}

// Path returns the file path.
func (f *SeedFile) Path() string { return f.path }

// Open opens the file for reading.
func (f *SeedFile) Open() (io.ReadCloser, error) {
	file, err := os.Open(f.path)
	if err != nil {
		return nil, fmt.Errorf("opening seed file: %w", err)
	}

	return file, nil
}

// Write replaces the file contents with body.
func (f *SeedFile) Write(body []byte) error {
	_, err := WriteFile(filepath.Dir(f.path), filepath.Base(f.path), body)

	return err
}

// Name implements ports.HealthChecker.
func (f *SeedFile) Name() string { return SeedHealthCheckName }

// Check implements ports.HealthChecker.
func (f *SeedFile) Check(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	info, err := os.Stat(f.path)
	if err != nil {
		return fmt.Errorf("seed file: %w", err)
	}

	if info.IsDir() {
		return fmt.Errorf("seed file %s is a directory", f.path)
	}

	return nil
}

// Describe implements ports.HealthDescriber.
func (f *SeedFile) Describe(_ context.Context) string {
	info, err := os.Stat(f.path)
	if err != nil {
		return f.path
	}

	return fmt.Sprintf("%s (%d bytes)", f.path, info.Size())
}

// WriteFile writes body to dir/name through a temporary file and a rename, so
// readers never see a half-written document. It returns the final path.
func WriteFile(dir, name string, body []byte) (string, error) {
	if dir == "" {
		dir = "."
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, "."+name+".*")
	if err != nil {
		return "", fmt.Errorf("creating temp file: %w", err)
	}

	defer func() { _ = os.Remove(tmp.Name()) }()

	if _, err := tmp.Write(body); err != nil {
		_ = tmp.Close()
		return "", fmt.Errorf("writing %s: %w", name, err)
	}

	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("closing %s: %w", name, err)
	}

	path := filepath.Join(dir, name)
	if err := os.Rename(tmp.Name(), path); err != nil {
		return "", fmt.Errorf("renaming into %s: %w", path, err)
	}

	return path, nil
}
