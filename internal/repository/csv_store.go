package repository

import (
	"bufio"
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"stepsurvey/internal/model"
	"sync"
)

var ErrHeaderMismatch = errors.New("store header does not match record fields")

// SubmissionStore is the append-only local sink for submission records
type SubmissionStore interface {
	Append(ctx context.Context, record model.SubmissionRecord) error
	Name() string
}

// csvStore appends one row per submission to a UTF-8 CSV file. The header is
// fixed when the file is created; records whose field names differ from it
// are refused rather than written misaligned.
type csvStore struct {
	path string
	mu   sync.Mutex // serialises header creation within this process
}

// NewCSVStore creates a CSV submission store at path
func NewCSVStore(path string) SubmissionStore {
	return &csvStore{path: path}
}

func (s *csvStore) Name() string { return "csv" }

func (s *csvStore) Append(_ context.Context, record model.SubmissionRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create store directory: %w", err)
		}
	}

	header, err := s.readHeader()
	if err != nil {
		return err
	}

	names := record.Names()
	writeHeader := header == nil
	if !writeHeader && !slices.Equal(header, names) {
		return fmt.Errorf("%w: %s has %d columns, record has %d fields", ErrHeaderMismatch, s.path, len(header), len(names))
	}

	// Encode first so the row reaches the file in a single write.
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if writeHeader {
		if err := w.Write(names); err != nil {
			return fmt.Errorf("failed to encode header: %w", err)
		}
	}
	if err := w.Write(record.Values()); err != nil {
		return fmt.Errorf("failed to encode row: %w", err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("failed to encode row: %w", err)
	}

	f, err := os.OpenFile(s.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", s.path, err)
	}
	if _, err := f.Write(buf.Bytes()); err != nil {
		f.Close()
		return fmt.Errorf("failed to append to %s: %w", s.path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", s.path, err)
	}
	return nil
}

// readHeader returns nil when the file is absent or empty
func (s *csvStore) readHeader() ([]string, error) {
	f, err := os.Open(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", s.path, err)
	}
	defer f.Close()

	header, err := csv.NewReader(bufio.NewReader(f)).Read()
	if errors.Is(err, io.EOF) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read header of %s: %w", s.path, err)
	}
	return header, nil
}
