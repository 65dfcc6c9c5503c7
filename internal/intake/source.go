package intake

import (
	"context"
	"fmt"
	"io"
	"os"

	"smartgram/internal/blob/core"
	"smartgram/pkg/domain"
)

// Source supplies records of each kind.
type Source interface {
	Units(ctx context.Context) ([]domain.AdministrativeUnit, error)
	Requests(ctx context.Context) ([]domain.ServiceRequest, error)
	Allocations(ctx context.Context) ([]domain.BudgetAllocation, error)
	Meetings(ctx context.Context) ([]domain.MeetingRecord, error)
}

var (
	_ Source = (*DocumentSource)(nil)
	_ Source = (*SQLSource)(nil)
)

// DocumentSource decodes a single document from a store or a local file. The
// caller picks the record kind by the method it calls.
type DocumentSource struct {
	key  string
	open func(ctx context.Context) (io.ReadCloser, error)
}

// NewDocumentSource reads key from store.
func NewDocumentSource(store core.Store, key string) *DocumentSource {
	return &DocumentSource{key: key, open: func(ctx context.Context) (io.ReadCloser, error) {
		_, rc, err := store.Get(ctx, key)
		return rc, err
	}}
}

// NewFileSource reads the local file at path. The path is used as given and
// nothing is created on disk.
func NewFileSource(path string) *DocumentSource {
	return &DocumentSource{key: path, open: func(context.Context) (io.ReadCloser, error) {
		f, err := os.Open(path) // #nosec G304: operator-supplied input path
		if err != nil {
			return nil, fmt.Errorf("open input: %w", err)
		}
		return f, nil
	}}
}

// Key returns the document key, or the path for a file source.
func (s *DocumentSource) Key() string { return s.key }

func readDocument[T any](ctx context.Context, s *DocumentSource, decode func(io.Reader) ([]T, error)) (_ []T, err error) {
	rc, err := s.open(ctx)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rc.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close %s: %w", s.key, cerr)
		}
	}()
	out, err := decode(rc)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", s.key, err)
	}
	return out, nil
}

func (s *DocumentSource) Units(ctx context.Context) ([]domain.AdministrativeUnit, error) {
	return readDocument(ctx, s, DecodeUnits)
}

func (s *DocumentSource) Requests(ctx context.Context) ([]domain.ServiceRequest, error) {
	return readDocument(ctx, s, DecodeRequests)
}

func (s *DocumentSource) Allocations(ctx context.Context) ([]domain.BudgetAllocation, error) {
	return readDocument(ctx, s, DecodeAllocations)
}

func (s *DocumentSource) Meetings(ctx context.Context) ([]domain.MeetingRecord, error) {
	return readDocument(ctx, s, DecodeMeetings)
}
