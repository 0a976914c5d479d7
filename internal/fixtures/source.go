package fixtures

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"souvenirspartan/internal/catalog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"golang.org/x/sync/semaphore"
)

const Name = "local"

var tracer = otel.Tracer("souvenirspartan/internal/fixtures")

type document struct {
	Category catalog.Category  `json:"category"`
	Products []catalog.Product `json:"products"`
}

// Source serves <category>.json fixtures. Reads go through a fixed-size pool so a slow
// store cannot tie up every request goroutine.
type Source struct {
	store   Store
	readers *semaphore.Weighted
}

func NewSource(store Store, readers int) *Source {
	if readers < 1 {
		readers = 1
	}
	return &Source{store: store, readers: semaphore.NewWeighted(int64(readers))}
}

func (s *Source) Name() string { return Name }

func (s *Source) Label() string { return "local" }

// List returns an empty listing when the fixture is absent; any other failure is returned.
func (s *Source) List(ctx context.Context, category catalog.Category, page int) (catalog.Listing, error) {
	doc, err := s.load(ctx, category)
	if errors.Is(err, ErrNotFound) {
		return catalog.Empty(category), nil
	}
	if err != nil {
		return catalog.Listing{}, err
	}
	if doc.Category != "" {
		category = doc.Category
	}
	return catalog.Paginate(category, doc.Products, page), nil
}

func (s *Source) Ready(ctx context.Context) error {
	return s.store.Ready(ctx)
}

func (s *Source) load(ctx context.Context, category catalog.Category) (document, error) {
	ctx, span := tracer.Start(ctx, "fixtures.read")
	defer span.End()
	span.SetAttributes(attribute.String("fixtures.category", string(category)))

	doc, err := s.read(ctx, string(category)+".json")
	if err != nil && !errors.Is(err, ErrNotFound) {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	return doc, err
}

func (s *Source) read(ctx context.Context, key string) (document, error) {
	if err := s.readers.Acquire(ctx, 1); err != nil {
		return document{}, fmt.Errorf("wait for fixture reader: %w", err)
	}
	defer s.readers.Release(1)

	r, err := s.store.Get(ctx, key)
	if err != nil {
		return document{}, err
	}
	defer func() {
		_ = r.Close()
	}()

	var doc document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return document{}, fmt.Errorf("decode fixture %s: %w", key, err)
	}
	return doc, nil
}
