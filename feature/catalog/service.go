package catalog

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"story-manager/core/library"
	"story-manager/core/storage"
	"story-manager/feature/catalog/frotz"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// ErrGameNotFound is returned for unknown game ids.
var ErrGameNotFound = errors.New("game not found")

// Service serves the effective detection table.
type Service struct {
	client storage.Client
	bucket string
	lib    library.Config
	logger *zap.Logger

	mu       sync.RWMutex
	table    *frotz.Table
	overlay  bool
	loadedAt time.Time
	sf       singleflight.Group
}

// NewService creates a new catalog service.
func NewService(client storage.Client, bucket string, lib library.Config, logger *zap.Logger) *Service {
	return &Service{
		client: client,
		bucket: bucket,
		lib:    lib,
		logger: logger,
	}
}

type loaded struct {
	table   *frotz.Table
	overlay bool
}

// Table returns the built-in table merged with the catalog object. The result
// is cached for the configured TTL.
func (s *Service) Table(ctx context.Context) (*frotz.Table, error) {
	l, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	return l.table, nil
}

func (s *Service) load(ctx context.Context) (loaded, error) {
	s.mu.RLock()
	if s.table != nil && time.Since(s.loadedAt) < s.lib.CacheTTL() {
		l := loaded{table: s.table, overlay: s.overlay}
		s.mu.RUnlock()
		return l, nil
	}
	s.mu.RUnlock()

	v, err, _ := s.sf.Do("table", func() (interface{}, error) {
		overlay, found, err := LoadOverlay(ctx, s.client, s.bucket, s.lib.CatalogObject)
		if err != nil {
			return nil, err
		}
		l := loaded{table: frotz.BuiltinTable().Merge(overlay), overlay: found}

		s.mu.Lock()
		s.table, s.overlay, s.loadedAt = l.table, l.overlay, time.Now()
		s.mu.Unlock()

		s.logger.Debug("Catalog loaded",
			zap.Bool("overlay", found),
			zap.Int("games", len(l.table.Descriptors)),
			zap.Int("fingerprints", len(l.table.Games)))
		return l, nil
	})
	if err != nil {
		return loaded{}, err
	}
	return v.(loaded), nil
}

// Invalidate drops the cached table.
func (s *Service) Invalidate() {
	s.mu.Lock()
	s.table = nil
	s.mu.Unlock()
}

// List returns every game with its fingerprint count.
func (s *Service) List(ctx context.Context) ([]GameSummary, error) {
	t, err := s.Table(ctx)
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int, len(t.Descriptors))
	for _, g := range t.Games {
		counts[g.GameID]++
	}

	out := make([]GameSummary, 0, len(t.Descriptors))
	for _, d := range t.Descriptors {
		out = append(out, GameSummary{GameID: d.GameID, Description: d.Description, Fingerprints: counts[d.GameID]})
	}
	return out, nil
}

// Game returns a descriptor and its fingerprint records.
func (s *Service) Game(ctx context.Context, id string) (*GameDetail, error) {
	t, err := s.Table(ctx)
	if err != nil {
		return nil, err
	}

	d, ok := t.FindGame(id)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrGameNotFound, id)
	}
	games := t.GamesFor(id)
	if games == nil {
		games = []frotz.GameDescription{}
	}
	return &GameDetail{PlainGameDescriptor: d, Fingerprints: games}, nil
}

// Validate checks the effective table.
func (s *Service) Validate(ctx context.Context) (*ValidationReport, error) {
	start := time.Now()
	l, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	problems := l.table.Validate()
	if problems == nil {
		problems = []frotz.Problem{}
	}

	report := &ValidationReport{
		Status:       StatusPass,
		OverlayFound: l.overlay,
		Games:        len(l.table.Descriptors),
		Fingerprints: len(l.table.Games),
		Problems:     problems,
	}
	switch {
	case len(problems) > 0:
		report.Status = StatusFail
	case !l.overlay:
		report.Status = StatusWarning
	}
	report.ExecutionTime = time.Since(start).String()
	return report, nil
}

// Detect identifies a story file against the effective table.
func (s *Service) Detect(ctx context.Context, filename string, r io.ReadSeeker) (*frotz.DetectedGame, error) {
	t, err := s.Table(ctx)
	if err != nil {
		return nil, err
	}
	return frotz.NewDetector(t).Detect(filename, r)
}
