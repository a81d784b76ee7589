// Package service implements the exhibition workflows on top of the
// repository: main exhibition publishing with its top-50 snapshot, university
// submissions, and likes.
package service

import (
	"errors"
	"time"

	"github.com/rs/zerolog"

	"gradation/pkg/repository"
)

const (
	// PageSize is the fixed page length for every cursor-paginated listing.
	PageSize = 12

	TopLikedLimit = 50
	RecentLimit   = 3
)

var ErrNoExhibition = errors.New("no exhibition registered")

type Service struct {
	repo *repository.Repository
	log  zerolog.Logger
	now  func() time.Time
}

type Option func(*Service)

// WithClock replaces time.Now, used for state derivation and request dates.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

func New(repo *repository.Repository, log zerolog.Logger, opts ...Option) *Service {
	s := &Service{
		repo: repo,
		log:  log,
		now:  time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Page is one page of a cursor listing. Cursor is 1-based.
type Page[T any] struct {
	Items  []T
	Total  int64
	Cursor int
}

func normalizeCursor(cursor int) int {
	if cursor < 1 {
		return 1
	}
	return cursor
}

func offsetFor(cursor int) int {
	return (cursor - 1) * PageSize
}
