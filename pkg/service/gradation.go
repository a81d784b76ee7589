package service

import (
	"context"
	"errors"
	"fmt"

	"gradation/pkg/models"
	"gradation/pkg/repository"
)

type GradationInput struct {
	Title    string `json:"title" binding:"required"`
	Art      string `json:"art"`
	Category string `json:"category"`
	Time     string `json:"time"`
	Fee      string `json:"fee"`
	Tel      string `json:"tel"`
	Address  string `json:"address"`
	Date     string `json:"date" binding:"required"`
}

type CurrentGradation struct {
	Gradation *models.GradationExhibition
	Images    []models.GradationExhibitionImage
}

type RecentGradation struct {
	ID    uint   `json:"id"`
	Title string `json:"title"`
}

func (s *Service) CurrentGradation(ctx context.Context) (*CurrentGradation, error) {
	g, err := s.repo.FindCurrentGradation(ctx)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrNoExhibition
	}
	if err != nil {
		return nil, fmt.Errorf("find current exhibition: %w", err)
	}

	images, err := s.repo.FindGradationImages(ctx, g.ID)
	if err != nil {
		return nil, fmt.Errorf("find exhibition images: %w", err)
	}
	return &CurrentGradation{Gradation: g, Images: images}, nil
}

// RegisterGradation stores a new main exhibition and snapshots the current
// top liked arts into its past-exhibition entries. Both happen in one
// transaction.
func (s *Service) RegisterGradation(ctx context.Context, in GradationInput) (*models.GradationExhibition, error) {
	g := &models.GradationExhibition{
		Title:    in.Title,
		Art:      in.Art,
		Category: in.Category,
		Time:     in.Time,
		Fee:      in.Fee,
		Tel:      in.Tel,
		Address:  in.Address,
		Date:     in.Date,
	}

	var snapshot int
	err := s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		if err := tx.SaveGradation(ctx, g); err != nil {
			return fmt.Errorf("save exhibition: %w", err)
		}

		artIDs, err := tx.FindTopLikedArtIDs(ctx, TopLikedLimit)
		if err != nil {
			return fmt.Errorf("find top liked arts: %w", err)
		}

		entries := make([]models.PastExhibition, len(artIDs))
		for i, id := range artIDs {
			entries[i] = models.PastExhibition{GradationExhibitionID: g.ID, ArtID: id}
		}
		if err := tx.SavePastExhibitions(ctx, entries); err != nil {
			return fmt.Errorf("save past exhibition entries: %w", err)
		}
		snapshot = len(entries)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info().Uint("gradation_id", g.ID).Int("arts", snapshot).Msg("exhibition registered")
	return g, nil
}

func (s *Service) RegisterGradationImage(ctx context.Context, img *models.GradationExhibitionImage) error {
	if err := s.repo.SaveGradationImage(ctx, img); err != nil {
		return fmt.Errorf("save exhibition image: %w", err)
	}
	return nil
}

// EditGradation replaces the whole record; fields missing from g are cleared.
func (s *Service) EditGradation(ctx context.Context, g *models.GradationExhibition) error {
	n, err := s.repo.UpdateGradation(ctx, g)
	if err != nil {
		return fmt.Errorf("update exhibition %d: %w", g.ID, err)
	}
	if n == 0 {
		s.log.Debug().Uint("gradation_id", g.ID).Msg("edit matched no exhibition")
	}
	return nil
}

func (s *Service) RemoveGradationImage(ctx context.Context, id uint) error {
	if err := s.repo.DeleteGradationImage(ctx, id); err != nil {
		return fmt.Errorf("delete exhibition image %d: %w", id, err)
	}
	return nil
}

func (s *Service) RecentGradations(ctx context.Context) ([]RecentGradation, error) {
	gradations, err := s.repo.FindRecentGradations(ctx, RecentLimit)
	if err != nil {
		return nil, fmt.Errorf("find recent exhibitions: %w", err)
	}
	recent := make([]RecentGradation, len(gradations))
	for i, g := range gradations {
		recent[i] = RecentGradation{ID: g.ID, Title: recentTitle(g)}
	}
	return recent, nil
}

// recentTitle prefixes the title with the year taken from the date text.
func recentTitle(g models.GradationExhibition) string {
	year := g.Date
	if len(year) > 4 {
		year = year[:4]
	}
	if year == "" {
		return g.Title
	}
	return year + " " + g.Title
}

func (s *Service) TopLikedArts(ctx context.Context) ([]models.DisplayArt, error) {
	arts, err := s.repo.FindTopLikedArts(ctx, TopLikedLimit)
	if err != nil {
		return nil, fmt.Errorf("find top liked arts: %w", err)
	}
	return arts, nil
}

func (s *Service) PastGradations(ctx context.Context, cursor int) (*Page[models.PastGradation], error) {
	cursor = normalizeCursor(cursor)
	items, err := s.repo.FindPastGradations(ctx, offsetFor(cursor), PageSize)
	if err != nil {
		return nil, fmt.Errorf("find past exhibitions: %w", err)
	}
	total, err := s.repo.CountPastGradations(ctx)
	if err != nil {
		return nil, fmt.Errorf("count past exhibitions: %w", err)
	}
	return &Page[models.PastGradation]{Items: items, Total: total, Cursor: cursor}, nil
}

func (s *Service) ExhibitionArts(ctx context.Context, gradationID uint, cursor int) (*Page[models.DisplayArt], error) {
	cursor = normalizeCursor(cursor)
	items, err := s.repo.FindExhibitionArts(ctx, gradationID, offsetFor(cursor), PageSize)
	if err != nil {
		return nil, fmt.Errorf("find exhibition arts: %w", err)
	}
	total, err := s.repo.CountExhibitionArts(ctx, gradationID)
	if err != nil {
		return nil, fmt.Errorf("count exhibition arts: %w", err)
	}
	return &Page[models.DisplayArt]{Items: items, Total: total, Cursor: cursor}, nil
}
