package repository

import (
	"context"

	"gradation/pkg/models"
)

const displayArtColumns = "arts.id, arts.title, arts.category, arts.img_name, arts.img_path, arts.user_id, COUNT(art_likes.id) AS like_count"

// FindTopLikedArts ranks arts by like count, ties broken by id. Arts without
// likes are still eligible.
func (r *Repository) FindTopLikedArts(ctx context.Context, limit int) ([]models.DisplayArt, error) {
	arts := make([]models.DisplayArt, 0, limit)
	err := r.conn(ctx).
		Table("arts").
		Select(displayArtColumns).
		Joins("LEFT JOIN art_likes ON art_likes.art_id = arts.id").
		Group("arts.id").
		Order("like_count DESC").
		Order("arts.id ASC").
		Limit(limit).
		Scan(&arts).Error
	return arts, err
}

func (r *Repository) FindTopLikedArtIDs(ctx context.Context, limit int) ([]uint, error) {
	arts, err := r.FindTopLikedArts(ctx, limit)
	if err != nil {
		return nil, err
	}
	ids := make([]uint, len(arts))
	for i, a := range arts {
		ids[i] = a.ID
	}
	return ids, nil
}

func (r *Repository) SavePastExhibitions(ctx context.Context, entries []models.PastExhibition) error {
	if len(entries) == 0 {
		return nil
	}
	return r.conn(ctx).Create(&entries).Error
}

func (r *Repository) FindExhibitionArts(ctx context.Context, gradationID uint, offset, limit int) ([]models.DisplayArt, error) {
	arts := make([]models.DisplayArt, 0, limit)
	err := r.conn(ctx).
		Table("past_exhibitions").
		Select(displayArtColumns).
		Joins("JOIN arts ON arts.id = past_exhibitions.art_id").
		Joins("LEFT JOIN art_likes ON art_likes.art_id = arts.id").
		Where("past_exhibitions.gradation_exhibition_id = ?", gradationID).
		Group("past_exhibitions.id, arts.id").
		Order("past_exhibitions.id ASC").
		Offset(offset).
		Limit(limit).
		Scan(&arts).Error
	return arts, err
}

func (r *Repository) CountExhibitionArts(ctx context.Context, gradationID uint) (int64, error) {
	var count int64
	err := r.conn(ctx).
		Model(&models.PastExhibition{}).
		Where("gradation_exhibition_id = ?", gradationID).
		Count(&count).Error
	return count, err
}
