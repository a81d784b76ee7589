package repository

import (
	"context"

	"gorm.io/gorm/clause"

	"gradation/pkg/models"
)

// FindCurrentGradation returns the most recently created exhibition.
func (r *Repository) FindCurrentGradation(ctx context.Context) (*models.GradationExhibition, error) {
	var g models.GradationExhibition
	err := r.conn(ctx).
		Order("created_at DESC").
		Order("id DESC").
		First(&g).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &g, nil
}

func (r *Repository) FindGradationImages(ctx context.Context, gradationID uint) ([]models.GradationExhibitionImage, error) {
	images := make([]models.GradationExhibitionImage, 0)
	err := r.conn(ctx).
		Where("gradation_exhibition_id = ?", gradationID).
		Order("id").
		Find(&images).Error
	return images, err
}

func (r *Repository) SaveGradation(ctx context.Context, g *models.GradationExhibition) error {
	return r.conn(ctx).Create(g).Error
}

func (r *Repository) SaveGradationImage(ctx context.Context, img *models.GradationExhibitionImage) error {
	return r.conn(ctx).Omit(clause.Associations).Create(img).Error
}

// UpdateGradation overwrites every column of the row with g.ID, zero values
// included.
func (r *Repository) UpdateGradation(ctx context.Context, g *models.GradationExhibition) (int64, error) {
	res := r.conn(ctx).
		Model(&models.GradationExhibition{ID: g.ID}).
		Select("*").
		Omit("id", "created_at").
		Updates(g)
	return res.RowsAffected, res.Error
}

func (r *Repository) DeleteGradationImage(ctx context.Context, id uint) error {
	return r.conn(ctx).Delete(&models.GradationExhibitionImage{}, id).Error
}

func (r *Repository) FindRecentGradations(ctx context.Context, limit int) ([]models.GradationExhibition, error) {
	gradations := make([]models.GradationExhibition, 0, limit)
	err := r.conn(ctx).
		Order("created_at DESC").
		Order("id DESC").
		Limit(limit).
		Find(&gradations).Error
	return gradations, err
}

// FindPastGradations lists exhibitions that own snapshot entries, newest first.
func (r *Repository) FindPastGradations(ctx context.Context, offset, limit int) ([]models.PastGradation, error) {
	past := make([]models.PastGradation, 0, limit)
	err := r.conn(ctx).
		Table("gradation_exhibitions").
		Select("gradation_exhibitions.id, gradation_exhibitions.title, gradation_exhibitions.date, gradation_exhibitions.created_at, COUNT(past_exhibitions.id) AS art_count").
		Joins("JOIN past_exhibitions ON past_exhibitions.gradation_exhibition_id = gradation_exhibitions.id").
		Group("gradation_exhibitions.id").
		Order("gradation_exhibitions.created_at DESC").
		Order("gradation_exhibitions.id DESC").
		Offset(offset).
		Limit(limit).
		Scan(&past).Error
	return past, err
}

func (r *Repository) CountPastGradations(ctx context.Context) (int64, error) {
	var count int64
	err := r.conn(ctx).
		Model(&models.PastExhibition{}).
		Distinct("gradation_exhibition_id").
		Count(&count).Error
	return count, err
}
