package repository

import (
	"context"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"gradation/pkg/models"
)

// likeEscaper makes LIKE wildcards in a keyword match literally.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

type UniversityFilter struct {
	Keyword        string
	UniversityName string
	Status         string
	OwnerID        uint
	LikedBy        uint
}

func (r *Repository) FindUniversityByName(ctx context.Context, name string) (*models.University, error) {
	var u models.University
	if err := r.conn(ctx).Where("name = ?", name).First(&u).Error; err != nil {
		return nil, notFound(err)
	}
	return &u, nil
}

func (r *Repository) SaveUniversity(ctx context.Context, u *models.University) error {
	return r.conn(ctx).Create(u).Error
}

func (r *Repository) SaveMajor(ctx context.Context, m *models.Major) error {
	return r.conn(ctx).Omit(clause.Associations).Create(m).Error
}

func (r *Repository) SaveUniversityExhibition(ctx context.Context, e *models.UniversityExhibition) error {
	return r.conn(ctx).Omit(clause.Associations).Create(e).Error
}

func (r *Repository) SaveUniversityExhibitionImages(ctx context.Context, images []models.UniversityExhibitionImage) error {
	if len(images) == 0 {
		return nil
	}
	return r.conn(ctx).Omit(clause.Associations).Create(&images).Error
}

func (r *Repository) FindUniversityImages(ctx context.Context, exhibitionID uint) ([]models.UniversityExhibitionImage, error) {
	images := make([]models.UniversityExhibitionImage, 0)
	err := r.conn(ctx).
		Where("university_exhibition_id = ?", exhibitionID).
		Order("id").
		Find(&images).Error
	return images, err
}

func (r *Repository) FindUniversityImagesByExhibitionIDs(ctx context.Context, ids []uint) ([]models.UniversityExhibitionImage, error) {
	images := make([]models.UniversityExhibitionImage, 0)
	if len(ids) == 0 {
		return images, nil
	}
	err := r.conn(ctx).
		Where("university_exhibition_id IN ?", ids).
		Order("id").
		Find(&images).Error
	return images, err
}

func (r *Repository) FindLikedExhibitionIDs(ctx context.Context, userID uint, ids []uint) ([]uint, error) {
	liked := make([]uint, 0)
	if len(ids) == 0 {
		return liked, nil
	}
	err := r.conn(ctx).
		Model(&models.UniversityLike{}).
		Where("user_id = ? AND university_exhibition_id IN ?", userID, ids).
		Pluck("university_exhibition_id", &liked).Error
	return liked, err
}

type likeCount struct {
	UniversityExhibitionID uint
	Count                  int64
}

func (r *Repository) CountLikesByExhibitionIDs(ctx context.Context, ids []uint) (map[uint]int64, error) {
	counts := make(map[uint]int64, len(ids))
	if len(ids) == 0 {
		return counts, nil
	}
	var rows []likeCount
	err := r.conn(ctx).
		Model(&models.UniversityLike{}).
		Select("university_exhibition_id, COUNT(*) AS count").
		Where("university_exhibition_id IN ?", ids).
		Group("university_exhibition_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		counts[row.UniversityExhibitionID] = row.Count
	}
	return counts, nil
}

func (r *Repository) exhibitionViews(ctx context.Context) *gorm.DB {
	return r.conn(ctx).
		Table("university_exhibitions").
		Select("university_exhibitions.*, universities.name AS university_name, universities.logo_img_name, universities.logo_img_path, majors.name AS major_name").
		Joins("JOIN universities ON universities.id = university_exhibitions.university_id").
		Joins("JOIN majors ON majors.id = university_exhibitions.major_id")
}

func (r *Repository) FindUniversityExhibitions(ctx context.Context, f UniversityFilter) ([]models.UniversityExhibitionView, error) {
	q := r.exhibitionViews(ctx)
	if f.Keyword != "" {
		like := "%" + likeEscaper.Replace(f.Keyword) + "%"
		q = q.Where(`(university_exhibitions.title LIKE ? ESCAPE '\' OR universities.name LIKE ? ESCAPE '\' OR majors.name LIKE ? ESCAPE '\')`, like, like, like)
	}
	if f.UniversityName != "" {
		q = q.Where("universities.name = ?", f.UniversityName)
	}
	if f.Status != "" {
		q = q.Where("university_exhibitions.status = ?", f.Status)
	}
	if f.OwnerID != 0 {
		q = q.Where("university_exhibitions.user_id = ?", f.OwnerID)
	}
	if f.LikedBy != 0 {
		q = q.Joins("JOIN university_likes ON university_likes.university_exhibition_id = university_exhibitions.id").
			Where("university_likes.user_id = ?", f.LikedBy)
	}

	views := make([]models.UniversityExhibitionView, 0)
	err := q.
		Order("university_exhibitions.request_date DESC").
		Order("university_exhibitions.id DESC").
		Scan(&views).Error
	return views, err
}

func (r *Repository) FindExhibitionsByUser(ctx context.Context, userID uint) ([]models.UniversityExhibitionView, error) {
	return r.FindUniversityExhibitions(ctx, UniversityFilter{OwnerID: userID})
}

func (r *Repository) FindLikedExhibitionsByUser(ctx context.Context, userID uint) ([]models.UniversityExhibitionView, error) {
	return r.FindUniversityExhibitions(ctx, UniversityFilter{LikedBy: userID})
}

// SaveUniversityLike inserts the like unless the pair already exists and
// reports whether a row was written.
func (r *Repository) SaveUniversityLike(ctx context.Context, like *models.UniversityLike) (bool, error) {
	res := r.conn(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "university_exhibition_id"}, {Name: "user_id"}},
			DoNothing: true,
		}).
		Create(like)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *Repository) ExistsUniversityLike(ctx context.Context, exhibitionID, userID uint) (bool, error) {
	var count int64
	err := r.conn(ctx).
		Model(&models.UniversityLike{}).
		Where("university_exhibition_id = ? AND user_id = ?", exhibitionID, userID).
		Count(&count).Error
	return count > 0, err
}

func (r *Repository) DeleteUniversityLike(ctx context.Context, exhibitionID, userID uint) error {
	return r.conn(ctx).
		Where("university_exhibition_id = ? AND user_id = ?", exhibitionID, userID).
		Delete(&models.UniversityLike{}).Error
}
