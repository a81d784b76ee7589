package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gradation/pkg/models"
	"gradation/pkg/repository"
)

type ImageInput struct {
	ImgName string `json:"imgName"`
	ImgPath string `json:"imgPath"`
}

type UniversityExhibitionInput struct {
	UniversityName string       `json:"universityName" binding:"required"`
	MajorName      string       `json:"majorName" binding:"required"`
	Title          string       `json:"title" binding:"required"`
	Explanation    string       `json:"explanation"`
	URL            string       `json:"url"`
	StartDate      time.Time    `json:"startDate" binding:"required"`
	EndDate        *time.Time   `json:"endDate"`
	UserID         uint         `json:"userId" binding:"required"`
	Images         []ImageInput `json:"images"`
}

// UniversityRegistration is what a submission resolved to once stored.
type UniversityRegistration struct {
	ExhibitionID   uint      `json:"id"`
	UniversityID   uint      `json:"universityId"`
	UniversityName string    `json:"universityName"`
	LogoImgName    string    `json:"logoImgName"`
	LogoImgPath    string    `json:"logoImgPath"`
	MajorID        uint      `json:"majorId"`
	MajorName      string    `json:"majorName"`
	Title          string    `json:"title"`
	RequestDate    time.Time `json:"requestDate"`
	Status         string    `json:"status"`
	Images         int       `json:"images"`
}

type UniversityListFilter struct {
	Keyword        string `json:"keyword"`
	UniversityName string `json:"universityName"`
	Status         string `json:"status"`
	UserID         uint   `json:"userId"`
}

// RegisterUniversityExhibition stores a submission, reusing the university
// row (and its logo) when the name is already known. University, major,
// exhibition and images are written in one transaction.
func (s *Service) RegisterUniversityExhibition(ctx context.Context, in UniversityExhibitionInput) (*UniversityRegistration, error) {
	var reg *UniversityRegistration
	err := s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		university, err := tx.FindUniversityByName(ctx, in.UniversityName)
		switch {
		case errors.Is(err, repository.ErrNotFound):
			university = &models.University{
				Name:        in.UniversityName,
				LogoImgName: models.DefaultLogoImgName,
				LogoImgPath: models.DefaultLogoImgPath,
			}
			if err := tx.SaveUniversity(ctx, university); err != nil {
				return fmt.Errorf("save university: %w", err)
			}
		case err != nil:
			return fmt.Errorf("find university: %w", err)
		}

		major := &models.Major{UniversityID: university.ID, Name: in.MajorName}
		if err := tx.SaveMajor(ctx, major); err != nil {
			return fmt.Errorf("save major: %w", err)
		}

		exhibition := &models.UniversityExhibition{
			Title:        in.Title,
			Explanation:  in.Explanation,
			URL:          in.URL,
			StartDate:    in.StartDate,
			EndDate:      in.EndDate,
			RequestDate:  s.now(),
			Status:       models.StatusPending,
			UserID:       in.UserID,
			UniversityID: university.ID,
			MajorID:      major.ID,
		}
		if err := tx.SaveUniversityExhibition(ctx, exhibition); err != nil {
			return fmt.Errorf("save university exhibition: %w", err)
		}

		images := universityImages(exhibition.ID, in.Images)
		if err := tx.SaveUniversityExhibitionImages(ctx, images); err != nil {
			return fmt.Errorf("save university exhibition images: %w", err)
		}

		reg = &UniversityRegistration{
			ExhibitionID:   exhibition.ID,
			UniversityID:   university.ID,
			UniversityName: university.Name,
			LogoImgName:    university.LogoImgName,
			LogoImgPath:    university.LogoImgPath,
			MajorID:        major.ID,
			MajorName:      major.Name,
			Title:          exhibition.Title,
			RequestDate:    exhibition.RequestDate,
			Status:         exhibition.Status,
			Images:         len(images),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return reg, nil
}

// RegisterUniversityImages attaches images to an exhibition. Entries without
// both a name and a path are skipped.
func (s *Service) RegisterUniversityImages(ctx context.Context, exhibitionID uint, in []ImageInput) ([]models.UniversityExhibitionImage, error) {
	images := universityImages(exhibitionID, in)
	if err := s.repo.SaveUniversityExhibitionImages(ctx, images); err != nil {
		return nil, fmt.Errorf("save university exhibition images: %w", err)
	}
	return images, nil
}

func universityImages(exhibitionID uint, in []ImageInput) []models.UniversityExhibitionImage {
	images := make([]models.UniversityExhibitionImage, 0, len(in))
	for _, img := range in {
		if img.ImgName == "" || img.ImgPath == "" {
			continue
		}
		images = append(images, models.UniversityExhibitionImage{
			ImgName:                img.ImgName,
			ImgPath:                img.ImgPath,
			UniversityExhibitionID: exhibitionID,
		})
	}
	return images
}

// UniversityExhibitions lists submissions and fills images, like state and
// exhibition state with one batched query per concern.
func (s *Service) UniversityExhibitions(ctx context.Context, f UniversityListFilter) ([]models.UniversityExhibitionView, error) {
	views, err := s.repo.FindUniversityExhibitions(ctx, repository.UniversityFilter{
		Keyword:        f.Keyword,
		UniversityName: f.UniversityName,
		Status:         f.Status,
	})
	if err != nil {
		return nil, fmt.Errorf("find university exhibitions: %w", err)
	}
	if err := s.enrich(ctx, views, f.UserID); err != nil {
		return nil, err
	}
	return views, nil
}

func (s *Service) enrich(ctx context.Context, views []models.UniversityExhibitionView, userID uint) error {
	ids := make([]uint, len(views))
	for i, v := range views {
		ids[i] = v.ID
	}

	images, err := s.repo.FindUniversityImagesByExhibitionIDs(ctx, ids)
	if err != nil {
		return fmt.Errorf("find university exhibition images: %w", err)
	}
	byExhibition := make(map[uint][]models.UniversityExhibitionImage, len(views))
	for _, img := range images {
		byExhibition[img.UniversityExhibitionID] = append(byExhibition[img.UniversityExhibitionID], img)
	}

	liked := make(map[uint]bool)
	if userID != 0 {
		likedIDs, err := s.repo.FindLikedExhibitionIDs(ctx, userID, ids)
		if err != nil {
			return fmt.Errorf("find liked exhibitions: %w", err)
		}
		for _, id := range likedIDs {
			liked[id] = true
		}
	}

	counts, err := s.repo.CountLikesByExhibitionIDs(ctx, ids)
	if err != nil {
		return fmt.Errorf("count exhibition likes: %w", err)
	}

	now := s.now()
	for i := range views {
		v := &views[i]
		v.Images = byExhibition[v.ID]
		if v.Images == nil {
			v.Images = []models.UniversityExhibitionImage{}
		}
		v.Liked = liked[v.ID]
		v.LikeCount = counts[v.ID]
		v.State = ExhibitionState(now, v.StartDate)
	}
	return nil
}

// ExhibitionState is upcoming strictly before the start date and ongoing
// from the start instant on.
func ExhibitionState(now, start time.Time) string {
	if now.Before(start) {
		return models.StateUpcoming
	}
	return models.StateOngoing
}

func (s *Service) UniversityImages(ctx context.Context, exhibitionID uint) ([]models.UniversityExhibitionImage, error) {
	images, err := s.repo.FindUniversityImages(ctx, exhibitionID)
	if err != nil {
		return nil, fmt.Errorf("find university exhibition images: %w", err)
	}
	return images, nil
}

// RegisterLike records the like and reports whether the pair already existed.
func (s *Service) RegisterLike(ctx context.Context, like *models.UniversityLike) (bool, error) {
	created, err := s.repo.SaveUniversityLike(ctx, like)
	if err != nil {
		return false, fmt.Errorf("save like: %w", err)
	}
	return !created, nil
}

func (s *Service) IsLiked(ctx context.Context, like models.UniversityLike) (bool, error) {
	ok, err := s.repo.ExistsUniversityLike(ctx, like.UniversityExhibitionID, like.UserID)
	if err != nil {
		return false, fmt.Errorf("check like: %w", err)
	}
	return ok, nil
}

func (s *Service) RemoveLike(ctx context.Context, like models.UniversityLike) error {
	if err := s.repo.DeleteUniversityLike(ctx, like.UniversityExhibitionID, like.UserID); err != nil {
		return fmt.Errorf("delete like: %w", err)
	}
	return nil
}

func (s *Service) SubmissionStatus(ctx context.Context, userID uint) ([]models.UniversityExhibitionView, error) {
	views, err := s.repo.FindExhibitionsByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("find submissions of user %d: %w", userID, err)
	}
	if err := s.enrich(ctx, views, userID); err != nil {
		return nil, err
	}
	return views, nil
}

func (s *Service) LikedExhibitions(ctx context.Context, userID uint) ([]models.UniversityExhibitionView, error) {
	views, err := s.repo.FindLikedExhibitionsByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("find liked exhibitions of user %d: %w", userID, err)
	}
	if err := s.enrich(ctx, views, userID); err != nil {
		return nil, err
	}
	return views, nil
}
