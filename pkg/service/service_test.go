package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"gradation/pkg/models"
	"gradation/pkg/repository"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Discard,
		TranslateError: true,
	})
	if err != nil {
		panic("failed to connect test database")
	}
	sqlDB, _ := db.DB()
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(models.All()...))
	return db
}

func setupService(t *testing.T, opts ...Option) (*Service, *gorm.DB) {
	db := setupTestDB(t)
	return New(repository.New(db), zerolog.Nop(), opts...), db
}

func seedArts(db *gorm.DB, n int) []models.Art {
	arts := make([]models.Art, n)
	for i := range arts {
		arts[i] = models.Art{Title: fmt.Sprintf("art-%02d", i), UserID: 1}
	}
	if n > 0 {
		db.Create(&arts)
	}
	return arts
}

func TestRegisterGradationSnapshotsTopLikedArts(t *testing.T) {
	svc, db := setupService(t)
	ctx := context.Background()

	arts := seedArts(db, 60)
	// art-59 gets two likes, art-58 one, so they lead the ranking.
	db.Create(&[]models.ArtLike{
		{ArtID: arts[59].ID, UserID: 1},
		{ArtID: arts[59].ID, UserID: 2},
		{ArtID: arts[58].ID, UserID: 1},
	})

	g, err := svc.RegisterGradation(ctx, GradationInput{Title: "Gradation", Date: "2025-11-20"})
	require.NoError(t, err)
	require.NotZero(t, g.ID)

	var count int64
	db.Model(&models.PastExhibition{}).Where("gradation_exhibition_id = ?", g.ID).Count(&count)
	assert.Equal(t, int64(TopLikedLimit), count)

	page, err := svc.ExhibitionArts(ctx, g.ID, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(TopLikedLimit), page.Total)
	require.Len(t, page.Items, PageSize)
	assert.Equal(t, "art-59", page.Items[0].Title)
	assert.Equal(t, "art-58", page.Items[1].Title)
}

func TestRegisterGradationWithFewArts(t *testing.T) {
	svc, db := setupService(t)
	ctx := context.Background()
	seedArts(db, 7)

	g, err := svc.RegisterGradation(ctx, GradationInput{Title: "Small", Date: "2025-11-20"})
	require.NoError(t, err)

	var count int64
	db.Model(&models.PastExhibition{}).Where("gradation_exhibition_id = ?", g.ID).Count(&count)
	assert.Equal(t, int64(7), count)
}

func TestRegisterGradationRollsBackOnSnapshotFailure(t *testing.T) {
	svc, db := setupService(t)
	ctx := context.Background()
	seedArts(db, 3)
	require.NoError(t, db.Migrator().DropTable(&models.PastExhibition{}))

	_, err := svc.RegisterGradation(ctx, GradationInput{Title: "Broken", Date: "2025-11-20"})
	require.Error(t, err)

	var count int64
	db.Model(&models.GradationExhibition{}).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestCurrentGradation(t *testing.T) {
	svc, db := setupService(t)
	ctx := context.Background()

	_, err := svc.CurrentGradation(ctx)
	assert.ErrorIs(t, err, ErrNoExhibition)

	g, err := svc.RegisterGradation(ctx, GradationInput{Title: "Now", Date: "2025-11-20"})
	require.NoError(t, err)
	require.NoError(t, svc.RegisterGradationImage(ctx, &models.GradationExhibitionImage{ImgName: "hall.png", ImgPath: "img/hall", GradationExhibitionID: g.ID}))
	db.Create(&models.GradationExhibitionImage{ImgName: "other.png", ImgPath: "img", GradationExhibitionID: g.ID + 100})

	current, err := svc.CurrentGradation(ctx)
	require.NoError(t, err)
	assert.Equal(t, g.ID, current.Gradation.ID)
	require.Len(t, current.Images, 1)
	assert.Equal(t, "hall.png", current.Images[0].ImgName)
}

func TestEditGradationVisibleOnlyForMostRecent(t *testing.T) {
	svc, db := setupService(t)
	ctx := context.Background()

	old := models.GradationExhibition{Title: "Old", Date: "2024-11-01", CreatedAt: time.Now().Add(-24 * time.Hour)}
	db.Create(&old)
	latest, err := svc.RegisterGradation(ctx, GradationInput{Title: "Latest", Date: "2025-11-01"})
	require.NoError(t, err)

	require.NoError(t, svc.EditGradation(ctx, &models.GradationExhibition{ID: old.ID, Title: "Old edited", Date: "2024-11-01"}))
	current, err := svc.CurrentGradation(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Latest", current.Gradation.Title)

	require.NoError(t, svc.EditGradation(ctx, &models.GradationExhibition{ID: latest.ID, Title: "Latest edited", Date: "2025-11-01"}))
	current, err = svc.CurrentGradation(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Latest edited", current.Gradation.Title)
}

func TestRemoveGradationImageIsIdempotent(t *testing.T) {
	svc, db := setupService(t)
	ctx := context.Background()

	img := models.GradationExhibitionImage{ImgName: "a.png", ImgPath: "img", GradationExhibitionID: 1}
	db.Omit("GradationExhibition").Create(&img)

	assert.NoError(t, svc.RemoveGradationImage(ctx, img.ID))
	assert.NoError(t, svc.RemoveGradationImage(ctx, img.ID))
	assert.NoError(t, svc.RemoveGradationImage(ctx, 9999))
}

func TestRecentGradations(t *testing.T) {
	svc, db := setupService(t)
	ctx := context.Background()

	base := time.Now()
	for i, title := range []string{"First", "Second", "Third", "Fourth"} {
		db.Create(&models.GradationExhibition{
			Title:     title,
			Date:      fmt.Sprintf("202%d-11-01", i),
			CreatedAt: base.Add(time.Duration(i) * time.Hour),
		})
	}

	recent, err := svc.RecentGradations(ctx)
	require.NoError(t, err)
	require.Len(t, recent, RecentLimit)
	assert.Equal(t, "2023 Fourth", recent[0].Title)
	assert.Equal(t, "2022 Third", recent[1].Title)
	assert.Equal(t, "2021 Second", recent[2].Title)
}

func TestRecentTitle(t *testing.T) {
	assert.Equal(t, "2025 Show", recentTitle(models.GradationExhibition{Title: "Show", Date: "2025-03-01"}))
	assert.Equal(t, "25 Show", recentTitle(models.GradationExhibition{Title: "Show", Date: "25"}))
	assert.Equal(t, "Show", recentTitle(models.GradationExhibition{Title: "Show"}))
}

func TestTopLikedArtsEmpty(t *testing.T) {
	svc, _ := setupService(t)

	arts, err := svc.TopLikedArts(context.Background())
	require.NoError(t, err)
	assert.Empty(t, arts)
}

func TestPastGradationsPagination(t *testing.T) {
	svc, db := setupService(t)
	ctx := context.Background()
	seedArts(db, 2)

	for i := 0; i < PageSize+1; i++ {
		_, err := svc.RegisterGradation(ctx, GradationInput{Title: fmt.Sprintf("g-%d", i), Date: "2025-01-01"})
		require.NoError(t, err)
	}

	first, err := svc.PastGradations(ctx, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, first.Cursor)
	assert.Equal(t, int64(PageSize+1), first.Total)
	assert.Len(t, first.Items, PageSize)
	assert.Equal(t, int64(2), first.Items[0].ArtCount)

	second, err := svc.PastGradations(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, second.Items, 1)
}

func TestExhibitionState(t *testing.T) {
	now := time.Date(2025, 11, 20, 12, 0, 0, 0, time.UTC)

	assert.Equal(t, models.StateUpcoming, ExhibitionState(now, now.Add(time.Second)))
	assert.Equal(t, models.StateOngoing, ExhibitionState(now, now.Add(-time.Second)))
	assert.Equal(t, models.StateOngoing, ExhibitionState(now, now))
}

func universityInput(name string, start time.Time) UniversityExhibitionInput {
	end := start.Add(7 * 24 * time.Hour)
	return UniversityExhibitionInput{
		UniversityName: name,
		MajorName:      "Painting",
		Title:          name + " degree show",
		StartDate:      start,
		EndDate:        &end,
		UserID:         1,
	}
}

func TestRegisterUniversityExhibitionReusesUniversity(t *testing.T) {
	now := time.Date(2025, 11, 20, 12, 0, 0, 0, time.UTC)
	svc, db := setupService(t, WithClock(func() time.Time { return now }))
	ctx := context.Background()

	first, err := svc.RegisterUniversityExhibition(ctx, universityInput("Hongik", now))
	require.NoError(t, err)
	assert.Equal(t, models.DefaultLogoImgName, first.LogoImgName)
	assert.Equal(t, models.DefaultLogoImgPath, first.LogoImgPath)
	assert.Equal(t, now, first.RequestDate)
	assert.Equal(t, models.StatusPending, first.Status)

	db.Model(&models.University{}).Where("id = ?", first.UniversityID).Update("logo_img_name", "hongik.png")

	second, err := svc.RegisterUniversityExhibition(ctx, universityInput("Hongik", now))
	require.NoError(t, err)
	assert.Equal(t, first.UniversityID, second.UniversityID)
	assert.Equal(t, "hongik.png", second.LogoImgName)

	var universities, majors, exhibitions int64
	db.Model(&models.University{}).Count(&universities)
	db.Model(&models.Major{}).Count(&majors)
	db.Model(&models.UniversityExhibition{}).Count(&exhibitions)
	assert.Equal(t, int64(1), universities)
	assert.Equal(t, int64(2), majors)
	assert.Equal(t, int64(2), exhibitions)
}

func TestRegisterUniversityExhibitionRollsBack(t *testing.T) {
	svc, db := setupService(t)
	ctx := context.Background()
	require.NoError(t, db.Migrator().DropTable(&models.UniversityExhibition{}))

	_, err := svc.RegisterUniversityExhibition(ctx, universityInput("Yonsei", time.Now()))
	require.Error(t, err)

	var universities, majors int64
	db.Model(&models.University{}).Count(&universities)
	db.Model(&models.Major{}).Count(&majors)
	assert.Equal(t, int64(0), universities)
	assert.Equal(t, int64(0), majors)
}

func TestUniversityExhibitionsEnrichment(t *testing.T) {
	now := time.Date(2025, 11, 20, 12, 0, 0, 0, time.UTC)
	svc, _ := setupService(t, WithClock(func() time.Time { return now }))
	ctx := context.Background()

	in := universityInput("Hongik", now.Add(48*time.Hour))
	in.Images = []ImageInput{{ImgName: "a.png", ImgPath: "img"}, {ImgName: "", ImgPath: "img"}}
	future, err := svc.RegisterUniversityExhibition(ctx, in)
	require.NoError(t, err)
	assert.Equal(t, 1, future.Images)

	past, err := svc.RegisterUniversityExhibition(ctx, universityInput("Yonsei", now.Add(-48*time.Hour)))
	require.NoError(t, err)

	_, err = svc.RegisterLike(ctx, &models.UniversityLike{UniversityExhibitionID: past.ExhibitionID, UserID: 5})
	require.NoError(t, err)

	views, err := svc.UniversityExhibitions(ctx, UniversityListFilter{UserID: 5})
	require.NoError(t, err)
	require.Len(t, views, 2)

	byID := map[uint]models.UniversityExhibitionView{}
	for _, v := range views {
		byID[v.ID] = v
	}
	assert.Equal(t, models.StateUpcoming, byID[future.ExhibitionID].State)
	assert.Len(t, byID[future.ExhibitionID].Images, 1)
	assert.False(t, byID[future.ExhibitionID].Liked)

	assert.Equal(t, models.StateOngoing, byID[past.ExhibitionID].State)
	assert.Empty(t, byID[past.ExhibitionID].Images)
	assert.True(t, byID[past.ExhibitionID].Liked)
	assert.Equal(t, int64(1), byID[past.ExhibitionID].LikeCount)

	filtered, err := svc.UniversityExhibitions(ctx, UniversityListFilter{Keyword: "Yonsei"})
	require.NoError(t, err)
	require.Len(t, filtered, 1)
	assert.False(t, filtered[0].Liked)
}

func TestLikeLifecycle(t *testing.T) {
	svc, db := setupService(t)
	ctx := context.Background()
	like := models.UniversityLike{UniversityExhibitionID: 3, UserID: 9}

	liked, err := svc.IsLiked(ctx, like)
	require.NoError(t, err)
	assert.False(t, liked)

	already, err := svc.RegisterLike(ctx, &models.UniversityLike{UniversityExhibitionID: 3, UserID: 9})
	require.NoError(t, err)
	assert.False(t, already)

	already, err = svc.RegisterLike(ctx, &models.UniversityLike{UniversityExhibitionID: 3, UserID: 9})
	require.NoError(t, err)
	assert.True(t, already)

	var count int64
	db.Model(&models.UniversityLike{}).Count(&count)
	assert.Equal(t, int64(1), count)

	liked, err = svc.IsLiked(ctx, like)
	require.NoError(t, err)
	assert.True(t, liked)

	require.NoError(t, svc.RemoveLike(ctx, like))
	require.NoError(t, svc.RemoveLike(ctx, like))
	liked, err = svc.IsLiked(ctx, like)
	require.NoError(t, err)
	assert.False(t, liked)
}

func TestSubmissionStatusAndLikedExhibitions(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()

	in := universityInput("Hongik", time.Now())
	in.UserID = 4
	mine, err := svc.RegisterUniversityExhibition(ctx, in)
	require.NoError(t, err)
	_, err = svc.RegisterUniversityExhibition(ctx, universityInput("Yonsei", time.Now()))
	require.NoError(t, err)

	status, err := svc.SubmissionStatus(ctx, 4)
	require.NoError(t, err)
	require.Len(t, status, 1)
	assert.Equal(t, mine.ExhibitionID, status[0].ID)
	assert.Equal(t, models.StatusPending, status[0].Status)

	_, err = svc.RegisterLike(ctx, &models.UniversityLike{UniversityExhibitionID: mine.ExhibitionID, UserID: 8})
	require.NoError(t, err)
	liked, err := svc.LikedExhibitions(ctx, 8)
	require.NoError(t, err)
	require.Len(t, liked, 1)
	assert.Equal(t, "Hongik", liked[0].UniversityName)
	assert.True(t, liked[0].Liked)
	assert.Equal(t, int64(1), liked[0].LikeCount)
	assert.NotNil(t, liked[0].Images)

	none, err := svc.LikedExhibitions(ctx, 99)
	require.NoError(t, err)
	assert.Empty(t, none)
}
