package models

import (
	"time"
)

const (
	StateUpcoming = "upcoming"
	StateOngoing  = "ongoing"

	StatusPending = "pending"

	DefaultLogoImgName = "default-logo.png"
	DefaultLogoImgPath = "assets/images/university/logo"
)

type GradationExhibition struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Title     string    `gorm:"size:200;not null" json:"title"`
	Art       string    `json:"art"`
	Category  string    `gorm:"size:80" json:"category"`
	Time      string    `json:"time"`
	Fee       string    `json:"fee"`
	Tel       string    `gorm:"size:40" json:"tel"`
	Address   string    `json:"address"`
	Date      string    `gorm:"size:40;not null" json:"date"`
	CreatedAt time.Time `gorm:"index" json:"createdAt"`
}

type GradationExhibitionImage struct {
	ID                    uint   `gorm:"primaryKey" json:"id"`
	ImgName               string `gorm:"not null" json:"imgName"`
	ImgPath               string `gorm:"not null" json:"imgPath"`
	GradationExhibitionID uint   `gorm:"not null;index" json:"gradationExhibitionId"`

	GradationExhibition GradationExhibition `gorm:"foreignKey:GradationExhibitionID;constraint:OnDelete:CASCADE" json:"-"`
}

type University struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Name        string `gorm:"size:120;not null;uniqueIndex" json:"name"`
	LogoImgName string `json:"logoImgName"`
	LogoImgPath string `json:"logoImgPath"`
}

type Major struct {
	ID           uint   `gorm:"primaryKey" json:"id"`
	UniversityID uint   `gorm:"not null;index" json:"universityId"`
	Name         string `gorm:"size:120;not null" json:"name"`

	University University `gorm:"foreignKey:UniversityID" json:"-"`
}

type UniversityExhibition struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Title        string    `gorm:"size:200;not null" json:"title"`
	Explanation  string    `json:"explanation"`
	URL          string    `json:"url"`
	StartDate    time.Time `gorm:"not null" json:"startDate"`
	EndDate      *time.Time `json:"endDate"`
	RequestDate  time.Time `gorm:"not null" json:"requestDate"`
	Status       string    `gorm:"size:20;not null;default:'pending'" json:"status"`
	UserID       uint      `gorm:"not null;index" json:"userId"`
	UniversityID uint      `gorm:"not null;index" json:"universityId"`
	MajorID      uint      `gorm:"not null" json:"majorId"`
	CreatedAt    time.Time `json:"createdAt"`

	University University `gorm:"foreignKey:UniversityID" json:"-"`
	Major      Major      `gorm:"foreignKey:MajorID" json:"-"`
}

type UniversityExhibitionImage struct {
	ID                     uint   `gorm:"primaryKey" json:"id"`
	ImgName                string `gorm:"not null" json:"imgName"`
	ImgPath                string `gorm:"not null" json:"imgPath"`
	UniversityExhibitionID uint   `gorm:"not null;index" json:"universityExhibitionId"`

	UniversityExhibition UniversityExhibition `gorm:"foreignKey:UniversityExhibitionID;constraint:OnDelete:CASCADE" json:"-"`
}

// UniversityLike is unique per (exhibition, user); the index is what makes
// concurrent likes safe.
type UniversityLike struct {
	ID                     uint      `gorm:"primaryKey" json:"id"`
	UniversityExhibitionID uint      `gorm:"not null;uniqueIndex:idx_university_like_user" json:"universityExhibitionId" binding:"required"`
	UserID                 uint      `gorm:"not null;uniqueIndex:idx_university_like_user;index" json:"userId" binding:"required"`
	CreatedAt              time.Time `json:"createdAt"`
}

type PastExhibition struct {
	ID                    uint `gorm:"primaryKey"`
	GradationExhibitionID uint `gorm:"not null;uniqueIndex:idx_past_exhibition_art"`
	ArtID                 uint `gorm:"not null;uniqueIndex:idx_past_exhibition_art"`
	CreatedAt             time.Time
}

// Art and ArtLike belong to the artwork service; they are migrated here only
// so the ranking queries have tables to read from.
type Art struct {
	ID          uint   `gorm:"primaryKey"`
	UserID      uint   `gorm:"not null;index"`
	Title       string `gorm:"not null"`
	Category    string `gorm:"size:80"`
	Description string
	ImgName     string
	ImgPath     string
	CreatedAt   time.Time
}

type ArtLike struct {
	ID        uint `gorm:"primaryKey"`
	ArtID     uint `gorm:"not null;uniqueIndex:idx_art_like_user"`
	UserID    uint `gorm:"not null;uniqueIndex:idx_art_like_user"`
	CreatedAt time.Time
}

type DisplayArt struct {
	ID        uint   `json:"id"`
	Title     string `json:"title"`
	Category  string `json:"category"`
	ImgName   string `json:"imgName"`
	ImgPath   string `json:"imgPath"`
	UserID    uint   `json:"userId"`
	LikeCount int64  `json:"likeCount"`
}

type PastGradation struct {
	ID        uint      `json:"id"`
	Title     string    `json:"title"`
	Date      string    `json:"date"`
	CreatedAt time.Time `json:"createdAt"`
	ArtCount  int64     `json:"artCount"`
}

// UniversityExhibitionView is a university exhibition joined with its
// university and major, plus the fields filled in after the query.
type UniversityExhibitionView struct {
	ID           uint      `json:"id"`
	Title        string    `json:"title"`
	Explanation  string    `json:"explanation"`
	URL          string    `json:"url"`
	StartDate    time.Time `json:"startDate"`
	EndDate      *time.Time `json:"endDate"`
	RequestDate  time.Time `json:"requestDate"`
	Status       string    `json:"status"`
	UserID       uint      `json:"userId"`
	UniversityID uint      `json:"universityId"`
	MajorID      uint      `json:"majorId"`

	UniversityName string `json:"universityName"`
	LogoImgName    string `json:"logoImgName"`
	LogoImgPath    string `json:"logoImgPath"`
	MajorName      string `json:"majorName"`

	Images    []UniversityExhibitionImage `gorm:"-" json:"images"`
	Liked     bool                        `gorm:"-" json:"liked"`
	LikeCount int64                       `gorm:"-" json:"likeCount"`
	State     string                      `gorm:"-" json:"state,omitempty"`
}

func All() []interface{} {
	return []interface{}{
		&GradationExhibition{},
		&GradationExhibitionImage{},
		&University{},
		&Major{},
		&UniversityExhibition{},
		&UniversityExhibitionImage{},
		&UniversityLike{},
		&Art{},
		&ArtLike{},
		&PastExhibition{},
	}
}
