package api

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"gradation/pkg/models"
	"gradation/pkg/service"
)

// registerUniversity answers 409 for any registration failure, echoing the
// submission back.
func (h *Handler) registerUniversity(c *gin.Context) {
	var input service.UniversityExhibitionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, err)
		return
	}

	reg, err := h.svc.RegisterUniversityExhibition(c.Request.Context(), input)
	if err != nil {
		h.log.Warn().Err(err).Str("university", input.UniversityName).Msg("university registration failed")
		_ = c.Error(err)
		respondError(c, http.StatusConflict, err.Error(), gin.H{"status": input})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "registration completed",
		"status":  reg,
	})
}

// getUniversityExhibitions accepts an optional filter body.
func (h *Handler) getUniversityExhibitions(c *gin.Context) {
	var filter service.UniversityListFilter
	if err := c.ShouldBindJSON(&filter); err != nil && !errors.Is(err, io.EOF) {
		badRequest(c, err)
		return
	}

	views, err := h.svc.UniversityExhibitions(c.Request.Context(), filter)
	if err != nil {
		h.failure(c, err, gin.H{"filter": filter})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"university": views,
		"message":    "university exhibitions found",
	})
}

func (h *Handler) getUniversityImages(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	images, err := h.svc.UniversityImages(c.Request.Context(), id)
	if err != nil {
		h.failure(c, err, gin.H{"universityExhibitionId": id})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"images":  images,
		"message": "images found",
	})
}

func (h *Handler) registerUniversityImages(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	var request struct {
		Images []service.ImageInput `json:"images" binding:"required"`
	}
	if err := c.ShouldBindJSON(&request); err != nil {
		badRequest(c, err)
		return
	}

	images, err := h.svc.RegisterUniversityImages(c.Request.Context(), id, request.Images)
	if err != nil {
		h.failure(c, err, gin.H{"universityExhibitionId": id, "images": request.Images})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"images":  images,
		"message": "images registered",
	})
}

func (h *Handler) registerLike(c *gin.Context) {
	var like models.UniversityLike
	if err := c.ShouldBindJSON(&like); err != nil {
		badRequest(c, err)
		return
	}
	like.ID = 0

	already, err := h.svc.RegisterLike(c.Request.Context(), &like)
	if err != nil {
		h.failure(c, err, gin.H{"status": like})
		return
	}

	message := "like registered"
	if already {
		message = "already liked"
	}
	c.JSON(http.StatusOK, gin.H{
		"message":      message,
		"status":       like,
		"isLiked":      true,
		"alreadyLiked": already,
	})
}

func (h *Handler) isLiked(c *gin.Context) {
	var like models.UniversityLike
	if err := c.ShouldBindJSON(&like); err != nil {
		badRequest(c, err)
		return
	}

	liked, err := h.svc.IsLiked(c.Request.Context(), like)
	if err != nil {
		h.failure(c, err, gin.H{"status": like})
		return
	}
	message := "not liked"
	if liked {
		message = "liked"
	}
	c.JSON(http.StatusOK, gin.H{
		"message": message,
		"isLiked": liked,
	})
}

func (h *Handler) removeLike(c *gin.Context) {
	var like models.UniversityLike
	if err := c.ShouldBindJSON(&like); err != nil {
		badRequest(c, err)
		return
	}

	if err := h.svc.RemoveLike(c.Request.Context(), like); err != nil {
		h.failure(c, err, gin.H{"status": like})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "like removed",
		"status":  like,
	})
}

func (h *Handler) getSubmissionStatus(c *gin.Context) {
	userID, ok := idParam(c, "id")
	if !ok {
		return
	}
	views, err := h.svc.SubmissionStatus(c.Request.Context(), userID)
	if err != nil {
		h.failure(c, err, gin.H{"userId": userID})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":    "submission status found",
		"statusList": views,
	})
}

func (h *Handler) getLikedExhibitions(c *gin.Context) {
	userID, ok := idParam(c, "id")
	if !ok {
		return
	}
	views, err := h.svc.LikedExhibitions(c.Request.Context(), userID)
	if err != nil {
		h.failure(c, err, gin.H{"userId": userID})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":          "liked exhibitions found",
		"likedExhibitions": views,
	})
}
