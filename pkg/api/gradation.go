package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"gradation/pkg/models"
	"gradation/pkg/service"
)

func (h *Handler) getCurrentGradation(c *gin.Context) {
	current, err := h.svc.CurrentGradation(c.Request.Context())
	if errors.Is(err, service.ErrNoExhibition) {
		respondError(c, http.StatusConflict, "failed to find the current exhibition", nil)
		return
	}
	if err != nil {
		h.failure(c, err, nil)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"gradation": current.Gradation,
		"images":    current.Images,
		"message":   "current exhibition found",
	})
}

func (h *Handler) registerGradation(c *gin.Context) {
	var input service.GradationInput
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, err)
		return
	}

	g, err := h.svc.RegisterGradation(c.Request.Context(), input)
	if err != nil {
		h.failure(c, err, gin.H{"input": input})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":   "exhibition registered",
		"gradation": g,
	})
}

func (h *Handler) registerGradationImage(c *gin.Context) {
	var request struct {
		ImgName               string `json:"imgName" binding:"required"`
		ImgPath               string `json:"imgPath" binding:"required"`
		GradationExhibitionID uint   `json:"gradationExhibitionId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&request); err != nil {
		badRequest(c, err)
		return
	}

	img := &models.GradationExhibitionImage{
		ImgName:               request.ImgName,
		ImgPath:               request.ImgPath,
		GradationExhibitionID: request.GradationExhibitionID,
	}
	if err := h.svc.RegisterGradationImage(c.Request.Context(), img); err != nil {
		h.failure(c, err, gin.H{"image": request})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "exhibition image registered",
		"image":   img,
	})
}

// modifyGradation replaces the exhibition and answers with whatever is current
// afterwards, or an empty object when nothing is registered.
func (h *Handler) modifyGradation(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	var g models.GradationExhibition
	if err := c.ShouldBindJSON(&g); err != nil {
		badRequest(c, err)
		return
	}
	g.ID = id

	ctx := c.Request.Context()
	if err := h.svc.EditGradation(ctx, &g); err != nil {
		h.failure(c, err, gin.H{"gradation": g})
		return
	}

	current, err := h.svc.CurrentGradation(ctx)
	if errors.Is(err, service.ErrNoExhibition) {
		c.JSON(http.StatusOK, models.GradationExhibition{})
		return
	}
	if err != nil {
		h.failure(c, err, nil)
		return
	}
	c.JSON(http.StatusOK, current.Gradation)
}

func (h *Handler) deleteGradationImage(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	if err := h.svc.RemoveGradationImage(c.Request.Context(), id); err != nil {
		h.failure(c, err, gin.H{"id": id})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "exhibition image deleted"})
}

func (h *Handler) getRecentGradations(c *gin.Context) {
	recent, err := h.svc.RecentGradations(c.Request.Context())
	if err != nil {
		h.failure(c, err, nil)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"exhibitions": recent,
		"message":     "recent exhibitions found",
	})
}

func (h *Handler) getTopLikedArts(c *gin.Context) {
	arts, err := h.svc.TopLikedArts(c.Request.Context())
	if err != nil {
		h.failure(c, err, nil)
		return
	}
	if len(arts) == 0 {
		respondError(c, http.StatusNotFound, "no liked arts found", nil)
		return
	}
	c.JSON(http.StatusOK, arts)
}

func (h *Handler) getPastGradations(c *gin.Context) {
	cursor := cursorQuery(c)
	page, err := h.svc.PastGradations(c.Request.Context(), cursor)
	if err != nil {
		h.failure(c, err, gin.H{"cursor": cursor})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"exhibitions": page.Items,
		"contents":    page.Total,
		"cursor":      page.Cursor,
		"message":     "past exhibitions found",
	})
}

func (h *Handler) getExhibitionArts(c *gin.Context) {
	id, ok := idParam(c, "exhibitionId")
	if !ok {
		return
	}
	cursor := cursorQuery(c)
	echo := gin.H{"exhibitionId": id, "cursor": cursor}

	page, err := h.svc.ExhibitionArts(c.Request.Context(), id, cursor)
	if err != nil {
		h.failure(c, err, echo)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"exhibitionId": id,
		"cursor":       page.Cursor,
		"arts":         page.Items,
		"contents":     page.Total,
		"message":      "past exhibition arts found",
	})
}
