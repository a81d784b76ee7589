// Package api exposes the exhibition workflows over HTTP with gin.
package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"gradation/pkg/logger"
	"gradation/pkg/repository"
	"gradation/pkg/service"
)

const BasePath = "/exhibitions/api"

type Handler struct {
	svc  *service.Service
	repo *repository.Repository
	log  zerolog.Logger
}

func NewHandler(svc *service.Service, repo *repository.Repository, log zerolog.Logger) *Handler {
	return &Handler{svc: svc, repo: repo, log: log}
}

func NewRouter(h *Handler) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), logger.Middleware(h.log))

	api := r.Group(BasePath)
	{
		api.GET("/gradation/current", h.getCurrentGradation)
		api.POST("/gradation/registration", h.registerGradation)
		api.POST("/gradation/image", h.registerGradationImage)
		api.PUT("/modify/:id", h.modifyGradation)
		api.DELETE("/gradation/image/:id", h.deleteGradationImage)
		api.GET("/gradation/recent", h.getRecentGradations)
		api.GET("/gradation/top-liked-art", h.getTopLikedArts)
		api.GET("/gradation/past", h.getPastGradations)
		api.GET("/gradation/past/:exhibitionId/arts", h.getExhibitionArts)

		api.POST("/university/register", h.registerUniversity)
		api.POST("/university/list", h.getUniversityExhibitions)
		api.GET("/university/:id/images", h.getUniversityImages)
		api.POST("/university/:id/images", h.registerUniversityImages)
		api.POST("/university/like", h.registerLike)
		api.POST("/liked", h.isLiked)
		api.DELETE("/university/unlike", h.removeLike)
		api.GET("/university/:id/exhibition-status", h.getSubmissionStatus)
		api.GET("/university/:id/liked-exhibitions", h.getLikedExhibitions)
	}

	r.GET("/manage/health", h.healthCheck)
	return r
}

func (h *Handler) healthCheck(c *gin.Context) {
	if err := h.repo.Ping(c.Request.Context()); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":  "DOWN",
			"details": "Database ping failed",
			"error":   err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status":  "UP",
		"details": "Database is reachable",
	})
}
