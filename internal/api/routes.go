package api

import "github.com/gin-gonic/gin"

// RegisterRoutes mounts the render API on r.
func RegisterRoutes(r *gin.Engine, s *Server) {
	api := r.Group("/api")
	{
		api.GET("/health", s.health)
		api.POST("/cards/welcome", s.welcomeCard)
		api.POST("/cards/rank", s.rankCard)
		api.POST("/cards/profile", s.profileCard)
		api.POST("/cards/banner", s.bannerCard)
		api.POST("/cards/welcome.gif", s.welcomeGIF)
		api.GET("/qr", s.qr)
	}
}
