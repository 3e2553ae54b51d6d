// Package router assembles the v1 API surface.
package router

import (
	"net/http"

	"reviewhub/internal/http-api/handler"
	"reviewhub/internal/http-api/middleware"
	"reviewhub/internal/http-api/service"

	"github.com/gin-gonic/gin"
)

// Deps carries everything the router needs wired in.
type Deps struct {
	Auth       service.AuthService
	Users      service.UserService
	Categories service.CategoryService
	Genres     service.GenreService
	Titles     service.TitleService
	Reviews    service.ReviewService
	Comments   service.CommentService

	AuthLimiter middleware.RateLimiter
}

func New(deps Deps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Logger())
	r.Use(gin.Recovery())

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	auth := middleware.AuthMiddleware(deps.Auth)
	limiter := middleware.RateLimit(deps.AuthLimiter)

	v1 := r.Group("/v1")

	handler.NewAuthHandler(deps.Auth).RegisterRoutes(v1.Group("/auth"), limiter)
	handler.NewUserHandler(deps.Users).RegisterRoutes(v1.Group("/users"), auth)
	handler.NewCategoryHandler(deps.Categories).RegisterRoutes(v1.Group("/categories"), auth)
	handler.NewGenreHandler(deps.Genres).RegisterRoutes(v1.Group("/genres"), auth)
	handler.NewTitleHandler(deps.Titles).RegisterRoutes(v1.Group("/titles"), auth)
	handler.NewReviewHandler(deps.Reviews).RegisterRoutes(v1.Group("/titles/:title_id/reviews"), auth)
	handler.NewCommentHandler(deps.Comments).RegisterRoutes(
		v1.Group("/titles/:title_id/reviews/:review_id/comments"), auth)

	return r
}
