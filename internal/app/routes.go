package app

import (
	"github.com/coreinspect/core/internal/middleware"
	"github.com/coreinspect/core/internal/modules/auth"
	"github.com/coreinspect/core/internal/modules/collection"
	"github.com/coreinspect/core/internal/modules/content"
	"github.com/coreinspect/core/internal/modules/field"
	"github.com/coreinspect/core/internal/modules/menu"
	"github.com/coreinspect/core/internal/modules/permission"
	"github.com/coreinspect/core/internal/modules/relation"
	"github.com/coreinspect/core/internal/modules/role"
	"github.com/coreinspect/core/internal/modules/taxonomy"
	"github.com/coreinspect/core/internal/modules/translation"
	"github.com/coreinspect/core/internal/modules/user"
	"github.com/coreinspect/core/internal/pkg/response"
	"github.com/gin-gonic/gin"
)

func (a *App) registerRoutes() {
	r := a.router
	db := a.db
	authMW := middleware.Auth(db)

	r.NoRoute(func(c *gin.Context) {
		response.NotFound(c)
	})

	api := r.Group("/api/v1")
	api.Use(middleware.OptionalAuth(db))

	api.GET("/ping", func(c *gin.Context) {
		response.OK(c, gin.H{"status": "ok"})
	})

	// Auth & users
	auth.NewHandler(auth.NewService(db)).RegisterRoutes(api, authMW)
	user.NewHandler(user.NewService(db)).RegisterRoutes(api, authMW)
	role.NewHandler(role.NewService(db)).RegisterRoutes(api, authMW)
	permission.NewHandler(permission.NewService(db)).RegisterRoutes(api, authMW)

	// Schema
	contentSvc := content.NewService(db)
	collection.NewHandler(collection.NewService(db), contentSvc).RegisterRoutes(api, authMW)
	field.NewHandler(field.NewService(db, a.cfg.FieldNameScope)).RegisterRoutes(api, authMW)
	relation.NewHandler(relation.NewService(db)).RegisterRoutes(api, authMW)

	// Content
	content.NewHandler(contentSvc).RegisterRoutes(api, authMW)

	// Organization
	taxonomy.NewHandler(taxonomy.NewService(db)).RegisterRoutes(api, authMW)
	menu.NewHandler(menu.NewService(db)).RegisterRoutes(api, authMW)
	translation.NewHandler(translation.NewService(db)).RegisterRoutes(api, authMW)
}
