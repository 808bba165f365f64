package handlers

import (
	"time"

	"quiqr-cms/pkg/config"
	"quiqr-cms/pkg/registry"

	"github.com/charmbracelet/log"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
)

// NewRouter wires every API route. widgets is used to build form widget
// trees.
func NewRouter(widgets *registry.Registry[WidgetFactory]) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), requestLogger)

	store := cookie.NewStore([]byte(config.SessionSecret))
	store.Options(sessions.Options{Path: "/", HttpOnly: true, MaxAge: 7 * 24 * 3600})
	r.Use(sessions.Sessions(sessionName, store))

	api := r.Group("/api")
	{
		api.GET("/projects", ListProjects)
		api.GET("/projects/current", GetCurrentProject)
		api.POST("/projects/current", SelectProject)
		api.DELETE("/projects/current", ClearProject)
		api.GET("/projects/:project", GetProject)
		api.GET("/projects/:project/menu-items/:key/title", GetMenuItemTitle)
		api.GET("/projects/:project/forms/:key", GetForm(widgets))

		api.GET("/fs/list", ListFiles)

		api.GET("/data/file", GetDataFile)
		api.POST("/data/file", SaveDataFile)
		api.GET("/data/dir", GetDataDirectory)

		api.GET("/bundle", ListBundle)
		api.GET("/bundle/raw", ServeBundleFile)

		api.POST("/config/save", SaveConfig)
		api.POST("/config/validate", ValidateConfig)
	}

	return r
}

func requestLogger(c *gin.Context) {
	start := time.Now()
	c.Next()
	log.Debug("request",
		"method", c.Request.Method,
		"path", c.Request.URL.Path,
		"status", c.Writer.Status(),
		"duration", time.Since(start),
	)
}
