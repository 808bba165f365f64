package handlers

import (
	"errors"
	"io/fs"
	"net/http"
	"strconv"

	"quiqr-cms/pkg/config"
	"quiqr-cms/pkg/models"
	"quiqr-cms/pkg/services"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"
)

func ListProjects(c *gin.Context) {
	root := c.DefaultQuery("root", config.SitesRoot)
	projects, err := services.ListProjects(c.Request.Context(), root)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, projects)
}

func GetProject(c *gin.Context) {
	project, ok := projectFrom(c, c.Param("project"))
	if !ok {
		return
	}
	resolved, err := services.ResolveProject(c.Request.Context(), config.SitesRoot, project)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resolved)
}

// GetMenuItemTitle returns the title of the config a menu item points to.
func GetMenuItemTitle(c *gin.Context) {
	project, ok := projectFrom(c, c.Param("project"))
	if !ok {
		return
	}
	resolved, err := services.ResolveProject(c.Request.Context(), config.SitesRoot, project)
	if err != nil {
		respondError(c, err)
		return
	}

	key := c.Param("key")
	item := models.EnhancedMenuItem{Key: key}
	for _, section := range resolved.EnhancedMenuConfig {
		for _, it := range section.MenuItems {
			if it.Key == key {
				item = it
			}
		}
	}

	title, found := services.MenuItemTitle(item, resolved.IndexedSingles, resolved.IndexedCollections)
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "No title for menu item " + key})
		return
	}
	c.JSON(http.StatusOK, gin.H{"key": key, "title": title})
}

func ListFiles(c *gin.Context) {
	fullPath, ok := contentPath(c, c.Query("project"), c.Query("path"))
	if !ok {
		return
	}
	recursive, _ := strconv.ParseBool(c.DefaultQuery("recursive", "false"))

	entries, err := services.ListDirectory(fullPath, recursive)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, entries)
}

func GetDataFile(c *gin.Context) {
	fullPath, ok := contentPath(c, c.Query("project"), c.Query("path"))
	if !ok {
		return
	}
	data, err := services.LoadDataFile(fullPath)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, data)
}

func SaveDataFile(c *gin.Context) {
	var req struct {
		Project string         `json:"project"`
		Path    string         `json:"path" binding:"required"`
		Data    map[string]any `json:"data"`
		Body    string         `json:"body"`
		Format  string         `json:"format"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON"})
		return
	}

	fullPath, ok := contentPath(c, req.Project, req.Path)
	if !ok {
		return
	}
	if err := services.SaveDataFile(fullPath, req.Data, req.Body, req.Format); err != nil {
		respondError(c, err)
		return
	}
	log.Info("content saved", "path", fullPath)
	c.JSON(http.StatusOK, gin.H{"status": "saved"})
}

func GetDataDirectory(c *gin.Context) {
	fullPath, ok := contentPath(c, c.Query("project"), c.Query("path"))
	if !ok {
		return
	}
	contents, err := services.LoadDataDirectory(c.Request.Context(), fullPath)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, contents)
}

// SaveConfig writes one model file. The response is the SaveResult; it is
// sent with 422 when the save did not happen.
func SaveConfig(c *gin.Context) {
	var req struct {
		Project      string            `json:"project"`
		ConfigType   models.ConfigType `json:"configType"`
		RelativePath string            `json:"relativePath" binding:"required"`
		Data         any               `json:"data"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON"})
		return
	}

	fullPath, ok := contentPath(c, req.Project, req.RelativePath)
	if !ok {
		return
	}

	result := services.SaveConfig(fullPath, req.ConfigType, req.Data)
	if !result.Success {
		c.JSON(http.StatusUnprocessableEntity, result)
		return
	}
	c.JSON(http.StatusOK, result)
}

func ValidateConfig(c *gin.Context) {
	var req struct {
		ConfigType models.ConfigType `json:"configType" binding:"required"`
		Data       any               `json:"data"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON"})
		return
	}
	c.JSON(http.StatusOK, services.ValidateConfig(req.ConfigType, req.Data))
}

// contentPath resolves rel below the content root of project (or of the
// session's project). On failure it has already written the response.
func contentPath(c *gin.Context, project, rel string) (string, bool) {
	project, ok := projectFrom(c, project)
	if !ok {
		return "", false
	}
	root, err := services.ContentRoot(config.SitesRoot, project)
	if err != nil {
		respondError(c, err)
		return "", false
	}
	fullPath := services.SafeJoin(root, "", rel)
	if fullPath == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid path"})
		return "", false
	}
	return fullPath, true
}

func respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	var unsupported *services.UnsupportedFormatError
	switch {
	case errors.Is(err, fs.ErrNotExist):
		status = http.StatusNotFound
	case errors.As(err, &unsupported):
		status = http.StatusBadRequest
	}

	if status == http.StatusInternalServerError {
		log.Error("request failed", "path", c.Request.URL.Path, "err", err)
	} else {
		log.Debug("request rejected", "path", c.Request.URL.Path, "status", status, "err", err)
	}
	c.JSON(status, gin.H{"error": err.Error()})
}
