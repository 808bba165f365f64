package handlers

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"quiqr-cms/pkg/config"
	"quiqr-cms/pkg/services"

	"github.com/charmbracelet/log"
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

const (
	sessionName       = "quiqr"
	sessionProjectKey = "project"
)

// GetCurrentProject returns the project selected in this session.
func GetCurrentProject(c *gin.Context) {
	session := sessions.Default(c)
	name, _ := session.Get(sessionProjectKey).(string)
	c.JSON(http.StatusOK, gin.H{"project": name})
}

// SelectProject stores the current project in the session cookie.
func SelectProject(c *gin.Context) {
	var req struct {
		Name string `json:"name" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON"})
		return
	}
	if !validProjectName(req.Name) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid project name"})
		return
	}
	if _, err := os.Stat(filepath.Join(config.SitesRoot, req.Name, services.SiteConfigFile)); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Project not found: " + req.Name})
		return
	}

	session := sessions.Default(c)
	session.Set(sessionProjectKey, req.Name)
	if err := session.Save(); err != nil {
		log.Error("saving session failed", "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save session"})
		return
	}
	log.Info("project selected", "project", req.Name)
	c.JSON(http.StatusOK, gin.H{"project": req.Name})
}

// ClearProject forgets the selected project.
func ClearProject(c *gin.Context) {
	session := sessions.Default(c)
	session.Delete(sessionProjectKey)
	if err := session.Save(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save session"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"project": ""})
}

// projectFrom returns explicit when set and the session's project
// otherwise. It writes a 400 response and returns false when neither names
// a usable project.
func projectFrom(c *gin.Context, explicit string) (string, bool) {
	name := explicit
	if name == "" {
		name, _ = sessions.Default(c).Get(sessionProjectKey).(string)
	}
	if name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No project selected"})
		return "", false
	}
	if !validProjectName(name) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid project name"})
		return "", false
	}
	return name, true
}

func validProjectName(name string) bool {
	return name != "" && name != "." && name != ".." && !strings.ContainsAny(name, `/\`)
}
