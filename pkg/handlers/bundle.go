package handlers

import (
	"net/http"

	"quiqr-cms/pkg/services"

	"github.com/gin-gonic/gin"
)

// ListBundle lists the files of a page bundle. Repeated ext parameters
// restrict the listing to those extensions.
func ListBundle(c *gin.Context) {
	dir, ok := contentPath(c, c.Query("project"), c.Query("path"))
	if !ok {
		return
	}
	files, err := services.ListBundleFiles(dir, c.QueryArray("ext"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list bundle: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, files)
}

// ServeBundleFile streams one file from the project's content root.
func ServeBundleFile(c *gin.Context) {
	if c.Query("path") == "" {
		c.Status(http.StatusBadRequest)
		return
	}
	fullPath, ok := contentPath(c, c.Query("project"), c.Query("path"))
	if !ok {
		return
	}
	c.File(fullPath)
}
