package services

import (
	"fmt"

	"quiqr-cms/pkg/models"
)

// UnsupportedFormatError is returned when a file extension has no decoder.
type UnsupportedFormatError struct {
	Ext string
}

func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("unsupported file extension: %s", e.Ext)
}

// ReadError wraps a filesystem failure while reading a file.
type ReadError struct {
	Path string
	Err  error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("read %s: %v", e.Path, e.Err)
}

func (e *ReadError) Unwrap() error { return e.Err }

// ParseError wraps a decoder failure.
type ParseError struct {
	Path   string
	Format string
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %s as %s: %v", e.Path, e.Format, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// DirectoryReadError wraps a failure to list a directory.
type DirectoryReadError struct {
	Path string
	Err  error
}

func (e *DirectoryReadError) Error() string {
	return fmt.Sprintf("read directory %s: %v", e.Path, e.Err)
}

func (e *DirectoryReadError) Unwrap() error { return e.Err }

// PartialLoadError describes a partial that could not be merged. It is
// reported as a warning; the base entry is used unmerged.
type PartialLoadError struct {
	Kind    models.ConfigKind
	Key     string
	Partial string
	Path    string
	Err     error
}

func (e *PartialLoadError) Error() string {
	return fmt.Sprintf("%s %q: partial %q at %s: %v", e.Kind, e.Key, e.Partial, e.Path, e.Err)
}

func (e *PartialLoadError) Unwrap() error { return e.Err }

// UnsupportedSaveExtensionError is reported by SaveConfig for targets that
// are neither JSON nor YAML.
type UnsupportedSaveExtensionError struct {
	Ext string
}

func (e *UnsupportedSaveExtensionError) Error() string {
	return fmt.Sprintf("Unsupported file extension: %s", e.Ext)
}

// ProjectError wraps a failed step of the resolution pipeline.
type ProjectError struct {
	Project string
	Op      string
	Err     error
}

func (e *ProjectError) Error() string {
	return fmt.Sprintf("project %s: %s: %v", e.Project, e.Op, e.Err)
}

func (e *ProjectError) Unwrap() error { return e.Err }
