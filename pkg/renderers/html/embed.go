package html

import (
	"embed"
	"io/fs"
)

//go:embed templates/*.tmpl
var embeddedTemplates embed.FS

//go:embed assets/*
var embeddedAssets embed.FS

const (
	// StylesheetName is the file name of the default stylesheet inside AssetsFS.
	StylesheetName = "forminterp.css"
	// FormPartial is the theme partial key that overrides FormTemplate.
	FormPartial = "form"
	// FormTemplate is the template the renderer executes unless a theme
	// overrides FormPartial.
	FormTemplate = "templates/form.tmpl"
)

// TemplatesFS exposes the embedded template bundle.
func TemplatesFS() fs.FS {
	return embeddedTemplates
}

// AssetsFS exposes the embedded stylesheet so callers can serve it over HTTP.
func AssetsFS() fs.FS {
	sub, err := fs.Sub(embeddedAssets, "assets")
	if err != nil {
		return embeddedAssets
	}
	return sub
}

// Stylesheet returns the default stylesheet contents.
func Stylesheet() string {
	data, err := fs.ReadFile(embeddedAssets, "assets/"+StylesheetName)
	if err != nil {
		return ""
	}
	return string(data)
}
