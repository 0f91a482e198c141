package handler

import (
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

//go:embed web/templates/*.html
var templatesFS embed.FS

//go:embed web/static
var staticFS embed.FS

var templateFuncs = template.FuncMap{
	"formatTime": func(t time.Time) string {
		if t.IsZero() {
			return ""
		}
		return t.Local().Format("2006-01-02 15:04")
	},
	"inc": func(i int) int { return i + 1 },
}

func setupTemplates(router *gin.Engine) error {
	tmpl, err := template.New("").Funcs(templateFuncs).ParseFS(templatesFS, "web/templates/*.html")
	if err != nil {
		return fmt.Errorf("failed to parse templates: %w", err)
	}
	router.SetHTMLTemplate(tmpl)
	return nil
}

func setupStatic(router *gin.Engine) error {
	static, err := fs.Sub(staticFS, "web/static")
	if err != nil {
		return fmt.Errorf("failed to open static assets: %w", err)
	}
	router.StaticFS("/static", http.FS(static))
	return nil
}
