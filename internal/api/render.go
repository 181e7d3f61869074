package api

import (
	"embed"         // Embedded templates and assets
	"html/template" // HTML templates
	"net/http"      // HTTP status codes

	"catalog_shop/internal/config"     // Site branding
	"catalog_shop/internal/middleware" // Session and logger accessors
	"catalog_shop/internal/utils"      // Price formatting

	"github.com/gin-gonic/gin" // Gin web framework
)

//go:embed templates static
var assets embed.FS

const siteKey = "site"

// templateFuncs returns the helpers available in every template
func templateFuncs(site config.SiteConfig) template.FuncMap {
	return template.FuncMap{
		"price": func(amount int64) string { return utils.FormatPrice(amount, site.PriceDecimals) },
		"deref": func(s *string) string {
			if s == nil {
				return ""
			}
			return *s
		},
		"add": func(a, b int) int { return a + b },
		"sub": func(a, b int) int { return a - b },
	}
}

// loadTemplates parses every page template
func loadTemplates(site config.SiteConfig) (*template.Template, error) {
	return template.New("").Funcs(templateFuncs(site)).ParseFS(assets, "templates/*.tmpl", "templates/admin/*.tmpl")
}

// SiteGlobals exposes the branding strings to every rendered page
func SiteGlobals(site config.SiteConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(siteKey, site)
		c.Next()
	}
}

// render executes the named template with the page data and the site globals
func render(c *gin.Context, status int, name string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}
	site, _ := c.Get(siteKey)
	data["Site"] = site                                  // Branding strings
	data["IsAuth"] = middleware.CurrentSession(c) != nil // Toggles admin links
	data["CurrentPath"] = c.Request.URL.Path             // Active navigation entry
	c.HTML(status, name, data)
}

// serverError logs err on the request logger and answers 500
func serverError(c *gin.Context, msg string, err error) {
	middleware.Logger(c).WithError(err).Error(msg)
	c.String(http.StatusInternalServerError, "Erreur interne")
}
