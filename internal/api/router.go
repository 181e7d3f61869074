package api

import (
	"fmt"      // Error wrapping
	"io/fs"    // Embedded sub-tree
	"net/http" // File systems

	"catalog_shop/internal/config"     // Site branding
	"catalog_shop/internal/middleware" // Request middleware
	"catalog_shop/internal/session"    // Session lifecycle

	"github.com/gin-gonic/gin"                                // Gin web framework
	"github.com/prometheus/client_golang/prometheus/promhttp" // Metrics exposition
)

// Deps are the collaborators of the HTTP layer
type Deps struct {
	Catalog        Catalog           // Product and category storage
	Users          UserStore         // Admin accounts
	Sessions       *session.Manager  // Session lifecycle
	Checks         map[string]Pinger // Readiness probes
	Site           config.SiteConfig // Branding strings
	UploadDir      string            // Where uploaded images are stored
	SecureCookies  bool              // Mark the session cookie Secure
	TrustedProxies []string          // Proxies allowed to set client headers
}

// NewRouter builds the gin engine with every route
func NewRouter(deps Deps) (*gin.Engine, error) {
	tmpl, err := loadTemplates(deps.Site)
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	static, err := fs.Sub(assets, "static")
	if err != nil {
		return nil, fmt.Errorf("static assets: %w", err)
	}

	proxies, err := ParseProxyList(deps.TrustedProxies)
	if err != nil {
		return nil, fmt.Errorf("trusted proxies: %w", err)
	}

	r := gin.Default() // Gin router instance with access logging and recovery
	if err := r.SetTrustedProxies(deps.TrustedProxies); err != nil {
		return nil, fmt.Errorf("set trusted proxies: %w", err)
	}
	r.SetHTMLTemplate(tmpl)
	r.MaxMultipartMemory = 8 << 20 // Larger images spill to temp files
	r.Use(middleware.RequestID(), middleware.Metrics(), middleware.LoadSession(deps.Sessions), SiteGlobals(deps.Site))

	// Operational routes
	r.GET("/health", LivenessHandler())                   // Liveness probe
	r.GET("/health/ready", ReadinessHandler(deps.Checks)) // Readiness probe
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))      // Prometheus exposition
	r.Static("/uploads", deps.UploadDir)                  // Uploaded product images
	r.StaticFS("/static", http.FS(static))                // Stylesheet

	// Public routes
	r.GET("/", HomeHandler(deps.Catalog))                                                    // Home page
	r.GET("/products", ProductsHandler(deps.Catalog))                                        // Search and browse
	r.GET("/p/:slug", ProductDetailHandler(deps.Catalog, deps.Site.WhatsAppNumber, proxies)) // Product detail
	r.GET("/about", StaticPageHandler("about"))                                              // About page
	r.GET("/contact", StaticPageHandler("contact"))                                          // Contact page

	// Session routes
	r.GET("/admin/login", LoginPageHandler())                                           // Login form
	r.POST("/admin/login", LoginHandler(deps.Users, deps.Sessions, deps.SecureCookies)) // Login submit
	r.GET("/admin/logout", LogoutHandler(deps.Sessions, deps.SecureCookies))            // Logout

	// Admin routes (protected, session only)
	adminGroup := r.Group("/admin")
	adminGroup.Use(middleware.RequireAuth())
	adminGroup.GET("", DashboardHandler(deps.Catalog))                                   // Dashboard
	adminGroup.GET("/categories", CategoriesHandler(deps.Catalog))                       // Category listing
	adminGroup.GET("/products/new", NewProductPageHandler(deps.Catalog))                 // Create form
	adminGroup.POST("/products/new", CreateProductHandler(deps.Catalog, deps.UploadDir)) // Create submit
	adminGroup.GET("/products/:id/edit", EditProductPageHandler(deps.Catalog))           // Edit form
	adminGroup.POST("/products/:id/edit", UpdateProductHandler(deps.Catalog, deps.UploadDir))
	adminGroup.POST("/products/:id/delete", DeleteProductHandler(deps.Catalog))

	return r, nil
}
