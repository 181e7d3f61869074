package api

import (
	"errors"    // Error inspection
	"fmt"       // Error wrapping
	"math"      // Page bound
	"net/http"  // HTTP status codes
	"net/netip" // Proxy address matching
	"strconv"   // Page parsing
	"strings"   // String manipulation

	"catalog_shop/internal/domain"  // Domain errors
	"catalog_shop/internal/metrics" // Product view counter
	"catalog_shop/internal/store"   // Product filters
	"catalog_shop/internal/utils"   // WhatsApp link

	"github.com/gin-gonic/gin" // Gin web framework
)

// Page sizes of the public pages
const (
	HomeLimit     = 12
	ProductsLimit = 24
)

// HomeHandler renders the categories and the most recent products
func HomeHandler(catalog Catalog) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		cats, err := catalog.ListCategories(ctx)
		if err != nil {
			serverError(c, "list categories failed", err)
			return
		}
		featured, err := catalog.ListProducts(ctx, store.ProductFilter{Limit: HomeLimit})
		if err != nil {
			serverError(c, "list products failed", err)
			return
		}
		render(c, http.StatusOK, "index", gin.H{"Categories": cats, "Featured": featured})
	}
}

// maxPage keeps (page-1)*ProductsLimit inside int32 range
const maxPage = math.MaxInt32 / ProductsLimit

// parsePage reads a 1-based page number, defaulting to the first page.
// Pages past maxPage, including out-of-range numbers, are clamped to it.
func parsePage(raw string) int {
	v, err := strconv.ParseInt(raw, 10, 64)
	if (err != nil && !errors.Is(err, strconv.ErrRange)) || v < 1 {
		return 1
	}
	return int(min(v, maxPage))
}

// ProductsHandler renders the search and browse page
func ProductsHandler(catalog Catalog) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		q := strings.TrimSpace(c.Query("q"))     // Text query
		cat := strings.TrimSpace(c.Query("cat")) // Category slug
		page := parsePage(c.Query("page"))       // Current page
		filter := store.ProductFilter{
			Query:        q,
			CategorySlug: cat,
			Limit:        ProductsLimit,
			Offset:       (page - 1) * ProductsLimit,
		}
		cats, err := catalog.ListCategories(ctx)
		if err != nil {
			serverError(c, "list categories failed", err)
			return
		}
		products, err := catalog.ListProducts(ctx, filter)
		if err != nil {
			serverError(c, "list products failed", err)
			return
		}
		total, err := catalog.CountProducts(ctx, filter)
		if err != nil {
			serverError(c, "count products failed", err)
			return
		}
		render(c, http.StatusOK, "products", gin.H{
			"Categories": cats,
			"Products":   products,
			"Q":          q,
			"Cat":        cat,
			"Page":       page,
			"Total":      total,
			"TotalPages": store.TotalPages(total, ProductsLimit),
		})
	}
}

// ProxyList holds the peers allowed to set forwarding headers
type ProxyList []netip.Prefix

// ParseProxyList accepts IP addresses and CIDR ranges
func ParseProxyList(entries []string) (ProxyList, error) {
	proxies := make(ProxyList, 0, len(entries))
	for _, entry := range entries {
		if prefix, err := netip.ParsePrefix(entry); err == nil {
			proxies = append(proxies, prefix.Masked())
			continue
		}
		addr, err := netip.ParseAddr(entry)
		if err != nil {
			return nil, fmt.Errorf("invalid proxy %q: %w", entry, err)
		}
		proxies = append(proxies, netip.PrefixFrom(addr, addr.BitLen()))
	}
	return proxies, nil
}

// Contains reports whether ip belongs to a trusted proxy
func (l ProxyList) Contains(ip string) bool {
	addr, err := netip.ParseAddr(ip)
	if err != nil {
		return false
	}
	addr = addr.Unmap()
	for _, prefix := range l {
		if prefix.Contains(addr) {
			return true
		}
	}
	return false
}

// requestOrigin returns scheme://host as seen by the client. X-Forwarded-Proto
// is only honoured when the direct peer is a trusted proxy.
func requestOrigin(c *gin.Context, proxies ProxyList) string {
	scheme := "http"
	if c.Request.TLS != nil {
		scheme = "https"
	} else if proxies.Contains(c.RemoteIP()) && c.GetHeader("X-Forwarded-Proto") == "https" {
		scheme = "https"
	}
	return scheme + "://" + c.Request.Host
}

// ProductDetailHandler renders one product with its WhatsApp contact link
func ProductDetailHandler(catalog Catalog, whatsAppNumber string, proxies ProxyList) gin.HandlerFunc {
	return func(c *gin.Context) {
		product, err := catalog.GetProductBySlug(c.Request.Context(), c.Param("slug"))
		if errors.Is(err, domain.ErrProductNotFound) {
			c.String(http.StatusNotFound, "Produit introuvable")
			return
		} else if err != nil {
			serverError(c, "get product failed", err)
			return
		}
		metrics.ProductViewsTotal.Inc()
		shareURL := requestOrigin(c, proxies) + "/p/" + product.Slug
		render(c, http.StatusOK, "product", gin.H{
			"Title":    product.Title,
			"Product":  product,
			"ShareURL": shareURL,
			"WhatsApp": utils.WhatsAppProductLink(whatsAppNumber, product.Title, shareURL),
		})
	}
}

// StaticPageHandler renders a page without data
func StaticPageHandler(name string) gin.HandlerFunc {
	return func(c *gin.Context) {
		render(c, http.StatusOK, name, nil)
	}
}
