package api

import (
	"context"  // Context for store calls
	"errors"   // Error inspection
	"net/http" // HTTP status codes
	"strconv"  // ID parsing
	"strings"  // String manipulation

	"catalog_shop/internal/domain"     // Importing domain models
	"catalog_shop/internal/metrics"    // Mutation counters
	"catalog_shop/internal/middleware" // Request logger
	"catalog_shop/internal/store"      // Product filters and input

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging library
)

// DashboardLimit is the number of products listed on the dashboard
const DashboardLimit = 100

// DashboardHandler lists the most recent products
func DashboardHandler(catalog Catalog) gin.HandlerFunc {
	return func(c *gin.Context) {
		products, err := catalog.ListProducts(c.Request.Context(), store.ProductFilter{Limit: DashboardLimit})
		if err != nil {
			serverError(c, "list products failed", err)
			return
		}
		render(c, http.StatusOK, "dashboard", gin.H{"Products": products})
	}
}

// CategoryRow is one line of the admin category listing
type CategoryRow struct {
	domain.Category
	Products int64 // Number of products in the category
}

// CategoriesHandler lists categories with their product counts
func CategoriesHandler(catalog Catalog) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		cats, err := catalog.ListCategories(ctx)
		if err != nil {
			serverError(c, "list categories failed", err)
			return
		}
		rows := make([]CategoryRow, 0, len(cats))
		for _, cat := range cats {
			n, err := catalog.CountProducts(ctx, store.ProductFilter{CategorySlug: cat.Slug})
			if err != nil {
				serverError(c, "count products failed", err)
				return
			}
			rows = append(rows, CategoryRow{Category: cat, Products: n})
		}
		render(c, http.StatusOK, "categories", gin.H{"Categories": rows})
	}
}

// productFormData is what the create and edit forms need
func productFormData(ctx context.Context, catalog Catalog, data gin.H) (gin.H, error) {
	cats, err := catalog.ListCategories(ctx)
	if err != nil {
		return nil, err
	}
	data["Categories"] = cats
	return data, nil
}

// renderProductForm renders a product form page with the category choices
func renderProductForm(c *gin.Context, catalog Catalog, name string, data gin.H) {
	data, err := productFormData(c.Request.Context(), catalog, data)
	if err != nil {
		serverError(c, "list categories failed", err)
		return
	}
	render(c, http.StatusOK, name, data)
}

// resolveProductInput binds the form, resolves its category and validates the price
func resolveProductInput(c *gin.Context, catalog Catalog) (ProductForm, store.ProductInput, error) {
	var form ProductForm
	if err := c.ShouldBind(&form); err != nil {
		return form, store.ProductInput{}, bindingError(err)
	}
	in, err := form.input()
	if err != nil {
		return form, in, err
	}
	if slug := strings.TrimSpace(form.CategorySlug); slug != "" {
		cat, err := catalog.GetCategoryBySlug(c.Request.Context(), slug)
		switch {
		case err == nil:
			in.CategoryID = &cat.ID
		case errors.Is(err, domain.ErrCategoryNotFound):
			// Unknown category leaves the product uncategorised
		default:
			return form, in, err
		}
	}
	return form, in, nil
}

// NewProductPageHandler renders the empty create form
func NewProductPageHandler(catalog Catalog) gin.HandlerFunc {
	return func(c *gin.Context) {
		renderProductForm(c, catalog, "new-product", gin.H{"Error": "", "Form": ProductForm{}})
	}
}

// CreateProductHandler stores a new product and its optional image
func CreateProductHandler(catalog Catalog, uploadDir string) gin.HandlerFunc {
	return func(c *gin.Context) {
		form, in, err := resolveProductInput(c, catalog)
		var verr *domain.ValidationError
		if errors.As(err, &verr) {
			renderProductForm(c, catalog, "new-product", gin.H{"Error": verr.Message, "Form": form})
			return
		} else if err != nil {
			serverError(c, "resolve product input failed", err)
			return
		}
		in.ImagePath, err = saveUpload(c, uploadDir)
		if err != nil {
			serverError(c, "image upload failed", err)
			return
		}
		slug, err := catalog.CreateProduct(c.Request.Context(), in)
		if err != nil {
			removeUpload(uploadDir, in.ImagePath) // Do not keep orphaned files
			if errors.As(err, &verr) {
				renderProductForm(c, catalog, "new-product", gin.H{"Error": verr.Message, "Form": form})
				return
			}
			serverError(c, "create product failed", err)
			return
		}
		metrics.ProductMutationsTotal.WithLabelValues("create").Inc()
		middleware.Logger(c).WithField("slug", slug).Info("product created")
		c.Redirect(http.StatusFound, "/p/"+slug)
	}
}

// parseID reads the :id route parameter
func parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

// editFormData pre-fills the edit form from the stored product
func editFormData(ctx context.Context, catalog Catalog, p *domain.Product) (ProductForm, error) {
	form := ProductForm{
		Title: p.Title,
		Price: strconv.FormatInt(p.Price, 10),
	}
	if p.Description != nil {
		form.Description = *p.Description
	}
	if p.CategoryID != nil {
		cats, err := catalog.ListCategories(ctx)
		if err != nil {
			return form, err // An empty selection would drop the category on save
		}
		for _, cat := range cats {
			if cat.ID == *p.CategoryID {
				form.CategorySlug = cat.Slug
			}
		}
	}
	return form, nil
}

// EditProductPageHandler renders the edit form of an existing product
func EditProductPageHandler(catalog Catalog) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseID(c)
		if !ok {
			c.Redirect(http.StatusFound, "/admin")
			return
		}
		p, err := catalog.GetProductByID(c.Request.Context(), id)
		if errors.Is(err, domain.ErrProductNotFound) {
			c.Redirect(http.StatusFound, "/admin") // Unknown product
			return
		} else if err != nil {
			serverError(c, "get product failed", err)
			return
		}
		form, err := editFormData(c.Request.Context(), catalog, p)
		if err != nil {
			serverError(c, "list categories failed", err)
			return
		}
		renderProductForm(c, catalog, "edit-product", gin.H{"Error": "", "Product": p, "Form": form})
	}
}

// UpdateProductHandler applies an edit; omitting the image keeps the current one
func UpdateProductHandler(catalog Catalog, uploadDir string) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseID(c)
		if !ok {
			c.Redirect(http.StatusFound, "/admin")
			return
		}
		p, err := catalog.GetProductByID(c.Request.Context(), id)
		if errors.Is(err, domain.ErrProductNotFound) {
			c.Redirect(http.StatusFound, "/admin")
			return
		} else if err != nil {
			serverError(c, "get product failed", err)
			return
		}
		form, in, err := resolveProductInput(c, catalog)
		var verr *domain.ValidationError
		if errors.As(err, &verr) {
			renderProductForm(c, catalog, "edit-product", gin.H{"Error": verr.Message, "Product": p, "Form": form})
			return
		} else if err != nil {
			serverError(c, "resolve product input failed", err)
			return
		}
		in.ImagePath, err = saveUpload(c, uploadDir)
		if err != nil {
			serverError(c, "image upload failed", err)
			return
		}
		slug, err := catalog.UpdateProduct(c.Request.Context(), id, in)
		if err != nil {
			removeUpload(uploadDir, in.ImagePath)
			switch {
			case errors.Is(err, domain.ErrProductNotFound):
				c.Redirect(http.StatusFound, "/admin") // Deleted meanwhile
			case errors.As(err, &verr):
				renderProductForm(c, catalog, "edit-product", gin.H{"Error": verr.Message, "Product": p, "Form": form})
			default:
				serverError(c, "update product failed", err)
			}
			return
		}
		metrics.ProductMutationsTotal.WithLabelValues("update").Inc()
		middleware.Logger(c).WithFields(logrus.Fields{"id": id, "slug": slug}).Info("product updated")
		c.Redirect(http.StatusFound, "/p/"+slug)
	}
}

// DeleteProductHandler removes a product and returns to the dashboard
func DeleteProductHandler(catalog Catalog) gin.HandlerFunc {
	return func(c *gin.Context) {
		if id, ok := parseID(c); ok {
			if err := catalog.DeleteProduct(c.Request.Context(), id); err != nil {
				serverError(c, "delete product failed", err)
				return
			}
			metrics.ProductMutationsTotal.WithLabelValues("delete").Inc()
			middleware.Logger(c).WithField("id", id).Info("product deleted")
		}
		c.Redirect(http.StatusFound, "/admin")
	}
}
