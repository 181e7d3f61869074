package api

import (
	"errors"  // Error inspection
	"strconv" // Price parsing
	"strings" // String manipulation

	"catalog_shop/internal/domain" // Validation errors
	"catalog_shop/internal/store"  // Product input

	"github.com/go-playground/validator/v10" // Binding validation errors
)

// LoginForm is the admin login submission
type LoginForm struct {
	Username string `form:"username" binding:"required"` // Username must be provided
	Password string `form:"password" binding:"required"` // Password must be provided
}

// ProductForm is the create and edit product submission
type ProductForm struct {
	Title        string `form:"title" binding:"required"`         // Product title
	Description  string `form:"description"`                      // Optional description
	Price        string `form:"price" binding:"required,numeric"` // Integer amount in the smallest unit
	CategorySlug string `form:"category_slug"`                    // Optional category
}

// input converts the form into store input; the category is resolved by the caller
func (f ProductForm) input() (store.ProductInput, error) {
	price, err := strconv.ParseInt(strings.TrimSpace(f.Price), 10, 64)
	if err != nil || price < 0 {
		return store.ProductInput{}, domain.NewValidationError("price", "Le prix doit être un entier positif")
	}
	in := store.ProductInput{Title: strings.TrimSpace(f.Title), Price: price}
	if d := strings.TrimSpace(f.Description); d != "" {
		in.Description = &d
	}
	return in, nil
}

// bindingError converts a form binding failure into a ValidationError
func bindingError(err error) *domain.ValidationError {
	var ve validator.ValidationErrors
	if errors.As(err, &ve) && len(ve) > 0 {
		return fieldError(ve[0])
	}
	return domain.NewValidationError("", "Formulaire invalide")
}

// fieldError converts a single FieldError into a human-readable message
func fieldError(fe validator.FieldError) *domain.ValidationError {
	field := strings.ToLower(fe.Field())
	switch fe.Tag() {
	case "required":
		return domain.NewValidationError(field, "Titre et prix requis")
	case "numeric":
		return domain.NewValidationError(field, "Le prix doit être un entier positif")
	default:
		return domain.NewValidationError(field, "Champ invalide: "+field)
	}
}
