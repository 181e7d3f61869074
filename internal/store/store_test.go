package store

import (
	"context"
	"fmt"
	"regexp"
	"testing"

	"catalog_shop/internal/db/dbtest"
	"catalog_shop/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

// newTestStore returns a store with two categories
func newTestStore(t *testing.T) (*Store, []domain.Category) {
	t.Helper()
	gdb := dbtest.New(t)
	cats := []domain.Category{
		{Name: "Maison", Slug: "maison"},
		{Name: "Beauté", Slug: "beaute"},
	}
	require.NoError(t, gdb.Create(&cats).Error)
	return New(gdb), cats
}

// seedProducts creates n products cycling over the categories (and none)
func seedProducts(t *testing.T, s *Store, cats []domain.Category, titles []string) []string {
	t.Helper()
	slugs := make([]string, 0, len(titles))
	for i, title := range titles {
		in := ProductInput{Title: title, Price: int64(100 * (i + 1))}
		if k := i % (len(cats) + 1); k < len(cats) {
			in.CategoryID = &cats[k].ID
		}
		slug, err := s.CreateProduct(context.Background(), in)
		require.NoError(t, err)
		slugs = append(slugs, slug)
	}
	return slugs
}

func TestCreateProductRedLamp(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	slug, err := s.CreateProduct(ctx, ProductInput{Title: "Red Lamp", Price: 1500})
	require.NoError(t, err)
	assert.Regexp(t, regexp.MustCompile(`^red-lamp-[0-9a-z]+$`), slug)

	p, err := s.GetProductBySlug(ctx, slug)
	require.NoError(t, err)
	assert.Equal(t, int64(1500), p.Price)
	assert.Equal(t, "Red Lamp", p.Title)
	assert.Nil(t, p.CategoryID)
	assert.Nil(t, p.CategoryName)
	assert.False(t, p.CreatedAt.IsZero())
}

func TestCreateProductIdenticalTitlesGetDistinctSlugs(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	a, err := s.CreateProduct(ctx, ProductInput{Title: "Chaise", Price: 10})
	require.NoError(t, err)
	b, err := s.CreateProduct(ctx, ProductInput{Title: "Chaise", Price: 10})
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestCreateProductValidation(t *testing.T) {
	s, _ := newTestStore(t)
	missing := uint(999)

	testCases := []struct {
		name  string
		input ProductInput
		field string
	}{
		{name: "empty title", input: ProductInput{Title: "", Price: 10}, field: "title"},
		{name: "blank title", input: ProductInput{Title: "   ", Price: 10}, field: "title"},
		{name: "negative price", input: ProductInput{Title: "Lamp", Price: -1}, field: "price"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := s.CreateProduct(context.Background(), tc.input)
			var verr *domain.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tc.field, verr.Field)
		})
	}

	t.Run("unknown category", func(t *testing.T) {
		_, err := s.CreateProduct(context.Background(), ProductInput{Title: "Lamp", Price: 1, CategoryID: &missing})
		assert.ErrorIs(t, err, domain.ErrCategoryNotFound)
	})

	total, err := s.CountProducts(context.Background(), ProductFilter{})
	require.NoError(t, err)
	assert.Zero(t, total, "rejected inputs insert nothing")
}

func TestCountMatchesListForEveryFilter(t *testing.T) {
	s, cats := newTestStore(t)
	seedProducts(t, s, cats, []string{
		"Red Lamp", "Blue Lamp", "Lampe de chevet", "Chaise", "Table basse",
		"Crème 100% bio", "Savon_noir", "LAMP XL", "Tapis", "Red Chair",
		"Électronique Pro", "Sérum Beauté", "ÉCRAN PLAT",
	})
	ctx := context.Background()

	filters := []ProductFilter{
		{},
		{Query: "lamp"},
		{Query: "LAMP"},
		{Query: "red"},
		{Query: "%"},
		{Query: "_"},
		{Query: "100%"},
		{Query: "zzz"},
		{CategorySlug: "maison"},
		{CategorySlug: "beaute"},
		{CategorySlug: "unknown"},
		{Query: "lamp", CategorySlug: "maison"},
		{Query: "red", CategorySlug: "beaute"},
		{Query: "  chaise  "},
		{Query: "Électronique"},
		{Query: "électronique"},
		{Query: "ÉLECTRONIQUE"},
		{Query: "beauté"},
		{Query: "BEAUTÉ"},
		{Query: "écran", CategorySlug: "maison"},
	}

	for _, f := range filters {
		t.Run(fmt.Sprintf("q=%q cat=%q", f.Query, f.CategorySlug), func(t *testing.T) {
			total, err := s.CountProducts(ctx, f)
			require.NoError(t, err)
			f.Limit = 10_000
			list, err := s.ListProducts(ctx, f)
			require.NoError(t, err)
			assert.Equal(t, int(total), len(list))
		})
	}
}

func TestListProductsFilters(t *testing.T) {
	s, cats := newTestStore(t)
	seedProducts(t, s, cats, []string{"Red Lamp", "Blue Lamp", "Savon_noir", "Crème 100% bio", "Électronique Pro", "Sérum Beauté"})
	ctx := context.Background()

	titles := func(views []domain.ProductView) []string {
		out := make([]string, len(views))
		for i, v := range views {
			out[i] = v.Title
		}
		return out
	}

	list, err := s.ListProducts(ctx, ProductFilter{Query: "lamp"})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"Red Lamp", "Blue Lamp"}, titles(list))

	list, err = s.ListProducts(ctx, ProductFilter{Query: "lamp", CategorySlug: "maison"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Red Lamp"}, titles(list), "filters combine with AND")
	require.NotNil(t, list[0].CategoryName)
	assert.Equal(t, "Maison", *list[0].CategoryName)
	assert.Equal(t, "maison", *list[0].CategorySlug)

	list, err = s.ListProducts(ctx, ProductFilter{Query: "_"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Savon_noir"}, titles(list), "underscore is literal")

	list, err = s.ListProducts(ctx, ProductFilter{Query: "%"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Crème 100% bio"}, titles(list), "percent is literal")

	for _, q := range []string{"Électronique", "électronique", "ÉLECTRONIQUE", "lectronique"} {
		list, err = s.ListProducts(ctx, ProductFilter{Query: q})
		require.NoError(t, err)
		assert.Equal(t, []string{"Électronique Pro"}, titles(list), "query %q", q)
		total, err := s.CountProducts(ctx, ProductFilter{Query: q})
		require.NoError(t, err)
		assert.Equal(t, int64(1), total, "query %q", q)
	}

	for _, q := range []string{"Beauté", "beauté", "SÉRUM BEAUTÉ"} {
		list, err = s.ListProducts(ctx, ProductFilter{Query: q})
		require.NoError(t, err)
		assert.Equal(t, []string{"Sérum Beauté"}, titles(list), "query %q", q)
	}
}

func TestListProductsOrderAndPagination(t *testing.T) {
	s, cats := newTestStore(t)
	titles := make([]string, 0, 11)
	for i := 0; i < 11; i++ {
		titles = append(titles, fmt.Sprintf("Item %02d", i))
	}
	seedProducts(t, s, cats, titles)
	ctx := context.Background()

	full, err := s.ListProducts(ctx, ProductFilter{Limit: 100})
	require.NoError(t, err)
	require.Len(t, full, 11)
	for i := 1; i < len(full); i++ {
		prev, cur := full[i-1], full[i]
		newer := prev.CreatedAt.After(cur.CreatedAt) || (prev.CreatedAt.Equal(cur.CreatedAt) && prev.ID > cur.ID)
		assert.True(t, newer, "most recent first")
	}
	assert.Equal(t, "Item 10", full[0].Title)

	const limit = 4
	for page := 1; page <= 4; page++ {
		got, err := s.ListProducts(ctx, ProductFilter{Limit: limit, Offset: (page - 1) * limit})
		require.NoError(t, err)
		lo := min((page-1)*limit, len(full))
		hi := min(page*limit, len(full))
		assert.Equal(t, full[lo:hi], got, "page %d", page)
	}
}

func TestListProductsDefaults(t *testing.T) {
	s, cats := newTestStore(t)
	titles := make([]string, 30)
	for i := range titles {
		titles[i] = fmt.Sprintf("P%d", i)
	}
	seedProducts(t, s, cats, titles)

	list, err := s.ListProducts(context.Background(), ProductFilter{Limit: 0, Offset: -5})
	require.NoError(t, err)
	assert.Len(t, list, DefaultLimit)
}

func TestTotalPages(t *testing.T) {
	assert.Equal(t, 1, TotalPages(0, 24))
	assert.Equal(t, 1, TotalPages(24, 24))
	assert.Equal(t, 2, TotalPages(25, 24))
	assert.Equal(t, 3, TotalPages(49, 24))
	assert.Equal(t, 1, TotalPages(3, 0))
}

func TestApplyClausesRejectsUnknownColumns(t *testing.T) {
	s, _ := newTestStore(t)
	_, err := applyClauses(s.productsQuery(context.Background()), []Clause{{Column: "users.password_hash", Op: OpEq, Value: "x"}})
	assert.Error(t, err)
	_, err = applyClauses(s.productsQuery(context.Background()), []Clause{{Column: "products.title", Op: "gt", Value: "x"}})
	assert.Error(t, err)
}

func TestGetProductNotFound(t *testing.T) {
	s, _ := newTestStore(t)
	_, err := s.GetProductBySlug(context.Background(), "nope")
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
	_, err = s.GetProductByID(context.Background(), 42)
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
}

func TestCategories(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	cats, err := s.ListCategories(ctx)
	require.NoError(t, err)
	require.Len(t, cats, 2)
	assert.Equal(t, "Beauté", cats[0].Name, "ordered by name")

	cat, err := s.GetCategoryBySlug(ctx, "maison")
	require.NoError(t, err)
	assert.Equal(t, "Maison", cat.Name)

	_, err = s.GetCategoryBySlug(ctx, "jardin")
	assert.ErrorIs(t, err, domain.ErrCategoryNotFound)
}

func TestUpdateProduct(t *testing.T) {
	s, cats := newTestStore(t)
	ctx := context.Background()
	slug, err := s.CreateProduct(ctx, ProductInput{
		Title:       "Red Lamp",
		Price:       1500,
		Description: strPtr("Une lampe"),
		ImagePath:   strPtr("/uploads/1-lamp.jpg"),
		CategoryID:  &cats[0].ID,
	})
	require.NoError(t, err)
	orig, err := s.GetProductBySlug(ctx, slug)
	require.NoError(t, err)

	t.Run("same title keeps slug and image", func(t *testing.T) {
		got, err := s.UpdateProduct(ctx, orig.ID, ProductInput{Title: "Red Lamp", Price: 1200})
		require.NoError(t, err)
		assert.Equal(t, slug, got)

		p, err := s.GetProductByID(ctx, orig.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(1200), p.Price)
		require.NotNil(t, p.ImagePath)
		assert.Equal(t, "/uploads/1-lamp.jpg", *p.ImagePath)
		assert.Nil(t, p.Description, "description is overwritten")
		assert.Nil(t, p.CategoryID, "category is overwritten")
	})

	t.Run("new title changes slug", func(t *testing.T) {
		got, err := s.UpdateProduct(ctx, orig.ID, ProductInput{Title: "Blue Lamp", Price: 1200, CategoryID: &cats[1].ID})
		require.NoError(t, err)
		assert.NotEqual(t, slug, got)
		assert.Regexp(t, `^blue-lamp-[0-9a-z]+$`, got)

		_, err = s.GetProductBySlug(ctx, slug)
		assert.ErrorIs(t, err, domain.ErrProductNotFound)
		p, err := s.GetProductBySlug(ctx, got)
		require.NoError(t, err)
		assert.Equal(t, "beaute", *p.CategorySlug)
		assert.Equal(t, "/uploads/1-lamp.jpg", *p.ImagePath)
		found, err := s.ListProducts(ctx, ProductFilter{Query: "BLUE"})
		require.NoError(t, err)
		require.Len(t, found, 1, "search follows the new title")
		assert.Equal(t, orig.ID, found[0].ID)
	})

	t.Run("new image replaces old one", func(t *testing.T) {
		_, err := s.UpdateProduct(ctx, orig.ID, ProductInput{Title: "Blue Lamp", Price: 1, ImagePath: strPtr("/uploads/2-new.jpg")})
		require.NoError(t, err)
		p, err := s.GetProductByID(ctx, orig.ID)
		require.NoError(t, err)
		assert.Equal(t, "/uploads/2-new.jpg", *p.ImagePath)
	})

	t.Run("unknown id", func(t *testing.T) {
		_, err := s.UpdateProduct(ctx, 9999, ProductInput{Title: "X", Price: 1})
		assert.ErrorIs(t, err, domain.ErrProductNotFound)
	})

	t.Run("invalid input", func(t *testing.T) {
		_, err := s.UpdateProduct(ctx, orig.ID, ProductInput{Title: " ", Price: 1})
		var verr *domain.ValidationError
		assert.ErrorAs(t, err, &verr)
	})
}

func TestDeleteProduct(t *testing.T) {
	s, cats := newTestStore(t)
	ctx := context.Background()
	slugs := seedProducts(t, s, cats, []string{"A", "B"})

	require.NoError(t, s.DeleteProduct(ctx, 9999))
	total, err := s.CountProducts(ctx, ProductFilter{})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total, "missing id leaves the table unchanged")

	p, err := s.GetProductBySlug(ctx, slugs[0])
	require.NoError(t, err)
	require.NoError(t, s.DeleteProduct(ctx, p.ID))
	_, err = s.GetProductBySlug(ctx, slugs[0])
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
}

func TestDeletingCategoryNullsProductCategory(t *testing.T) {
	s, cats := newTestStore(t)
	ctx := context.Background()
	slug, err := s.CreateProduct(ctx, ProductInput{Title: "Vase", Price: 5, CategoryID: &cats[0].ID})
	require.NoError(t, err)

	require.NoError(t, s.db.Delete(&domain.Category{}, cats[0].ID).Error)

	p, err := s.GetProductBySlug(ctx, slug)
	require.NoError(t, err)
	assert.Nil(t, p.CategoryID)
}

func TestFindUserByUsername(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()
	require.NoError(t, s.db.Create(&domain.User{Username: "admin", PasswordHash: "x"}).Error)

	u, err := s.FindUserByUsername(ctx, "admin")
	require.NoError(t, err)
	assert.Equal(t, "admin", u.Username)

	_, err = s.FindUserByUsername(ctx, "ghost")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
	assert.NoError(t, s.Ping(ctx))
}
