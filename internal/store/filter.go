package store

import (
	"fmt"     // Error formatting
	"strings" // String manipulation

	"catalog_shop/internal/domain" // Search key folding

	"gorm.io/gorm" // GORM ORM library
)

// DefaultLimit is the page size used when a filter does not set one
const DefaultLimit = 24

// Op is a predicate operator
type Op string

const (
	OpEq       Op = "eq"       // Exact match
	OpContains Op = "contains" // Substring match on a folded column
)

// Clause is one {column, operator, value} predicate of a product query
type Clause struct {
	Column string // Qualified column name
	Op     Op     // Operator
	Value  string // Operand
}

// filterColumns lists the columns a Clause may reference
var filterColumns = map[string]bool{
	"products.title":        true,
	"products.search_title": true,
	"products.slug":         true,
	"categories.slug":       true,
}

// ProductFilter selects and paginates catalog products
type ProductFilter struct {
	Query        string // Substring of the title, optional
	CategorySlug string // Exact category slug, optional
	Limit        int    // Page size, DefaultLimit when not positive
	Offset       int    // Rows to skip, zero when negative
}

// Clauses maps the optional filters to predicates. List and count both consume it.
func (f ProductFilter) Clauses() []Clause {
	var clauses []Clause
	if q := strings.TrimSpace(f.Query); q != "" {
		clauses = append(clauses, Clause{Column: "products.search_title", Op: OpContains, Value: q})
	}
	if cat := strings.TrimSpace(f.CategorySlug); cat != "" {
		clauses = append(clauses, Clause{Column: "categories.slug", Op: OpEq, Value: cat})
	}
	return clauses
}

// page returns the effective limit and offset
func (f ProductFilter) page() (limit, offset int) {
	limit, offset = f.Limit, f.Offset
	if limit <= 0 {
		limit = DefaultLimit
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}

// applyClauses ANDs every clause onto q
func applyClauses(q *gorm.DB, clauses []Clause) (*gorm.DB, error) {
	for _, c := range clauses {
		if !filterColumns[c.Column] {
			return nil, fmt.Errorf("filter column %q not allowed", c.Column)
		}
		switch c.Op {
		case OpEq:
			q = q.Where(c.Column+" = ?", c.Value)
		case OpContains:
			q = q.Where(c.Column+" LIKE ? ESCAPE '!'", "%"+escapeLike(domain.SearchKey(c.Value))+"%") // Column holds folded text
		default:
			return nil, fmt.Errorf("filter operator %q not supported", c.Op)
		}
	}
	return q, nil
}

// escapeLike makes LIKE wildcards in user input match literally
func escapeLike(s string) string {
	return strings.NewReplacer("!", "!!", "%", "!%", "_", "!_").Replace(s)
}

// TotalPages returns ceil(total/limit), never less than one
func TotalPages(total int64, limit int) int {
	if limit <= 0 {
		limit = DefaultLimit
	}
	pages := int((total + int64(limit) - 1) / int64(limit))
	if pages < 1 {
		return 1
	}
	return pages
}
