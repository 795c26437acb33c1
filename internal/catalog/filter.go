package catalog

import (
	"fmt"
	"strconv"
	"strings"
)

// Criteria carries the optional product filters. Zero values mean "not
// specified": CategoryID 0, nil price bounds, empty ratings, empty search
// term. Pointers distinguish an explicit price bound of 0 from an absent one.
type Criteria struct {
	CategoryID int64
	MinPrice   *int64
	MaxPrice   *int64
	Ratings    []int
	SearchTerm string
}

// ParseCriteria coerces raw query parameters into Criteria. Coercion fails
// closed: a value that does not parse is treated as absent, never as a
// match-everything zero. Ratings is a "|"-delimited list of integers;
// unparseable entries are dropped.
func ParseCriteria(categoryID, minPrice, maxPrice, ratings, searchTerm string) Criteria {
	c := Criteria{SearchTerm: strings.TrimSpace(searchTerm)}

	if id, err := strconv.ParseInt(categoryID, 10, 64); err == nil && id > 0 {
		c.CategoryID = id
	}
	if v, err := strconv.ParseInt(minPrice, 10, 64); err == nil && v >= 0 {
		c.MinPrice = &v
	}
	if v, err := strconv.ParseInt(maxPrice, 10, 64); err == nil && v >= 0 {
		c.MaxPrice = &v
	}
	for _, raw := range strings.Split(ratings, "|") {
		if r, err := strconv.Atoi(strings.TrimSpace(raw)); err == nil {
			c.Ratings = append(c.Ratings, r)
		}
	}

	return c
}

// Predicate is a composed SQL condition over the product collection. The same
// predicate instance must back both the paginated read and the count read so
// the two stay consistent.
type Predicate struct {
	Clause string
	Args   []any
}

// BuildPredicate combines every present criterion into one conjunction.
// Expressions reference products as "p" and the left-joined categories table
// as "c". With no criteria present the predicate matches everything.
func BuildPredicate(c Criteria) Predicate {
	var (
		conds []string
		args  []any
	)
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if term := c.SearchTerm; term != "" {
		like := "%" + term + "%"
		conds = append(conds, fmt.Sprintf(
			"(p.name ILIKE %s OR p.description ILIKE %s OR c.name ILIKE %s)",
			arg(like), arg(like), arg(like),
		))
	}

	if len(c.Ratings) > 0 {
		// Existential match: at least one review with a rating in the set.
		conds = append(conds, fmt.Sprintf(
			"EXISTS (SELECT 1 FROM reviews r WHERE r.product_id = p.id AND r.rating = ANY(%s))",
			arg(c.Ratings),
		))
	}

	if c.MinPrice != nil {
		conds = append(conds, fmt.Sprintf("p.price >= %s", arg(*c.MinPrice)))
	}
	if c.MaxPrice != nil {
		conds = append(conds, fmt.Sprintf("p.price <= %s", arg(*c.MaxPrice)))
	}

	if c.CategoryID > 0 {
		conds = append(conds, fmt.Sprintf("p.category_id = %s", arg(c.CategoryID)))
	}

	if len(conds) == 0 {
		return Predicate{Clause: "TRUE"}
	}

	return Predicate{Clause: strings.Join(conds, " AND "), Args: args}
}
