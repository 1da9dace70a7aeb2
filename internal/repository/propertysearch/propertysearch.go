// Package propertysearch builds the parameterized statement behind the
// property search page.
//
// Every criterion value is bound as a positional parameter ($1..$n). The only
// things written into the statement text are column names, operators and
// placeholder numbers.
package propertysearch

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// DefaultLimit is the number of properties returned when the caller does not ask for more.
const DefaultLimit = 10

// PriceScale converts whole currency units into the cents stored in
// properties.cost_per_night. It is fixed and not configurable.
const PriceScale = 100

var priceScale = decimal.NewFromInt(PriceScale)

// PropertyColumns lists every column of the properties table, qualified by table name.
const PropertyColumns = `properties.id, properties.owner_id, properties.title, properties.description,
  properties.thumbnail_photo_url, properties.cover_photo_url, properties.cost_per_night,
  properties.parking_spaces, properties.number_of_bathrooms, properties.number_of_bedrooms,
  properties.country, properties.street, properties.city, properties.province,
  properties.post_code, properties.active`

// baseStatement selects every property column plus the average review rating.
// Filters are appended below it and the result is always grouped by property.
const baseStatement = `SELECT ` + PropertyColumns + `,
  avg(property_reviews.rating) AS average_rating
FROM properties
JOIN property_reviews ON properties.id = property_reviews.property_id`

// Criteria holds the optional search filters. A nil field is not applied.
//
// The price bounds are whole currency units and only take effect when both
// are set; a lone bound is ignored.
type Criteria struct {
	City                 *string
	OwnerID              *int64
	MinimumPricePerNight *decimal.Decimal
	MaximumPricePerNight *decimal.Decimal
	MinimumRating        *decimal.Decimal
}

// HasPriceRange reports whether both price bounds are present.
func (c Criteria) HasPriceRange() bool {
	return c.MinimumPricePerNight != nil && c.MaximumPricePerNight != nil
}

// Filters names the filters Build applies for c, in statement order.
func (c Criteria) Filters() []string {
	var names []string
	if c.City != nil && *c.City != "" {
		names = append(names, "city")
	}
	if c.OwnerID != nil {
		names = append(names, "owner_id")
	}
	if c.HasPriceRange() {
		names = append(names, "price_range")
	}
	if c.MinimumRating != nil {
		names = append(names, "minimum_rating")
	}
	return names
}

// Query is a statement ready to hand to the database driver.
// Params[i] binds to placeholder $(i+1).
type Query struct {
	Text   string
	Params []any
}

var placeholderPattern = regexp.MustCompile(`\$([0-9]+)`)

// Placeholders returns the number of distinct placeholders used in Text.
func (q Query) Placeholders() int {
	seen := make(map[string]struct{})
	for _, m := range placeholderPattern.FindAllStringSubmatch(q.Text, -1) {
		seen[m[1]] = struct{}{}
	}
	return len(seen)
}

// filterState tracks how many row filters have been written so far.
type filterState int

const (
	noFilter      filterState = iota // nothing written, next predicate opens WHERE
	firstFilter                      // WHERE written, next predicate is chained with AND
	chainedFilter                    // at least one AND written
)

// statement is the per-call accumulator. It is never shared between calls.
type statement struct {
	text   strings.Builder
	params []any
	filter filterState
}

// bind appends v to the parameter list and returns the placeholder that refers to it.
func (s *statement) bind(v any) string {
	s.params = append(s.params, v)
	return "$" + strconv.Itoa(len(s.params))
}

// where appends a pre-aggregation predicate.
func (s *statement) where(predicate string) {
	switch s.filter {
	case noFilter:
		s.text.WriteString("\nWHERE ")
		s.filter = firstFilter
	case firstFilter, chainedFilter:
		s.text.WriteString("\nAND ")
		s.filter = chainedFilter
	}
	s.text.WriteString(predicate)
}

// Build assembles the search statement for c, returning at most limit rows.
//
// limit is bound as-is; a zero or negative value is passed through for the
// database to judge.
func Build(c Criteria, limit int) Query {
	var s statement
	s.text.WriteString(baseStatement)

	if c.City != nil && *c.City != "" {
		s.where("properties.city LIKE " + s.bind("%"+*c.City+"%"))
	}

	if c.OwnerID != nil {
		s.where("properties.owner_id = " + s.bind(*c.OwnerID))
	}

	if c.HasPriceRange() {
		low := s.bind(toCents(*c.MinimumPricePerNight))
		high := s.bind(toCents(*c.MaximumPricePerNight))
		s.where("properties.cost_per_night > " + low + " AND properties.cost_per_night < " + high)
	}

	s.text.WriteString("\nGROUP BY properties.id")

	// HAVING shares the placeholder counter but never takes part in WHERE/AND chaining.
	if c.MinimumRating != nil {
		s.text.WriteString("\nHAVING avg(property_reviews.rating) > " + s.bind(*c.MinimumRating))
	}

	s.text.WriteString("\nORDER BY properties.cost_per_night")
	s.text.WriteString("\nLIMIT " + s.bind(limit) + ";")

	return Query{Text: s.text.String(), Params: s.params}
}

// BuildDefault is Build with DefaultLimit.
func BuildDefault(c Criteria) Query {
	return Build(c, DefaultLimit)
}

func toCents(amount decimal.Decimal) decimal.Decimal {
	return amount.Mul(priceScale)
}
