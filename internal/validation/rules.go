package validation

import (
	"strings"

	"catalog/internal/models"
)

// fieldRule binds a product field to a validator tag. value reports the
// field value and whether it is present at all.
type fieldRule struct {
	field    string
	required bool
	tag      string
	value    func(p *models.Product) (any, bool)
}

// productRules is evaluated top to bottom; violation order follows it.
var productRules = []fieldRule{
	{
		field:    "title",
		required: true,
		tag:      "min=3,max=100",
		value: func(p *models.Product) (any, bool) {
			return p.Title, p.Title != ""
		},
	},
	{
		field: "keywords",
		tag:   "max=200",
		value: func(p *models.Product) (any, bool) {
			return optional(p.Keywords)
		},
	},
	{
		field: "description",
		tag:   "min=50",
		value: func(p *models.Product) (any, bool) {
			return optional(p.Description)
		},
	},
	{
		field:    "rating",
		required: true,
		tag:      "gte=1,lte=10",
		value: func(p *models.Product) (any, bool) {
			return p.Rating, true
		},
	},
	{
		field:    "quantityInStock",
		required: true,
		tag:      "gte=0",
		value: func(p *models.Product) (any, bool) {
			return p.QuantityInStock, true
		},
	},
	{
		field: "dimensions",
		tag:   "max=50",
		value: func(p *models.Product) (any, bool) {
			return optional(p.Dimensions)
		},
	},
	{
		field:    "price",
		required: true,
		tag:      "decimal_gte=1.00,decimal_lte=9999.00",
		value: func(p *models.Product) (any, bool) {
			return p.Price.Decimal, p.Price.Valid
		},
	},
	{
		field:    "status",
		required: true,
		tag:      "oneof=" + statusList(),
		value: func(p *models.Product) (any, bool) {
			return p.Status, p.Status != ""
		},
	},
	{
		field: "weight",
		tag:   "gte=0",
		value: func(p *models.Product) (any, bool) {
			return optional(p.Weight)
		},
	},
	{
		field:    "dateAdded",
		required: true,
		tag:      "notfuture",
		value: func(p *models.Product) (any, bool) {
			return optional(p.DateAdded)
		},
	},
	{
		field: "dateModified",
		tag:   "notfuture",
		value: func(p *models.Product) (any, bool) {
			return optional(p.DateModified)
		},
	},
}

func optional[T any](v *T) (any, bool) {
	if v == nil {
		return nil, false
	}
	return *v, true
}

func statusList() string {
	names := make([]string, 0, len(models.ProductStatuses))
	for _, s := range models.ProductStatuses {
		names = append(names, string(s))
	}
	return strings.Join(names, " ")
}
