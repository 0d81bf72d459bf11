// Package validation checks products against the catalog constraint set.
package validation

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"time"

	"catalog/internal/models"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

type nowKey struct{}

// ProductValidator evaluates the product rule table. It is safe for
// concurrent use once constructed.
type ProductValidator struct {
	validate *validator.Validate
	clock    func() time.Time
}

// Option configures a ProductValidator.
type Option func(*ProductValidator)

// WithClock sets the source of "now" for the not-in-the-future checks.
func WithClock(clock func() time.Time) Option {
	return func(v *ProductValidator) {
		v.clock = clock
	}
}

// New creates a ProductValidator.
func New(opts ...Option) *ProductValidator {
	v := &ProductValidator{
		validate: validator.New(),
		clock:    time.Now,
	}
	for _, opt := range opts {
		opt(v)
	}

	v.validate.RegisterCustomTypeFunc(decimalString, decimal.Decimal{})
	// Registration only fails on empty tags or nil funcs.
	_ = v.validate.RegisterValidationCtx("notfuture", notFuture)
	_ = v.validate.RegisterValidation("decimal_gte", decimalCompare(func(c int) bool { return c >= 0 }))
	_ = v.validate.RegisterValidation("decimal_lte", decimalCompare(func(c int) bool { return c <= 0 }))

	return v
}

// Validate checks every rule against p and returns all violations in rule
// order. A valid product yields no violations. The only error is
// ErrInvalidArgument for a nil product.
func (v *ProductValidator) Validate(p *models.Product) (Violations, error) {
	if p == nil {
		return nil, ErrInvalidArgument
	}

	ctx := context.WithValue(context.Background(), nowKey{}, v.clock().UTC())

	var violations Violations
	for _, rule := range productRules {
		value, present := rule.value(p)
		if !present {
			if rule.required {
				violations = append(violations, newViolation(rule.field, "required", ""))
			}
			continue
		}

		err := v.validate.VarCtx(ctx, value, rule.tag)
		if err == nil {
			continue
		}
		var fieldErrs validator.ValidationErrors
		if !errors.As(err, &fieldErrs) {
			return nil, fmt.Errorf("validate %s: %w", rule.field, err)
		}
		for _, fe := range fieldErrs {
			violations = append(violations, newViolation(rule.field, fe.Tag(), fe.Param()))
		}
	}
	return violations, nil
}

func newViolation(field, kind, param string) Violation {
	return Violation{
		Field:   field,
		Kind:    kind,
		Param:   param,
		Message: message(kind, param),
	}
}

func message(kind, param string) string {
	switch kind {
	case "required":
		return "must not be null"
	case "min":
		return fmt.Sprintf("size must be at least %s", param)
	case "max":
		return fmt.Sprintf("size must be at most %s", param)
	case "gte", "decimal_gte":
		return fmt.Sprintf("must be greater than or equal to %s", param)
	case "lte", "decimal_lte":
		return fmt.Sprintf("must be less than or equal to %s", param)
	case "oneof":
		return fmt.Sprintf("must be one of [%s]", param)
	case "notfuture":
		return "must be a date in the past or in the present"
	default:
		return fmt.Sprintf("failed on the '%s' constraint", kind)
	}
}

// decimalString hands decimals to the validator as their exact string form.
func decimalString(field reflect.Value) any {
	if d, ok := field.Interface().(decimal.Decimal); ok {
		return d.String()
	}
	return nil
}

func decimalCompare(accept func(cmp int) bool) validator.Func {
	return func(fl validator.FieldLevel) bool {
		value, err := decimal.NewFromString(fl.Field().String())
		if err != nil {
			return false
		}
		bound, err := decimal.NewFromString(fl.Param())
		if err != nil {
			return false
		}
		return accept(value.Cmp(bound))
	}
}

func notFuture(ctx context.Context, fl validator.FieldLevel) bool {
	t, ok := fl.Field().Interface().(time.Time)
	if !ok {
		return false
	}
	now, ok := ctx.Value(nowKey{}).(time.Time)
	if !ok {
		now = time.Now()
	}
	return !t.After(now)
}
