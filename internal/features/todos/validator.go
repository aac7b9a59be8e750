package todos

import (
	"reflect"
	"time"

	"github.com/go-playground/validator/v10"

	pkgvalidator "github.com/xyz-asif/todoapp/internal/pkg/validator"
)

var fieldLabels = map[string]string{
	"title":       "Title",
	"description": "Description",
	"priority":    "Priority",
	"status":      "Status",
	"dueDate":     "Due date",
}

func todoMessage(fe pkgvalidator.FieldError) string {
	label, ok := fieldLabels[fe.Field()]
	if !ok {
		label = fe.Field()
	}

	switch fe.Tag() {
	case "notblank", "required":
		return label + " is required"
	case "max":
		return label + " must not exceed " + fe.Param() + " characters"
	case "todopriority":
		return label + " must be one of: low, medium, high"
	case "todostatus":
		return label + " must be one of: active, completed"
	case "future":
		return label + " must be in the future"
	default:
		return pkgvalidator.DefaultMessage(fe)
	}
}

// Validator checks create and update requests before they reach the
// service. The clock decides what "future" means.
type Validator struct {
	v   *pkgvalidator.Validator
	now func() time.Time
}

func NewValidator(now func() time.Time) *Validator {
	if now == nil {
		now = time.Now
	}
	tv := &Validator{v: pkgvalidator.New(todoMessage), now: now}

	engine := tv.v.Engine()
	engine.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if d, ok := field.Interface().(DateTime); ok {
			return d.Time
		}
		return nil
	}, DateTime{})

	tv.v.MustRegister("todopriority", func(fl validator.FieldLevel) bool {
		_, ok := ParsePriority(fl.Field().String())
		return ok
	})
	tv.v.MustRegister("todostatus", func(fl validator.FieldLevel) bool {
		_, ok := ParseStatus(fl.Field().String())
		return ok
	})
	tv.v.MustRegister("future", tv.isFuture)

	return tv
}

func (tv *Validator) isFuture(fl validator.FieldLevel) bool {
	t, ok := fl.Field().Interface().(time.Time)
	if !ok {
		return false
	}
	return t.After(tv.now())
}

// ValidateCreate returns all violations grouped by field, or nil.
func (tv *Validator) ValidateCreate(req *CreateTodoRequest) (map[string][]string, error) {
	return tv.validate(req)
}

// ValidateUpdate returns all violations grouped by field, or nil.
func (tv *Validator) ValidateUpdate(req *UpdateTodoRequest) (map[string][]string, error) {
	return tv.validate(req)
}

func (tv *Validator) validate(req any) (map[string][]string, error) {
	errs, err := tv.v.Struct(req)
	if err != nil || len(errs) == 0 {
		return nil, err
	}
	return errs, nil
}
