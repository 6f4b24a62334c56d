package contract

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// requestValidator checks the `validate` tags on request types. The API
// binder reads the same tags, so only built-in rules are used.
var requestValidator = validator.New(validator.WithRequiredStructEnabled())

type EditKind string

const (
	EditFloor    EditKind = "floor"
	EditBulk     EditKind = "bulk"
	EditTotal    EditKind = "total"
	EditChat     EditKind = "chat"
	EditPayment  EditKind = "payment"
	EditTicket   EditKind = "ticket"
	EditNote     EditKind = "note"
	EditSnapshot EditKind = "snapshot"
)

// FloorEditRequest changes one (material, floor) entry. A nil field is left
// as is.
type FloorEditRequest struct {
	Material  string   `json:"material" validate:"required"`
	Floor     int      `json:"floor" validate:"gte=0"`
	Quantity  *float64 `json:"quantity,omitempty"`
	UnitPrice *float64 `json:"unitPrice,omitempty"`
}

func NewFloorEditRequest(material string, floor int) FloorEditRequest {
	return FloorEditRequest{Material: material, Floor: floor}
}

// WithQuantity returns a copy of r that sets the quantity.
func (r FloorEditRequest) WithQuantity(q float64) FloorEditRequest {
	r.Quantity = &q
	return r
}

// WithUnitPrice returns a copy of r that sets the unit price.
func (r FloorEditRequest) WithUnitPrice(p float64) FloorEditRequest {
	r.UnitPrice = &p
	return r
}

// Validate checks request shape only. Negative values are not rejected
// here; the editor skips them and reports an issue.
func (r FloorEditRequest) Validate() error {
	r.Material = strings.TrimSpace(r.Material)
	return validateRequest(r)
}

type BulkAction string

const (
	ActionIncrease BulkAction = "increase"
	ActionDecrease BulkAction = "decrease"
)

type BulkField string

const (
	FieldQuantity BulkField = "quantity"
	FieldPrice    BulkField = "price"
)

// BulkEditRequest scales quantity or price of every entry of the named
// materials by a percentage. Quantities are re-split through the
// largest-remainder allocator unless Independent is set, in which case
// each floor entry is rounded on its own.
type BulkEditRequest struct {
	Materials   []string   `json:"materials" validate:"required,min=1,dive,required"`
	Action      BulkAction `json:"action" validate:"required,oneof=increase decrease"`
	Field       BulkField  `json:"field" validate:"required,oneof=quantity price"`
	Percentage  float64    `json:"percentage" validate:"gte=1,lte=100"`
	Independent bool       `json:"independent,omitempty"`
}

func NewBulkEditRequest(action BulkAction, field BulkField, percentage float64, materials ...string) BulkEditRequest {
	return BulkEditRequest{Materials: materials, Action: action, Field: field, Percentage: percentage}
}

// Validate rejects a percentage outside [1,100], NaN included.
func (r BulkEditRequest) Validate() error {
	trimmed := make([]string, len(r.Materials))
	for i, m := range r.Materials {
		trimmed[i] = strings.TrimSpace(m)
	}
	if r.Materials != nil {
		r.Materials = trimmed
	}
	return validateRequest(r)
}

// Factor is 1 ± percentage/100.
func (r BulkEditRequest) Factor() float64 {
	if r.Action == ActionDecrease {
		return 1 - r.Percentage/100
	}
	return 1 + r.Percentage/100
}

// TotalQuantityRequest sets a material's aggregate quantity and lets the
// allocator split it across floors.
type TotalQuantityRequest struct {
	Material string  `json:"material" validate:"required"`
	Total    float64 `json:"total"`
}

func (r TotalQuantityRequest) Validate() error {
	r.Material = strings.TrimSpace(r.Material)
	return validateRequest(r)
}

// validateRequest runs the struct tags and reports the first failure as an
// EditError.
func validateRequest(req any) error {
	err := requestValidator.Struct(req)
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return err
	}
	fe := fieldErrs[0]
	field, _, indexed := strings.Cut(fe.Field(), "[")
	switch field {
	case "Material":
		return &EditError{Code: ErrMissingMaterial, Message: "material is required"}
	case "Materials":
		if indexed {
			return &EditError{Code: ErrMissingMaterial, Message: "material names must not be empty"}
		}
		return &EditError{Code: ErrMissingMaterial, Message: "at least one material is required"}
	case "Floor":
		return &EditError{Code: ErrInvalidFloor, Message: fmt.Sprintf("floor must be >= 0, got %v", fe.Value())}
	case "Action":
		return &EditError{Code: ErrInvalidAction, Message: fmt.Sprintf("action must be increase or decrease, got %q", fe.Value())}
	case "Field":
		return &EditError{Code: ErrInvalidField, Message: fmt.Sprintf("field must be quantity or price, got %q", fe.Value())}
	case "Percentage":
		return &EditError{Code: ErrInvalidPercentage, Message: fmt.Sprintf("percentage must be within [1,100], got %v", fe.Value())}
	}
	return err
}

type EditErrorCode string

const (
	ErrMissingMaterial   EditErrorCode = "MISSING_MATERIAL"
	ErrInvalidFloor      EditErrorCode = "INVALID_FLOOR"
	ErrInvalidAction     EditErrorCode = "INVALID_ACTION"
	ErrInvalidField      EditErrorCode = "INVALID_FIELD"
	ErrInvalidPercentage EditErrorCode = "INVALID_PERCENTAGE"
)

type EditError struct {
	Code    EditErrorCode
	Message string
}

func (e *EditError) Error() string {
	return string(e.Code) + ": " + e.Message
}
