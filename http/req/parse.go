package req

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"

	v10 "github.com/go-playground/validator/v10"
	"github.com/gorilla/schema"
	"github.com/xy-planning-network/waypoint"
)

// A Parser decodes request payloads into structs and validates them
// against their "validate" struct tags.
//
// A Parser is safe for concurrent use; construct one at start-up and share it.
type Parser struct {
	dec   *schema.Decoder
	valid *v10.Validate
}

// NewParser constructs a *Parser.
//
// Query parameters map to struct fields by their "schema" tag.
// Field names in ValidationErrors prefer the "json" tag, then the "schema" tag.
// The "enum" validation checks a field, or each element of a slice field,
// is a valid waypoint.Enumerable.
func NewParser() *Parser {
	dec := schema.NewDecoder()
	dec.IgnoreUnknownKeys(true)

	v := v10.New()
	v.RegisterValidation("enum", validateEnumerable)
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		for _, tag := range []string{"json", "schema"} {
			name, _, _ := strings.Cut(field.Tag.Get(tag), ",")
			if name != "" && name != "-" {
				return name
			}
		}

		return ""
	})

	return &Parser{dec: dec, valid: v}
}

// ParseBody decodes the JSON body of r into structPtr and validates the result.
func (p *Parser) ParseBody(r *Request, structPtr any) error {
	var ourFault *json.InvalidUnmarshalError
	err := json.NewDecoder(bytes.NewReader(r.Body())).Decode(structPtr)
	if errors.As(err, &ourFault) {
		return fmt.Errorf("waypoint/http/req: %w: ParseBody called with non-pointer: %s", waypoint.ErrBadAny, err)
	}

	if err != nil {
		return fmt.Errorf("waypoint/http/req: %w: failed decoding request body: %s", waypoint.ErrBadFormat, err)
	}

	if err := p.validate(structPtr); err != nil {
		return fmt.Errorf("waypoint/http/req: %T failed validation: %w", structPtr, err)
	}

	return nil
}

// ParseQueryParams decodes the query parameters of r into structPtr and validates the result.
func (p *Parser) ParseQueryParams(r *Request, structPtr any) error {
	if err := p.dec.Decode(structPtr, r.Queries()); err != nil {
		return fmt.Errorf("waypoint/http/req: failed decoding request query params: %w", translateDecoderError(err))
	}

	if err := p.validate(structPtr); err != nil {
		return fmt.Errorf("waypoint/http/req: %T failed validation: %w", structPtr, err)
	}

	return nil
}

// validate translates each failed rule on structPtr to a ValidationError.
func (p *Parser) validate(structPtr any) error {
	err := p.valid.Struct(structPtr)
	if err == nil {
		return nil
	}

	var errs v10.ValidationErrors
	if !errors.As(err, &errs) {
		return fmt.Errorf("%w: %s", waypoint.ErrBadAny, err)
	}

	out := make(ValidationErrors, 0, len(errs))
	for _, ve := range errs {
		field := ve.Namespace()
		if _, rest, ok := strings.Cut(field, "."); ok {
			field = rest
		}

		rule := ve.Tag()
		if ve.Param() != "" {
			rule += "=" + ve.Param()
		}

		out = append(out, ValidationError{
			Field: field,
			Got:   ve.Value(),
			Rule:  rule + "; " + ve.Type().String(),
		})
	}

	return out
}

// translateDecoderError converts an error returned by *schema.Decoder into standardized errors.
func translateDecoderError(err error) error {
	var pkgErrs schema.MultiError
	if !errors.As(err, &pkgErrs) {
		return fmt.Errorf("%w: %s", waypoint.ErrBadFormat, err)
	}

	var out ValidationErrors
	for key, pkgErr := range pkgErrs {
		var convErr schema.ConversionError
		if !errors.As(pkgErr, &convErr) {
			return fmt.Errorf("%w: %s: %s", waypoint.ErrUnexpected, key, pkgErr)
		}

		out = append(out, ValidationError{
			Field: convErr.Key,
			Got:   "value could not be converted",
			Rule:  "must be " + convErr.Type.String(),
		})
	}

	return out
}

// validateEnumerable validates whether field is a valid Enumerable or slice of valid Enumerable.
func validateEnumerable(fl v10.FieldLevel) bool {
	field := fl.Field()
	if field.Kind() != reflect.Slice {
		return validEnum(field)
	}

	if field.Len() == 0 {
		return false
	}

	for i := 0; i < field.Len(); i++ {
		if !validEnum(field.Index(i)) {
			return false
		}
	}

	return true
}

func validEnum(v reflect.Value) bool {
	enum, ok := v.Interface().(waypoint.Enumerable)
	return ok && enum.Valid() == nil
}
