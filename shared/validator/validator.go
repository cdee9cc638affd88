package validator

import (
	"encoding/json"
	"fmt"
	"io"
	"maps"
	"reflect"
	"slices"
	"strconv"
	"strings"

	"voyage/shared/failure"

	val "github.com/go-playground/validator/v10"
)

const bytesPerMB = 1 << 20

var validate = newValidate()

// upload is satisfied by multipart files that know their declared content type and size.
type upload interface {
	MimeType() string
	ByteSize() int64
}

func newValidate() *val.Validate {
	v := val.New(val.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(fieldName)

	for tag, fn := range map[string]val.Func{
		"mimetypes":   validateMimeType,
		"maxfilesize": validateFileSize,
	} {
		if err := v.RegisterValidation(tag, fn); err != nil {
			panic(err)
		}
	}

	return v
}

func asUpload(fl val.FieldLevel) (upload, bool) {
	field := fl.Field()
	if field.Kind() != reflect.Pointer && field.CanAddr() {
		field = field.Addr()
	}

	u, ok := field.Interface().(upload)

	return u, ok
}

// validateMimeType accepts space separated types; "image/*" allows a whole family.
func validateMimeType(fl val.FieldLevel) bool {
	u, ok := asUpload(fl)
	if !ok {
		return false
	}

	contentType := u.MimeType()

	return slices.ContainsFunc(strings.Fields(fl.Param()), func(allowed string) bool {
		if family, found := strings.CutSuffix(allowed, "/*"); found {
			return strings.HasPrefix(contentType, family+"/")
		}

		return allowed == contentType
	})
}

func validateFileSize(fl val.FieldLevel) bool {
	u, ok := asUpload(fl)
	if !ok {
		return false
	}

	maxMB, err := strconv.ParseFloat(fl.Param(), 64)
	if err != nil {
		return false
	}

	return float64(u.ByteSize()) <= maxMB*bytesPerMB
}

// Validate decodes a JSON body into data and validates it. Malformed JSON is a
// bad request; failing rules are reported per field.
func Validate[T any](r io.Reader, data *T) error {
	if err := json.NewDecoder(r).Decode(data); err != nil {
		return failure.BadRequest(fmt.Errorf("failed to decode request body: %w", err)) //nolint:wrapcheck
	}

	return ValidateStruct(data)
}

func ValidateStruct[T any](data *T) error {
	if err := validate.Struct(data); err != nil {
		msg, details := describe(err)

		return failure.Validation(msg, details) //nolint:wrapcheck
	}

	return nil
}

// fieldName reports the form/json name of a struct field so messages match the request payload.
func fieldName(field reflect.StructField) string {
	for _, tag := range []string{"form", "json"} {
		name, _, _ := strings.Cut(field.Tag.Get(tag), ",")
		if name == "-" {
			return ""
		}

		if name != "" {
			return name
		}
	}

	return field.Name
}

// RequirePresent fails when any of the given pointer fields is nil or points at
// a zero value. It backs full updates, where every required field must be sent.
func RequirePresent(fields map[string]any) error {
	missing := map[string]any{}

	for name, value := range fields {
		field := reflect.ValueOf(value)
		if !field.IsValid() || (field.Kind() == reflect.Pointer && (field.IsNil() || field.Elem().IsZero())) {
			missing[name] = strings.ReplaceAll(messages["required"], "{field}", name)
		}
	}

	if len(missing) == 0 {
		return nil
	}

	names := slices.Sorted(maps.Keys(missing))

	return failure.Validation(missing[names[0]].(string), missing) //nolint:wrapcheck,forcetypeassert
}
