package forms

import (
	"mime/multipart"
	"reflect"
	"strconv"
	"strings"

	"shopadmin/storage"

	"github.com/go-playground/validator/v10"
)

// Getter reads a raw submitted field. The signature matches fiber's
// Ctx.FormValue so handlers can pass it directly.
type Getter func(key string, defaultValue ...string) string

// FieldErrors maps form field names to validation messages.
type FieldErrors map[string]string

func (fe FieldErrors) Add(field, message string) {
	if _, taken := fe[field]; !taken {
		fe[field] = message
	}
}

// Merge copies messages from other without overwriting existing ones.
func (fe FieldErrors) Merge(other FieldErrors) {
	for field, message := range other {
		fe.Add(field, message)
	}
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// Report errors under the submitted field name, not the Go field name
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})
	return v
}

// checkStruct runs tag validation on a draft and maps the failures to
// per-field messages.
func checkStruct(draft interface{}) FieldErrors {
	errs := FieldErrors{}
	if err := validate.Struct(draft); err != nil {
		if verrs, ok := err.(validator.ValidationErrors); ok {
			for _, verr := range verrs {
				switch verr.Tag() {
				case "required":
					errs.Add(verr.Field(), "This field is required")
				case "gte":
					errs.Add(verr.Field(), "Value must not be negative")
				default:
					errs.Add(verr.Field(), "Invalid value")
				}
			}
		}
	}
	return errs
}

func intField(get Getter, key string, errs FieldErrors) int {
	raw := strings.TrimSpace(get(key))
	if raw == "" {
		return 0
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		errs.Add(key, "Enter a whole number")
		return 0
	}
	return n
}

func uintField(get Getter, key string, errs FieldErrors) uint {
	raw := strings.TrimSpace(get(key))
	if raw == "" {
		return 0
	}
	n, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		errs.Add(key, "Invalid choice")
		return 0
	}
	return uint(n)
}

func floatField(get Getter, key string, errs FieldErrors) float64 {
	raw := strings.TrimSpace(get(key))
	if raw == "" {
		return 0
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		errs.Add(key, "Enter a number")
		return 0
	}
	return f
}

func optionalFloatField(get Getter, key string, errs FieldErrors) *float64 {
	raw := strings.TrimSpace(get(key))
	if raw == "" {
		return nil
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		errs.Add(key, "Enter a number")
		return nil
	}
	return &f
}

// boolField treats an absent value as fallback so edit forms keep the
// stored flag when the checkbox key is omitted.
func boolField(get Getter, key string, fallback bool) bool {
	switch strings.ToLower(strings.TrimSpace(get(key))) {
	case "":
		return fallback
	case "1", "true", "on", "yes":
		return true
	default:
		return false
	}
}

// ValidateImages checks every uploaded file and returns the aggregated
// messages. Any failure rejects the whole submission.
func ValidateImages(files []*multipart.FileHeader) []string {
	var errs []string
	for _, file := range files {
		if err := storage.ValidateImage(file); err != nil {
			errs = append(errs, err.Error())
		}
	}
	return errs
}
