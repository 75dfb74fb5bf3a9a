package validator

import (
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"reflect"
	"roomly/config"
	"roomly/shared/base64"
	"roomly/shared/constant"
	"roomly/shared/failure"
	"slices"
	"strconv"
	"strings"
	"sync"

	val "github.com/go-playground/validator/v10"
)

const (
	// TagDomain delegates to the field's own Validate(*config.Config) error method.
	TagDomain = "roomly"

	bytesPerMB = 1 << 20
)

// DomainRule is implemented by request fields validated with TagDomain.
type DomainRule interface {
	Validate(cfg *config.Config) error
}

var instance = sync.OnceValue(func() *val.Validate {
	v := val.New(val.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(jsonFieldName)

	rules := map[string]val.Func{
		TagDomain:     domainRule,
		"mimetypes":   mimeTypes,
		"maxfilesize": maxFileSize,
	}

	for tag, rule := range rules {
		if err := v.RegisterValidation(tag, rule); err != nil {
			panic(fmt.Sprintf("register %s validation: %v", tag, err))
		}
	}

	return v
})

func jsonFieldName(field reflect.StructField) string {
	name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
	if name == "-" || name == "" {
		return field.Name
	}

	return name
}

func domainRule(fl val.FieldLevel) bool {
	rule, ok := fl.Field().Interface().(DomainRule)
	if !ok {
		return false
	}

	return rule.Validate(config.Get()) == nil
}

// upload describes a multipart file or a base64 data URI.
func upload(fl val.FieldLevel) (contentType string, size int64, ok bool) {
	switch value := fl.Field().Interface().(type) {
	case multipart.FileHeader:
		return value.Header.Get(constant.RequestHeaderContentType), value.Size, true
	case string:
		return base64.GetContentType(value), int64(len(value)), true
	default:
		return "", 0, false
	}
}

// mimeTypes takes a space separated allow list, e.g. mimetypes=image/png image/jpeg.
func mimeTypes(fl val.FieldLevel) bool {
	contentType, _, ok := upload(fl)
	if !ok || contentType == "" {
		return false
	}

	return slices.Contains(strings.Fields(fl.Param()), contentType)
}

// maxFileSize takes a limit in megabytes. Data URIs are measured encoded.
func maxFileSize(fl val.FieldLevel) bool {
	_, size, ok := upload(fl)
	if !ok {
		return false
	}

	limitMB, err := strconv.ParseFloat(fl.Param(), 64)
	if err != nil {
		return false
	}

	return float64(size) <= limitMB*bytesPerMB
}

// Validate decodes a JSON body into data and validates it. Both failures
// surface as 400 with a readable message.
func Validate[T any](r io.Reader, data *T) error {
	if err := json.NewDecoder(r).Decode(data); err != nil {
		return failure.BadRequest(fmt.Errorf("failed to decode request body: %w", err)) //nolint:wrapcheck
	}

	return ValidateStruct(data)
}

func ValidateStruct[T any](data *T) error {
	if err := instance().Struct(data); err != nil {
		return failure.BadRequestFromString(message(err)) //nolint:wrapcheck
	}

	return nil
}

func ValidateVar(field any, tag string) error {
	if err := instance().Var(field, tag); err != nil {
		return failure.BadRequestFromString(message(err)) //nolint:wrapcheck
	}

	return nil
}
