package controller

import (
	"net/http"
	"reflect"
	"strings"
	"unicode"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/lshigami/softskills/internal/dto"
	"github.com/lshigami/softskills/internal/service"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

func init() {
	// report json/form names in validation errors instead of Go field names
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			for _, tag := range []string{"json", "form"} {
				name := strings.SplitN(f.Tag.Get(tag), ",", 2)[0]
				if name != "" && name != "-" {
					return name
				}
			}
			return f.Name
		})
	}
}

// BindError writes a 400 for a request that failed gin binding.
func BindError(ctx *gin.Context, err error) {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request", Details: []string{err.Error()}})
		return
	}
	resp := dto.ErrorResponse{Message: "Validation failed"}
	for _, fe := range verrs {
		if resp.Field == "" {
			resp.Field = fe.Field()
		}
		resp.Details = append(resp.Details, describe(fe))
	}
	ctx.JSON(http.StatusBadRequest, resp)
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fe.Field() + " is required"
	case "required_without":
		return fe.Field() + " is required when " + snakeCase(fe.Param()) + " is empty"
	case "oneof":
		return fe.Field() + " must be one of: " + fe.Param()
	case "url":
		return fe.Field() + " must be a valid URL"
	case "email":
		return fe.Field() + " must be a valid email address"
	case "gt":
		return fe.Field() + " must be greater than " + fe.Param()
	case "gte":
		return fe.Field() + " must be at least " + fe.Param()
	default:
		return fe.Field() + " failed on " + fe.Tag()
	}
}

// snakeCase turns a struct field name such as VideoURL into video_url.
func snakeCase(name string) string {
	var b strings.Builder
	runes := []rune(name)
	for i, r := range runes {
		if i > 0 && unicode.IsUpper(r) && unicode.IsLower(runes[i-1]) {
			b.WriteByte('_')
		}
		b.WriteRune(unicode.ToLower(r))
	}
	return b.String()
}

// RespondError maps service errors onto HTTP statuses.
func RespondError(ctx *gin.Context, err error, fallbackMsg string) {
	var (
		validationErr *service.ValidationError
		notFoundErr   *service.NotFoundError
		ineligibleErr *service.IneligibleError
	)
	switch {
	case errors.As(err, &validationErr):
		resp := dto.ErrorResponse{Message: validationErr.Error()}
		for _, f := range validationErr.Fields {
			if resp.Field == "" {
				resp.Field = f.Field
			}
			resp.Details = append(resp.Details, f.Field+": "+f.Error)
		}
		ctx.JSON(http.StatusBadRequest, resp)
	case errors.As(err, &notFoundErr):
		ctx.JSON(http.StatusNotFound, dto.ErrorResponse{Message: notFoundErr.Error()})
	case errors.As(err, &ineligibleErr):
		ctx.JSON(http.StatusConflict, dto.IneligibleResponse{
			Message:           ineligibleErr.Error(),
			Reason:            ineligibleErr.Reason,
			NextAvailableDate: ineligibleErr.NextAvailableDate,
			PendingAttemptID:  ineligibleErr.PendingAttemptID,
		})
	default:
		log.Error().Err(err).Str("path", ctx.FullPath()).Msg(fallbackMsg)
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: fallbackMsg})
	}
}
