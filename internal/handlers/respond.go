package handlers

import (
	"errors"
	"net/http"
	"strings"
	"unicode"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"

	"shopapi/internal/servererrors"
)

// respondError maps service errors onto the JSON error contract:
// {"message": ...} plus an "errors" field map for validation failures.
// notFoundMsg customizes the 404 body per resource.
func respondError(c *gin.Context, log *logrus.Logger, err error, notFoundMsg string) {
	var verr *servererrors.ValidationError
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"message": "The given data was invalid.",
			"errors":  verr.Fields,
		})
	case errors.Is(err, servererrors.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"message": notFoundMsg})
	case errors.Is(err, servererrors.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"message": "Unauthorized."})
	case errors.Is(err, servererrors.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid credentials."})
	case errors.Is(err, servererrors.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthenticated."})
	default:
		log.WithError(err).Error("request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error."})
	}
}

// bindError turns gin binding failures into the same ValidationError
// shape the services produce.
func bindError(err error) error {
	var ferrs validator.ValidationErrors
	if !errors.As(err, &ferrs) {
		return servererrors.Invalid("body", "malformed request body")
	}
	verr := servererrors.NewValidation()
	for _, fe := range ferrs {
		verr.Add(snakeCase(fe.Field()), validationReason(fe))
	}
	return verr
}

func validationReason(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "this field is required"
	case "max":
		return "must be at most " + fe.Param() + " characters"
	case "min":
		return "must be at least " + fe.Param() + " characters"
	case "gte":
		return "must be at least " + fe.Param()
	case "lte":
		return "must be at most " + fe.Param()
	default:
		return "is invalid"
	}
}

// snakeCase maps Go field names onto their form/json names, e.g.
// "QuantityInStock" -> "quantity_in_stock", "CategoryID" -> "category_id".
func snakeCase(s string) string {
	var b strings.Builder
	for i, r := range s {
		if unicode.IsUpper(r) {
			if i > 0 && !unicode.IsUpper(rune(s[i-1])) {
				b.WriteByte('_')
			}
			r = unicode.ToLower(r)
		}
		b.WriteRune(r)
	}
	return b.String()
}
