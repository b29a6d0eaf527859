package service

import (
	"errors"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"

	appErrors "github.com/noah-isme/cemetery-console/pkg/errors"
)

// validationError turns validator output into a VALIDATION_ERROR naming the offending fields.
func validationError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, appErrors.ErrValidation.Message)
	}

	seen := make(map[string]struct{}, len(verrs))
	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		name := fe.Field()
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		fields = append(fields, name)
	}
	sort.Strings(fields)

	return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status,
		"Complete correctamente los campos: "+strings.Join(fields, ", "))
}
