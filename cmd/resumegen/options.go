package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// generateOptions are the flags of the generate command.
type generateOptions struct {
	ID        string   `validate:"required"`
	Templates []string `validate:"min=1,dive,required"`
	Order     string   `validate:"len=3"`
	Keywords  []string `validate:"dive,max=100"`
	Force     bool
}

// renderOptions are the flags of the render command.
type renderOptions struct {
	ID       string `validate:"required_without=File"`
	File     string `validate:"required_without=ID"`
	Template string `validate:"required"`
	Order    string `validate:"len=3"`
	Out      string
}

// checkOptions validates an options struct and names the offending flag.
func checkOptions(opts any) error {
	err := validate.Struct(opts)
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fmt.Sprintf("--%s: failed on the '%s' rule", flagName(fe.StructField()), fe.Tag()))
	}
	return errors.New(strings.Join(msgs, "; "))
}

func flagName(field string) string {
	switch field {
	case "Templates":
		return "template"
	default:
		return strings.ToLower(field)
	}
}
