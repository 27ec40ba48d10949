// Package forms valida formulários antes de qualquer request.
package forms

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// usa o nome do campo no formulário nas mensagens
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("form"), ",", 2)[0]
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})
	return v
}

type Login struct {
	Email    string `form:"email" validate:"required,email"`
	Password string `form:"password" validate:"required,min=8"`
}

// AdminLogin é o formulário do backoffice: só exige os campos preenchidos.
type AdminLogin struct {
	Email    string `form:"email" validate:"required,email"`
	Password string `form:"password" validate:"required"`
}

type Register struct {
	FullName string `form:"full_name" validate:"required"`
	Email    string `form:"email" validate:"required,email"`
	Password string `form:"password" validate:"required,min=8"`
	Dob      string `form:"dob" validate:"required,datetime=2006-01-02"`
}

type TopUp struct {
	Amount    string `form:"amount" validate:"required,numeric"`
	BankName  string `form:"bank_name" validate:"required"`
	RefNumber string `form:"ref_number" validate:"required"`
}

type Withdrawal struct {
	Amount     string `form:"amount" validate:"required,numeric"`
	BankAlias  string `form:"bank_alias" validate:"required"`
	BankHolder string `form:"bank_holder" validate:"required"`
}

// Bet só exige stake numérico; regras de negócio ficam no servidor.
type Bet struct {
	MarketID  int64  `form:"market_id" validate:"gt=0"`
	Selection string `form:"selection" validate:"required"`
	Stake     string `form:"stake" validate:"required,numeric"`
}

// Tournament não compara início e fim; o servidor pode rejeitar.
type Tournament struct {
	Name     string `form:"name" validate:"required"`
	Company  string `form:"company_name" validate:"required"`
	StartsAt string `form:"starts_at" validate:"required"`
	EndsAt   string `form:"ends_at" validate:"required"`
}

type KYC struct {
	DocType   string `form:"doc_type" validate:"max=50"`
	DocNumber string `form:"doc_number" validate:"max=50"`
}

// FieldError é uma falha de um campo: Tag é a regra violada ("required", "email", "min"...).
type FieldError struct {
	Field string
	Tag   string
	Param string
}

// ValidationErrors agrega as falhas de um formulário.
type ValidationErrors []FieldError

func (v ValidationErrors) Error() string {
	parts := make([]string, 0, len(v))
	for _, fe := range v {
		parts = append(parts, fe.Field+": "+fe.Tag)
	}
	return "invalid form: " + strings.Join(parts, ", ")
}

// Field devolve a falha de um campo, se houver.
func (v ValidationErrors) Field(name string) (FieldError, bool) {
	for _, fe := range v {
		if fe.Field == name {
			return fe, true
		}
	}
	return FieldError{}, false
}

// Validate roda as regras da struct. Devolve ValidationErrors ou nil.
func Validate(form any) error {
	err := validate.Struct(form)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	out := make(ValidationErrors, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, FieldError{Field: fe.Field(), Tag: fe.Tag(), Param: fe.Param()})
	}
	return out
}
