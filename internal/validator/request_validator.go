package validator

import (
	playground "github.com/go-playground/validator/v10"
)

// echo.Validatorの実装。handlerのc.Validate()から使う。
type RequestValidator struct {
	v *playground.Validate
}

func New() *RequestValidator {
	return &RequestValidator{v: playground.New()}
}

func (rv *RequestValidator) Validate(i interface{}) error {
	return rv.v.Struct(i)
}
