package httperr

import "errors"

type BusinessError struct {
	Code    string
	Details map[string]any
}

func (e BusinessError) Error() string {
	return e.Code
}

// Is compara pelo código: Details tem map e não é comparável.
func (e BusinessError) Is(target error) bool {
	t, ok := target.(BusinessError)
	return ok && t.Code == e.Code
}

func ErrBusiness(code string) error {
	return BusinessError{Code: code}
}

func ErrBusinessWith(code string, details map[string]any) error {
	return BusinessError{Code: code, Details: details}
}

func IsBusiness(err error, code string) bool {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code == code
	}
	return false
}

// AsBusiness extracts the business error carried by err, if any.
func AsBusiness(err error) (BusinessError, bool) {
	var be BusinessError
	ok := errors.As(err, &be)
	return be, ok
}
