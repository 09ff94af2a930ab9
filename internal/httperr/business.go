package httperr

import "errors"

// BusinessError carrega um código estável consumido pelos handlers.
// Detail ecoa o dado que causou a recusa (ex.: a data bloqueada).
type BusinessError struct {
	Code   string
	Detail string
	Err    error
}

func (e BusinessError) Error() string {
	switch {
	case e.Err != nil && e.Detail != "":
		return e.Code + " (" + e.Detail + "): " + e.Err.Error()
	case e.Err != nil:
		return e.Code + ": " + e.Err.Error()
	case e.Detail != "":
		return e.Code + " (" + e.Detail + ")"
	}
	return e.Code
}

func (e BusinessError) Unwrap() error {
	return e.Err
}

func ErrBusiness(code string) error {
	return BusinessError{Code: code}
}

func ErrBusinessDetail(code, detail string) error {
	return BusinessError{Code: code, Detail: detail}
}

// Wrap anexa a causa técnica a um código de negócio.
func Wrap(code string, err error) error {
	if err == nil {
		return nil
	}
	return BusinessError{Code: code, Err: err}
}

func IsBusiness(err error, code string) bool {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code == code
	}
	return false
}

// CodeOf devolve o código e o detalhe do primeiro BusinessError da cadeia.
func CodeOf(err error) (code, detail string, ok bool) {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code, be.Detail, true
	}
	return "", "", false
}
