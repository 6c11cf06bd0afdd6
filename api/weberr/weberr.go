// Package weberr decorates errors with what the HTTP layer needs to
// answer them: a response body and status, and extra log fields.
package weberr

import "errors"

type Opt func(error) error

func Wrap(err error, opts ...Opt) error {
	for _, opt := range opts {
		err = opt(err)
	}
	return err
}

func WithResponse(body interface{}, status int) Opt {
	return func(err error) error {
		return &responseError{error: err, body: body, status: status}
	}
}

func WithFields(fields map[string]interface{}) Opt {
	return func(err error) error {
		return &fieldsError{error: err, fields: fields}
	}
}

// Response finds the outermost response attached anywhere in err's chain.
func Response(err error) (body interface{}, status int, ok bool) {
	var re *responseError
	if errors.As(err, &re) {
		return re.body, re.status, true
	}
	return nil, 0, false
}

// Fields merges the log fields attached anywhere in err's chain. Outer
// fields win over inner ones.
func Fields(err error) (map[string]interface{}, bool) {
	var fields map[string]interface{}
	for err != nil {
		var fe *fieldsError
		if !errors.As(err, &fe) {
			break
		}
		if fields == nil {
			fields = make(map[string]interface{})
		}
		for k, v := range fe.fields {
			if _, ok := fields[k]; !ok {
				fields[k] = v
			}
		}
		err = fe.error
	}
	return fields, fields != nil
}

type responseError struct {
	error
	body   interface{}
	status int
}

func (e *responseError) Unwrap() error { return e.error }

type fieldsError struct {
	error
	fields map[string]interface{}
}

func (e *fieldsError) Unwrap() error { return e.error }
