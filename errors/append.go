package errors

import "strings"

// Append clubs together all provided errors. Nil values are ignored.
//
// If given error implements unpacker interface, it is flattened and
// instead of the error itself all its content is incorporated into the
// result.
func Append(errs ...error) error {
	var res multiError
	for _, e := range errs {
		switch e := e.(type) {
		case nil:
			continue
		case unpacker:
			res = append(res, e.Unpack()...)
		default:
			res = append(res, e)
		}
	}

	switch len(res) {
	case 0:
		return nil
	case 1:
		return res[0]
	default:
		return res
	}
}

type unpacker interface {
	Unpack() []error
}

// multiError represents a group of errors. It "is" all of them and
// reports the highest ABCI code among its members.
type multiError []error

var _ unpacker = (multiError)(nil)

func (errs multiError) Unpack() []error {
	return errs
}

func (errs multiError) Error() string {
	switch len(errs) {
	case 0:
		return "<nil>"
	case 1:
		return errs[0].Error()
	}
	msgs := make([]string, len(errs))
	for i, err := range errs {
		msgs[i] = err.Error()
	}
	return strings.Join(msgs, "; ")
}

// ABCICode returns the highest error code of all grouped errors. This
// is a rather random way of choosing a code, but group errors should
// not be returned to the client anyway.
func (errs multiError) ABCICode() uint32 {
	type coder interface {
		ABCICode() uint32
	}
	var code uint32
	for _, err := range errs {
		if c, ok := err.(coder); ok {
			if c := c.ABCICode(); c > code {
				code = c
			}
		}
	}
	if code == 0 {
		return 1
	}
	return code
}

// Field returns a copy of given error, wrapped with a field name
// information. This should be returned by any Validate method that
// tests a structure attributes, so that the client can learn which
// field exactly failed the test.
func Field(fieldName string, err error, description string) error {
	if err == nil {
		return nil
	}
	err = Wrap(err, description)
	return &fieldError{err: err, field: fieldName}
}

// AppendField is a shortcut for combining an error group with a field
// error. This pattern is common in Validate methods that check many
// attributes of a structure.
func AppendField(errs error, fieldName string, err error) error {
	return Append(errs, Field(fieldName, err, "field failed validation"))
}

// FieldErrors returns the list of all errors that are created for the
// given field name.
func FieldErrors(err error, fieldName string) []error {
	switch err := err.(type) {
	case nil:
		return nil
	case *fieldError:
		if err.field == fieldName {
			return []error{err}
		}
		return nil
	case unpacker:
		var res []error
		for _, e := range err.Unpack() {
			res = append(res, FieldErrors(e, fieldName)...)
		}
		return res
	default:
		return nil
	}
}

type fieldError struct {
	err   error
	field string
}

func (err *fieldError) Error() string {
	return err.field + ": " + err.err.Error()
}

func (err *fieldError) Cause() error {
	return err.err
}
