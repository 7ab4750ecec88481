package errors

import (
	stdlib "errors"
	"fmt"
	"testing"

	"github.com/pkg/errors"
)

func TestCause(t *testing.T) {
	std := stdlib.New("this is a stdlib error")

	cases := map[string]struct {
		err  error
		root error
	}{
		"errors are self-causing": {
			err:  ErrNotFound,
			root: ErrNotFound,
		},
		"wrap reveals root cause": {
			err:  Wrap(ErrNotFound, "foo"),
			root: ErrNotFound,
		},
		"cause works for stderr as root": {
			err:  Wrap(std, "some helpful text"),
			root: std,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			if got := errors.Cause(tc.err); got != tc.root {
				t.Fatal("unexpected result")
			}
		})
	}
}

func TestErrorIs(t *testing.T) {
	cases := map[string]struct {
		a      *Error
		b      error
		wantIs bool
	}{
		"instance of the same error": {
			a:      ErrNotFound,
			b:      ErrNotFound,
			wantIs: true,
		},
		"two different coded errors": {
			a:      ErrNotFound,
			b:      ErrModel,
			wantIs: false,
		},
		"successful comparison to a wrapped error": {
			a:      ErrNotFound,
			b:      errors.Wrap(ErrNotFound, "gone"),
			wantIs: true,
		},
		"unsuccessful comparison to a wrapped error": {
			a:      ErrNotFound,
			b:      errors.Wrap(ErrOverflow, "too big"),
			wantIs: false,
		},
		"not equal to stdlib error": {
			a:      ErrNotFound,
			b:      fmt.Errorf("stdlib error"),
			wantIs: false,
		},
		"not equal to a wrapped stdlib error": {
			a:      ErrNotFound,
			b:      errors.Wrap(fmt.Errorf("stdlib error"), "wrapped"),
			wantIs: false,
		},
		"nil is nil": {
			a:      nil,
			b:      nil,
			wantIs: true,
		},
		"nil is any error nil": {
			a:      nil,
			b:      (*customError)(nil),
			wantIs: true,
		},
		"nil is not not-nil": {
			a:      nil,
			b:      ErrNotFound,
			wantIs: false,
		},
		"not-nil is not nil": {
			a:      ErrNotFound,
			b:      nil,
			wantIs: false,
		},
		"grouped with the same error": {
			a:      ErrNotFound,
			b:      Append(ErrNotFound, ErrState),
			wantIs: true,
		},
		"grouped in random order": {
			a:      ErrNotFound,
			b:      Append(ErrState, ErrNotFound),
			wantIs: true,
		},
		"grouped with a wrapped error": {
			a:      ErrNotFound,
			b:      Append(Wrap(ErrNotFound, "test"), ErrState),
			wantIs: true,
		},
		"grouped with different errors": {
			a:      ErrNotFound,
			b:      Append(ErrState, ErrMsg),
			wantIs: false,
		},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			if got := tc.a.Is(tc.b); got != tc.wantIs {
				t.Fatalf("unexpected result: %v", got)
			}
		})
	}
}

type customError struct{}

func (customError) Error() string {
	return "custom error"
}

func TestWrapEmpty(t *testing.T) {
	if err := Wrap(nil, "wrapping <nil>"); err != nil {
		t.Fatal(err)
	}
}

func TestWrappedIs(t *testing.T) {
	err := Wrap(ErrDuplicate, "payload")
	if !ErrDuplicate.Is(err) {
		t.Fatal("expected ErrDuplicate")
	}

	err = Wrap(err, "encapsulated")
	if !ErrDuplicate.Is(err) {
		t.Fatal("depth should not matter")
	}
}

func TestABCICode(t *testing.T) {
	cases := map[string]struct {
		err  error
		want uint32
	}{
		"registered error": {
			err:  ErrUnauthorized,
			want: 2,
		},
		"wrapped registered error": {
			err:  Wrap(Wrap(ErrUnauthorized, "foo"), "bar"),
			want: 2,
		},
		"stdlib is an internal error": {
			err:  fmt.Errorf("stdlib"),
			want: 1,
		},
		"wrapped stdlib is an internal error": {
			err:  Wrap(fmt.Errorf("stdlib"), "wrapped"),
			want: 1,
		},
		"a group reports the highest member code": {
			err:  Append(ErrUnauthorized, ErrDatabase),
			want: 17,
		},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			type coder interface {
				ABCICode() uint32
			}
			c, ok := tc.err.(coder)
			if !ok {
				t.Fatalf("%T does not provide an ABCI code", tc.err)
			}
			if got := c.ABCICode(); got != tc.want {
				t.Fatalf("want %d code, got %d", tc.want, got)
			}
		})
	}
}

func TestRecover(t *testing.T) {
	var err error
	func() {
		defer Recover(&err)
		panic("boom")
	}()
	if !ErrPanic.Is(err) {
		t.Fatalf("want a panic error, got %v", err)
	}
}
