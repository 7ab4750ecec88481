package errors

import (
	"testing"
)

func TestAppend(t *testing.T) {
	cases := map[string]struct {
		errs     []error
		wantNil  bool
		wantMsg  string
		wantSize int
	}{
		"no errors": {
			errs:    nil,
			wantNil: true,
		},
		"only nil errors": {
			errs:    []error{nil, nil, nil},
			wantNil: true,
		},
		"single error is returned unwrapped": {
			errs:     []error{ErrState},
			wantMsg:  "invalid state",
			wantSize: 1,
		},
		"multiple errors are joined": {
			errs:     []error{ErrState, nil, ErrMsg},
			wantMsg:  "invalid state; invalid message",
			wantSize: 2,
		},
		"nested groups are flattened": {
			errs:     []error{Append(ErrState, ErrMsg), ErrEmpty},
			wantMsg:  "invalid state; invalid message; value is empty",
			wantSize: 3,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			err := Append(tc.errs...)
			if tc.wantNil {
				if err != nil {
					t.Fatalf("want nil, got %+v", err)
				}
				return
			}
			if err.Error() != tc.wantMsg {
				t.Fatalf("unexpected message: %q", err.Error())
			}
			if u, ok := err.(unpacker); ok {
				if n := len(u.Unpack()); n != tc.wantSize {
					t.Fatalf("want %d grouped errors, got %d", tc.wantSize, n)
				}
			} else if tc.wantSize != 1 {
				t.Fatalf("want a group of %d errors", tc.wantSize)
			}
		})
	}
}

func TestField(t *testing.T) {
	err := Append(
		Field("Name", ErrEmpty, "name is required"),
		Field("Amount", ErrAmount, "must be positive"),
	)

	if errs := FieldErrors(err, "Name"); len(errs) != 1 {
		t.Fatalf("want one error for Name, got %d", len(errs))
	}
	if errs := FieldErrors(err, "Memo"); len(errs) != 0 {
		t.Fatalf("want no errors for Memo, got %d", len(errs))
	}
	if !ErrAmount.Is(err) {
		t.Fatal("the group must carry the field error kind")
	}
}

func TestFieldNilError(t *testing.T) {
	if err := Field("Name", nil, "whatever"); err != nil {
		t.Fatalf("want nil, got %+v", err)
	}
}
