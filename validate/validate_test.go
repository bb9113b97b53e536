package validate_test

import (
	"errors"
	"testing"

	"github.com/adamwoolhether/wire/validate"
	"github.com/google/go-cmp/cmp"
)

type profile struct {
	Name  string `json:"name" validate:"required"`
	Email string `json:"email" validate:"omitempty,email"`
	Age   int    `json:"age" validate:"gte=0,lte=150"`
}

func TestStruct(t *testing.T) {
	testCases := map[string]struct {
		val       any
		expFields map[string]string
	}{
		"valid": {
			val: profile{Name: "ada", Email: "ada@example.com", Age: 36},
		},
		"validPointer": {
			val: &profile{Name: "ada"},
		},
		"missingName": {
			val:       profile{Age: 10},
			expFields: map[string]string{"name": "This field is required"},
		},
		"badEmailAndAge": {
			val: profile{Name: "ada", Email: "nope", Age: 200},
			expFields: map[string]string{
				"email": "email must be a valid email address",
				"age":   "age must be 150 or less",
			},
		},
		"nonStruct": {
			val: map[string]string{"k": "v"},
		},
		"nilPointer": {
			val: (*profile)(nil),
		},
	}

	for name, tc := range testCases {
		t.Run(name, func(t *testing.T) {
			err := validate.Struct(tc.val)
			if tc.expFields == nil {
				if err != nil {
					t.Fatalf("expected no error, got: %v", err)
				}
				return
			}

			var fe validate.FieldErrors
			if !errors.As(err, &fe) {
				t.Fatalf("expected FieldErrors, got: %v", err)
			}
			if diff := cmp.Diff(tc.expFields, fe.Fields()); diff != "" {
				t.Errorf("fields mismatch (-want +got):\n%s", diff)
			}
		})
	}
}
