package types_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/openmol/drugforge/internal/types"
)

func TestErrorConstructors(t *testing.T) {
	cases := []struct {
		name    string
		err     *types.APIError
		code    int
		errType string
	}{
		{"validation", types.Validation("bad input"), 400, "validation"},
		{"conflict", types.Conflict("Email already exists"), 400, "conflict"},
		{"conflict save", types.ConflictSave("already saved"), 409, "conflict"},
		{"authentication", types.Authentication("no token"), 401, "authentication"},
		{"not found", types.NotFound("missing"), 404, "not_found"},
		{"upstream", types.Upstream("provider down"), 502, "upstream"},
		{"storage", types.Storage(errors.New("db gone")), 500, "storage"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if tc.err.Code != tc.code {
				t.Errorf("Expected code %d, got %d", tc.code, tc.err.Code)
			}
			if tc.err.Type != tc.errType {
				t.Errorf("Expected type %q, got %q", tc.errType, tc.err.Type)
			}
		})
	}
}

func TestAsAPIError(t *testing.T) {
	apiErr := types.Validation("bad input")

	wrapped := fmt.Errorf("handler: %w", apiErr)
	got, ok := types.AsAPIError(wrapped)
	if !ok {
		t.Fatal("Expected wrapped APIError to unwrap")
	}
	if got.Code != 400 {
		t.Errorf("Expected code 400, got %d", got.Code)
	}

	if _, ok := types.AsAPIError(errors.New("plain")); ok {
		t.Error("Expected plain error not to unwrap as APIError")
	}
}

func TestErrorString(t *testing.T) {
	err := types.Validation("bad input")
	want := "400: bad input [type: validation]"
	if err.Error() != want {
		t.Errorf("Expected %q, got %q", want, err.Error())
	}
}
