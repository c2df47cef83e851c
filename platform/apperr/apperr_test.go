package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestHTTPStatusMapping(t *testing.T) {
	cases := []struct {
		err  *Error
		want int
	}{
		{NotFound("x"), http.StatusNotFound},
		{Validation("x"), http.StatusBadRequest},
		{BadRequest("x"), http.StatusBadRequest},
		{Unauthorized("x"), http.StatusUnauthorized},
		{Unavailable("x"), http.StatusServiceUnavailable},
		{Internal("x"), http.StatusInternalServerError},
		{New(KindUnknown, "x"), http.StatusBadRequest},
	}

	for _, tc := range cases {
		if got := tc.err.HTTPStatus(); got != tc.want {
			t.Fatalf("kind %d: expected %d, got %d", tc.err.Kind, tc.want, got)
		}
	}
}

func TestGetKindFollowsWrapping(t *testing.T) {
	base := Validation("fecha is required")
	wrapped := fmt.Errorf("booking: %w", base)

	if GetKind(wrapped) != KindValidation {
		t.Fatalf("expected validation kind through wrapping, got %d", GetKind(wrapped))
	}
	if !Is(wrapped, KindValidation) {
		t.Fatal("expected Is to match wrapped validation error")
	}
	if GetKind(errors.New("plain")) != KindUnknown {
		t.Fatal("expected unknown kind for plain error")
	}
}

func TestErrorIncludesOp(t *testing.T) {
	err := Wrap(KindInternal, "ledger write failed", errors.New("disk full")).WithOp("ledger.Append")

	if err.Error() != "ledger.Append: ledger write failed" {
		t.Fatalf("unexpected message: %q", err.Error())
	}
	if errors.Unwrap(err).Error() != "disk full" {
		t.Fatal("expected underlying error to be unwrapped")
	}
}
