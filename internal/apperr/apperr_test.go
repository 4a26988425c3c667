package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestKindOf(t *testing.T) {
	err := E(KindNotFound, "Job not found")
	if KindOf(err) != KindNotFound {
		t.Errorf("KindOf = %v, want KindNotFound", KindOf(err))
	}

	// wrapped errors keep their kind through fmt wrapping
	wrapped := fmt.Errorf("handler: %w", err)
	if KindOf(wrapped) != KindNotFound {
		t.Errorf("KindOf(wrapped) = %v, want KindNotFound", KindOf(wrapped))
	}

	if KindOf(errors.New("plain")) != KindInternal {
		t.Error("plain errors default to KindInternal")
	}
}

func TestMessageMasksInternal(t *testing.T) {
	if got := Message(E(KindValidation, "Cover letter is required")); got != "Cover letter is required" {
		t.Errorf("Message = %q", got)
	}
	if got := Message(Wrap(KindInternal, errors.New("sqlite: disk I/O error"), "load job")); got != "internal error" {
		t.Errorf("internal message leaked: %q", got)
	}
	if got := Message(errors.New("plain")); got != "internal error" {
		t.Errorf("plain message leaked: %q", got)
	}
}

func TestWrapNil(t *testing.T) {
	if Wrap(KindInternal, nil, "noop") != nil {
		t.Error("Wrap(nil) must be nil")
	}
}

func TestUnwrap(t *testing.T) {
	cause := errors.New("root cause")
	err := Wrap(KindInternal, cause, "load job")
	if !errors.Is(err, cause) {
		t.Error("wrapped cause not reachable via errors.Is")
	}
}

func TestHTTPStatus(t *testing.T) {
	cases := []struct {
		kind Kind
		want int
	}{
		{KindValidation, http.StatusBadRequest},
		{KindNotFound, http.StatusNotFound},
		{KindForbidden, http.StatusForbidden},
		{KindConflict, http.StatusConflict},
		{KindInternal, http.StatusInternalServerError},
	}
	for _, c := range cases {
		if got := HTTPStatus(E(c.kind, "x")); got != c.want {
			t.Errorf("HTTPStatus(%v) = %d, want %d", c.kind, got, c.want)
		}
	}
}
