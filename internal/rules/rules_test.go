package rules

import (
	"errors"
	"fmt"
	"testing"

	"github.com/bfarias-dev/movienotes/internal/apperror"
)

func TestValidateRating(t *testing.T) {
	tests := []struct {
		rating  int
		wantErr bool
	}{
		{0, true},
		{1, false},
		{3, false},
		{5, false},
		{6, true},
		{-1, true},
		{100, true},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("rating=%d", tt.rating), func(t *testing.T) {
			err := ValidateRating(tt.rating)
			if tt.wantErr {
				if !errors.Is(err, apperror.ErrValidation) {
					t.Errorf("ValidateRating(%d) = %v, want ErrValidation", tt.rating, err)
				}
			} else if err != nil {
				t.Errorf("ValidateRating(%d) = %v, want nil", tt.rating, err)
			}
		})
	}
}

func TestRequired_ReportsFirstMissingField(t *testing.T) {
	err := Required(
		Field{"title", ""},
		Field{"description", ""},
	)
	if err == nil {
		t.Fatal("Required() should fail when fields are empty")
	}

	var appErr *apperror.AppError
	if !errors.As(err, &appErr) {
		t.Fatalf("error = %T, want *apperror.AppError", err)
	}
	// Check order is fixed: the FIRST empty field is the one reported.
	if appErr.Field != "title" {
		t.Errorf("Field = %q, want %q", appErr.Field, "title")
	}
}

func TestRequired_WhitespaceCountsAsAbsent(t *testing.T) {
	err := Required(Field{"name", "   "})
	if !errors.Is(err, apperror.ErrValidation) {
		t.Errorf("Required() = %v, want ErrValidation for whitespace-only value", err)
	}
}

func TestRequired_AllPresent(t *testing.T) {
	err := Required(
		Field{"title", "Blade Runner"},
		Field{"description", "replicants"},
	)
	if err != nil {
		t.Errorf("Required() = %v, want nil", err)
	}
}

func TestAuthorizeMutation(t *testing.T) {
	if err := AuthorizeMutation(7, 7); err != nil {
		t.Errorf("AuthorizeMutation(7, 7) = %v, want nil", err)
	}

	err := AuthorizeMutation(7, 8)
	if !errors.Is(err, apperror.ErrForbidden) {
		t.Errorf("AuthorizeMutation(7, 8) = %v, want ErrForbidden", err)
	}
}

func TestResolve(t *testing.T) {
	title := "new title"
	if got := Resolve(&title, "old title"); got != "new title" {
		t.Errorf("Resolve(supplied) = %q, want %q", got, "new title")
	}
	if got := Resolve[string](nil, "old title"); got != "old title" {
		t.Errorf("Resolve(nil) = %q, want %q", got, "old title")
	}

	rating := 4
	if got := Resolve(&rating, 2); got != 4 {
		t.Errorf("Resolve(supplied int) = %d, want 4", got)
	}
	if got := Resolve[int](nil, 2); got != 2 {
		t.Errorf("Resolve(nil int) = %d, want 2", got)
	}
}

// fakeVerifier accepts exactly one plaintext value.
type fakeVerifier struct {
	accept string
}

func (f fakeVerifier) Verify(digest, plaintext string) error {
	if plaintext != f.accept {
		return errors.New("mismatch")
	}
	return nil
}

func TestAuthorizePasswordChange(t *testing.T) {
	v := fakeVerifier{accept: "current-secret"}
	newPw := "next-secret"
	goodOld := "current-secret"
	badOld := "wrong"
	blank := "  "

	t.Run("no new password is a no-op", func(t *testing.T) {
		if err := AuthorizePasswordChange(nil, nil, "digest", v); err != nil {
			t.Errorf("AuthorizePasswordChange() = %v, want nil", err)
		}
	})

	t.Run("new password without old fails", func(t *testing.T) {
		err := AuthorizePasswordChange(&newPw, nil, "digest", v)
		if !errors.Is(err, apperror.ErrValidation) {
			t.Errorf("error = %v, want ErrValidation (missing old password)", err)
		}
	})

	t.Run("blank old password counts as missing", func(t *testing.T) {
		err := AuthorizePasswordChange(&newPw, &blank, "digest", v)
		if !errors.Is(err, apperror.ErrValidation) {
			t.Errorf("error = %v, want ErrValidation (missing old password)", err)
		}
	})

	t.Run("wrong old password fails", func(t *testing.T) {
		err := AuthorizePasswordChange(&newPw, &badOld, "digest", v)
		if !errors.Is(err, apperror.ErrForbidden) {
			t.Errorf("error = %v, want ErrForbidden (old password mismatch)", err)
		}
	})

	t.Run("correct old password passes", func(t *testing.T) {
		if err := AuthorizePasswordChange(&newPw, &goodOld, "digest", v); err != nil {
			t.Errorf("AuthorizePasswordChange() = %v, want nil", err)
		}
	})
}
