package utils

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
)

func TestGenCodes(t *testing.T) {
	at := time.Date(2026, 10, 15, 14, 30, 5, 0, time.UTC)

	if got := GenOrderNumber(124, at); got != "ORD-20261015143005-000124" {
		t.Errorf("unexpected order number %s", got)
	}
	if got := GenDocCode("PO", 1, at); got != "PO-2026-000001" {
		t.Errorf("unexpected doc code %s", got)
	}
}

func TestDefaultAvatar(t *testing.T) {
	if got := DefaultAvatar("Siti Aminah", "siti"); !strings.Contains(got, "seed=Siti+Aminah") {
		t.Errorf("unexpected avatar %s", got)
	}
	if got := DefaultAvatar("  ", "siti"); !strings.Contains(got, "seed=siti&") {
		t.Errorf("expected username as seed, got %s", got)
	}
}

type sampleInput struct {
	FullName   string `validate:"required"`
	CategoryID uint   `validate:"gt=0"`
	Email      string `validate:"omitempty,email"`
}

func TestValidationMessage(t *testing.T) {
	v := validator.New()

	err := v.Struct(sampleInput{Email: "bukan-email"})
	msg := ValidationMessage(err)
	for _, want := range []string{"full_name wajib diisi", "category_id harus lebih dari 0", "email bukan email yang valid"} {
		if !strings.Contains(msg, want) {
			t.Errorf("expected %q in %q", want, msg)
		}
	}

	var dst struct{ Price int64 }
	err = json.Unmarshal([]byte(`{"Price":"mahal"}`), &dst)
	if got := ValidationMessage(err); got != "Tipe data Price tidak valid" {
		t.Errorf("unexpected message %q", got)
	}
	err = json.Unmarshal([]byte(`{`), &dst)
	if got := ValidationMessage(err); got != "Data tidak valid" && got != "Format JSON tidak valid" {
		t.Errorf("unexpected message %q", got)
	}
}
