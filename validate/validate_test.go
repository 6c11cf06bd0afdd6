package validate

import (
	"strings"
	"testing"
)

func TestCheckReportsTagName(t *testing.T) {
	in := struct {
		ProductID string `json:"productId" validate:"required"`
	}{}

	err := Check(in)
	if err == nil {
		t.Fatal("expected a validation error")
	}
	if !strings.Contains(err.Error(), "productId") {
		t.Fatalf("expected the json field name in %q", err)
	}
}

func TestCheckFormTag(t *testing.T) {
	in := struct {
		Code string `form:"code" validate:"required,max=3"`
	}{Code: "TOOLONG"}

	err := Check(in)
	if err == nil {
		t.Fatal("expected a validation error")
	}
	if !strings.Contains(err.Error(), "code") {
		t.Fatalf("expected the form field name in %q", err)
	}
}

func TestCheckValid(t *testing.T) {
	in := struct {
		Quantity int `json:"quantity" validate:"gte=1,lte=20"`
	}{Quantity: 20}

	if err := Check(in); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestCheckID(t *testing.T) {
	if err := CheckID(GenerateID()); err != nil {
		t.Fatalf("generated id rejected: %v", err)
	}
	if err := CheckID("not-an-id"); err == nil {
		t.Fatal("expected malformed id to be rejected")
	}
}
