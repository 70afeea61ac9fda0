package validation

import (
	"strings"
	"testing"
)

type sample struct {
	ID    int    `json:"id" validate:"required,gt=0"`
	Title string `json:"title" validate:"required"`
}

func TestValidate_Valid(t *testing.T) {
	if err := Validate(sample{ID: 1, Title: "hello"}); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestValidate_MissingFields(t *testing.T) {
	err := Validate(sample{})
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "id") || !strings.Contains(err.Error(), "title") {
		t.Errorf("error should name failing fields, got: %v", err)
	}
}

func TestValidate_UsesJSONTagNames(t *testing.T) {
	type tagged struct {
		UserID int `json:"userId" validate:"required"`
	}
	err := Validate(tagged{})
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "userId") {
		t.Errorf("expected json tag name in error, got: %v", err)
	}
}

func TestValidate_Slice(t *testing.T) {
	ok := []sample{{ID: 1, Title: "a"}, {ID: 2, Title: "b"}}
	if err := Validate(ok); err != nil {
		t.Errorf("unexpected error: %v", err)
	}

	bad := []sample{{ID: 1, Title: "a"}, {ID: 0, Title: ""}}
	err := Validate(bad)
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "element 1") {
		t.Errorf("error should identify the failing element, got: %v", err)
	}
}

func TestValidate_EmptySlice(t *testing.T) {
	if err := Validate([]sample{}); err != nil {
		t.Errorf("empty slice should be valid, got: %v", err)
	}
}
