package testimonial

import (
	"strings"
	"testing"

	"github.com/synapseiq/site/errors"
)

func TestRecord_Validate(t *testing.T) {
	valid := Record{ID: 1, Name: "Amara Mensah", Rating: 5, Content: "Great partner"}
	if err := valid.Validate(); err != nil {
		t.Fatalf("expected valid record, got %v", err)
	}

	err := Record{ID: 0, Rating: 7}.Validate()
	if !errors.HasCode(err, errors.ErrCodeInvalidInput) {
		t.Fatalf("expected INVALID_INPUT, got %v", err)
	}
	for _, field := range []string{"id", "name", "rating", "content"} {
		if !strings.Contains(err.Error(), field+":") {
			t.Errorf("expected %s in %q", field, err.Error())
		}
	}
}

func TestRecord_ValidateDraft(t *testing.T) {
	if err := (Record{Name: "Amara Mensah", Rating: 4, Content: "Great partner"}).ValidateDraft(); err != nil {
		t.Fatalf("expected draft without id to be valid, got %v", err)
	}

	err := Record{Name: "Amara Mensah", Rating: 0}.ValidateDraft()
	if !errors.HasCode(err, errors.ErrCodeInvalidInput) {
		t.Fatalf("expected INVALID_INPUT, got %v", err)
	}
	if strings.Contains(err.Error(), "id:") {
		t.Errorf("draft validation should not report id: %q", err.Error())
	}
	if !strings.Contains(err.Error(), "rating:") || !strings.Contains(err.Error(), "content:") {
		t.Errorf("expected rating and content errors, got %q", err.Error())
	}
}
