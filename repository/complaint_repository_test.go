package repository

import (
	"regexp"
	"testing"
)

func TestGenerateComplaintID(t *testing.T) {
	r := NewComplaintRepository(nil)
	pattern := regexp.MustCompile(`^\d{8}$`)
	for i := 0; i < 100; i++ {
		id := r.GenerateComplaintID()
		if !pattern.MatchString(id) {
			t.Fatalf("complaint id %q is not 8 digits", id)
		}
	}
}
