package domain

import (
	"testing"

	"github.com/google/uuid"
)

func TestNewCourseProgress(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		total       int
		completed   int
		wantPercent int
	}{
		{"empty course", 0, 0, 0},
		{"nothing completed", 4, 0, 0},
		{"half completed", 2, 1, 50},
		{"one of three rounds up", 3, 1, 33},
		{"two of three rounds up", 3, 2, 67},
		{"fully completed", 2, 2, 100},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			progress := NewCourseProgress(tc.total, tc.completed)
			if progress.Percent != tc.wantPercent {
				t.Errorf("Percent = %d, want %d", progress.Percent, tc.wantPercent)
			}
		})
	}
}

func TestCourseProgressComplete(t *testing.T) {
	t.Parallel()

	if NewCourseProgress(0, 0).Complete() {
		t.Error("Expected empty course never to be complete")
	}

	if NewCourseProgress(2, 1).Complete() {
		t.Error("Expected partial completion not to be complete")
	}

	if !NewCourseProgress(2, 2).Complete() {
		t.Error("Expected full completion to be complete")
	}
}

func TestNewCertificateSerial(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	courseID := uuid.New()

	cert, err := NewCertificate(userID, courseID)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if len(cert.SerialHash) != serialHashLength {
		t.Errorf("Expected serial hash of %d hex chars, got %d", serialHashLength, len(cert.SerialHash))
	}

	if cert.IssuedAt.IsZero() {
		t.Error("Expected non-zero IssuedAt")
	}
}
