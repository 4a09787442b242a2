package model

import (
	"testing"
	"time"
)

func mustTime(t *testing.T) time.Time {
	t.Helper()
	at, err := time.ParseInLocation(TimeLayout, "2024-03-01 12:30:45", time.Local)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	return at
}
