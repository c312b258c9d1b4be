package timex

import (
	"testing"
	"time"
)

func TestPeriodFromHz(t *testing.T) {
	if got := PeriodFromHz(4); got != 250*time.Millisecond {
		t.Fatalf("PeriodFromHz(4) = %v", got)
	}
	if got := PeriodFromHz(1000); got != time.Millisecond {
		t.Fatalf("PeriodFromHz(1000) = %v", got)
	}
	if got := PeriodFromHz(0); got != time.Second {
		t.Fatalf("PeriodFromHz(0) = %v", got)
	}
}
