package roles

import "testing"

func TestTierForMonthlyHoursBoundaries(t *testing.T) {
	tests := []struct {
		hours int64
		want  Tier
	}{
		{0, TierNone},
		{2, TierNone},
		{3, Tier1},
		{9, Tier1},
		{10, Tier2},
		{24, Tier2},
		{25, Tier3},
		{59, Tier3},
		{60, Tier4},
		{99, Tier4},
		{100, Tier5},
		{249, Tier5},
		{250, Tier6},
		{10000, Tier6},
	}
	for _, tt := range tests {
		if got := TierForMonthlyHours(tt.hours); got != tt.want {
			t.Errorf("TierForMonthlyHours(%d) = %v, want %v", tt.hours, got, tt.want)
		}
	}
}

func TestTierForMonthlySecondsTruncatesToHours(t *testing.T) {
	// 3 hours minus one second is still 2 whole hours.
	if got := TierForMonthlySeconds(3*3600 - 1); got != TierNone {
		t.Errorf("TierForMonthlySeconds(10799) = %v, want TierNone", got)
	}
	if got := TierForMonthlySeconds(3 * 3600); got != Tier1 {
		t.Errorf("TierForMonthlySeconds(10800) = %v, want Tier1", got)
	}
}
