package utils

import "testing"

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		name    string
		seconds int64
		want    string
	}{
		{"zero", 0, "0:00:00"},
		{"under a minute", 59, "0:00:59"},
		{"minutes and seconds", 330, "0:05:30"},
		{"over an hour", 3661, "1:01:01"},
		{"many hours", 90000, "25:00:00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatDuration(tt.seconds); got != tt.want {
				t.Errorf("FormatDuration(%d) = %q, want %q", tt.seconds, got, tt.want)
			}
		})
	}
}

func TestExtractUserIDFromMention(t *testing.T) {
	tests := []struct {
		name    string
		mention string
		want    string
	}{
		{"plain mention", "<@123456789>", "123456789"},
		{"nickname mention", "<@!123456789>", "123456789"},
		{"already bare", "123456789", "123456789"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExtractUserIDFromMention(tt.mention); got != tt.want {
				t.Errorf("ExtractUserIDFromMention(%q) = %q, want %q", tt.mention, got, tt.want)
			}
		})
	}
}

func TestIsUserMention(t *testing.T) {
	if !IsUserMention("<@123>") {
		t.Error("expected <@123> to be a mention")
	}
	if IsUserMention("123") {
		t.Error("expected bare ID not to be a mention")
	}
}

func TestFormatLeaderboardEntry(t *testing.T) {
	if got := FormatLeaderboardEntry(1, "<@1>", "2:00:00"); got != "🥇 <@1> - 2:00:00" {
		t.Errorf("unexpected first place entry: %q", got)
	}
	if got := FormatLeaderboardEntry(4, "<@4>", "1:00:00"); got != "4. <@4> - 1:00:00" {
		t.Errorf("unexpected fourth place entry: %q", got)
	}
}
