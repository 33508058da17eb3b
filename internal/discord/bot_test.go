package discord

import "testing"

func TestIsFocusChannel(t *testing.T) {
	b := &Bot{focusChannels: map[string]bool{"111": true, "222": true}}

	tests := []struct {
		name      string
		channelID string
		want      bool
	}{
		{"configured channel", "111", true},
		{"other configured channel", "222", true},
		{"unconfigured channel", "333", false},
		{"disconnected", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := b.isFocusChannel(tt.channelID); got != tt.want {
				t.Errorf("isFocusChannel(%q) = %v, want %v", tt.channelID, got, tt.want)
			}
		})
	}
}
