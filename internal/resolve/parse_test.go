package resolve

import "testing"

func TestParseQuery(t *testing.T) {
	tests := []struct {
		name    string
		query   string
		command string
		args    string
	}{
		{"command with args", "google hello world", "google", "hello world"},
		{"command only", "google", "google", ""},
		{"empty", "", "", ""},
		{"whitespace only", "   ", "", ""},
		{"command lowercased", "GOOGLE test", "google", "test"},
		{"args case preserved", "gh Flask Issues", "gh", "Flask Issues"},
		{"outer whitespace trimmed", "  g  hi  ", "g", "hi"},
		{"internal args spacing preserved", "g hi  there", "g", "hi  there"},
		{"tab separator", "yt\tcat videos", "yt", "cat videos"},
		{"mixed case command only", "WiKi", "wiki", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			command, args := ParseQuery(tt.query)
			if command != tt.command || args != tt.args {
				t.Errorf("ParseQuery(%q) = (%q, %q), want (%q, %q)",
					tt.query, command, args, tt.command, tt.args)
			}
		})
	}
}
