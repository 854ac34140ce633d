package logger

import "testing"

func TestRedactEmail(t *testing.T) {
	tests := map[string]string{
		"john.doe@example.com": "jo***@example.com",
		"ab@example.com":       "***@example.com",
		"not-an-email":         "***@***",
	}
	for in, want := range tests {
		if got := RedactEmail(in); got != want {
			t.Errorf("RedactEmail(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestRedactValue(t *testing.T) {
	if got := redactValue("recipient_email", "john.doe@example.com"); got != "jo***@example.com" {
		t.Errorf("email-keyed field = %q, want masked", got)
	}
	if got := redactValue("detail", "sent to john.doe@example.com ok"); got != "sent to jo***@example.com ok" {
		t.Errorf("embedded email = %q, want masked in place", got)
	}
	if got := redactValue("job_id", "J1"); got != "J1" {
		t.Errorf("plain field = %q, want untouched", got)
	}
}

func TestParseLevel(t *testing.T) {
	tests := map[string]Level{
		"debug":   DEBUG,
		"INFO":    INFO,
		"Warn":    WARN,
		"error":   ERROR,
		"unknown": INFO,
		"":        INFO,
	}
	for in, want := range tests {
		if got := ParseLevel(in); got != want {
			t.Errorf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}
