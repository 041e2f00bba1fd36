package validate

import "testing"

func TestEventURL(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		want   string
		wantOK bool
	}{
		{"empty", "", "", false},
		{"whitespace only", "   ", "", false},
		{"placeholder na", "na", "", false},
		{"placeholder NA uppercase", "NA", "", false},
		{"placeholder n/a", "n/a", "", false},
		{"placeholder N/A mixed case", "N/A", "", false},
		{"placeholder dash", "-", "", false},
		{"placeholder hash", "#", "", false},
		{"bare domain gets https", "example.com", "https://example.com", true},
		{"bare domain with path", "example.com/register", "https://example.com/register", true},
		{"existing https kept", "https://example.com", "https://example.com", true},
		{"existing http kept", "http://example.com", "http://example.com", true},
		{"uppercase scheme kept", "HTTPS://example.com", "HTTPS://example.com", true},
		{"surrounding whitespace trimmed", "  example.com  ", "https://example.com", true},
		{"hostname without dot rejected", "localhost", "", false},
		{"free text rejected", "not a domain", "", false},
		{"subdomain accepted", "events.example.co.uk/signup", "https://events.example.co.uk/signup", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := EventURL(tt.input)
			if ok != tt.wantOK {
				t.Fatalf("EventURL(%q) ok = %v, want %v", tt.input, ok, tt.wantOK)
			}
			if got != tt.want {
				t.Errorf("EventURL(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
