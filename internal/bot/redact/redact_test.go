package redact

import "testing"

func TestRedact(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"plain text untouched", "привет, как дела", "привет, как дела"},
		{"single ip", "server at 10.0.0.1 is down", "server at [REDACTED_IP] is down"},
		{"multiple ips", "10.0.0.1 -> 192.168.1.255", "[REDACTED_IP] -> [REDACTED_IP]"},
		{"ip at boundaries", "127.0.0.1", "[REDACTED_IP]"},
		{"version number with three octets kept", "v1.2.3 released", "v1.2.3 released"},
		{"empty", "", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Redact(tc.in)
			if got != tc.want {
				t.Fatalf("Redact(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestRedactIdempotent(t *testing.T) {
	in := "peers: 10.0.0.1, 172.16.0.2, done"
	once := Redact(in)
	twice := Redact(once)
	if once != twice {
		t.Fatalf("redact not idempotent: %q vs %q", once, twice)
	}
	if ipv4Pattern.MatchString(once) {
		t.Fatalf("redacted output still matches the IPv4 pattern: %q", once)
	}
}
