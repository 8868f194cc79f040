package transport

import "testing"

func TestParseKind(t *testing.T) {
	tests := []struct {
		in      string
		want    Kind
		wantErr bool
	}{
		{"http", KindHTTP, false},
		{"HTTP", KindHTTP, false},
		{"streamable-http", KindHTTP, false},
		{" sse ", KindSSE, false},
		{"unknown", KindUnknown, true},
		{"", KindUnknown, true},
		{"websocket", KindUnknown, true},
	}
	for _, tt := range tests {
		got, err := ParseKind(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseKind(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
		}
		if got != tt.want {
			t.Errorf("ParseKind(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestKind_Definite(t *testing.T) {
	if !KindHTTP.Definite() || !KindSSE.Definite() {
		t.Error("http and sse should be definite")
	}
	if KindUnknown.Definite() {
		t.Error("unknown should not be definite")
	}
}

func TestKind_Describe(t *testing.T) {
	for k, want := range map[Kind]string{
		KindHTTP:    "streamable HTTP",
		KindSSE:     "HTTP+SSE (legacy)",
		KindUnknown: "unknown",
	} {
		if got := k.Describe(); got != want {
			t.Errorf("%s.Describe() = %q, want %q", k, got, want)
		}
	}
}
