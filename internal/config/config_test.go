package config

import "testing"

func TestServerAddr(t *testing.T) {
	tests := []struct {
		port    string
		want    string
		wantErr bool
	}{
		{"8080", ":8080", false},
		{":8080", ":8080", false},
		{"127.0.0.1:8080", "127.0.0.1:8080", false},
		{"", ":8080", false},
		{"  9000 ", ":9000", false},
		{"80 80", "", true},
	}

	for _, test := range tests {
		addr, err := ServerConfig{Port: test.port}.Addr()
		if test.wantErr {
			if err == nil {
				t.Errorf("Addr(%q): expected error, got %q", test.port, addr)
			}
			continue
		}
		if err != nil {
			t.Errorf("Addr(%q): unexpected error: %v", test.port, err)
			continue
		}
		if addr != test.want {
			t.Errorf("Addr(%q) = %q, want %q", test.port, addr, test.want)
		}
	}
}
