package options

import "testing"

func TestMCPOptions(t *testing.T) {
	o := &MCPOptions{Transport: " HTTP ", Host: "", Port: 0, Path: "tick"}
	mode, err := o.Mode()
	if err != nil || mode != "http" {
		t.Fatalf("expected http, got %q %v", mode, err)
	}
	addr, err := o.Addr()
	if err != nil || addr != "127.0.0.1:0" {
		t.Fatalf("expected 127.0.0.1:0, got %q %v", addr, err)
	}
	if got := o.Endpoint(); got != "/tick" {
		t.Fatalf("expected /tick, got %q", got)
	}
	if _, _, err := o.TLS(); err != nil {
		t.Fatalf("expected no tls error, got %v", err)
	}
}

func TestMCPOptionsRejects(t *testing.T) {
	if _, err := (&MCPOptions{Transport: "sse"}).Mode(); err == nil {
		t.Fatalf("expected unsupported transport error")
	}
	if _, err := (&MCPOptions{Port: 70000}).Addr(); err == nil {
		t.Fatalf("expected invalid port error")
	}
	if _, _, err := (&MCPOptions{TLSCert: "cert.pem"}).TLS(); err == nil {
		t.Fatalf("expected error for a cert without a key")
	}
}
