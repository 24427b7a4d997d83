package httpclient

import (
	"crypto/tls"
	"os"
	"path/filepath"
	"testing"
)

func TestTLSConfig_Build_NilAndZero(t *testing.T) {
	var nilCfg *TLSConfig
	if cfg, err := nilCfg.Build(); cfg != nil || err != nil {
		t.Errorf("expected nil config and error, got %v %v", cfg, err)
	}
	if cfg, err := (&TLSConfig{}).Build(); cfg != nil || err != nil {
		t.Errorf("expected nil config for zero value, got %v %v", cfg, err)
	}
}

func TestTLSConfig_Build_SkipVerify(t *testing.T) {
	result, err := (&TLSConfig{SkipVerify: true, ServerName: "jira.example"}).Build()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.InsecureSkipVerify {
		t.Error("expected InsecureSkipVerify=true")
	}
	if result.ServerName != "jira.example" {
		t.Errorf("expected ServerName jira.example, got %s", result.ServerName)
	}
	if result.MinVersion != tls.VersionTLS12 {
		t.Errorf("expected MinVersion=TLS12, got %d", result.MinVersion)
	}
}

func TestTLSConfig_Build_CustomMinVersion(t *testing.T) {
	result, err := (&TLSConfig{MinVersion: tls.VersionTLS13}).Build()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.MinVersion != tls.VersionTLS13 {
		t.Errorf("expected TLS13, got %d", result.MinVersion)
	}
}

func TestTLSConfig_Build_InvalidCA(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.pem")
	content := []byte("-----BEGIN CERTIFICATE-----\nnot-valid-base64-data\n-----END CERTIFICATE-----\n")
	if err := os.WriteFile(path, content, 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := (&TLSConfig{CAFile: path}).Build(); err == nil {
		t.Fatal("expected error for invalid CA")
	}
}

func TestTLSConfig_Build_MissingClientCert(t *testing.T) {
	if _, err := (&TLSConfig{CertFile: "/nope/cert.pem", KeyFile: "/nope/key.pem"}).Build(); err == nil {
		t.Fatal("expected error for missing client certificate")
	}
}

func TestTLSConfig_IsEnabled(t *testing.T) {
	var nilCfg *TLSConfig
	if nilCfg.IsEnabled() {
		t.Error("nil config must not be enabled")
	}
	if !(&TLSConfig{CAFile: "ca.pem"}).IsEnabled() {
		t.Error("expected CA file to enable TLS settings")
	}
}
