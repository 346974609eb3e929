// Copyright © 2009--2014 The Web.go Authors
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package web

import (
	"context"
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/tls"
	"crypto/x509"
	"crypto/x509/pkix"
	"encoding/pem"
	"errors"
	"io"
	"math/big"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func startTestServer(t *testing.T, s *Server) (string, func() error) {
	t.Helper()
	l, err := s.Listen("127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Serve(ctx, l) }()
	stop := func() error {
		cancel()
		select {
		case err := <-done:
			return err
		case <-time.After(5 * time.Second):
			return errors.New("server did not stop")
		}
	}
	return s.URL(l), stop
}

func TestRunServesAndStops(t *testing.T) {
	s := newTestServer()
	mustRoute(t, s.Get("/hello/<name>", func(name string) string { return "hi " + name }))
	url, stop := startTestServer(t, s)

	resp, err := http.Get(url + "hello/there")
	if err != nil {
		t.Fatal(err)
	}
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	if resp.StatusCode != 200 || string(body) != "hi there" {
		t.Errorf("expected 200 %q, got %d %q", "hi there", resp.StatusCode, body)
	}

	if err := stop(); err != nil {
		t.Errorf("expected clean shutdown, got %v", err)
	}
	if _, err := http.Get(url); err == nil {
		t.Error("server still answering after shutdown")
	}
	if err := s.Close(); err != nil {
		t.Errorf("Close after shutdown: %v", err)
	}
}

func TestRunMaxConns(t *testing.T) {
	conf := DefaultServerConfig()
	conf.MaxConns = 1
	s := NewServer(conf)
	s.SetLogger(nopLogger)
	mustRoute(t, s.Get("/", func() string { return "one at a time" }))
	url, stop := startTestServer(t, s)
	defer stop()

	for i := 0; i < 3; i++ {
		resp, err := http.Get(url)
		if err != nil {
			t.Fatal(err)
		}
		body, _ := io.ReadAll(resp.Body)
		resp.Body.Close()
		if string(body) != "one at a time" {
			t.Errorf("request %d: unexpected body %q", i, body)
		}
	}
}

func TestRunAddrInUse(t *testing.T) {
	s := newTestServer()
	url, stop := startTestServer(t, s)
	defer stop()
	addr := strings.TrimSuffix(strings.TrimPrefix(url, "http://"), "/")
	if err := newTestServer().Run(context.Background(), addr); err == nil {
		t.Error("expected listen error on an address in use")
	}
}

func TestServerClose(t *testing.T) {
	s := newTestServer()
	l, err := s.Listen("127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	done := make(chan error, 1)
	go func() { done <- s.Serve(context.Background(), l) }()
	if err := s.Close(); err != nil {
		t.Fatal(err)
	}
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("expected nil after Close, got %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Serve did not return after Close")
	}
	if err := s.Close(); err != nil {
		t.Errorf("second Close: %v", err)
	}
}

func TestRunApp(t *testing.T) {
	var opened string
	saved := openBrowser
	defer func() { openBrowser = saved }()
	openBrowser = func(url string) error {
		opened = url
		return errors.New("no browser here")
	}

	s := newTestServer()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := s.RunApp(ctx, "127.0.0.1:0"); err != nil {
		t.Fatalf("expected clean exit, got %v", err)
	}
	if !strings.HasPrefix(opened, "http://127.0.0.1:") || !strings.HasSuffix(opened, "/") {
		t.Errorf("unexpected browser url %q", opened)
	}
}

// Self-signed certificate for 127.0.0.1, valid for an hour
func writeTestCert(t *testing.T) (certFile, keyFile string) {
	t.Helper()
	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	if err != nil {
		t.Fatal(err)
	}
	tmpl := &x509.Certificate{
		SerialNumber: big.NewInt(1),
		Subject:      pkix.Name{CommonName: "127.0.0.1"},
		IPAddresses:  []net.IP{net.IPv4(127, 0, 0, 1)},
		NotBefore:    time.Now().Add(-time.Hour),
		NotAfter:     time.Now().Add(time.Hour),
		KeyUsage:     x509.KeyUsageDigitalSignature,
		ExtKeyUsage:  []x509.ExtKeyUsage{x509.ExtKeyUsageServerAuth},
	}
	der, err := x509.CreateCertificate(rand.Reader, tmpl, tmpl, &key.PublicKey, key)
	if err != nil {
		t.Fatal(err)
	}
	keyDER, err := x509.MarshalPKCS8PrivateKey(key)
	if err != nil {
		t.Fatal(err)
	}
	dir := t.TempDir()
	certFile = filepath.Join(dir, "cert.pem")
	keyFile = filepath.Join(dir, "key.pem")
	if err := os.WriteFile(certFile, pem.EncodeToMemory(&pem.Block{Type: "CERTIFICATE", Bytes: der}), 0o600); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(keyFile, pem.EncodeToMemory(&pem.Block{Type: "PRIVATE KEY", Bytes: keyDER}), 0o600); err != nil {
		t.Fatal(err)
	}
	return certFile, keyFile
}

func TestRunTLS(t *testing.T) {
	conf := DefaultServerConfig()
	conf.CertFile, conf.KeyFile = writeTestCert(t)
	s := NewServer(conf)
	s.SetLogger(nopLogger)
	mustRoute(t, s.Get("/", func() string { return "secure" }))
	url, stop := startTestServer(t, s)

	if !strings.HasPrefix(url, "https://127.0.0.1:") {
		t.Fatalf("expected an https url, got %q", url)
	}
	transport := &http.Transport{TLSClientConfig: &tls.Config{InsecureSkipVerify: true}}
	client := &http.Client{Transport: transport, Timeout: 5 * time.Second}
	resp, err := client.Get(url)
	if err != nil {
		t.Fatal(err)
	}
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	if resp.StatusCode != 200 || string(body) != "secure" {
		t.Errorf("expected 200 %q, got %d %q", "secure", resp.StatusCode, body)
	}
	if resp.TLS == nil {
		t.Error("response was not served over TLS")
	}
	transport.CloseIdleConnections()

	if err := stop(); err != nil {
		t.Errorf("expected clean shutdown, got %v", err)
	}
}

func TestRunTLSMissingCert(t *testing.T) {
	conf := DefaultServerConfig()
	dir := t.TempDir()
	conf.CertFile = filepath.Join(dir, "missing.pem")
	conf.KeyFile = filepath.Join(dir, "missing-key.pem")
	s := NewServer(conf)
	s.SetLogger(nopLogger)
	if err := s.Run(context.Background(), "127.0.0.1:0"); err == nil {
		t.Error("expected an error for a missing certificate")
	}
	if err := s.Close(); err != nil {
		t.Errorf("Close after failed serve: %v", err)
	}
}
