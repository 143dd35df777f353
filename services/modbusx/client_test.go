package modbusx

import (
	"net"
	"testing"
	"time"
)

func TestNewEndpointClient(t *testing.T) {
	if _, err := NewEndpointClient(ClientConfig{}); err == nil {
		t.Fatal("expected error for empty endpoint")
	}
	c, err := NewEndpointClient(ClientConfig{Endpoint: "127.0.0.1:1502"})
	if err != nil {
		t.Fatalf("construction must not dial: %v", err)
	}
	if c.Endpoint() != "127.0.0.1:1502" || c.handler.Timeout != DefaultTimeout {
		t.Fatalf("endpoint %q timeout %v", c.Endpoint(), c.handler.Timeout)
	}
}

func TestEndpointClient_WriteToClosedPortFails(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Skip("no loopback listener:", err)
	}
	addr := ln.Addr().String()
	ln.Close()

	c, err := NewEndpointClient(ClientConfig{Endpoint: addr, Timeout: 200 * time.Millisecond})
	if err != nil {
		t.Fatal(err)
	}
	defer c.Close()
	if err := c.WriteRegisters(1, 0, []uint16{1}); err == nil {
		t.Fatal("expected dial error")
	}
}
