// services/modbusx/client.go
package modbusx

import (
	"errors"
	"sync"
	"time"

	"github.com/goburrow/modbus"
)

// DefaultTimeout applies when ClientConfig.Timeout is zero.
const DefaultTimeout = 2 * time.Second

// EndpointClient writes holding-register blocks to one Modbus TCP endpoint.
// Several exporters may share it; writes are serialized because the unit id
// lives on the shared handler. The connection is dialled on first write and
// redialled after a failed one.
type EndpointClient struct {
	mu      sync.Mutex
	handler *modbus.TCPClientHandler
	client  modbus.Client
}

type ClientConfig struct {
	Endpoint string
	Timeout  time.Duration
}

func NewEndpointClient(cfg ClientConfig) (*EndpointClient, error) {
	if cfg.Endpoint == "" {
		return nil, errors.New("modbusx: endpoint required")
	}
	h := modbus.NewTCPClientHandler(cfg.Endpoint)
	h.Timeout = cfg.Timeout
	if h.Timeout <= 0 {
		h.Timeout = DefaultTimeout
	}
	return &EndpointClient{handler: h, client: modbus.NewClient(h)}, nil
}

func (c *EndpointClient) Endpoint() string { return c.handler.Address }

func (c *EndpointClient) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.handler.Close()
}

// WriteRegisters implements RegisterWriter.
func (c *EndpointClient) WriteRegisters(unitID uint8, addr uint16, regs []uint16) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.handler.SlaveId = unitID
	if _, err := c.client.WriteMultipleRegisters(addr, uint16(len(regs)), packRegisters(regs)); err != nil {
		// Drop the socket so the next write dials afresh.
		c.handler.Close()
		return err
	}
	return nil
}

// packRegisters lays out registers big-endian, as Modbus expects.
func packRegisters(regs []uint16) []byte {
	out := make([]byte, len(regs)*2)
	for i, r := range regs {
		out[2*i] = byte(r >> 8)
		out[2*i+1] = byte(r)
	}
	return out
}
