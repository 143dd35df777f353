// Package i2cx opens host I2C buses as drivers.I2C.
package i2cx

import (
	"errors"
	"fmt"
	"sync"

	"github.com/platinasystems/i2c"
)

var ErrTransfer = errors.New("i2cx: unsupported transfer")

// smbusDev is the subset of *i2c.Bus used by SMBus.
type smbusDev interface {
	ForceSlaveAddress(a int) error
	Do(rw i2c.RW, regOffset uint8, size i2c.SMBusSize, data *i2c.SMBusData) error
}

// SMBus adapts a Linux SMBus adapter to drivers.I2C. Only byte-data
// transfers are supported: one register byte followed by one read byte, or
// a register byte and one value byte written.
type SMBus struct {
	mu    sync.Mutex
	dev   smbusDev
	close func()
	addr  int
}

// OpenSMBus opens /dev/i2c-<n>.
func OpenSMBus(n int) (*SMBus, error) {
	b := new(i2c.Bus)
	if err := b.Open(n); err != nil {
		return nil, fmt.Errorf("i2cx: open smbus %d: %w", n, err)
	}
	return &SMBus{dev: b, close: func() { b.Close() }, addr: -1}, nil
}

func (s *SMBus) Tx(addr uint16, w, r []byte) error {
	var rw i2c.RW
	var data i2c.SMBusData
	switch {
	case len(w) == 1 && len(r) == 1:
		rw = i2c.Read
	case len(w) == 2 && len(r) == 0:
		rw = i2c.Write
		data[0] = w[1]
	default:
		return ErrTransfer
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if int(addr) != s.addr {
		if err := s.dev.ForceSlaveAddress(int(addr)); err != nil {
			s.addr = -1
			return err
		}
		s.addr = int(addr)
	}
	if err := s.dev.Do(rw, w[0], i2c.ByteData, &data); err != nil {
		return err
	}
	if rw == i2c.Read {
		r[0] = data[0]
	}
	return nil
}

func (s *SMBus) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.close != nil {
		s.close()
		s.close = nil
	}
	return nil
}
