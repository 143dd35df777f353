package i2cx

import (
	"fmt"
	"sync"

	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/host/v3"
)

var hostOnce struct {
	sync.Once
	err error
}

// OpenPeriph opens a bus through the periph registry. An empty name selects
// the first bus found. periph's i2c.Bus already satisfies drivers.I2C.
func OpenPeriph(name string) (i2c.BusCloser, error) {
	hostOnce.Do(func() {
		_, hostOnce.err = host.Init()
	})
	if hostOnce.err != nil {
		return nil, fmt.Errorf("i2cx: periph init: %w", hostOnce.err)
	}
	b, err := i2creg.Open(name)
	if err != nil {
		return nil, fmt.Errorf("i2cx: open %q: %w", name, err)
	}
	return b, nil
}
