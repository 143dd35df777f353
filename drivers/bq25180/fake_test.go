package bq25180

import (
	"bytes"
	"errors"
	"testing"
)

var errBus = errors.New("i2c: nack")

// txn is one expected bus transaction. For reads, r is copied into the
// caller's buffer.
type txn struct {
	addr uint16
	w    []byte
	r    []byte
	err  error
}

// scriptBus is a strict-order drivers.I2C fake.
type scriptBus struct {
	t    *testing.T
	want []txn
	n    int
}

func newScript(t *testing.T) *scriptBus {
	t.Helper()
	b := &scriptBus{t: t}
	t.Cleanup(func() {
		if b.n != len(b.want) {
			t.Errorf("bus: %d of %d expected transactions happened", b.n, len(b.want))
		}
	})
	return b
}

func (b *scriptBus) Tx(addr uint16, w, r []byte) error {
	b.t.Helper()
	if b.n >= len(b.want) {
		b.t.Fatalf("bus: unexpected tx addr=%#x w=% x rlen=%d", addr, w, len(r))
	}
	e := b.want[b.n]
	b.n++
	if addr != e.addr {
		b.t.Fatalf("bus tx %d: addr %#x want %#x", b.n, addr, e.addr)
	}
	if !bytes.Equal(w, e.w) {
		b.t.Fatalf("bus tx %d: w % x want % x", b.n, w, e.w)
	}
	if len(r) != len(e.r) {
		b.t.Fatalf("bus tx %d: rlen %d want %d", b.n, len(r), len(e.r))
	}
	if e.err != nil {
		return e.err
	}
	copy(r, e.r)
	return nil
}

func (b *scriptBus) read(reg, val byte) *scriptBus {
	b.want = append(b.want, txn{addr: AddressDefault, w: []byte{reg}, r: []byte{val}})
	return b
}

func (b *scriptBus) readFail(reg byte) *scriptBus {
	b.want = append(b.want, txn{addr: AddressDefault, w: []byte{reg}, r: []byte{0}, err: errBus})
	return b
}

func (b *scriptBus) write(reg, val byte) *scriptBus {
	b.want = append(b.want, txn{addr: AddressDefault, w: []byte{reg, val}})
	return b
}

func (b *scriptBus) writeFail(reg, val byte) *scriptBus {
	b.want = append(b.want, txn{addr: AddressDefault, w: []byte{reg, val}, err: errBus})
	return b
}

// rmw expects a read returning in followed by a write of out.
func (b *scriptBus) rmw(reg, in, out byte) *scriptBus {
	return b.read(reg, in).write(reg, out)
}

// regFile is a register-backed fake used for property tests.
type regFile struct {
	regs   [NumRegisters]byte
	writes int
}

func (f *regFile) Tx(_ uint16, w, r []byte) error {
	switch {
	case len(w) == 1 && len(r) == 1:
		r[0] = f.regs[w[0]]
	case len(w) == 2 && len(r) == 0:
		f.regs[w[0]] = w[1]
		f.writes++
	default:
		return errors.New("regfile: unsupported transfer")
	}
	return nil
}
