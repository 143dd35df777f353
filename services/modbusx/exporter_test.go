package modbusx

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"chargecode-go/bus"
	"chargecode-go/services/charger"
	"chargecode-go/types"
)

type write struct {
	unit uint8
	addr uint16
	regs []uint16
}

type fakeWriter struct {
	mu     sync.Mutex
	writes []write
	fail   bool
	ch     chan struct{}
}

func newFakeWriter() *fakeWriter { return &fakeWriter{ch: make(chan struct{}, 16)} }

func (f *fakeWriter) WriteRegisters(unitID uint8, addr uint16, regs []uint16) error {
	f.mu.Lock()
	defer func() {
		f.mu.Unlock()
		f.ch <- struct{}{}
	}()
	if f.fail {
		return errors.New("modbus: connection refused")
	}
	f.writes = append(f.writes, write{unitID, addr, append([]uint16(nil), regs...)})
	return nil
}

func (f *fakeWriter) wait(t *testing.T) {
	t.Helper()
	select {
	case <-f.ch:
	case <-time.After(time.Second):
		t.Fatal("timeout waiting for modbus write")
	}
}

func (f *fakeWriter) lastWrite() write {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.writes[len(f.writes)-1]
}

func TestExporter_MirrorsBusState(t *testing.T) {
	b := bus.NewBus(8)
	c := b.NewConnection("test")
	w := newFakeWriter()
	e := NewExporter("main", Target{UnitID: 7, Address: 100}, w)

	ctx, cancel := context.WithCancel(context.Background())
	defer func() {
		cancel()
		<-e.Done()
	}()
	e.Start(ctx, b.NewConnection("modbus"))

	c.Publish(c.NewMessage(charger.TopicStatus("main"), types.CapabilityStatus{Link: types.LinkUp}, true))
	w.wait(t)
	got := w.lastWrite()
	if got.unit != 7 || got.addr != 100 || got.regs[SlotHealth] != HealthOK {
		t.Fatalf("unexpected write %+v", got)
	}

	c.Publish(c.NewMessage(charger.TopicValue("main"), types.ChargerValue{Charge: "done", TS: "normal"}, true))
	w.wait(t)
	if w.lastWrite().regs[SlotCharge] != 3 {
		t.Fatalf("charge slot %d", w.lastWrite().regs[SlotCharge])
	}

	c.Publish(c.NewMessage(charger.TopicEvent("main"), types.ChargerEvent{Flags: types.FlagTSFault}, false))
	w.wait(t)
	r := w.lastWrite().regs
	if r[SlotLastFlags] != 0x80 || r[SlotEventCount] != 1 {
		t.Fatalf("event slots %#x/%d", r[SlotLastFlags], r[SlotEventCount])
	}
}

func TestExporter_SkipsUnchangedBlocks(t *testing.T) {
	w := newFakeWriter()
	e := NewExporter("main", Target{}, w)

	st := types.CapabilityStatus{Link: types.LinkUp, TS: 1}
	e.apply(st)
	e.flush()
	st.TS = 2 // status timestamp is not encoded
	e.apply(st)
	e.flush()
	if len(w.writes) != 1 {
		t.Fatalf("%d writes, want 1", len(w.writes))
	}
	if e.apply("noise") {
		t.Fatal("unknown payload applied")
	}
}

func TestExporter_RetriesAfterFailedWrite(t *testing.T) {
	w := newFakeWriter()
	w.fail = true
	e := NewExporter("main", Target{}, w)

	e.apply(types.CapabilityStatus{Link: types.LinkUp})
	e.flush()
	w.fail = false
	e.flush()
	if len(w.writes) != 1 {
		t.Fatalf("%d successful writes, want 1", len(w.writes))
	}
}
