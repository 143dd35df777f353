// services/modbusx/exporter.go
package modbusx

import (
	"context"
	"slices"

	"chargecode-go/bus"
	"chargecode-go/services/charger"
	"chargecode-go/types"
)

// RegisterWriter is the sink for encoded blocks. *EndpointClient implements it.
type RegisterWriter interface {
	WriteRegisters(unitID uint8, addr uint16, regs []uint16) error
}

type Target struct {
	UnitID  uint8
	Address uint16
}

// Exporter mirrors one charger's bus state into a Modbus register block.
// A block is written only when its encoding changes.
type Exporter struct {
	name   string
	target Target
	w      RegisterWriter

	snap Snapshot
	last []uint16
	done chan struct{}
}

func NewExporter(chargerName string, t Target, w RegisterWriter) *Exporter {
	return &Exporter{name: chargerName, target: t, w: w, done: make(chan struct{})}
}

// Done is closed when the export loop has exited.
func (e *Exporter) Done() <-chan struct{} { return e.done }

// Start subscribes to the charger's status, value and event topics and runs
// the export loop until ctx is cancelled.
func (e *Exporter) Start(ctx context.Context, conn *bus.Connection) {
	subs := []*bus.Subscription{
		conn.Subscribe(charger.TopicStatus(e.name)),
		conn.Subscribe(charger.TopicValue(e.name)),
		conn.Subscribe(charger.TopicEvent(e.name)),
	}
	go e.run(ctx, conn, subs)
}

func (e *Exporter) run(ctx context.Context, conn *bus.Connection, subs []*bus.Subscription) {
	defer close(e.done)
	defer func() {
		for _, s := range subs {
			conn.Unsubscribe(s)
		}
	}()

	for {
		var msg *bus.Message
		var ok bool
		select {
		case <-ctx.Done():
			return
		case msg, ok = <-subs[0].Channel():
		case msg, ok = <-subs[1].Channel():
		case msg, ok = <-subs[2].Channel():
		}
		if !ok {
			return
		}
		if e.apply(msg.Payload) {
			e.flush()
		}
	}
}

// apply folds one payload into the snapshot, reporting whether it was used.
func (e *Exporter) apply(payload any) bool {
	switch p := payload.(type) {
	case types.CapabilityStatus:
		e.snap.Link = p.Link
		e.snap.Error = p.Error
	case types.ChargerValue:
		e.snap.Value = p
	case types.ChargerEvent:
		e.snap.LastFlags = p.Flags
		e.snap.Events++
	default:
		return false
	}
	return true
}

func (e *Exporter) flush() {
	regs := Encode(e.snap)
	if slices.Equal(regs, e.last) {
		return
	}
	if err := e.w.WriteRegisters(e.target.UnitID, e.target.Address, regs); err != nil {
		println("Error: modbus export", e.name, "write failed:", err.Error())
		// Retry the whole block on the next change.
		e.last = nil
		return
	}
	e.last = regs
}
