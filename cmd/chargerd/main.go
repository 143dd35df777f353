// cmd/chargerd/main.go
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"chargecode-go/bus"
	"chargecode-go/services/charger"
	"chargecode-go/services/config"
	"chargecode-go/services/heartbeat"
	"chargecode-go/services/modbusx"
	"chargecode-go/types"
	"chargecode-go/x/i2cx"
	"chargecode-go/x/strx"
	"chargecode-go/x/timex"

	"github.com/platinasystems/log"
	"tinygo.org/x/drivers"
)

func fatal(args ...interface{}) {
	log.Print(append([]interface{}{"err"}, args...)...)
	os.Exit(1)
}

func main() {
	if len(os.Args) < 2 {
		fatal("usage: chargerd <config.yaml> [-monitor]")
	}
	monitor := len(os.Args) > 2 && os.Args[2] == "-monitor"

	cfg, err := config.Load(os.Args[1])
	if err != nil {
		fatal("config load failed: ", err)
	}
	if err := config.Validate(cfg); err != nil {
		fatal("config validation failed: ", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	b := bus.NewBus(8)

	if monitor {
		mon := b.NewConnection("monitor").Subscribe(bus.T(bus.Multi))
		go func() {
			for m := range mon.Channel() {
				switch v := m.Payload.(type) {
				case types.ChargerEvent:
					log.Printf("info", "[monitor] %s flags=%v", topicString(m.Topic),
						types.Names(v.Flags, types.ChargerFlagTable))
				case types.ChargerValue:
					log.Printf("info", "[monitor] %s charge=%s ts=%s status=%v", topicString(m.Topic),
						v.Charge, v.TS, types.Names(v.Status, types.ChargerStatusTable))
				default:
					log.Printf("info", "[monitor] %s %+v", topicString(m.Topic), m.Payload)
				}
			}
		}()
	}

	hb := heartbeat.New(timex.Ms(cfg.Heartbeat.Interval_ms))
	if err := hb.Start(ctx, b.NewConnection("heartbeat")); err != nil {
		fatal("heartbeat start failed: ", err)
	}

	// ---- chargers ----

	var services []*charger.Service
	for _, cc := range cfg.Chargers {
		i2c, busName, closeBus, err := openTransport(cc.Transport)
		if err != nil {
			fatal("transport failed (charger=", cc.Name, "): ", err)
		}
		defer closeBus()

		svc, err := charger.New(i2c, charger.Params{
			Name:         cc.Name,
			Bus:          busName,
			Addr:         cc.Address,
			PollPeriod:   timex.Ms(cc.PollMs),
			ResetOnStart: cc.ResetOnStart,
			Profile:      cc.Profile,
		})
		if err != nil {
			fatal("charger build failed (charger=", cc.Name, "): ", err)
		}
		if err := svc.Start(ctx, b.NewConnection("charger/"+cc.Name)); err != nil {
			fatal("charger start failed (charger=", cc.Name, "): ", err)
		}
		log.Printf("info", "charger %s started on %s", cc.Name, busName)
		services = append(services, svc)
	}

	// ---- modbus export ----

	clients := map[string]*modbusx.EndpointClient{}
	var exporters []*modbusx.Exporter
	for _, ec := range cfg.Exports {
		c, ok := clients[ec.Endpoint]
		if !ok {
			c, err = modbusx.NewEndpointClient(modbusx.ClientConfig{
				Endpoint: ec.Endpoint,
				Timeout:  timex.Ms(ec.TimeoutMs),
			})
			if err != nil {
				fatal("modbus client failed (endpoint=", ec.Endpoint, "): ", err)
			}
			defer c.Close()
			clients[ec.Endpoint] = c
		}
		x := modbusx.NewExporter(ec.Charger, modbusx.Target{UnitID: ec.UnitID, Address: ec.Address}, c)
		x.Start(ctx, b.NewConnection("export/"+ec.Charger))
		log.Printf("info", "exporting %s to %s unit %d at %d", ec.Charger, ec.Endpoint, ec.UnitID, ec.Address)
		exporters = append(exporters, x)
	}

	<-ctx.Done()
	log.Print("info", "shutting down")
	for _, s := range services {
		<-s.Done()
	}
	for _, x := range exporters {
		<-x.Done()
	}
	<-hb.Done()
}

// openTransport returns the bus, a printable bus name and a closer.
func openTransport(tc config.TransportConfig) (drivers.I2C, string, func(), error) {
	switch tc.Kind {
	case config.TransportPeriph:
		b, err := i2cx.OpenPeriph(tc.Bus)
		if err != nil {
			return nil, "", nil, err
		}
		return b, strx.Coalesce(tc.Bus, b.String()), func() { b.Close() }, nil
	case config.TransportSMBus:
		b, err := i2cx.OpenSMBus(tc.Number)
		if err != nil {
			return nil, "", nil, err
		}
		return b, fmt.Sprintf("i2c-%d", tc.Number), func() { b.Close() }, nil
	}
	return nil, "", nil, fmt.Errorf("unknown transport %q", tc.Kind)
}

func topicString(t bus.Topic) string {
	parts := make([]string, len(t))
	for i, tok := range t {
		parts[i] = fmt.Sprint(tok)
	}
	return strings.Join(parts, "/")
}
