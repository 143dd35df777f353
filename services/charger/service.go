// Package charger runs one BQ25180 as a bus capability. A single goroutine
// owns the driver: it applies the configured profile, polls status and flags,
// and serves control verbs published on the capability's control topics.
package charger

import (
	"context"
	"time"

	"chargecode-go/bus"
	"chargecode-go/drivers/bq25180"
	"chargecode-go/errcode"
	"chargecode-go/types"
	"chargecode-go/x/strx"
	"chargecode-go/x/timex"

	"tinygo.org/x/drivers"
)

const DefaultPollPeriod = time.Second

// Params configure one charger capability.
type Params struct {
	Name         string        // capability name, e.g. "main"
	Bus          string        // informational, e.g. "i2c1"
	Addr         uint16        // 0 => bq25180.AddressDefault
	PollPeriod   time.Duration // 0 => DefaultPollPeriod
	ResetOnStart bool          // soft reset before applying Profile
	Profile      types.ChargerConfigure
}

// Service is a single-goroutine owner of one charger.
type Service struct {
	params Params
	plan   Plan

	// Owned by the worker only:
	dev      *bq25180.Device
	conn     *bus.Connection
	degraded bool
	parked   bool // ship mode or shutdown requested; cleared by a good sample
	pending  bool // profile not yet applied; retried before each sample

	done chan struct{}
}

// New validates the profile and builds the service. It does not touch the bus.
func New(i2c drivers.I2C, p Params) (*Service, error) {
	plan, err := Compile(p.Profile)
	if err != nil {
		return nil, err
	}
	p.Name = strx.Coalesce(p.Name, "charger")
	if p.PollPeriod <= 0 {
		p.PollPeriod = DefaultPollPeriod
	}
	return &Service{
		params: p,
		plan:   plan,
		dev:    bq25180.New(i2c, bq25180.Config{Address: p.Addr}),
		done:   make(chan struct{}),
	}, nil
}

func (s *Service) Name() string { return s.params.Name }

// Done is closed when the worker has exited.
func (s *Service) Done() <-chan struct{} { return s.done }

// Start launches the worker. It stops when ctx is cancelled.
func (s *Service) Start(ctx context.Context, conn *bus.Connection) error {
	s.conn = conn
	ctrl := conn.Subscribe(ctrlWildcard(s.params.Name))
	go s.worker(ctx, ctrl)
	return nil
}

func (s *Service) worker(ctx context.Context, ctrl *bus.Subscription) {
	defer close(s.done)
	defer s.conn.Unsubscribe(ctrl)

	s.setup()
	s.sample()

	tick := time.NewTicker(s.params.PollPeriod)
	defer tick.Stop()

	for {
		select {
		case <-ctx.Done():
			println("Info: charger", s.params.Name, "stopping")
			s.publishStatus(types.LinkDown, "")
			return
		case <-tick.C:
			s.sample()
		case msg, ok := <-ctrl.Channel():
			if !ok {
				return
			}
			s.handle(msg)
		}
	}
}

// ---- Worker helpers (single-owner context) ----

func (s *Service) setup() {
	name := s.params.Name
	if s.params.ResetOnStart {
		if err := s.dev.Reset(false); err != nil {
			println("Error: charger", name, "reset failed:", err.Error())
			s.degrade(errcode.MapDriverErr(err))
		}
	}
	s.pending = true
	s.applyProfile()

	info := types.ChargerInfo{Bus: s.params.Bus, Addr: s.dev.Address()}
	if id, err := s.dev.ReadDeviceID(); err == nil {
		info.DeviceID = id
		if id != bq25180.DeviceIDBQ25180 {
			println("Error: charger", name, "unexpected device id", id)
		}
	}
	s.conn.Publish(s.conn.NewMessage(TopicInfo(name),
		types.Info{SchemaVersion: 1, Driver: "bq25180", Detail: info}, true))
}

// applyProfile applies the startup profile while it is pending. Until it
// succeeds the capability stays degraded with the apply error.
func (s *Service) applyProfile() error {
	if !s.pending {
		return nil
	}
	if err := s.plan.Apply(s.dev); err != nil {
		if !s.degraded {
			println("Error: charger", s.params.Name, "profile failed:", err.Error())
		}
		s.degrade(errcode.Of(err))
		return err
	}
	s.pending = false
	println("Info: charger", s.params.Name, "profile applied,", s.plan.Len(), "settings")
	return nil
}

// sample publishes the retained value and, when any flag latched, an event.
// Nothing is published unless both reads succeed.
func (s *Service) sample() error {
	name := s.params.Name
	if err := s.applyProfile(); err != nil {
		return err
	}
	st, err := s.dev.ReadState()
	if err != nil {
		return s.sampleFailed(err)
	}
	ev, err := s.dev.ReadEvent()
	if err != nil {
		return s.sampleFailed(err)
	}
	now := timex.NowMs()
	s.conn.Publish(s.conn.NewMessage(TopicValue(name), valueOf(st, now), true))
	if ev.Any() {
		s.conn.Publish(s.conn.NewMessage(TopicEvent(name),
			types.ChargerEvent{Flags: flagsOf(ev), Stamp_ms: now}, false))
	}
	if s.degraded {
		println("Info: charger", name, "recovered")
	}
	s.degraded = false
	s.parked = false
	s.publishStatus(types.LinkUp, "")
	return nil
}

// sampleFailed degrades the capability. A parked device does not answer, so
// transport failures are reported as unavailable rather than faults.
func (s *Service) sampleFailed(err error) error {
	code := errcode.MapDriverErr(err)
	if s.parked && code == errcode.Transport {
		code = errcode.Unavailable
	}
	s.degrade(code)
	return &errcode.E{C: code, Op: "read", Err: err}
}

func (s *Service) degrade(code errcode.Code) {
	if !s.degraded {
		println("Error: charger", s.params.Name, "degraded:", string(code))
	}
	s.degraded = true
	s.publishStatus(types.LinkDegraded, string(code))
}

func (s *Service) publishStatus(link types.Link, code string) {
	s.conn.Publish(s.conn.NewMessage(TopicStatus(s.params.Name),
		types.CapabilityStatus{Link: link, TS: timex.NowMs(), Error: code}, true))
}

// ---- Controls ----

func (s *Service) handle(msg *bus.Message) {
	verb, _ := msg.Topic[len(msg.Topic)-1].(string)
	reply, err := s.control(verb, msg.Payload)
	if err != nil {
		s.conn.Reply(msg, types.ErrorReply{OK: false, Error: string(errcode.Of(err))}, false)
		return
	}
	if reply == nil {
		reply = types.OKReply{OK: true}
	}
	s.conn.Reply(msg, reply, false)
}

// payloadAs accepts T or non-nil *T.
func payloadAs[T any](payload any) (T, error) {
	var zero T
	switch x := payload.(type) {
	case T:
		return x, nil
	case *T:
		if x == nil {
			return zero, errcode.InvalidPayload
		}
		return *x, nil
	}
	return zero, errcode.InvalidPayload
}

// control executes one verb. A nil reply with nil error means plain OK.
func (s *Service) control(verb string, payload any) (any, error) {
	driverErr := func(err error) error {
		if err == nil {
			return nil
		}
		return &errcode.E{C: errcode.MapDriverErr(err), Op: verb, Err: err}
	}

	switch verb {
	case "read":
		return nil, s.sample()

	case "enable":
		v, err := payloadAs[types.ChargerEnable](payload)
		if err != nil {
			return nil, err
		}
		return nil, driverErr(s.dev.EnableCharging(v.On))

	case "configure":
		v, err := payloadAs[types.ChargerConfigure](payload)
		if err != nil {
			return nil, err
		}
		plan, err := Compile(v)
		if err != nil {
			return nil, err
		}
		return nil, plan.Apply(s.dev)

	case "reset":
		var hw bool
		if payload != nil {
			v, err := payloadAs[types.ChargerReset](payload)
			if err != nil {
				return nil, err
			}
			hw = v.Hardware
		}
		return nil, driverErr(s.dev.Reset(hw))

	case "ship_mode":
		if err := s.dev.EnterShipMode(); err != nil {
			return nil, driverErr(err)
		}
		s.parked = true
		return nil, nil

	case "shutdown":
		if err := s.dev.EnterShutdown(); err != nil {
			return nil, driverErr(err)
		}
		s.parked = true
		return nil, nil

	case "interrupt":
		v, err := payloadAs[types.ChargerInterrupt](payload)
		if err != nil {
			return nil, err
		}
		src, err := bq25180.ParseInterrupt(v.Source)
		if err != nil {
			return nil, driverErr(err)
		}
		if v.Enable {
			return nil, driverErr(s.dev.EnableInterrupt(src))
		}
		return nil, driverErr(s.dev.DisableInterrupt(src))

	case "dump":
		regs, err := s.dev.DumpRegisters()
		if err != nil {
			return nil, driverErr(err)
		}
		return types.ChargerRegisters{Regs: regs[:]}, nil
	}
	return nil, errcode.Unsupported
}

// ---- Payload conversion ----

func valueOf(st bq25180.State, stamp int64) types.ChargerValue {
	var b types.ChargerStatusBits
	set := func(on bool, bit types.ChargerStatusBits) {
		if on {
			b |= bit
		}
	}
	set(st.VinGood, types.StatVinGood)
	set(st.ThermalRegulationActive, types.StatThermReg)
	set(st.VINDPMActive, types.StatVINDPM)
	set(st.VDPPMActive, types.StatVDPPM)
	set(st.ILimActive, types.StatILim)
	set(st.TSOpen, types.StatTSOpen)
	set(st.Wake2Raised, types.StatWake2)
	set(st.Wake1Raised, types.StatWake1)
	set(st.SafetyTimerFault, types.StatSafetyTimer)
	set(st.BatteryUndervoltageActive, types.StatBUVLO)
	set(st.VinOvervoltageActive, types.StatVinOVP)
	return types.ChargerValue{
		Charge:   st.Charge.String(),
		TS:       st.TS.String(),
		Status:   b,
		Stamp_ms: stamp,
	}
}

func flagsOf(ev bq25180.Event) types.ChargerFlags {
	var f types.ChargerFlags
	set := func(on bool, bit types.ChargerFlags) {
		if on {
			f |= bit
		}
	}
	set(ev.BatteryOvercurrent, types.FlagBatOCP)
	set(ev.BatteryUndervoltage, types.FlagBUVLO)
	set(ev.InputOvervoltage, types.FlagVinOVP)
	set(ev.ThermalRegulation, types.FlagThermReg)
	set(ev.VINDPMFault, types.FlagVINDPM)
	set(ev.VDPPMFault, types.FlagVDPPM)
	set(ev.ILimFault, types.FlagILim)
	set(ev.BatteryThermalFault, types.FlagTSFault)
	return f
}
