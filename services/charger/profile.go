package charger

import (
	"slices"

	"chargecode-go/drivers/bq25180"
	"chargecode-go/errcode"
	"chargecode-go/types"
)

// step is one driver call of a compiled profile.
type step struct {
	op  string
	run func(*bq25180.Device) error
}

// Plan is a validated ChargerConfigure, ready to apply.
type Plan struct {
	steps []step
}

// Len reports how many driver calls Apply will make at most.
func (p Plan) Len() int { return len(p.steps) }

// Ops lists the step names in application order.
func (p Plan) Ops() []string {
	out := make([]string, len(p.steps))
	for i, s := range p.steps {
		out[i] = s.op
	}
	return out
}

// Apply runs the plan, stopping at the first failing call. The returned error
// is an *errcode.E naming the failed setting.
func (p Plan) Apply(dev *bq25180.Device) error {
	for _, s := range p.steps {
		if err := s.run(dev); err != nil {
			return &errcode.E{C: errcode.MapDriverErr(err), Op: s.op, Msg: s.op + ": " + err.Error(), Err: err}
		}
	}
	return nil
}

func invalid(op string, err error) error {
	return &errcode.E{C: errcode.MapDriverErr(err), Op: op, Msg: op + ": " + err.Error(), Err: err}
}

// Compile validates cfg against the driver's codec and option tables and
// returns the calls it implies. It never touches the bus.
//
// Watchdog settings are applied first and charge enable last.
func Compile(cfg types.ChargerConfigure) (Plan, error) {
	var p Plan
	add := func(op string, run func(*bq25180.Device) error) {
		p.steps = append(p.steps, step{op: op, run: run})
	}

	if cfg.Watchdog != nil {
		v, err := bq25180.ParseWatchdog(*cfg.Watchdog)
		if err != nil {
			return Plan{}, invalid("watchdog", err)
		}
		add("watchdog", func(d *bq25180.Device) error { return d.SetWatchdog(v) })
	}
	if cfg.Watchdog15s != nil {
		on := *cfg.Watchdog15s
		add("watchdog_15s", func(d *bq25180.Device) error { return d.EnableWatchdog15s(on) })
	}

	// Charge control
	if cfg.BatteryReg_mV != nil {
		mV := *cfg.BatteryReg_mV
		if _, err := bq25180.EncodeBatteryRegulation(mV); err != nil {
			return Plan{}, invalid("battery_reg_mV", err)
		}
		add("battery_reg_mV", func(d *bq25180.Device) error { return d.SetBatteryRegulation_mV(mV) })
	}
	if cfg.FastCharge_mA != nil {
		mA := *cfg.FastCharge_mA
		if _, err := bq25180.EncodeFastCharge(mA); err != nil {
			return Plan{}, invalid("fast_charge_mA", err)
		}
		add("fast_charge_mA", func(d *bq25180.Device) error { return d.SetFastCharge_mA(mA) })
	}
	if cfg.Termination_pct != nil {
		pct := *cfg.Termination_pct
		add("termination_pct", func(d *bq25180.Device) error { return d.SetTermination_pct(pct) })
	}
	if cfg.PrechargeThresh_mV != nil {
		mV := *cfg.PrechargeThresh_mV
		add("precharge_threshold_mV", func(d *bq25180.Device) error { return d.SetPrechargeThreshold_mV(mV) })
	}
	if cfg.PrechargeDouble != nil {
		dbl := *cfg.PrechargeDouble
		add("precharge_double", func(d *bq25180.Device) error { return d.SetPrechargeCurrent(dbl) })
	}
	if cfg.RechargeThreshold != nil {
		v, err := bq25180.ParseRechargeThreshold(*cfg.RechargeThreshold)
		if err != nil {
			return Plan{}, invalid("recharge_threshold", err)
		}
		add("recharge_threshold", func(d *bq25180.Device) error { return d.SetRechargeThreshold(v) })
	}
	if cfg.SafetyTimer != nil {
		v, err := bq25180.ParseSafetyTimer(*cfg.SafetyTimer)
		if err != nil {
			return Plan{}, invalid("safety_timer", err)
		}
		add("safety_timer", func(d *bq25180.Device) error { return d.SetSafetyTimer(v) })
	}
	if cfg.SafetyTimerSlowdown != nil {
		on := *cfg.SafetyTimerSlowdown
		add("safety_timer_slowdown", func(d *bq25180.Device) error { return d.EnableSafetyTimerSlowdown(on) })
	}

	// Battery protection
	if cfg.BatteryUVLO_mV != nil {
		mV := *cfg.BatteryUVLO_mV
		if _, err := bq25180.EncodeBatteryUVLO(mV); err != nil {
			return Plan{}, invalid("battery_uvlo_mV", err)
		}
		add("battery_uvlo_mV", func(d *bq25180.Device) error { return d.SetBatteryUVLO_mV(mV) })
	}
	if cfg.DischargeCurrent != nil {
		v, err := bq25180.ParseDischargeCurrent(*cfg.DischargeCurrent)
		if err != nil {
			return Plan{}, invalid("discharge_current", err)
		}
		add("discharge_current", func(d *bq25180.Device) error { return d.SetDischargeCurrent(v) })
	}
	if cfg.ThermalProtection != nil {
		on := *cfg.ThermalProtection
		add("thermal_protection", func(d *bq25180.Device) error { return d.EnableThermalProtection(on) })
	}

	// Input and system path
	if cfg.InputLimit_mA != nil {
		mA := *cfg.InputLimit_mA
		add("input_limit_mA", func(d *bq25180.Device) error { return d.SetInputCurrentLimit_mA(mA) })
	}
	if cfg.VINDPM != nil {
		v, err := bq25180.ParseVINDPM(*cfg.VINDPM)
		if err != nil {
			return Plan{}, invalid("vindpm", err)
		}
		add("vindpm", func(d *bq25180.Device) error { return d.SetVINDPM(v) })
	}
	if cfg.DPPM != nil {
		on := *cfg.DPPM
		add("dppm", func(d *bq25180.Device) error { return d.EnableDPPM(on) })
	}
	if cfg.SysSource != nil {
		v, err := bq25180.ParseSysSource(*cfg.SysSource)
		if err != nil {
			return Plan{}, invalid("sys_source", err)
		}
		add("sys_source", func(d *bq25180.Device) error { return d.SetSysSource(v) })
	}
	if cfg.SysRegulation != nil {
		v, err := bq25180.ParseSysRegulation(*cfg.SysRegulation)
		if err != nil {
			return Plan{}, invalid("sys_regulation", err)
		}
		add("sys_regulation", func(d *bq25180.Device) error { return d.SetSysRegulation(v) })
	}

	// Host interface
	if cfg.PushButton != nil {
		on := *cfg.PushButton
		add("push_button", func(d *bq25180.Device) error { return d.EnablePushButton(on) })
	}
	names := make([]string, 0, len(cfg.Interrupts))
	for name := range cfg.Interrupts {
		names = append(names, name)
	}
	slices.Sort(names)
	for _, name := range names {
		src, err := bq25180.ParseInterrupt(name)
		if err != nil {
			return Plan{}, invalid("interrupts."+name, err)
		}
		if cfg.Interrupts[name] {
			add("interrupts."+name, func(d *bq25180.Device) error { return d.EnableInterrupt(src) })
		} else {
			add("interrupts."+name, func(d *bq25180.Device) error { return d.DisableInterrupt(src) })
		}
	}

	if cfg.Enable != nil {
		on := *cfg.Enable
		add("enable", func(d *bq25180.Device) error { return d.EnableCharging(on) })
	}
	return p, nil
}
