package types

// Link is the link/state reported for a capability.
type Link string

const (
	LinkUp       Link = "up"
	LinkDown     Link = "down"
	LinkDegraded Link = "degraded"
)

// CapabilityStatus is retained on hal/cap/.../status.
type CapabilityStatus struct {
	Link  Link   `json:"link"`
	TS    int64  `json:"ts_ms"`
	Error string `json:"error,omitempty"`
}

// Info envelope each device/cap exposes (retained)
type Info struct {
	SchemaVersion int         `json:"schema_version"`
	Driver        string      `json:"driver"`
	Detail        interface{} `json:"detail,omitempty"`
}

// Generic replies
type OKReply struct {
	OK bool `json:"ok"`
}
type ErrorReply struct {
	OK    bool   `json:"ok"`
	Error string `json:"error"`
}

// Heartbeat is retained on sys/heartbeat.
type Heartbeat struct {
	Uptime_s int64 `json:"uptime_s"`
	Stamp_ms int64 `json:"ts_ms"`
}

// HeartbeatConfig retunes the heartbeat when published on config/heartbeat.
type HeartbeatConfig struct {
	Interval_ms int `json:"interval_ms" yaml:"interval_ms"`
}
