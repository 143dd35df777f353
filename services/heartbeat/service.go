package heartbeat

import (
	"context"
	"time"

	"chargecode-go/bus"
	"chargecode-go/types"
	"chargecode-go/x/timex"
)

const DefaultInterval = 10 * time.Second

var (
	TopicHeartbeat       = bus.T("sys", "heartbeat")
	topicConfigHeartbeat = bus.T("config", "heartbeat")
)

type Service struct {
	interval time.Duration
	started  time.Time
	done     chan struct{}
}

// New returns a heartbeat publishing every interval (0 => DefaultInterval).
func New(interval time.Duration) *Service {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Service{interval: interval, done: make(chan struct{})}
}

func (s *Service) Done() <-chan struct{} { return s.done }

func (s *Service) serviceLoop(ctx context.Context, conn *bus.Connection, cfgSub *bus.Subscription) {
	defer close(s.done)
	defer conn.Unsubscribe(cfgSub)

	tick := time.NewTicker(s.interval)
	defer tick.Stop()

	s.beat(conn)
	for {
		select {
		case <-ctx.Done():
			println("Info: heartbeat service stopping")
			return
		case <-tick.C:
			s.beat(conn)
		case msg, ok := <-cfgSub.Channel():
			if !ok {
				return
			}
			c, ok := msg.Payload.(types.HeartbeatConfig)
			if !ok || c.Interval_ms <= 0 {
				println("Error: heartbeat ignoring config payload")
				continue
			}
			s.interval = timex.Ms(c.Interval_ms)
			tick.Reset(s.interval)
			println("Info: heartbeat interval set to", c.Interval_ms, "ms")
		}
	}
}

func (s *Service) beat(conn *bus.Connection) {
	conn.Publish(conn.NewMessage(TopicHeartbeat, types.Heartbeat{
		Uptime_s: int64(time.Since(s.started) / time.Second),
		Stamp_ms: timex.NowMs(),
	}, true))
}

// Start the heartbeat service.
func (s *Service) Start(ctx context.Context, conn *bus.Connection) error {
	s.started = time.Now()
	cfgSub := conn.Subscribe(topicConfigHeartbeat)
	go s.serviceLoop(ctx, conn, cfgSub)
	return nil
}
