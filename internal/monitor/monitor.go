package monitor

import (
	"context"
	"time"

	"wiserate/internal/alert"
	"wiserate/internal/domain"

	"github.com/go-co-op/gocron/v2"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const (
	// minInterval keeps the loop from hammering the provider.
	minInterval     = 10 * time.Second
	defaultInterval = 10 * time.Minute
)

// Notifier delivers a triggered-alert notification. The default channel
// is the log; anything else is a drop-in.
type Notifier interface {
	Notify(status alert.Status)
}

// LogNotifier announces triggered alerts through logrus.
type LogNotifier struct{}

func (LogNotifier) Notify(status alert.Status) {
	logrus.WithFields(logrus.Fields{
		"pair":      status.Alert.Pair.String(),
		"direction": status.Alert.Direction,
		"threshold": status.Alert.Threshold.String(),
		"rate":      status.Rate.Value.String(),
	}).Warn("🔔 Alert triggered")
}

type AlertChecker interface {
	CheckAll(ctx context.Context) []alert.Status
	MarkTriggered(pair domain.Pair, at time.Time) error
}

// Monitor periodically evaluates all alerts. Between ticks it is idle;
// singleton mode guarantees check passes never overlap, and a canceled
// context lets the running pass finish but schedules nothing new.
type Monitor struct {
	alerts   AlertChecker
	notifier Notifier
	interval time.Duration
	// -----
	sched gocron.Scheduler
}

func NewMonitor(alerts AlertChecker, notifier Notifier, interval time.Duration) *Monitor {
	if interval <= 0 {
		interval = defaultInterval
	} else if interval < minInterval {
		interval = minInterval
	}
	return &Monitor{alerts: alerts, notifier: notifier, interval: interval}
}

func (m *Monitor) Interval() time.Duration { return m.interval }

func (m *Monitor) Start(ctx context.Context) error {
	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return err
	}
	m.sched = scheduler

	job := func(jobCtx context.Context) {
		execID := uuid.NewString()
		m.runPass(jobCtx, execID)
	}

	_, err = scheduler.NewJob(
		gocron.DurationJob(m.interval),
		gocron.NewTask(job),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
		gocron.WithStartAt(gocron.WithStartImmediately()),
	)
	if err != nil {
		return err
	}

	scheduler.Start()

	// Stop the loop when the provided context is canceled.
	go func() {
		<-ctx.Done()
		if sdErr := m.Shutdown(); sdErr != nil {
			logrus.Errorf("Monitor shutdown error: %v", sdErr)
		}
	}()
	return nil
}

func (m *Monitor) Shutdown() error {
	if m.sched == nil {
		return nil
	}
	err := m.sched.Shutdown()
	m.sched = nil
	return err
}

// runPass evaluates every alert once. Per-alert failures are logged and
// skipped; triggered alerts are announced and stamped, never removed.
func (m *Monitor) runPass(ctx context.Context, execID string) {
	statuses := m.alerts.CheckAll(ctx)
	if len(statuses) == 0 {
		logrus.Infof("No alerts to check this time; execID: %s", execID)
		return
	}

	triggered := 0
	for _, status := range statuses {
		if status.Err != nil {
			logrus.WithError(status.Err).WithField("pair", status.Alert.Pair.String()).
				Errorf("Failed to check alert; execID: %s", execID)
			continue
		}
		if !status.Triggered {
			continue
		}
		triggered++
		m.notifier.Notify(status)
		if err := m.alerts.MarkTriggered(status.Alert.Pair, time.Now().UTC()); err != nil {
			logrus.WithError(err).WithField("pair", status.Alert.Pair.String()).
				Error("Failed to record alert trigger time")
		}
	}
	logrus.Infof("Checked %d alerts, %d triggered; execID: %s", len(statuses), triggered, execID)
}
