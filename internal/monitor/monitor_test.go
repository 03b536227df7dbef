package monitor

import (
	"context"
	"fmt"
	"testing"
	"time"

	"wiserate/internal/alert"
	"wiserate/internal/domain"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// --- Testify mocks ---

type MockAlertChecker struct{ mock.Mock }

func (m *MockAlertChecker) CheckAll(ctx context.Context) []alert.Status {
	args := m.Called(ctx)
	statuses, _ := args.Get(0).([]alert.Status)
	return statuses
}

func (m *MockAlertChecker) MarkTriggered(pair domain.Pair, at time.Time) error {
	args := m.Called(pair, at)
	return args.Error(0)
}

type MockNotifier struct{ mock.Mock }

func (m *MockNotifier) Notify(status alert.Status) {
	m.Called(status)
}

var usdEur = domain.Pair{Source: "USD", Target: "EUR"}

func triggeredStatus(pair domain.Pair) alert.Status {
	return alert.Status{
		Alert: domain.Alert{
			Pair:      pair,
			Threshold: decimal.RequireFromString("1.10"),
			Direction: domain.DirectionAbove,
		},
		Rate:      domain.Rate{Pair: pair, Value: decimal.RequireFromString("1.15")},
		Triggered: true,
	}
}

// --- Construction ---

func TestNewMonitor_ClampsInterval(t *testing.T) {
	require.Equal(t, 10*time.Minute, NewMonitor(nil, nil, 0).Interval())
	require.Equal(t, 10*time.Minute, NewMonitor(nil, nil, -time.Second).Interval())
	require.Equal(t, 10*time.Second, NewMonitor(nil, nil, time.Second).Interval())
	require.Equal(t, time.Hour, NewMonitor(nil, nil, time.Hour).Interval())
}

// --- Lifecycle ---

func TestMonitor_Shutdown_BeforeStart_ReturnsNil(t *testing.T) {
	m := NewMonitor(new(MockAlertChecker), new(MockNotifier), time.Minute)
	require.NoError(t, m.Shutdown())
	require.Nil(t, m.sched)
}

func TestMonitor_Start_And_ContextCancel_ShutsDown(t *testing.T) {
	checker := new(MockAlertChecker)
	checker.On("CheckAll", mock.Anything).Return([]alert.Status{}).Maybe()
	m := NewMonitor(checker, new(MockNotifier), time.Minute)
	ctx, cancel := context.WithCancel(context.Background())

	require.NoError(t, m.Start(ctx))
	require.NotNil(t, m.sched)

	cancel()

	// Wait until the shutdown goroutine clears the scheduler.
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if m.sched == nil {
			break
		}
		time.Sleep(10 * time.Millisecond)
	}
	require.Nil(t, m.sched, "expected monitor to shut down after ctx cancel")
}

func TestMonitor_Shutdown_AfterStart_Idempotent(t *testing.T) {
	checker := new(MockAlertChecker)
	checker.On("CheckAll", mock.Anything).Return([]alert.Status{}).Maybe()
	m := NewMonitor(checker, new(MockNotifier), time.Minute)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	require.NoError(t, m.Start(ctx))
	require.NotNil(t, m.sched)

	require.NoError(t, m.Shutdown())
	require.Nil(t, m.sched)
	require.NoError(t, m.Shutdown())
}

// --- runPass ---

func TestMonitor_RunPass_NotifiesAndStampsTriggeredAlerts(t *testing.T) {
	status := triggeredStatus(usdEur)

	checker := new(MockAlertChecker)
	checker.On("CheckAll", mock.Anything).Return([]alert.Status{status}).Once()
	checker.On("MarkTriggered", usdEur, mock.Anything).Return(nil).Once()
	notifier := new(MockNotifier)
	notifier.On("Notify", status).Return().Once()

	m := NewMonitor(checker, notifier, time.Minute)
	m.runPass(context.Background(), "test-exec")

	checker.AssertExpectations(t)
	notifier.AssertExpectations(t)
}

func TestMonitor_RunPass_SkipsUntriggeredAndFailedAlerts(t *testing.T) {
	eurGbp := domain.Pair{Source: "EUR", Target: "GBP"}
	quiet := alert.Status{
		Alert: domain.Alert{Pair: usdEur, Direction: domain.DirectionAbove},
	}
	failed := alert.Status{
		Alert: domain.Alert{Pair: eurGbp, Direction: domain.DirectionBelow},
		Err:   fmt.Errorf("%w: provider down", domain.ErrTransient),
	}

	checker := new(MockAlertChecker)
	checker.On("CheckAll", mock.Anything).Return([]alert.Status{quiet, failed}).Once()
	notifier := new(MockNotifier)

	m := NewMonitor(checker, notifier, time.Minute)
	m.runPass(context.Background(), "test-exec")

	notifier.AssertNotCalled(t, "Notify", mock.Anything)
	checker.AssertNotCalled(t, "MarkTriggered", mock.Anything, mock.Anything)
}

func TestMonitor_RunPass_MarkTriggeredFailureDoesNotPanic(t *testing.T) {
	status := triggeredStatus(usdEur)

	checker := new(MockAlertChecker)
	checker.On("CheckAll", mock.Anything).Return([]alert.Status{status}).Once()
	checker.On("MarkTriggered", usdEur, mock.Anything).
		Return(fmt.Errorf("%w: disk full", domain.ErrPersistence)).Once()
	notifier := new(MockNotifier)
	notifier.On("Notify", status).Return().Once()

	m := NewMonitor(checker, notifier, time.Minute)
	m.runPass(context.Background(), "test-exec")

	checker.AssertExpectations(t)
}

func TestMonitor_Start_RunsImmediatePass(t *testing.T) {
	done := make(chan struct{})
	checker := new(MockAlertChecker)
	checker.On("CheckAll", mock.Anything).
		Run(func(mock.Arguments) { close(done) }).
		Return([]alert.Status{}).Once()

	m := NewMonitor(checker, new(MockNotifier), time.Minute)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	require.NoError(t, m.Start(ctx))
	t.Cleanup(func() { _ = m.Shutdown() })

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("expected an immediate check pass after Start")
	}
}
