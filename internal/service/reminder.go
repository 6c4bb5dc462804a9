package service

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/JeffreyGeng/VehicleMaintenanceTracker/internal/domain"
	"github.com/zoobzio/clockz"
)

// Reminder is a single due-maintenance signal emitted by the sweep.
type Reminder struct {
	VehicleID  int64
	Type       string
	Reason     domain.DueReason
	DueMileage *int64
	DueDate    *time.Time
}

// ReminderSink receives reminder signals. Implementations may log, email,
// or push; the default sink writes one log line per reminder.
type ReminderSink interface {
	Notify(ctx context.Context, r Reminder)
}

// SlogSink logs each reminder through slog.
type SlogSink struct{}

func (SlogSink) Notify(_ context.Context, r Reminder) {
	attrs := []any{
		"vehicle_id", r.VehicleID,
		"type", r.Type,
		"reason", string(r.Reason),
	}
	if r.DueMileage != nil {
		attrs = append(attrs, "due_mileage", *r.DueMileage)
	}
	if r.DueDate != nil {
		attrs = append(attrs, "due_date", r.DueDate.Format("2006-01-02"))
	}
	slog.Info("maintenance reminder", attrs...)
}

// ReminderService scans all maintenance records and signals each one that
// is due. Reminders are re-emitted on every run for as long as the
// condition holds; there is no deduplication across runs.
type ReminderService struct {
	maintenance domain.MaintenanceRepository
	sink        ReminderSink
}

// NewReminderService creates a new ReminderService.
func NewReminderService(maintenance domain.MaintenanceRepository, sink ReminderSink) *ReminderService {
	return &ReminderService{maintenance: maintenance, sink: sink}
}

// Run performs one sweep: every maintenance record joined with its vehicle
// is evaluated against now, and one reminder is emitted per due record.
func (s *ReminderService) Run(ctx context.Context, now time.Time) error {
	records, err := s.maintenance.ListAllWithVehicle(ctx)
	if err != nil {
		return fmt.Errorf("load maintenance records: %w", err)
	}

	for i := range records {
		rec := &records[i]
		due := Evaluate(rec.Vehicle.Mileage, &rec.Maintenance, now)
		if due == nil {
			continue
		}
		s.sink.Notify(ctx, Reminder{
			VehicleID:  rec.Vehicle.ID,
			Type:       due.Type,
			Reason:     due.Reason,
			DueMileage: due.DueMileage,
			DueDate:    due.DueDate,
		})
	}
	return nil
}

// ReminderScheduler runs the sweep once per day at a fixed hour. It has an
// explicit start/stop lifecycle owned by the process: Start blocks until
// the context is canceled or Stop is called.
type ReminderScheduler struct {
	reminders *ReminderService
	hour      int
	clock     clockz.Clock

	mu      sync.Mutex
	running bool
	stopCh  chan struct{}
}

// NewReminderScheduler creates a scheduler firing daily at the given hour
// (local time). A nil clock defaults to the real clock.
func NewReminderScheduler(reminders *ReminderService, hour int, clock clockz.Clock) *ReminderScheduler {
	if clock == nil {
		clock = clockz.RealClock
	}
	return &ReminderScheduler{
		reminders: reminders,
		hour:      hour,
		clock:     clock,
	}
}

// Start begins the daily loop. A failed sweep is logged and the schedule
// continues with the next day's run.
func (s *ReminderScheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return nil
	}
	s.running = true
	s.stopCh = make(chan struct{})
	stopCh := s.stopCh
	s.mu.Unlock()

	for {
		now := s.clock.Now()
		next := nextRunAfter(now, s.hour)

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-stopCh:
			return nil
		case <-s.clock.After(next.Sub(now)):
			runAt := s.clock.Now()
			slog.Info("running maintenance reminder sweep", "scheduled_for", next)
			if err := s.reminders.Run(ctx, runAt); err != nil {
				slog.Error("reminder sweep failed", "error", err)
			}
		}
	}
}

// Stop ends the loop. Safe to call multiple times.
func (s *ReminderScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.running {
		return
	}
	s.running = false
	close(s.stopCh)
}

// nextRunAfter returns the next occurrence of hour o'clock strictly after
// now, in now's location.
func nextRunAfter(now time.Time, hour int) time.Time {
	next := time.Date(now.Year(), now.Month(), now.Day(), hour, 0, 0, 0, now.Location())
	if !next.After(now) {
		next = next.AddDate(0, 0, 1)
	}
	return next
}
