// Package appointment models service appointments and the status lifecycle
// shared by the staff list and the customer detail view.
package appointment

import (
	"context"
	"sync"

	"pawmart-web/internal/apiclient"
	"pawmart-web/internal/logger"
	"pawmart-web/internal/notice"

	"go.uber.org/zap"
)

// Actor selects which backend route performs a cancellation.
type Actor string

const (
	ActorStaff    Actor = "staff"
	ActorCustomer Actor = "customer"
)

// Tracker is the caller's view of appointment statuses. Lifecycle reads it
// again once it holds the appointment's lock, so a queued action sees what
// the previous one did, and writes the new status back through Apply.
// Collection satisfies it.
type Tracker interface {
	Get(id string) (Appointment, bool)
	Apply(id string, status Status)
}

// ConfirmFunc asks the user to confirm a cancellation. It runs before any
// network call; returning false aborts.
type ConfirmFunc func(ctx context.Context, a Appointment) bool

// Outcome is what the UI shows after a lifecycle action. A cancellation can
// succeed while the slot release fails, in which case Status is Cancelled,
// SlotReleased is false and Notice is a warning.
type Outcome struct {
	Status       Status         `json:"status"`
	SlotReleased bool           `json:"slotReleased"`
	Notice       *notice.Notice `json:"notice,omitempty"`
}

func CanConfirm(s Status) bool {
	return s == StatusBooked
}

func CanCancel(s Status) bool {
	return s == StatusBooked || s == StatusConfirmed
}

type Lifecycle struct {
	api   API
	actor Actor
	locks *keyedMutex
}

func NewLifecycle(api API, actor Actor) *Lifecycle {
	return &Lifecycle{api: api, actor: actor, locks: &keyedMutex{}}
}

// As returns a lifecycle acting as actor that shares l's per-appointment
// serialization.
func (l *Lifecycle) As(actor Actor) *Lifecycle {
	return &Lifecycle{api: l.api, actor: actor, locks: l.locks}
}

// Confirm moves a Booked appointment to Confirmed.
func (l *Lifecycle) Confirm(ctx context.Context, a Appointment, t Tracker) (Outcome, error) {
	if a.ID == "" {
		return Outcome{}, ErrMissingAppointmentID
	}
	if !CanConfirm(a.Status) {
		return Outcome{Status: a.Status}, ErrNotConfirmable
	}

	entry, unlock := l.locks.Lock(a.ID)
	defer unlock()

	a.Status = current(a, entry, t)
	if !CanConfirm(a.Status) {
		return Outcome{Status: a.Status}, ErrNotConfirmable
	}

	log := l.log(ctx, "Confirm", a)

	if err := l.api.UpdateStatus(ctx, a.ID, StatusConfirmed); err != nil {
		log.Warn("confirm failed", zap.Error(err))
		return Outcome{
			Status: a.Status,
			Notice: notice.FromError(err, "Failed to confirm appointment"),
		}, err
	}

	entry.status = StatusConfirmed
	if t != nil {
		t.Apply(a.ID, StatusConfirmed)
	}
	log.Info("appointment confirmed")
	return Outcome{Status: StatusConfirmed, Notice: notice.Success("Appointment confirmed")}, nil
}

// Cancel cancels a Booked or Confirmed appointment and then releases its
// time slot.
//
// The slot is released only after the status change succeeded. If the
// release fails the status change is not rolled back; the outcome reports
// Cancelled with a warning that the slot is still held. An appointment that
// is already Cancelled short-circuits with no network calls, including when
// another cancellation finished while this one waited for the lock.
func (l *Lifecycle) Cancel(ctx context.Context, a Appointment, confirm ConfirmFunc, t Tracker) (Outcome, error) {
	if a.ID == "" {
		return Outcome{}, ErrMissingAppointmentID
	}
	if out, stop, err := cancelGuard(a.Status); stop {
		return out, err
	}
	if confirm == nil || !confirm(ctx, a) {
		return Outcome{Status: a.Status}, ErrCancelDeclined
	}

	entry, unlock := l.locks.Lock(a.ID)
	defer unlock()

	a.Status = current(a, entry, t)
	if out, stop, err := cancelGuard(a.Status); stop {
		return out, err
	}

	log := l.log(ctx, "Cancel", a)

	var err error
	if l.actor == ActorCustomer {
		err = l.api.Cancel(ctx, a.ID)
	} else {
		err = l.api.UpdateStatus(ctx, a.ID, StatusCancelled)
	}
	if err != nil {
		log.Warn("cancel failed", zap.Error(err))
		return Outcome{
			Status: a.Status,
			Notice: notice.FromError(err, "Failed to cancel appointment"),
		}, err
	}

	entry.status = StatusCancelled
	if t != nil {
		t.Apply(a.ID, StatusCancelled)
	}

	slot := a.Slot()
	if err := l.api.ReleaseSlot(ctx, slot); err != nil {
		log.Error("appointment cancelled but time slot was not released",
			zap.String("date", slot.Date),
			zap.String("time", slot.Time),
			zap.Error(err),
		)
		msg := "Appointment cancelled, but the time slot could not be released"
		if backendMsg := apiclient.MessageOf(err); backendMsg != "" {
			msg += ": " + backendMsg
		}
		return Outcome{Status: StatusCancelled, Notice: notice.Warning(msg)}, nil
	}

	log.Info("appointment cancelled and time slot released")
	return Outcome{
		Status:       StatusCancelled,
		SlotReleased: true,
		Notice:       notice.Success("Appointment cancelled"),
	}, nil
}

// cancelGuard reports whether a cancellation must stop before any network
// call, and with what result.
func cancelGuard(s Status) (Outcome, bool, error) {
	switch {
	case s == StatusCancelled:
		return Outcome{Status: StatusCancelled, Notice: notice.Info("Appointment is already cancelled")}, true, nil
	case !CanCancel(s):
		return Outcome{Status: s}, true, ErrNotCancellable
	}
	return Outcome{}, false, nil
}

// current is the freshest known status of a. Must be called with the
// appointment's lock held. A status written by an earlier holder of the same
// lock wins over the tracker, which wins over the caller's copy.
func current(a Appointment, entry *keyedEntry, t Tracker) Status {
	if entry.status != "" {
		return entry.status
	}
	if t != nil {
		if latest, ok := t.Get(a.ID); ok {
			return latest.Status
		}
	}
	return a.Status
}

func (l *Lifecycle) log(ctx context.Context, method string, a Appointment) *zap.Logger {
	return logger.FromCtx(ctx).With(
		zap.String("layer", "appointment"),
		zap.String("method", method),
		zap.String("actor", string(l.actor)),
		zap.String("appointment_id", a.ID),
		zap.String("service_type", string(a.ServiceType)),
	)
}

// keyedMutex serializes work per key. Entries are dropped once unused.
type keyedMutex struct {
	mu    sync.Mutex
	locks map[string]*keyedEntry
}

type keyedEntry struct {
	mu   sync.Mutex
	refs int

	// status is the last status committed by a holder of mu. It lives as
	// long as someone holds or waits for the key.
	status Status
}

func (k *keyedMutex) Lock(key string) (entry *keyedEntry, unlock func()) {
	k.mu.Lock()
	if k.locks == nil {
		k.locks = map[string]*keyedEntry{}
	}
	e, ok := k.locks[key]
	if !ok {
		e = &keyedEntry{}
		k.locks[key] = e
	}
	e.refs++
	k.mu.Unlock()

	e.mu.Lock()
	return e, func() {
		e.mu.Unlock()
		k.mu.Lock()
		e.refs--
		if e.refs == 0 {
			delete(k.locks, key)
		}
		k.mu.Unlock()
	}
}
