package audit

import (
	"context"
	"sync"

	"github.com/rs/zerolog"
)

const (
	ActionServiceCreated           = "service_created"
	ActionServiceUpdated           = "service_updated"
	ActionServiceDeleted           = "service_deleted"
	ActionAppointmentCreated       = "appointment_created"
	ActionAppointmentConflict      = "appointment_conflict"
	ActionAppointmentStatusChanged = "appointment_status_changed"
	ActionAppointmentCancelled     = "appointment_cancelled"

	EntityService     = "service"
	EntityAppointment = "appointment"
)

const queueSize = 100

type Event struct {
	ActorEmail string
	Action     string
	Entity     string
	EntityID   *uint
	Metadata   any
}

// Dispatcher writes audit events in the background. Events are dropped when
// the queue is full so auditing never blocks a request.
type Dispatcher struct {
	logger *Logger
	log    zerolog.Logger
	queue  chan Event

	mu     sync.RWMutex
	closed bool
	done   chan struct{}
}

func NewDispatcher(logger *Logger, log zerolog.Logger) *Dispatcher {
	d := &Dispatcher{
		logger: logger,
		log:    log.With().Str("component", "audit").Logger(),
		queue:  make(chan Event, queueSize),
		done:   make(chan struct{}),
	}

	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	defer close(d.done)

	for ev := range d.queue {
		if err := d.logger.Log(
			context.Background(),
			ev.ActorEmail,
			ev.Action,
			ev.Entity,
			ev.EntityID,
			ev.Metadata,
		); err != nil {
			d.log.Error().Err(err).Str("action", ev.Action).Msg("audit write failed")
		}
	}
}

func (d *Dispatcher) Dispatch(ev Event) {
	if d == nil {
		return
	}

	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.closed {
		return
	}

	select {
	case d.queue <- ev:
	default:
		d.log.Warn().Str("action", ev.Action).Msg("audit queue full, dropping event")
	}
}

// Close stops accepting events and waits until queued ones are written.
func (d *Dispatcher) Close() {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return
	}
	d.closed = true
	close(d.queue)
	d.mu.Unlock()

	<-d.done
}
