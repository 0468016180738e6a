package audit

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/troia-reservas/internal/logger"
)

const (
	ActionReservationCreated = "reservation_created"
	ActionReservationUpdated = "reservation_updated"
	ActionReservationDeleted = "reservation_deleted"
	ActionReservationsExport = "reservations_exported"
	ActionLargePartyRedirect = "large_party_redirected"
	ActionProfileCreated     = "profile_created"

	EntityReservation = "reservation"
	EntityProfile     = "profile"
)

type Event struct {
	UserID   *uuid.UUID `json:"user_id,omitempty"`
	Action   string     `json:"action"`
	Entity   string     `json:"entity"`
	EntityID *uuid.UUID `json:"entity_id,omitempty"`
	Metadata any        `json:"metadata,omitempty"`
}

// Sink receives every dispatched event (database table, message broker...).
type Sink interface {
	Record(ctx context.Context, ev Event) error
}

type Dispatcher struct {
	log   *logger.Logger
	sinks []Sink
	queue chan Event

	mu     sync.RWMutex
	closed bool
	wg     sync.WaitGroup
}

func NewDispatcher(log *logger.Logger, sinks ...Sink) *Dispatcher {
	d := &Dispatcher{
		log:   log,
		sinks: sinks,
		queue: make(chan Event, 100), // buffer seguro
	}

	d.wg.Add(1)
	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	defer d.wg.Done()

	for ev := range d.queue {
		for _, s := range d.sinks {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			if err := s.Record(ctx, ev); err != nil {
				d.log.Error("AUDIT", fmt.Sprintf("audit error (%s): %v", ev.Action, err))
			}
			cancel()
		}
	}
}

// Dispatch never blocks the request.
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
		// enviado
	default:
		// fila cheia → descartamos audit (nunca quebrar API)
		d.log.Warn("AUDIT", "audit queue full, dropping event "+ev.Action)
	}
}

// Close drains the queue and stops the worker.
func (d *Dispatcher) Close() {
	if d == nil {
		return
	}

	d.mu.Lock()
	if !d.closed {
		d.closed = true
		close(d.queue)
	}
	d.mu.Unlock()

	d.wg.Wait()
}
