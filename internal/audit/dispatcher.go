package audit

import (
	"sync"

	"github.com/rs/zerolog/log"
)

type Event struct {
	HangarID uint
	UserID   *uint
	Action   string
	Entity   string
	EntityID *uint
	Metadata any
}

// Sink persiste um evento. *Logger é a implementação em banco.
type Sink interface {
	Log(ev Event) error
}

type Dispatcher struct {
	sink  Sink
	queue chan Event
	done  chan struct{}

	mu     sync.RWMutex
	closed bool
}

func NewDispatcher(sink Sink, size int) *Dispatcher {
	if size <= 0 {
		size = 100
	}

	d := &Dispatcher{
		sink:  sink,
		queue: make(chan Event, size),
		done:  make(chan struct{}),
	}

	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	defer close(d.done)

	for ev := range d.queue {
		if err := d.sink.Log(ev); err != nil {
			log.Error().Err(err).
				Uint("hangar_id", ev.HangarID).
				Str("action", ev.Action).
				Msg("audit write failed")
		}
	}
}

// Dispatch nunca bloqueia a requisição: com a fila cheia ou fechada o evento é descartado.
func (d *Dispatcher) Dispatch(ev Event) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.closed {
		log.Warn().
			Uint("hangar_id", ev.HangarID).
			Str("action", ev.Action).
			Msg("audit dispatcher closed, dropping event")
		return
	}

	select {
	case d.queue <- ev:
	default:
		log.Warn().
			Uint("hangar_id", ev.HangarID).
			Str("action", ev.Action).
			Msg("audit queue full, dropping event")
	}
}

// Close drena a fila; eventos despachados depois disso são descartados.
func (d *Dispatcher) Close() {
	d.mu.Lock()
	if !d.closed {
		d.closed = true
		close(d.queue)
	}
	d.mu.Unlock()

	<-d.done
}
