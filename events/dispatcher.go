package events

import (
	"context"

	"go.uber.org/zap"
)

// Handler kolaborator penerima event (push notification, subscriber realtime).
type Handler func(Event)

// Dispatcher buffer channel, publish best-effort non-blocking: kalau buffer
// penuh event di-drop dengan warning, request tidak boleh ikut tertahan.
type Dispatcher struct {
	ch       chan Event
	handlers []Handler
	log      *zap.Logger
}

func NewDispatcher(buffer int, log *zap.Logger, handlers ...Handler) *Dispatcher {
	if buffer <= 0 {
		buffer = 64
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Dispatcher{
		ch:       make(chan Event, buffer),
		handlers: handlers,
		log:      log,
	}
}

// Publish non-blocking; dipanggil setelah commit transaksi.
func (d *Dispatcher) Publish(ev Event) {
	select {
	case d.ch <- ev:
	default:
		d.log.Warn("buffer event penuh, event di-drop",
			zap.String("type", ev.Type), zap.Uint("order_id", ev.OrderID))
	}
}

// Run konsumsi event sampai ctx selesai. Jalankan di goroutine sendiri.
func (d *Dispatcher) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case ev := <-d.ch:
			d.log.Info("event domain",
				zap.String("id", ev.ID),
				zap.String("type", ev.Type),
				zap.Uint("order_id", ev.OrderID),
				zap.Uint("customer_id", ev.CustomerID),
				zap.String("status", ev.Status))
			for _, h := range d.handlers {
				h(ev)
			}
		}
	}
}
