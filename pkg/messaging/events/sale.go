package events

import (
	"encoding/json"
	"time"

	"github.com/Juan-Ayme/ventas/pkg/messaging"
)

// SaleCreatedEvent is published after a sale has been persisted and the
// product stock decremented.
type SaleCreatedEvent struct {
	SaleID     int64     `json:"venta_id"`
	ProductID  int64     `json:"producto_id"`
	Quantity   int32     `json:"cantidad_vendida"`
	TotalPrice float64   `json:"importe_total"`
	SoldAt     time.Time `json:"fecha_venta"`
}

func (e SaleCreatedEvent) Subject() string {
	return messaging.VentasCreatedSubject
}

func (e SaleCreatedEvent) Payload() ([]byte, error) {
	return json.Marshal(e)
}
