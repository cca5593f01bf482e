package inventory

import (
	"time"

	"mochini/internal/core/entity"
	"mochini/internal/core/id"
)

// Transfer is the immutable audit record of one warehouse-to-warehouse stock
// move. Transfers are only ever appended, never updated.
type Transfer struct {
	entity.Base

	ProductID   id.ID     `json:"productId"`
	ProductName string    `json:"productName"`
	From        string    `json:"from"`
	To          string    `json:"to"`
	Quantity    int       `json:"quantity"`
	Date        time.Time `json:"date"`
	User        string    `json:"user"`
}
