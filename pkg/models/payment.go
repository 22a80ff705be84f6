package models

type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "Pending"
	PaymentCompleted PaymentStatus = "Completed"
)

// Payment is produced per booking. It is transient: the record travels back
// to the caller with the booking result and is not persisted on its own.
type Payment struct {
	TripID string        `json:"trip_id"`
	Method string        `json:"method"`
	Amount int64         `json:"amount"`
	Status PaymentStatus `json:"status"`
}

func NewPayment(tripID, method string, amount int64) *Payment {
	return &Payment{
		TripID: tripID,
		Method: method,
		Amount: amount,
		Status: PaymentPending,
	}
}

// Process settles the payment. Processing never fails in this system.
func (p *Payment) Process() {
	p.Status = PaymentCompleted
}
