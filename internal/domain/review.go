package domain

import "time"

// Review is public customer feedback, independent of any ticket.
type Review struct {
	ID           string    `json:"id"`
	CustomerName string    `json:"customerName"`
	Rating       int       `json:"rating"`
	Comment      string    `json:"comment"`
	CreatedAt    time.Time `json:"createdAt"`
}
