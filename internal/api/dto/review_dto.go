package dto

// CreateReviewRequest is the public review submission payload.
type CreateReviewRequest struct {
	CustomerName string `json:"customerName"`
	Rating       int    `json:"rating"`
	Comment      string `json:"comment"`
}
