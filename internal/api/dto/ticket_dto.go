package dto

import (
	"time"

	"github.com/fixlane/repair-service/internal/domain"
	"github.com/fixlane/repair-service/internal/engine"
)

// CreateTicketRequest is the public intake payload.
type CreateTicketRequest struct {
	CustomerName   string            `json:"customerName"`
	Phone          string            `json:"phone"`
	Email          string            `json:"email"`
	DeviceType     domain.DeviceType `json:"deviceType"`
	Brand          string            `json:"brand"`
	Model          string            `json:"model"`
	IssueType      domain.IssueType  `json:"issueType"`
	IssueDetails   string            `json:"issueDetails"`
	Urgency        domain.Urgency    `json:"urgency"`
	HasWarranty    bool              `json:"hasWarranty"`
	RepeatCustomer bool              `json:"repeatCustomer"`
}

// TrackRequest is the customer self-service lookup payload.
type TrackRequest struct {
	TicketNumber string `json:"ticketNumber"`
	AccessCode   string `json:"accessCode"`
}

// UpdateStageRequest sets the staff override stage.
type UpdateStageRequest struct {
	Stage domain.Stage `json:"stage"`
}

// TicketResponse is the full ticket view returned to customers and staff.
type TicketResponse struct {
	ID           string                   `json:"id"`
	TicketNumber string                   `json:"ticketNumber"`
	AccessCode   string                   `json:"accessCode,omitempty"`
	CreatedAt    time.Time                `json:"createdAt"`
	CurrentStage *domain.Stage            `json:"currentStage,omitempty"`
	Request      domain.ServiceRequest    `json:"request"`
	Estimate     domain.RepairEstimate    `json:"estimate"`
	Timeline     []domain.TimelineStep    `json:"timeline"`
	Notes        []string                 `json:"notes"`
	Status       *domain.TrackingSnapshot `json:"status,omitempty"`
}

// EstimateResponse wraps a quote that did not create a ticket.
type EstimateResponse struct {
	Estimate domain.RepairEstimate `json:"estimate"`
}

// CatalogResponse exposes the price book for the intake form.
type CatalogResponse struct {
	Devices     []DeviceCategoryResponse `json:"devices"`
	Issues      []IssueCategoryResponse  `json:"issues"`
	Urgencies   []UrgencyPolicyResponse  `json:"urgencies"`
	StageLabels map[domain.Stage]string  `json:"stageLabels"`
}

// DeviceCategoryResponse is the public view of a device category.
type DeviceCategoryResponse struct {
	ID            domain.DeviceType `json:"id"`
	Label         string            `json:"label"`
	DiagnosticFee int64             `json:"diagnosticFee"`
}

// IssueCategoryResponse is the public view of an issue category.
type IssueCategoryResponse struct {
	ID    domain.IssueType `json:"id"`
	Label string           `json:"label"`
}

// UrgencyPolicyResponse is the public view of an urgency lane.
type UrgencyPolicyResponse struct {
	ID    domain.Urgency `json:"id"`
	Label string         `json:"label"`
}

// SummaryResponse is the admin dashboard aggregate.
type SummaryResponse struct {
	Total       int                  `json:"total"`
	Active      int                  `json:"active"`
	Ready       int                  `json:"ready"`
	Express     int                  `json:"express"`
	TotalAmount int64                `json:"totalAmount"`
	StageCounts map[domain.Stage]int `json:"stageCounts"`
}

// ToServiceRequest converts the intake payload into the domain request.
func (r CreateTicketRequest) ToServiceRequest() domain.ServiceRequest {
	return domain.ServiceRequest{
		CustomerName:   r.CustomerName,
		Phone:          r.Phone,
		Email:          r.Email,
		DeviceType:     r.DeviceType,
		Brand:          r.Brand,
		Model:          r.Model,
		IssueType:      r.IssueType,
		IssueDetails:   r.IssueDetails,
		Urgency:        r.Urgency,
		HasWarranty:    r.HasWarranty,
		RepeatCustomer: r.RepeatCustomer,
	}
}

// NewTicketResponse builds the ticket view. The access code is included only
// once, on creation; includeAccessCode controls that.
func NewTicketResponse(ticket *domain.Ticket, status *domain.TrackingSnapshot, includeAccessCode bool) TicketResponse {
	resp := TicketResponse{
		ID:           ticket.ID,
		TicketNumber: ticket.TicketNumber,
		CreatedAt:    ticket.CreatedAt,
		CurrentStage: ticket.CurrentStage,
		Request:      ticket.Request,
		Estimate:     ticket.Estimate,
		Timeline:     ticket.Timeline,
		Notes:        ticket.Notes,
		Status:       status,
	}
	if includeAccessCode {
		resp.AccessCode = ticket.AccessCode
	}
	return resp
}

// NewCatalogResponse projects the price book for public consumption, leaving
// the internal rate and risk figures out.
func NewCatalogResponse(catalog engine.Catalog) CatalogResponse {
	resp := CatalogResponse{
		Devices:     make([]DeviceCategoryResponse, 0, len(catalog.Devices)),
		Issues:      make([]IssueCategoryResponse, 0, len(catalog.Issues)),
		Urgencies:   make([]UrgencyPolicyResponse, 0, len(catalog.Urgencies)),
		StageLabels: catalog.StageLabels,
	}
	for _, device := range catalog.Devices {
		resp.Devices = append(resp.Devices, DeviceCategoryResponse{
			ID:            device.ID,
			Label:         device.Label,
			DiagnosticFee: device.DiagnosticFee,
		})
	}
	for _, issue := range catalog.Issues {
		resp.Issues = append(resp.Issues, IssueCategoryResponse{ID: issue.ID, Label: issue.Label})
	}
	for _, urgency := range catalog.Urgencies {
		resp.Urgencies = append(resp.Urgencies, UrgencyPolicyResponse{ID: urgency.ID, Label: urgency.Label})
	}
	return resp
}

// NewSummaryResponse converts the domain aggregate.
func NewSummaryResponse(summary domain.TicketSummary) SummaryResponse {
	return SummaryResponse{
		Total:       summary.Total,
		Active:      summary.Active,
		Ready:       summary.Ready,
		Express:     summary.Express,
		TotalAmount: summary.TotalAmount,
		StageCounts: summary.StageCounts,
	}
}
