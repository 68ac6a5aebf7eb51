package domain

import "time"

// DeviceType enumerates supported device categories.
type DeviceType string

const (
	DeviceSmartphone DeviceType = "smartphone"
	DeviceLaptop     DeviceType = "laptop"
	DeviceTablet     DeviceType = "tablet"
	DeviceConsole    DeviceType = "console"
	DeviceTV         DeviceType = "tv"
	DeviceAudio      DeviceType = "audio"
)

// IssueType enumerates supported failure categories.
type IssueType string

const (
	IssueScreen      IssueType = "screen"
	IssueBattery     IssueType = "battery"
	IssueCharging    IssueType = "charging"
	IssueWater       IssueType = "water"
	IssueOverheat    IssueType = "overheat"
	IssueSoftware    IssueType = "software"
	IssueMotherboard IssueType = "motherboard"
)

// Urgency enumerates service lanes.
type Urgency string

const (
	UrgencyStandard Urgency = "standard"
	UrgencyPriority Urgency = "priority"
	UrgencyExpress  Urgency = "express"
)

// Stage enumerates repair lifecycle states for tickets.
type Stage string

const (
	StageAccepted    Stage = "accepted"
	StageDiagnostics Stage = "diagnostics"
	StageApproval    Stage = "approval"
	StageRepair      Stage = "repair"
	StageQuality     Stage = "quality"
	StageReady       Stage = "ready"
)

// StageOrder lists the six stages in their fixed lifecycle order.
var StageOrder = []Stage{
	StageAccepted,
	StageDiagnostics,
	StageApproval,
	StageRepair,
	StageQuality,
	StageReady,
}

// Valid reports whether the stage is one of the six known values.
func (s Stage) Valid() bool {
	for _, known := range StageOrder {
		if s == known {
			return true
		}
	}
	return false
}

// Index returns the stage position in the lifecycle, or -1 for unknown values.
func (s Stage) Index() int {
	for i, known := range StageOrder {
		if s == known {
			return i
		}
	}
	return -1
}

// ServiceRequest captures the customer intake form. Immutable once embedded
// in a Ticket.
type ServiceRequest struct {
	CustomerName   string     `json:"customerName"`
	Phone          string     `json:"phone"`
	Email          string     `json:"email"`
	DeviceType     DeviceType `json:"deviceType"`
	Brand          string     `json:"brand"`
	Model          string     `json:"model"`
	IssueType      IssueType  `json:"issueType"`
	IssueDetails   string     `json:"issueDetails"`
	Urgency        Urgency    `json:"urgency"`
	HasWarranty    bool       `json:"hasWarranty"`
	RepeatCustomer bool       `json:"repeatCustomer"`
}

// PricingBreakdown holds the cost components of an estimate. All values are
// non-negative and rounded to the currency step.
type PricingBreakdown struct {
	DiagnosticFee int64 `json:"diagnosticFee"`
	LaborFee      int64 `json:"laborFee"`
	PartsReserve  int64 `json:"partsReserve"`
	UrgencyFee    int64 `json:"urgencyFee"`
	Discount      int64 `json:"discount"`
	Total         int64 `json:"total"`
	MinTotal      int64 `json:"minTotal"`
	MaxTotal      int64 `json:"maxTotal"`
}

// RepairEstimate is computed once at ticket creation and never recomputed.
type RepairEstimate struct {
	Pricing         PricingBreakdown `json:"pricing"`
	QueueDelayHours int              `json:"queueDelayHours"`
	RepairHours     int              `json:"repairHours"`
	LeadHours       int              `json:"leadHours"`
	PromiseDate     time.Time        `json:"promiseDate"`
}

// TimelineStep is one planned checkpoint in a ticket's six-step timeline.
type TimelineStep struct {
	Stage     Stage     `json:"stage"`
	Label     string    `json:"label"`
	PlannedAt time.Time `json:"plannedAt"`
}

// Ticket is the aggregate for repair orders. Identity fields and the embedded
// request, estimate and timeline are permanent; CurrentStage is the only field
// mutated after creation, exclusively by the staff stage-update operation.
type Ticket struct {
	ID           string         `json:"id"`
	TicketNumber string         `json:"ticketNumber"`
	AccessCode   string         `json:"accessCode"`
	CreatedAt    time.Time      `json:"createdAt"`
	CurrentStage *Stage         `json:"currentStage,omitempty"`
	Request      ServiceRequest `json:"request"`
	Estimate     RepairEstimate `json:"estimate"`
	Timeline     []TimelineStep `json:"timeline"`
	Notes        []string       `json:"notes"`
}

// TrackingSnapshot is the derived, non-persisted live view of a ticket.
type TrackingSnapshot struct {
	Stage      Stage     `json:"stage"`
	StageLabel string    `json:"stageLabel"`
	Progress   float64   `json:"progress"`
	EtaDate    time.Time `json:"etaDate"`
}

// TicketSummary aggregates a ticket collection for dashboards.
type TicketSummary struct {
	Total       int           `json:"total"`
	Active      int           `json:"active"`
	Ready       int           `json:"ready"`
	Express     int           `json:"express"`
	TotalAmount int64         `json:"totalAmount"`
	StageCounts map[Stage]int `json:"stageCounts"`
}
