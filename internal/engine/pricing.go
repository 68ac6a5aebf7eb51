package engine

import (
	"math"
	"strings"
	"time"

	"github.com/fixlane/repair-service/internal/domain"
)

// Policy carries the tunable pricing constants. The workshop runs the
// defaults; alternate discount caps and spread factors stay a config choice.
type Policy struct {
	CurrencyStep int64
	FloorTotal   int64
	BrandUplift  float64
	WarrantyRate float64
	RepeatRate   float64
	DiscountCap  float64
	MinFactor    float64
	MaxFactor    float64
}

// DefaultPolicy returns the canonical pricing constants.
func DefaultPolicy() Policy {
	return Policy{
		CurrencyStep: 100,
		FloorTotal:   8000,
		BrandUplift:  1.05,
		WarrantyRate: 0.24,
		RepeatRate:   0.07,
		DiscountCap:  0.35,
		MinFactor:    0.9,
		MaxFactor:    1.15,
	}
}

// Estimator computes repair estimates from a catalog and pricing policy.
// It is pure: same inputs always produce the same estimate, and it never
// touches the clock or random source itself.
type Estimator struct {
	catalog Catalog
	policy  Policy
}

// NewEstimator constructs an estimator over the given tables.
func NewEstimator(catalog Catalog, policy Policy) *Estimator {
	return &Estimator{catalog: catalog, policy: policy}
}

// Catalog exposes the injected tables for callers that render them.
func (e *Estimator) Catalog() Catalog {
	return e.catalog
}

// Estimate prices a service request. openTickets is a snapshot of the
// current non-ready backlog and only feeds the queue-delay heuristic, so a
// slightly stale count is tolerated.
func (e *Estimator) Estimate(request domain.ServiceRequest, openTickets int, now time.Time) domain.RepairEstimate {
	device := e.catalog.Device(request.DeviceType)
	issue := e.catalog.Issue(request.IssueType)
	urgency := e.catalog.Urgency(request.Urgency)

	brandMultiplier := 1.0
	if strings.TrimSpace(request.Brand) != "" {
		brandMultiplier = e.policy.BrandUplift
	}

	diagnosticFee := e.round(float64(device.DiagnosticFee))
	laborFee := e.round(float64(device.LaborRate) * issue.Complexity * brandMultiplier)
	partsReserve := e.round(float64(issue.PartsReserve) * device.PartsRisk)
	urgencyFee := e.round(float64(laborFee+partsReserve) * (urgency.PriceMultiplier - 1))

	var discount int64
	if request.HasWarranty {
		discount += e.round(float64(diagnosticFee+laborFee) * e.policy.WarrantyRate)
	}
	if request.RepeatCustomer {
		discount += e.round(float64(laborFee+partsReserve) * e.policy.RepeatRate)
	}

	subtotal := diagnosticFee + laborFee + partsReserve + urgencyFee
	if cap := e.round(float64(subtotal) * e.policy.DiscountCap); discount > cap {
		discount = cap
	}

	total := e.round(float64(subtotal - discount))
	if total < e.policy.FloorTotal {
		total = e.policy.FloorTotal
	}

	repairHours := int(math.Ceil((device.BaseHours + issue.ExtraHours + issue.Complexity*2) * urgency.TimeMultiplier))
	queueDelayHours := queueDelayHours(openTickets, urgency.ID, issue.Complexity)
	leadHours := queueDelayHours + repairHours

	return domain.RepairEstimate{
		Pricing: domain.PricingBreakdown{
			DiagnosticFee: diagnosticFee,
			LaborFee:      laborFee,
			PartsReserve:  partsReserve,
			UrgencyFee:    urgencyFee,
			Discount:      discount,
			Total:         total,
			MinTotal:      e.round(float64(total) * e.policy.MinFactor),
			MaxTotal:      e.round(float64(total) * e.policy.MaxFactor),
		},
		QueueDelayHours: queueDelayHours,
		RepairHours:     repairHours,
		LeadHours:       leadHours,
		PromiseDate:     now.Add(time.Duration(leadHours) * time.Hour),
	}
}

func (e *Estimator) round(value float64) int64 {
	step := e.policy.CurrencyStep
	if step <= 0 {
		step = 1
	}
	return int64(math.Round(value/float64(step))) * step
}

// queueDelayHours converts backlog into a closed-form delay heuristic.
// Delay never decreases as backlog grows, and for equal backlog express
// delay <= priority delay <= standard delay. Express is clamped to a small
// bounded window regardless of backlog.
func queueDelayHours(openTickets int, urgency domain.Urgency, complexity float64) int {
	backlog := openTickets - 2
	if backlog < 0 {
		backlog = 0
	}
	base := 6 + int(math.Ceil(float64(backlog)/3))*10 + int(math.Ceil(complexity))

	switch urgency {
	case domain.UrgencyExpress:
		delay := int(math.Ceil(float64(base) * 0.3))
		if delay < 2 {
			delay = 2
		}
		if delay > 6 {
			delay = 6
		}
		return delay
	case domain.UrgencyPriority:
		delay := int(math.Ceil(float64(base) * 0.55))
		if delay < 4 {
			delay = 4
		}
		return delay
	default:
		return base
	}
}
