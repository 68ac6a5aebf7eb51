package engine

import (
	"testing"
	"time"

	"github.com/fixlane/repair-service/internal/domain"
)

var testNow = time.Date(2025, 3, 7, 10, 0, 0, 0, time.UTC)

func newTestEstimator() *Estimator {
	return NewEstimator(DefaultCatalog(), DefaultPolicy())
}

func baseRequest() domain.ServiceRequest {
	return domain.ServiceRequest{
		CustomerName: "Alina Petrova",
		Phone:        "+7 701 555 1234",
		DeviceType:   domain.DeviceSmartphone,
		Brand:        "Samsung",
		Model:        "S22",
		IssueType:    domain.IssueBattery,
		IssueDetails: "drains within two hours",
		Urgency:      domain.UrgencyStandard,
	}
}

func TestEstimateTotalBounds(t *testing.T) {
	est := newTestEstimator()
	catalog := DefaultCatalog()

	for _, device := range catalog.Devices {
		for _, issue := range catalog.Issues {
			for _, urgency := range catalog.Urgencies {
				for _, backlog := range []int{0, 3, 12} {
					req := baseRequest()
					req.DeviceType = device.ID
					req.IssueType = issue.ID
					req.Urgency = urgency.ID
					req.HasWarranty = true
					req.RepeatCustomer = true

					got := est.Estimate(req, backlog, testNow)
					p := got.Pricing
					if p.Total < 8000 {
						t.Fatalf("%s/%s/%s: total %d below floor", device.ID, issue.ID, urgency.ID, p.Total)
					}
					if p.MinTotal > p.Total || p.Total > p.MaxTotal {
						t.Fatalf("%s/%s/%s: bounds %d..%d do not bracket total %d",
							device.ID, issue.ID, urgency.ID, p.MinTotal, p.MaxTotal, p.Total)
					}
					for _, v := range []int64{p.DiagnosticFee, p.LaborFee, p.PartsReserve, p.UrgencyFee, p.Discount} {
						if v < 0 {
							t.Fatalf("%s/%s/%s: negative component in %+v", device.ID, issue.ID, urgency.ID, p)
						}
						if v%100 != 0 {
							t.Fatalf("%s/%s/%s: component %d not rounded to step", device.ID, issue.ID, urgency.ID, v)
						}
					}
				}
			}
		}
	}
}

func TestEstimateDiscountCapped(t *testing.T) {
	est := newTestEstimator()
	req := baseRequest()
	req.HasWarranty = true
	req.RepeatCustomer = true

	got := est.Estimate(req, 0, testNow)
	p := got.Pricing
	subtotal := p.DiagnosticFee + p.LaborFee + p.PartsReserve + p.UrgencyFee
	if float64(p.Discount) > 0.36*float64(subtotal) {
		t.Fatalf("discount %d exceeds cap for subtotal %d", p.Discount, subtotal)
	}
}

func TestQueueDelayMonotoneInBacklog(t *testing.T) {
	est := newTestEstimator()

	for _, urgency := range []domain.Urgency{domain.UrgencyStandard, domain.UrgencyPriority, domain.UrgencyExpress} {
		prev := -1
		for backlog := 0; backlog <= 30; backlog++ {
			req := baseRequest()
			req.Urgency = urgency
			got := est.Estimate(req, backlog, testNow)
			if got.QueueDelayHours < prev {
				t.Fatalf("%s: delay decreased from %d to %d at backlog %d",
					urgency, prev, got.QueueDelayHours, backlog)
			}
			prev = got.QueueDelayHours
		}
	}
}

func TestQueueDelayUrgencyOrdering(t *testing.T) {
	est := newTestEstimator()

	for backlog := 0; backlog <= 30; backlog++ {
		delays := map[domain.Urgency]int{}
		for _, urgency := range []domain.Urgency{domain.UrgencyStandard, domain.UrgencyPriority, domain.UrgencyExpress} {
			req := baseRequest()
			req.Urgency = urgency
			delays[urgency] = est.Estimate(req, backlog, testNow).QueueDelayHours
		}
		if delays[domain.UrgencyExpress] > delays[domain.UrgencyPriority] ||
			delays[domain.UrgencyPriority] > delays[domain.UrgencyStandard] {
			t.Fatalf("backlog %d: urgency ordering violated: %v", backlog, delays)
		}
		if delays[domain.UrgencyExpress] < 2 || delays[domain.UrgencyExpress] > 6 {
			t.Fatalf("backlog %d: express delay %d outside bounded window", backlog, delays[domain.UrgencyExpress])
		}
	}
}

func TestEstimateLaptopOverheatScenario(t *testing.T) {
	est := newTestEstimator()
	req := domain.ServiceRequest{
		CustomerName:   "Marat",
		Phone:          "+7 777 000 4242",
		DeviceType:     domain.DeviceLaptop,
		Brand:          "Dell",
		Model:          "XPS 15",
		IssueType:      domain.IssueOverheat,
		IssueDetails:   "fans at full speed, throttles under load",
		Urgency:        domain.UrgencyStandard,
		RepeatCustomer: true,
	}

	got := est.Estimate(req, 4, testNow)
	want := domain.PricingBreakdown{
		DiagnosticFee: 9000,
		LaborFee:      57800,
		PartsReserve:  36000,
		UrgencyFee:    0,
		Discount:      6600,
		Total:         96200,
		MinTotal:      86600,
		MaxTotal:      110600,
	}
	if got.Pricing != want {
		t.Fatalf("pricing mismatch:\n got %+v\nwant %+v", got.Pricing, want)
	}
	if got.RepairHours != 24 {
		t.Fatalf("expected 24 repair hours, got %d", got.RepairHours)
	}
	if got.QueueDelayHours != 19 {
		t.Fatalf("expected 19 queue delay hours, got %d", got.QueueDelayHours)
	}
	if got.LeadHours != 43 {
		t.Fatalf("expected 43 lead hours, got %d", got.LeadHours)
	}
	if !got.PromiseDate.Equal(testNow.Add(43 * time.Hour)) {
		t.Fatalf("promise date %v not createdAt+leadHours", got.PromiseDate)
	}
}

func TestEstimateDeterministic(t *testing.T) {
	est := newTestEstimator()
	req := baseRequest()

	first := est.Estimate(req, 5, testNow)
	second := est.Estimate(req, 5, testNow)
	if first.Pricing != second.Pricing || first.LeadHours != second.LeadHours {
		t.Fatalf("estimate not deterministic: %+v vs %+v", first, second)
	}
}

func TestEstimateUnknownIDsFallBackToFirstEntry(t *testing.T) {
	est := newTestEstimator()
	req := baseRequest()
	req.DeviceType = "drone"
	req.IssueType = "haunted"
	req.Urgency = "yesterday"

	fallback := baseRequest()
	fallback.DeviceType = domain.DeviceSmartphone
	fallback.IssueType = domain.IssueScreen
	fallback.Urgency = domain.UrgencyStandard

	if est.Estimate(req, 2, testNow).Pricing != est.Estimate(fallback, 2, testNow).Pricing {
		t.Fatalf("unknown catalog ids did not fall back to first entries")
	}
}

func TestEstimateBlankBrandSkipsUplift(t *testing.T) {
	est := newTestEstimator()
	blank := baseRequest()
	blank.Brand = "   "
	branded := baseRequest()

	if est.Estimate(blank, 0, testNow).Pricing.LaborFee >= est.Estimate(branded, 0, testNow).Pricing.LaborFee {
		t.Fatalf("expected branded labor fee above blank-brand labor fee")
	}
}
