package engine

import "github.com/fixlane/repair-service/internal/domain"

// DeviceCategory holds per-device base rates for estimation.
type DeviceCategory struct {
	ID            domain.DeviceType
	Label         string
	DiagnosticFee int64
	LaborRate     int64
	BaseHours     float64
	PartsRisk     float64
}

// IssueCategory holds per-issue complexity and parts figures.
type IssueCategory struct {
	ID           domain.IssueType
	Label        string
	Complexity   float64
	ExtraHours   float64
	PartsReserve int64
}

// UrgencyPolicy holds per-lane price and time multipliers.
type UrgencyPolicy struct {
	ID              domain.Urgency
	Label           string
	PriceMultiplier float64
	TimeMultiplier  float64
}

// Catalog bundles the static lookup tables the engine prices against. It is
// immutable, injected configuration; tests may supply alternate tables.
type Catalog struct {
	Devices     []DeviceCategory
	Issues      []IssueCategory
	Urgencies   []UrgencyPolicy
	StageLabels map[domain.Stage]string
}

// Device resolves a device category, falling back to the first entry when the
// id is unknown. Ids are validated upstream by the transport layer.
func (c Catalog) Device(id domain.DeviceType) DeviceCategory {
	for _, item := range c.Devices {
		if item.ID == id {
			return item
		}
	}
	return c.Devices[0]
}

// Issue resolves an issue category with the same fallback rule as Device.
func (c Catalog) Issue(id domain.IssueType) IssueCategory {
	for _, item := range c.Issues {
		if item.ID == id {
			return item
		}
	}
	return c.Issues[0]
}

// Urgency resolves an urgency policy with the same fallback rule as Device.
func (c Catalog) Urgency(id domain.Urgency) UrgencyPolicy {
	for _, item := range c.Urgencies {
		if item.ID == id {
			return item
		}
	}
	return c.Urgencies[0]
}

// StageLabel returns the display label for a stage.
func (c Catalog) StageLabel(stage domain.Stage) string {
	return c.StageLabels[stage]
}

// DefaultCatalog returns the workshop's standard price book.
func DefaultCatalog() Catalog {
	return Catalog{
		Devices: []DeviceCategory{
			{ID: domain.DeviceSmartphone, Label: "Smartphones", DiagnosticFee: 6000, LaborRate: 14000, BaseHours: 8, PartsRisk: 1.1},
			{ID: domain.DeviceLaptop, Label: "Laptops", DiagnosticFee: 9000, LaborRate: 22000, BaseHours: 14, PartsRisk: 1.2},
			{ID: domain.DeviceTablet, Label: "Tablets", DiagnosticFee: 7500, LaborRate: 17000, BaseHours: 10, PartsRisk: 1.15},
			{ID: domain.DeviceConsole, Label: "Game consoles", DiagnosticFee: 9500, LaborRate: 24000, BaseHours: 16, PartsRisk: 1.25},
			{ID: domain.DeviceTV, Label: "Televisions", DiagnosticFee: 12000, LaborRate: 28000, BaseHours: 20, PartsRisk: 1.3},
			{ID: domain.DeviceAudio, Label: "Audio equipment", DiagnosticFee: 5000, LaborRate: 12000, BaseHours: 7, PartsRisk: 1.05},
		},
		Issues: []IssueCategory{
			{ID: domain.IssueScreen, Label: "Broken screen or no image", Complexity: 2.2, ExtraHours: 4, PartsReserve: 38000},
			{ID: domain.IssueBattery, Label: "Drains fast or does not hold charge", Complexity: 1.6, ExtraHours: 2, PartsReserve: 21000},
			{ID: domain.IssueCharging, Label: "Not charging or unstable power", Complexity: 2.1, ExtraHours: 3, PartsReserve: 24000},
			{ID: domain.IssueWater, Label: "Liquid damage", Complexity: 3.2, ExtraHours: 6, PartsReserve: 46000},
			{ID: domain.IssueOverheat, Label: "Overheating, noise or throttling", Complexity: 2.5, ExtraHours: 5, PartsReserve: 30000},
			{ID: domain.IssueSoftware, Label: "Software failure or boot loop", Complexity: 1.4, ExtraHours: 2, PartsReserve: 9000},
			{ID: domain.IssueMotherboard, Label: "Motherboard or component-level repair", Complexity: 3.6, ExtraHours: 9, PartsReserve: 62000},
		},
		Urgencies: []UrgencyPolicy{
			{ID: domain.UrgencyStandard, Label: "Standard", PriceMultiplier: 1, TimeMultiplier: 1},
			{ID: domain.UrgencyPriority, Label: "Priority", PriceMultiplier: 1.14, TimeMultiplier: 0.72},
			{ID: domain.UrgencyExpress, Label: "Express", PriceMultiplier: 1.25, TimeMultiplier: 0.55},
		},
		StageLabels: map[domain.Stage]string{
			domain.StageAccepted:    "Request accepted",
			domain.StageDiagnostics: "Diagnostics",
			domain.StageApproval:    "Estimate approval",
			domain.StageRepair:      "Repair",
			domain.StageQuality:     "Quality check",
			domain.StageReady:       "Ready for pickup",
		},
	}
}
