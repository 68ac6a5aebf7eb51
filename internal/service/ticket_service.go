package service

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/fixlane/repair-service/internal/domain"
	"github.com/fixlane/repair-service/internal/engine"
	"github.com/fixlane/repair-service/internal/events"
	"github.com/fixlane/repair-service/internal/persistence"
	"github.com/fixlane/repair-service/internal/repository"
	apperrors "github.com/fixlane/repair-service/pkg/errorutil"
)

const (
	openCountCacheKey = "repair:open_count"
	summaryCacheKey   = "repair:summary"

	// createAttempts bounds the retry loop for random ticket-number
	// collisions; the serial space makes more than one retry rare.
	createAttempts = 3

	defaultListLimit = 50
)

// TicketService coordinates intake, tracking and staff workflows around the
// repair engine.
type TicketService struct {
	tickets    repository.TicketRepository
	estimator  *engine.Estimator
	tracker    *engine.Tracker
	dispatcher events.Dispatcher
	cache      *persistence.Redis
	logger     *zap.Logger
	summaryTTL time.Duration
	openTTL    time.Duration
}

// TicketDependencies bundles collaborators for the ticket service.
type TicketDependencies struct {
	TicketRepo   repository.TicketRepository
	Estimator    *engine.Estimator
	Tracker      *engine.Tracker
	Dispatcher   events.Dispatcher
	Cache        *persistence.Redis
	Logger       *zap.Logger
	SummaryTTL   time.Duration
	OpenCountTTL time.Duration
}

// TicketWithStatus pairs a stored ticket with its live tracking snapshot.
type TicketWithStatus struct {
	Ticket domain.Ticket
	Status domain.TrackingSnapshot
}

// NewTicketService constructs the service.
func NewTicketService(deps TicketDependencies) *TicketService {
	return &TicketService{
		tickets:    deps.TicketRepo,
		estimator:  deps.Estimator,
		tracker:    deps.Tracker,
		dispatcher: deps.Dispatcher,
		cache:      deps.Cache,
		logger:     deps.Logger,
		summaryTTL: deps.SummaryTTL,
		openTTL:    deps.OpenCountTTL,
	}
}

// Catalog exposes the price book for the public catalog endpoint.
func (s *TicketService) Catalog() engine.Catalog {
	return s.estimator.Catalog()
}

// QuoteEstimate prices a request without creating a ticket.
func (s *TicketService) QuoteEstimate(ctx context.Context, input domain.ServiceRequest) (domain.RepairEstimate, error) {
	request, err := normalizeRequest(input)
	if err != nil {
		return domain.RepairEstimate{}, err
	}
	open, err := s.countOpenTickets(ctx)
	if err != nil {
		return domain.RepairEstimate{}, err
	}
	return s.estimator.Estimate(request, open, time.Now()), nil
}

// CreateTicket validates the intake request and persists a fully assembled
// ticket. Random ticket-number collisions are resolved with a short retry
// loop against the unique index.
func (s *TicketService) CreateTicket(ctx context.Context, input domain.ServiceRequest) (*domain.Ticket, error) {
	request, err := normalizeRequest(input)
	if err != nil {
		return nil, err
	}

	open, err := s.countOpenTickets(ctx)
	if err != nil {
		return nil, err
	}

	var ticket domain.Ticket
	for attempt := 0; attempt < createAttempts; attempt++ {
		ticket, err = s.estimator.NewTicket(request, open, time.Now())
		if err != nil {
			return nil, err
		}
		err = s.tickets.Create(ctx, &ticket)
		if err == nil {
			break
		}
		if !isUniqueViolation(err) {
			return nil, err
		}
	}
	if err != nil {
		return nil, apperrors.NewConflict("could not allocate a ticket number", nil)
	}

	s.invalidateCaches(ctx)
	s.publishEvent(ctx, events.Event{
		Type:     events.EventTicketCreated,
		TicketID: ticket.ID,
		Actor:    events.Actor{Type: domain.SubjectTypeStaff},
		Payload: events.TicketCreatedPayload{
			TicketNumber: ticket.TicketNumber,
			DeviceType:   ticket.Request.DeviceType,
			IssueType:    ticket.Request.IssueType,
			Urgency:      ticket.Request.Urgency,
			Total:        ticket.Estimate.Pricing.Total,
			PromiseDate:  ticket.Estimate.PromiseDate,
		},
	})
	return &ticket, nil
}

// TrackTicket is the customer self-service lookup: both the ticket number and
// access code must match after normalization.
func (s *TicketService) TrackTicket(ctx context.Context, ticketNumber, accessCode string) (*domain.Ticket, domain.TrackingSnapshot, error) {
	ticket, err := s.tickets.GetByTicketNumber(ctx, engine.SanitizeTicketNumber(ticketNumber))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.TrackingSnapshot{}, apperrors.NewNotFound("ticket", nil)
		}
		return nil, domain.TrackingSnapshot{}, err
	}
	if !engine.MatchTicket(*ticket, ticketNumber, accessCode) {
		return nil, domain.TrackingSnapshot{}, apperrors.NewNotFound("ticket", nil)
	}
	return ticket, s.tracker.Snapshot(*ticket, time.Now()), nil
}

// ListTickets returns tickets with live status for the staff dashboard,
// optionally filtered by resolved stage and a free-text search term. The
// stage is engine-derived, so when a stage filter applies the repository
// query runs unpaginated and the page is cut after filtering; otherwise
// pagination stays in SQL.
func (s *TicketService) ListTickets(ctx context.Context, search, stage string, limit, offset int) ([]TicketWithStatus, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	if offset < 0 {
		offset = 0
	}
	stageFiltered := stage != "" && stage != "all"

	var searchTerm *string
	if strings.TrimSpace(search) != "" {
		searchTerm = &search
	}
	filter := repository.TicketFilter{SearchTerm: searchTerm, Limit: limit, Offset: offset}
	if stageFiltered {
		filter.Limit = 0
		filter.Offset = 0
	}
	tickets, err := s.tickets.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	result := make([]TicketWithStatus, 0, len(tickets))
	for _, ticket := range tickets {
		snapshot := s.tracker.Snapshot(ticket, now)
		if stageFiltered && string(snapshot.Stage) != stage {
			continue
		}
		result = append(result, TicketWithStatus{Ticket: ticket, Status: snapshot})
	}
	if stageFiltered {
		if offset >= len(result) {
			return []TicketWithStatus{}, nil
		}
		result = result[offset:]
		if len(result) > limit {
			result = result[:limit]
		}
	}
	return result, nil
}

// GetTicket fetches a single ticket with its live status.
func (s *TicketService) GetTicket(ctx context.Context, id string) (*TicketWithStatus, error) {
	ticket, err := s.tickets.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("ticket", nil)
		}
		return nil, err
	}
	return &TicketWithStatus{Ticket: *ticket, Status: s.tracker.Snapshot(*ticket, time.Now())}, nil
}

// UpdateStage sets the staff override stage. Once set, time inference stops
// and the override is authoritative.
func (s *TicketService) UpdateStage(ctx context.Context, staff *domain.StaffMember, id string, stage domain.Stage) (*TicketWithStatus, error) {
	if staff == nil {
		return nil, apperrors.NewUnauthorized("staff required")
	}
	if !stage.Valid() {
		return nil, apperrors.NewValidationError("invalid stage", map[string]any{"stage": stage})
	}

	ticket, err := s.tickets.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("ticket", nil)
		}
		return nil, err
	}

	oldStage := ticket.CurrentStage
	if err := s.tickets.UpdateStage(ctx, id, stage); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("ticket", nil)
		}
		return nil, err
	}
	ticket.CurrentStage = &stage

	s.invalidateCaches(ctx)
	s.publishEvent(ctx, events.Event{
		Type:     events.EventTicketStageUpdated,
		TicketID: ticket.ID,
		Actor:    staffActor(staff.ID),
		Payload: events.TicketStageUpdatedPayload{
			TicketNumber: ticket.TicketNumber,
			OldStage:     oldStage,
			NewStage:     stage,
		},
	})
	return &TicketWithStatus{Ticket: *ticket, Status: s.tracker.Snapshot(*ticket, time.Now())}, nil
}

// Summary folds the whole portfolio into dashboard counts, cached briefly in
// Redis to keep the admin view cheap.
func (s *TicketService) Summary(ctx context.Context) (domain.TicketSummary, error) {
	if cached, ok := s.cachedSummary(ctx); ok {
		return cached, nil
	}

	tickets, err := s.tickets.ListAll(ctx)
	if err != nil {
		return domain.TicketSummary{}, err
	}
	summary := s.tracker.Summarize(tickets, time.Now())
	s.storeSummary(ctx, summary)
	return summary, nil
}

// countOpenTickets snapshots the non-ready backlog for the pricing heuristic.
// The figure is cached with a short TTL; staleness only skews the queue-delay
// heuristic, never stored data.
func (s *TicketService) countOpenTickets(ctx context.Context) (int, error) {
	if s.cache != nil && s.cache.Client != nil {
		if count, err := s.cache.Client.Get(ctx, openCountCacheKey).Int(); err == nil {
			return count, nil
		} else if err != redis.Nil {
			s.logger.Debug("open count cache read failed", zap.Error(err))
		}
	}

	tickets, err := s.tickets.ListAll(ctx)
	if err != nil {
		return 0, err
	}
	count := s.tracker.CountOpen(tickets, time.Now())

	if s.cache != nil && s.cache.Client != nil {
		if err := s.cache.Client.Set(ctx, openCountCacheKey, count, s.openTTL).Err(); err != nil {
			s.logger.Debug("open count cache write failed", zap.Error(err))
		}
	}
	return count, nil
}

func (s *TicketService) cachedSummary(ctx context.Context) (domain.TicketSummary, bool) {
	if s.cache == nil || s.cache.Client == nil {
		return domain.TicketSummary{}, false
	}
	raw, err := s.cache.Client.Get(ctx, summaryCacheKey).Bytes()
	if err != nil {
		if err != redis.Nil {
			s.logger.Debug("summary cache read failed", zap.Error(err))
		}
		return domain.TicketSummary{}, false
	}
	var summary domain.TicketSummary
	if err := json.Unmarshal(raw, &summary); err != nil {
		return domain.TicketSummary{}, false
	}
	return summary, true
}

func (s *TicketService) storeSummary(ctx context.Context, summary domain.TicketSummary) {
	if s.cache == nil || s.cache.Client == nil {
		return
	}
	raw, err := json.Marshal(summary)
	if err != nil {
		return
	}
	if err := s.cache.Client.Set(ctx, summaryCacheKey, raw, s.summaryTTL).Err(); err != nil {
		s.logger.Debug("summary cache write failed", zap.Error(err))
	}
}

func (s *TicketService) invalidateCaches(ctx context.Context) {
	if s.cache == nil || s.cache.Client == nil {
		return
	}
	if err := s.cache.Client.Del(ctx, openCountCacheKey, summaryCacheKey).Err(); err != nil {
		s.logger.Debug("cache invalidation failed", zap.Error(err))
	}
}

func (s *TicketService) publishEvent(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	if err := s.dispatcher.Publish(ctx, event); err != nil {
		s.logger.Debug("event handlers failed",
			zap.String("event_type", string(event.Type)), zap.Error(err))
	}
}

func staffActor(staffID string) events.Actor {
	return events.Actor{
		Type:    domain.SubjectTypeStaff,
		StaffID: &staffID,
	}
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

// normalizeRequest trims the free-text fields and rejects payloads the
// catalog cannot price. Catalog id validation happens here so the engine's
// fallback rule stays a guard, not a surface.
func normalizeRequest(input domain.ServiceRequest) (domain.ServiceRequest, error) {
	request := input
	request.CustomerName = strings.TrimSpace(input.CustomerName)
	request.Phone = strings.TrimSpace(input.Phone)
	request.Email = strings.TrimSpace(input.Email)
	request.Brand = strings.TrimSpace(input.Brand)
	request.Model = strings.TrimSpace(input.Model)
	request.IssueDetails = strings.TrimSpace(input.IssueDetails)

	missing := map[string]any{}
	if request.CustomerName == "" {
		missing["customerName"] = "required"
	}
	if request.Phone == "" {
		missing["phone"] = "required"
	}
	if request.Model == "" {
		missing["model"] = "required"
	}
	if request.IssueDetails == "" {
		missing["issueDetails"] = "required"
	}
	if len(missing) > 0 {
		return domain.ServiceRequest{}, apperrors.NewValidationError("missing required fields", missing)
	}

	if !knownDeviceType(request.DeviceType) {
		return domain.ServiceRequest{}, apperrors.NewValidationError("invalid deviceType", map[string]any{"deviceType": request.DeviceType})
	}
	if !knownIssueType(request.IssueType) {
		return domain.ServiceRequest{}, apperrors.NewValidationError("invalid issueType", map[string]any{"issueType": request.IssueType})
	}
	if !knownUrgency(request.Urgency) {
		return domain.ServiceRequest{}, apperrors.NewValidationError("invalid urgency", map[string]any{"urgency": request.Urgency})
	}
	return request, nil
}

func knownDeviceType(id domain.DeviceType) bool {
	switch id {
	case domain.DeviceSmartphone, domain.DeviceLaptop, domain.DeviceTablet,
		domain.DeviceConsole, domain.DeviceTV, domain.DeviceAudio:
		return true
	}
	return false
}

func knownIssueType(id domain.IssueType) bool {
	switch id {
	case domain.IssueScreen, domain.IssueBattery, domain.IssueCharging,
		domain.IssueWater, domain.IssueOverheat, domain.IssueSoftware, domain.IssueMotherboard:
		return true
	}
	return false
}

func knownUrgency(id domain.Urgency) bool {
	switch id {
	case domain.UrgencyStandard, domain.UrgencyPriority, domain.UrgencyExpress:
		return true
	}
	return false
}
