package service

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/fodetoorg/yoyo/internal/clock"
	hoteldomain "github.com/fodetoorg/yoyo/internal/hotel/domain"
	"github.com/fodetoorg/yoyo/internal/observability/metrics"
	"github.com/fodetoorg/yoyo/internal/pricing/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB      *gorm.DB
	Log     *zap.Logger
	GenID   *snowflake.Node
	Clock   clock.Clock
	Repo    domain.Repository
	Hotels  hoteldomain.ContextLookup
	Metrics *metrics.Metrics `optional:"true"`
}

type Service struct {
	db      *gorm.DB
	log     *zap.Logger
	genID   *snowflake.Node
	clock   clock.Clock
	repo    domain.Repository
	hotels  hoteldomain.ContextLookup
	metrics *metrics.Metrics
}

func New(p Params) domain.Service {
	return &Service{
		db:      p.DB,
		log:     p.Log.Named("pricing.service"),
		genID:   p.GenID,
		clock:   p.Clock,
		repo:    p.Repo,
		hotels:  p.Hotels,
		metrics: p.Metrics,
	}
}

func (s *Service) CreateRule(ctx context.Context, req domain.CreateRuleRequest) (*domain.PriceAdjustmentRule, error) {
	if req.AdjustmentType != domain.Percentage && req.AdjustmentType != domain.Fixed {
		return nil, domain.ErrInvalidAdjustmentType
	}
	if req.AdjustmentType == domain.Percentage && req.AdjustmentValue <= -100 {
		return nil, domain.ErrInvalidAdjustmentValue
	}
	if req.EffectiveDate.IsZero() {
		return nil, domain.ErrInvalidWindow
	}
	if req.ExpiryDate != nil && !req.ExpiryDate.After(req.EffectiveDate) {
		return nil, domain.ErrInvalidWindow
	}

	cityIDs, err := parseScope(req.CityIDs)
	if err != nil {
		return nil, err
	}
	hotelIDs, err := parseScope(req.HotelIDs)
	if err != nil {
		return nil, err
	}
	roomTypeIDs, err := parseScope(req.RoomTypeIDs)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	entity := &domain.PriceAdjustmentRule{
		ID:              s.genID.Generate(),
		CityIDs:         cityIDs,
		HotelIDs:        hotelIDs,
		RoomTypeIDs:     roomTypeIDs,
		AdjustmentType:  req.AdjustmentType,
		AdjustmentValue: req.AdjustmentValue,
		EffectiveDate:   req.EffectiveDate.UTC(),
		ExpiryDate:      req.ExpiryDate,
		Reason:          req.Reason,
		Active:          true,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := s.repo.Insert(ctx, s.db, entity); err != nil {
		return nil, err
	}

	s.log.Info("adjustment rule created",
		zap.String("rule_id", entity.ID.String()),
		zap.String("adjustment_type", string(entity.AdjustmentType)),
		zap.Float64("adjustment_value", entity.AdjustmentValue),
	)

	return entity, nil
}

func (s *Service) GetRule(ctx context.Context, id string) (*domain.PriceAdjustmentRule, error) {
	ruleID, err := snowflake.ParseString(id)
	if err != nil {
		return nil, domain.ErrRuleNotFound
	}

	rule, err := s.repo.FindByID(ctx, s.db, ruleID)
	if err != nil {
		return nil, err
	}
	if rule == nil {
		return nil, domain.ErrRuleNotFound
	}

	return rule, nil
}

func (s *Service) ListRules(ctx context.Context) ([]domain.PriceAdjustmentRule, error) {
	return s.repo.List(ctx, s.db)
}

// UpdateRule mutates any field except the id. Rules are retired here, never
// deleted.
func (s *Service) UpdateRule(ctx context.Context, id string, req domain.UpdateRuleRequest) (*domain.PriceAdjustmentRule, error) {
	rule, err := s.GetRule(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.AdjustmentType != nil {
		if *req.AdjustmentType != domain.Percentage && *req.AdjustmentType != domain.Fixed {
			return nil, domain.ErrInvalidAdjustmentType
		}
		rule.AdjustmentType = *req.AdjustmentType
	}
	if req.AdjustmentValue != nil {
		rule.AdjustmentValue = *req.AdjustmentValue
	}
	if rule.AdjustmentType == domain.Percentage && rule.AdjustmentValue <= -100 {
		return nil, domain.ErrInvalidAdjustmentValue
	}
	if req.CityIDs != nil {
		ids, err := parseScope(*req.CityIDs)
		if err != nil {
			return nil, err
		}
		rule.CityIDs = ids
	}
	if req.HotelIDs != nil {
		ids, err := parseScope(*req.HotelIDs)
		if err != nil {
			return nil, err
		}
		rule.HotelIDs = ids
	}
	if req.RoomTypeIDs != nil {
		ids, err := parseScope(*req.RoomTypeIDs)
		if err != nil {
			return nil, err
		}
		rule.RoomTypeIDs = ids
	}
	if req.EffectiveDate != nil {
		rule.EffectiveDate = req.EffectiveDate.UTC()
	}
	if req.ExpiryDate != nil {
		rule.ExpiryDate = req.ExpiryDate
	}
	if rule.ExpiryDate != nil && !rule.ExpiryDate.After(rule.EffectiveDate) {
		return nil, domain.ErrInvalidWindow
	}
	if req.Reason != nil {
		rule.Reason = *req.Reason
	}
	if req.Active != nil {
		rule.Active = *req.Active
	}
	rule.UpdatedAt = s.clock.Now()

	if err := s.repo.Update(ctx, s.db, rule); err != nil {
		return nil, err
	}

	return rule, nil
}

func (s *Service) Quote(ctx context.Context, req domain.QuoteRequest) (*domain.QuoteResponse, error) {
	roomID, err := snowflake.ParseString(req.RoomID)
	if err != nil {
		return nil, hoteldomain.ErrRoomNotFound
	}

	asOf := s.clock.Now()
	if req.AsOf != nil {
		if req.AsOf.IsZero() {
			return nil, domain.ErrInvalidQuoteDate
		}
		asOf = req.AsOf.UTC()
	}

	roomCtx, room, err := s.hotels.RoomContext(ctx, roomID)
	if err != nil {
		return nil, err
	}

	rules, err := s.repo.ListActive(ctx, s.db)
	if err != nil {
		return nil, err
	}

	resolution, err := domain.Resolve(room.BasePriceCents, roomCtx, rules, asOf)
	if err != nil {
		return nil, err
	}

	if s.metrics != nil {
		s.metrics.RecordPriceQuote()
	}

	return &domain.QuoteResponse{
		RoomID:          room.ID,
		Currency:        room.Currency,
		BasePriceCents:  room.BasePriceCents,
		FinalPriceCents: resolution.FinalPriceCents,
		AppliedRules:    resolution.AppliedRules,
		AsOf:            asOf,
	}, nil
}

func parseScope(raw []string) (datatypes.JSONSlice[snowflake.ID], error) {
	if len(raw) == 0 {
		return datatypes.JSONSlice[snowflake.ID]{}, nil
	}
	ids := make([]snowflake.ID, 0, len(raw))
	for _, v := range raw {
		id, err := snowflake.ParseString(v)
		if err != nil || id == 0 {
			return nil, domain.ErrInvalidScope
		}
		ids = append(ids, id)
	}
	return datatypes.NewJSONSlice(ids), nil
}
