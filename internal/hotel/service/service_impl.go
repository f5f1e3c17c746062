package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/fodetoorg/yoyo/internal/hotel/domain"
	"github.com/fodetoorg/yoyo/pkg/db"
	"github.com/fodetoorg/yoyo/pkg/db/pagination"
	"github.com/gosimple/slug"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB       *gorm.DB
	Log      *zap.Logger
	GenID    *snowflake.Node
	Repo     domain.Repository
	RoomRepo domain.RoomRepository
}

type Service struct {
	db       *gorm.DB
	log      *zap.Logger
	genID    *snowflake.Node
	repo     domain.Repository
	roomRepo domain.RoomRepository
}

func New(p Params) *Service {
	return &Service{
		db:       p.DB,
		log:      p.Log.Named("hotel.service"),
		genID:    p.GenID,
		repo:     p.Repo,
		roomRepo: p.RoomRepo,
	}
}

func (s *Service) CreateHotel(ctx context.Context, req domain.CreateHotelRequest) (*domain.Hotel, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, domain.ErrInvalidName
	}

	cityID, err := snowflake.ParseString(req.CityID)
	if err != nil || cityID == 0 {
		return nil, domain.ErrInvalidCity
	}

	now := time.Now().UTC()
	entity := &domain.Hotel{
		ID:          s.genID.Generate(),
		CityID:      cityID,
		Name:        name,
		Slug:        slug.Make(name),
		Description: req.Description,
		Address:     req.Address,
		StarRating:  req.StarRating,
		Status:      domain.HotelActive,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.Insert(ctx, s.db, entity); err != nil {
		if db.IsDuplicateKeyErr(err) {
			return nil, domain.ErrSlugTaken
		}
		return nil, err
	}

	s.log.Info("hotel created",
		zap.String("hotel_id", entity.ID.String()),
		zap.String("slug", entity.Slug),
	)

	return entity, nil
}

func (s *Service) GetHotel(ctx context.Context, id string) (*domain.Hotel, error) {
	hotelID, err := snowflake.ParseString(id)
	if err != nil {
		return nil, domain.ErrHotelNotFound
	}

	hotel, err := s.repo.FindByID(ctx, s.db, hotelID)
	if err != nil {
		return nil, err
	}
	if hotel == nil {
		return nil, domain.ErrHotelNotFound
	}

	return hotel, nil
}

func (s *Service) UpdateHotel(ctx context.Context, id string, req domain.UpdateHotelRequest) (*domain.Hotel, error) {
	hotel, err := s.GetHotel(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, domain.ErrInvalidName
		}
		hotel.Name = name
		hotel.Slug = slug.Make(name)
	}
	if req.Description != nil {
		hotel.Description = *req.Description
	}
	if req.Address != nil {
		hotel.Address = *req.Address
	}
	if req.StarRating != nil {
		hotel.StarRating = *req.StarRating
	}
	if req.Status != nil {
		if *req.Status != domain.HotelActive && *req.Status != domain.HotelInactive {
			return nil, domain.ErrInvalidName
		}
		hotel.Status = *req.Status
	}
	hotel.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, s.db, hotel); err != nil {
		if db.IsDuplicateKeyErr(err) {
			return nil, domain.ErrSlugTaken
		}
		return nil, err
	}

	return hotel, nil
}

func (s *Service) SearchHotels(ctx context.Context, req domain.SearchRequest) (*domain.SearchResponse, error) {
	filter := domain.SearchFilter{Query: strings.TrimSpace(req.Query)}
	if req.CityID != "" {
		cityID, err := snowflake.ParseString(req.CityID)
		if err != nil {
			return nil, domain.ErrInvalidCity
		}
		filter.CityID = cityID
	}
	if req.Status != "" {
		filter.Status = domain.HotelStatus(req.Status)
	}

	size := req.PageSize
	if size <= 0 {
		size = 20
	}

	hotels, err := s.repo.Search(ctx, s.db, filter, req.Pagination)
	if err != nil {
		return nil, err
	}

	pageInfo, hotels := pagination.BuildCursorPageInfo(hotels, size, func(h *domain.Hotel) string {
		token, _ := pagination.EncodeCursor(pagination.Cursor{
			ID:        h.ID.String(),
			CreatedAt: h.CreatedAt.UTC().Format(time.RFC3339Nano),
		})
		return token
	})

	return &domain.SearchResponse{Hotels: hotels, PageInfo: pageInfo}, nil
}

func (s *Service) CreateRoom(ctx context.Context, hotelID string, req domain.CreateRoomRequest) (*domain.Room, error) {
	hotel, err := s.GetHotel(ctx, hotelID)
	if err != nil {
		return nil, err
	}
	if hotel.Status != domain.HotelActive {
		return nil, domain.ErrHotelInactive
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, domain.ErrInvalidName
	}
	if req.BasePriceCents <= 0 {
		return nil, domain.ErrInvalidBasePrice
	}
	if req.Capacity <= 0 {
		return nil, domain.ErrInvalidCapacity
	}

	roomTypeID, err := snowflake.ParseString(req.RoomTypeID)
	if err != nil || roomTypeID == 0 {
		return nil, domain.ErrRoomNotFound
	}

	currency := strings.ToUpper(strings.TrimSpace(req.Currency))
	if currency == "" {
		currency = "INR"
	}

	now := time.Now().UTC()
	entity := &domain.Room{
		ID:             s.genID.Generate(),
		HotelID:        hotel.ID,
		RoomTypeID:     roomTypeID,
		Name:           name,
		Capacity:       req.Capacity,
		BasePriceCents: req.BasePriceCents,
		Currency:       currency,
		Active:         true,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := s.roomRepo.Insert(ctx, s.db, entity); err != nil {
		return nil, err
	}

	return entity, nil
}

func (s *Service) GetRoom(ctx context.Context, id string) (*domain.Room, error) {
	roomID, err := snowflake.ParseString(id)
	if err != nil {
		return nil, domain.ErrRoomNotFound
	}

	room, err := s.roomRepo.FindByID(ctx, s.db, roomID)
	if err != nil {
		return nil, err
	}
	if room == nil {
		return nil, domain.ErrRoomNotFound
	}

	return room, nil
}

func (s *Service) ListRooms(ctx context.Context, hotelID string) ([]*domain.Room, error) {
	hotel, err := s.GetHotel(ctx, hotelID)
	if err != nil {
		return nil, err
	}

	return s.roomRepo.ListByHotel(ctx, s.db, hotel.ID)
}

func (s *Service) UpdateRoom(ctx context.Context, id string, req domain.UpdateRoomRequest) (*domain.Room, error) {
	room, err := s.GetRoom(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, domain.ErrInvalidName
		}
		room.Name = name
	}
	if req.Capacity != nil {
		if *req.Capacity <= 0 {
			return nil, domain.ErrInvalidCapacity
		}
		room.Capacity = *req.Capacity
	}
	if req.BasePriceCents != nil {
		if *req.BasePriceCents <= 0 {
			return nil, domain.ErrInvalidBasePrice
		}
		room.BasePriceCents = *req.BasePriceCents
	}
	if req.Active != nil {
		room.Active = *req.Active
	}
	room.UpdatedAt = time.Now().UTC()

	if err := s.roomRepo.Update(ctx, s.db, room); err != nil {
		return nil, err
	}

	return room, nil
}

// RoomContext resolves the scope identifiers pricing rules match against.
func (s *Service) RoomContext(ctx context.Context, roomID snowflake.ID) (domain.RoomContext, *domain.Room, error) {
	room, err := s.roomRepo.FindByID(ctx, s.db, roomID)
	if err != nil {
		return domain.RoomContext{}, nil, err
	}
	if room == nil {
		return domain.RoomContext{}, nil, domain.ErrRoomNotFound
	}

	hotel, err := s.repo.FindByID(ctx, s.db, room.HotelID)
	if err != nil {
		return domain.RoomContext{}, nil, err
	}
	if hotel == nil {
		return domain.RoomContext{}, nil, domain.ErrHotelNotFound
	}

	return domain.RoomContext{
		CityID:     hotel.CityID,
		HotelID:    hotel.ID,
		RoomTypeID: room.RoomTypeID,
	}, room, nil
}
