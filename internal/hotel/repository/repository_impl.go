package repository

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/fodetoorg/yoyo/internal/hotel/domain"
	"github.com/fodetoorg/yoyo/pkg/db/option"
	"github.com/fodetoorg/yoyo/pkg/db/pagination"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, hotel *domain.Hotel) error {
	return db.WithContext(ctx).Create(hotel).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.Hotel, error) {
	var hotel domain.Hotel
	err := db.WithContext(ctx).
		Where("id = ?", id).
		Take(&hotel).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &hotel, nil
}

func (r *repo) FindBySlug(ctx context.Context, db *gorm.DB, slug string) (*domain.Hotel, error) {
	var hotel domain.Hotel
	err := db.WithContext(ctx).
		Where("slug = ?", slug).
		Take(&hotel).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &hotel, nil
}

func (r *repo) Search(ctx context.Context, db *gorm.DB, filter domain.SearchFilter, page pagination.Pagination) ([]*domain.Hotel, error) {
	var hotels []*domain.Hotel
	stmt := db.WithContext(ctx).Model(&domain.Hotel{})
	if filter.CityID != 0 {
		stmt = stmt.Where("city_id = ?", filter.CityID)
	}
	if filter.Status != "" {
		stmt = stmt.Where("status = ?", filter.Status)
	}
	if filter.Query != "" {
		stmt = stmt.Where("name LIKE ?", "%"+filter.Query+"%")
	}
	stmt = option.ApplyPagination(page).Apply(stmt)
	err := stmt.
		Order("created_at desc, id desc").
		Find(&hotels).Error
	if err != nil {
		return nil, err
	}
	return hotels, nil
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, hotel *domain.Hotel) error {
	return db.WithContext(ctx).Save(hotel).Error
}

type roomRepo struct{}

func ProvideRoom() domain.RoomRepository {
	return &roomRepo{}
}

func (r *roomRepo) Insert(ctx context.Context, db *gorm.DB, room *domain.Room) error {
	return db.WithContext(ctx).Create(room).Error
}

func (r *roomRepo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.Room, error) {
	var room domain.Room
	err := db.WithContext(ctx).
		Where("id = ?", id).
		Take(&room).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &room, nil
}

func (r *roomRepo) ListByHotel(ctx context.Context, db *gorm.DB, hotelID snowflake.ID) ([]*domain.Room, error) {
	var rooms []*domain.Room
	err := db.WithContext(ctx).
		Where("hotel_id = ?", hotelID).
		Order("created_at asc, id asc").
		Find(&rooms).Error
	if err != nil {
		return nil, err
	}
	return rooms, nil
}

func (r *roomRepo) Update(ctx context.Context, db *gorm.DB, room *domain.Room) error {
	return db.WithContext(ctx).Save(room).Error
}
