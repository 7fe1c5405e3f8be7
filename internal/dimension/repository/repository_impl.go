package repository

import (
	"context"
	"errors"

	"github.com/opsfoundry/tickethouse/internal/dimension/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) GetUser(ctx context.Context, db *gorm.DB, id string) (*domain.User, error) {
	var user domain.User
	err := db.WithContext(ctx).Where("user_id = ?", id).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func (r *repo) InsertUser(ctx context.Context, db *gorm.DB, user *domain.User) error {
	return db.WithContext(ctx).Create(user).Error
}

func (r *repo) GetTechnician(ctx context.Context, db *gorm.DB, id string) (*domain.Technician, error) {
	var tech domain.Technician
	err := db.WithContext(ctx).Where("tech_id = ?", id).First(&tech).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &tech, nil
}

func (r *repo) InsertTechnician(ctx context.Context, db *gorm.DB, tech *domain.Technician) error {
	return db.WithContext(ctx).Create(tech).Error
}

func (r *repo) ListLocations(ctx context.Context, db *gorm.DB) ([]domain.Location, error) {
	var locations []domain.Location
	err := db.WithContext(ctx).Order("location_id").Find(&locations).Error
	return locations, err
}

func (r *repo) InsertLocation(ctx context.Context, db *gorm.DB, loc *domain.Location) error {
	return db.WithContext(ctx).Create(loc).Error
}

func (r *repo) ListStates(ctx context.Context, db *gorm.DB) ([]domain.State, error) {
	var states []domain.State
	err := db.WithContext(ctx).Order("state_id").Find(&states).Error
	return states, err
}

func (r *repo) InsertState(ctx context.Context, db *gorm.DB, state *domain.State) error {
	return db.WithContext(ctx).Create(state).Error
}
