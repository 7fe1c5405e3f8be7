package domain

import (
	"context"

	"gorm.io/gorm"
)

type Repository interface {
	GetUser(ctx context.Context, db *gorm.DB, id string) (*User, error)
	InsertUser(ctx context.Context, db *gorm.DB, user *User) error

	GetTechnician(ctx context.Context, db *gorm.DB, id string) (*Technician, error)
	InsertTechnician(ctx context.Context, db *gorm.DB, tech *Technician) error

	ListLocations(ctx context.Context, db *gorm.DB) ([]Location, error)
	InsertLocation(ctx context.Context, db *gorm.DB, loc *Location) error

	ListStates(ctx context.Context, db *gorm.DB) ([]State, error)
	InsertState(ctx context.Context, db *gorm.DB, state *State) error
}
