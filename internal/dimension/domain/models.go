package domain

import "time"

// User is a natural-key dimension row. The key is the corporate user id
// embedded in the export's "Name (id)" actor strings.
type User struct {
	UserID    string    `gorm:"column:user_id;primaryKey" json:"user_id"`
	UserName  string    `gorm:"column:user_name;not null" json:"user_name"`
	CreatedAt time.Time `gorm:"column:created_at;not null" json:"created_at"`
}

func (User) TableName() string { return "dim_users" }

type Technician struct {
	TechID    string    `gorm:"column:tech_id;primaryKey" json:"tech_id"`
	TechName  string    `gorm:"column:tech_name;not null" json:"tech_name"`
	CreatedAt time.Time `gorm:"column:created_at;not null" json:"created_at"`
}

func (Technician) TableName() string { return "dim_technicians" }

// Location is a surrogate-key dimension; ids are allocated
// monotonically on first observation of a name.
type Location struct {
	LocationID   int64     `gorm:"column:location_id;primaryKey" json:"location_id"`
	LocationName string    `gorm:"column:location_name;uniqueIndex;not null" json:"location_name"`
	CreatedAt    time.Time `gorm:"column:created_at;not null" json:"created_at"`
}

func (Location) TableName() string { return "dim_locations" }

type State struct {
	StateID   int64     `gorm:"column:state_id;primaryKey" json:"state_id"`
	StateName string    `gorm:"column:state_name;uniqueIndex;not null" json:"state_name"`
	CreatedAt time.Time `gorm:"column:created_at;not null" json:"created_at"`
}

func (State) TableName() string { return "dim_states" }
