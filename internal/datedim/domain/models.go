package domain

import (
	"context"
	"time"

	"gorm.io/gorm"
)

// Date is one calendar day of the date dimension. The key is the
// YYYYMMDD integer encoding; every attribute is a pure function of the
// day and never changes once written.
type Date struct {
	DateID     int64  `gorm:"column:date_id;primaryKey" json:"date_id"`
	FullDate   string `gorm:"column:full_date;not null" json:"full_date"`
	Year       int    `gorm:"column:year;not null" json:"year"`
	Quarter    int    `gorm:"column:quarter;not null" json:"quarter"`
	Month      int    `gorm:"column:month;not null" json:"month"`
	MonthName  string `gorm:"column:month_name;not null" json:"month_name"`
	WeekOfYear int    `gorm:"column:week_of_year;not null" json:"week_of_year"`
	DayOfMonth int    `gorm:"column:day_of_month;not null" json:"day_of_month"`
	DayOfWeek  int    `gorm:"column:day_of_week;not null" json:"day_of_week"`
	DayName    string `gorm:"column:day_name;not null" json:"day_name"`
	IsWeekend  int    `gorm:"column:is_weekend;not null" json:"is_weekend"`
}

func (Date) TableName() string { return "dim_dates" }

// KeyFor encodes a calendar date as its YYYYMMDD identifier.
func KeyFor(t time.Time) int64 {
	return int64(t.Year())*10000 + int64(t.Month())*100 + int64(t.Day())
}

// AttributesFor derives the full dimension row for a calendar date.
// Day-of-week uses the Monday=0 convention.
func AttributesFor(t time.Time) Date {
	_, week := t.ISOWeek()
	dow := (int(t.Weekday()) + 6) % 7
	weekend := 0
	if dow >= 5 {
		weekend = 1
	}
	return Date{
		DateID:     KeyFor(t),
		FullDate:   t.Format("2006-01-02"),
		Year:       t.Year(),
		Quarter:    (int(t.Month())-1)/3 + 1,
		Month:      int(t.Month()),
		MonthName:  t.Month().String(),
		WeekOfYear: week,
		DayOfMonth: t.Day(),
		DayOfWeek:  dow,
		DayName:    t.Weekday().String(),
		IsWeekend:  weekend,
	}
}

// Generator ensures one dimension row exists per referenced calendar
// day before any fact row points at it.
type Generator interface {
	Ensure(ctx context.Context, t time.Time) (int64, error)
	Created() int
}

type Factory interface {
	ForTrx(tx *gorm.DB) Generator
}
