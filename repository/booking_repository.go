package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/yeremiapane/restaurant-booking/models"
	"gorm.io/gorm"
)

// BookingFilter narrows List results. Every field is optional; each present
// field adds exactly one predicate, combined with AND. Substring matches are
// done with escaped LIKE patterns, never with patterns taken from the query
// string verbatim.
type BookingFilter struct {
	Name     string // case-insensitive substring on customer_name
	Customer string // exact customer_name, used for the own-bookings list
	Phone    string // substring on phone
	Date     string // exact YYYY-MM-DD
	Pax      *int   // exact party size
	Status   string // exact status
}

type BookingRepo struct {
	db *gorm.DB
}

func NewBookingRepo(db *gorm.DB) *BookingRepo {
	return &BookingRepo{db: db}
}

// likePattern escapes LIKE metacharacters in user input and wraps it for a
// substring match.
func likePattern(s string) string {
	s = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
	return "%" + strings.ToLower(s) + "%"
}

// ValidDate reports whether s is a well-formed YYYY-MM-DD date.
func ValidDate(s string) bool {
	_, err := time.Parse("2006-01-02", s)
	return err == nil
}

func (r *BookingRepo) List(ctx context.Context, f BookingFilter) ([]models.Booking, error) {
	q := r.db.WithContext(ctx).Model(&models.Booking{})

	if f.Name != "" {
		q = q.Where("LOWER(customer_name) LIKE ? ESCAPE '\\'", likePattern(f.Name))
	}
	if f.Customer != "" {
		q = q.Where("customer_name = ?", f.Customer)
	}
	if f.Phone != "" {
		q = q.Where("phone LIKE ? ESCAPE '\\'", likePattern(f.Phone))
	}
	if f.Date != "" {
		if !ValidDate(f.Date) {
			return nil, fmt.Errorf("invalid date %q, want YYYY-MM-DD", f.Date)
		}
		q = q.Where("date = ?", f.Date)
	}
	if f.Pax != nil {
		q = q.Where("pax = ?", *f.Pax)
	}
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}

	var bookings []models.Booking
	err := q.Order("date ASC, time ASC").Find(&bookings).Error
	return bookings, err
}

func (r *BookingRepo) Create(ctx context.Context, booking *models.Booking) error {
	if booking.Pax < 1 {
		booking.Pax = 1
	}
	if booking.Status == "" {
		booking.Status = models.BookingConfirmed
	}
	return r.db.WithContext(ctx).Create(booking).Error
}

func (r *BookingRepo) Get(ctx context.Context, id uint) (*models.Booking, error) {
	var booking models.Booking
	err := r.db.WithContext(ctx).Preload("Table").First(&booking, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

// Update merges only the given fields into the booking; omitted fields keep
// their prior values.
func (r *BookingRepo) Update(ctx context.Context, id uint, fields map[string]interface{}) (*models.Booking, error) {
	if _, err := r.Get(ctx, id); err != nil {
		return nil, err
	}
	if len(fields) > 0 {
		err := r.db.WithContext(ctx).Model(&models.Booking{}).
			Where("id = ?", id).Updates(fields).Error
		if err != nil {
			return nil, err
		}
	}
	return r.Get(ctx, id)
}

// Delete removes a booking by id and reports how many rows went away.
// Deleting a missing id yields (0, nil), not an error.
func (r *BookingRepo) Delete(ctx context.Context, id uint) (int64, error) {
	res := r.db.WithContext(ctx).Delete(&models.Booking{}, id)
	return res.RowsAffected, res.Error
}
