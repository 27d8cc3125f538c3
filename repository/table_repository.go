package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/yeremiapane/restaurant-booking/models"
	"gorm.io/gorm"
)

type TableRepo struct {
	db *gorm.DB
}

func NewTableRepo(db *gorm.DB) *TableRepo {
	return &TableRepo{db: db}
}

func (r *TableRepo) Create(ctx context.Context, table *models.Table) error {
	if table.Seats < 2 || table.Seats > 10 {
		return fmt.Errorf("seats must be between 2 and 10, got %d", table.Seats)
	}
	if table.Status == "" {
		table.Status = "available"
	}
	if err := r.db.WithContext(ctx).Create(table).Error; err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "unique") {
			return ErrTableNumberTaken
		}
		return err
	}
	return nil
}

// List returns all tables, or only those in the given status.
func (r *TableRepo) List(ctx context.Context, status string) ([]models.Table, error) {
	q := r.db.WithContext(ctx).Model(&models.Table{})
	if status != "" {
		q = q.Where("status = ?", status)
	}
	var tables []models.Table
	err := q.Order("number ASC").Find(&tables).Error
	return tables, err
}

func (r *TableRepo) Get(ctx context.Context, id uint) (*models.Table, error) {
	var table models.Table
	err := r.db.WithContext(ctx).First(&table, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &table, nil
}

func (r *TableRepo) UpdateStatus(ctx context.Context, id uint, status string) (*models.Table, error) {
	table, err := r.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	table.Status = status
	if err := r.db.WithContext(ctx).Save(table).Error; err != nil {
		return nil, err
	}
	return table, nil
}

func (r *TableRepo) Delete(ctx context.Context, id uint) (int64, error) {
	res := r.db.WithContext(ctx).Delete(&models.Table{}, id)
	return res.RowsAffected, res.Error
}
