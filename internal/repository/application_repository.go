package repository

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"jobtracker/internal/model"
)

// ApplicationFilter narrows list/count queries. The zero value matches
// everything. OwnerID keeps ownership scoping explicit at every call site.
type ApplicationFilter struct {
	OwnerID     *uint
	Status      model.ApplicationStatus
	CompanyName string
}

type ApplicationRepository struct {
	db *gorm.DB
}

func NewApplicationRepository(db *gorm.DB) *ApplicationRepository {
	return &ApplicationRepository{db: db}
}

func (r *ApplicationRepository) Create(app *model.Application) error {
	if err := r.db.Create(app).Error; err != nil {
		return fmt.Errorf("create application failed: %w", err)
	}
	return nil
}

func (r *ApplicationRepository) GetByID(id uint, ownerID *uint) (*model.Application, error) {
	query := r.db.Where("id = ?", id)
	if ownerID != nil {
		query = query.Where("user_id = ?", *ownerID)
	}

	var app model.Application
	if err := query.First(&app).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("query application by id failed: %w", err)
	}
	return &app, nil
}

func (r *ApplicationRepository) List(filter ApplicationFilter, offset, limit int) ([]model.Application, error) {
	var apps []model.Application
	query := r.applyFilter(r.db, filter).Order("id ASC").Offset(offset).Limit(limit)
	if err := query.Find(&apps).Error; err != nil {
		return nil, fmt.Errorf("list applications failed: %w", err)
	}
	return apps, nil
}

func (r *ApplicationRepository) Save(app *model.Application) error {
	if err := r.db.Save(app).Error; err != nil {
		return fmt.Errorf("save application failed: %w", err)
	}
	return nil
}

// Delete removes the record permanently. It reports false when no record
// matches the id (and owner, when given).
func (r *ApplicationRepository) Delete(id uint, ownerID *uint) (bool, error) {
	app, err := r.GetByID(id, ownerID)
	if err != nil {
		return false, err
	}
	if app == nil {
		return false, nil
	}
	if err := r.db.Delete(app).Error; err != nil {
		return false, fmt.Errorf("delete application failed: %w", err)
	}
	return true, nil
}

func (r *ApplicationRepository) Count(filter ApplicationFilter) (int64, error) {
	var count int64
	if err := r.applyFilter(r.db.Model(&model.Application{}), filter).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("count applications failed: %w", err)
	}
	return count, nil
}

func (r *ApplicationRepository) applyFilter(query *gorm.DB, filter ApplicationFilter) *gorm.DB {
	if filter.OwnerID != nil {
		query = query.Where("user_id = ?", *filter.OwnerID)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.CompanyName != "" {
		// LOWER on both sides keeps the substring match case-insensitive
		// regardless of the column collation.
		pattern := "%" + strings.ToLower(filter.CompanyName) + "%"
		query = query.Where("LOWER(company_name) LIKE ?", pattern)
	}
	return query
}
