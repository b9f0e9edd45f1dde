package exchange

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Repository interface {
	GetAllOverrides() ([]*RateOverride, error)
	GetOverridesByBase(base string) ([]*RateOverride, error)
	UpsertOverride(override *RateOverride) error
	DeleteOverride(base, target string) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) GetAllOverrides() ([]*RateOverride, error) {
	var overrides []*RateOverride
	err := r.db.
		Order("base_currency ASC").
		Order("target_currency ASC").
		Find(&overrides).Error
	return overrides, err
}

func (r *repository) GetOverridesByBase(base string) ([]*RateOverride, error) {
	var overrides []*RateOverride
	err := r.db.
		Where("base_currency = ?", base).
		Find(&overrides).Error
	return overrides, err
}

func (r *repository) UpsertOverride(override *RateOverride) error {
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "base_currency"}, {Name: "target_currency"}},
		DoUpdates: clause.AssignmentColumns([]string{"rate", "updated_at"}),
	}).Create(override).Error
}

func (r *repository) DeleteOverride(base, target string) error {
	return r.db.
		Where("base_currency = ? AND target_currency = ?", base, target).
		Delete(&RateOverride{}).Error
}
