package plan

import "gorm.io/gorm"

type Repository interface {
	GetAllPlans() ([]*InvestmentPlan, error)
	GetPlanByID(id uint64) (*InvestmentPlan, error)
	CreatePlan(plan *InvestmentPlan) error
	UpdatePlan(plan *InvestmentPlan) error
	DeletePlan(id uint64) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) GetAllPlans() ([]*InvestmentPlan, error) {
	var plans []*InvestmentPlan
	err := r.db.
		Order("created_at ASC").
		Find(&plans).Error
	return plans, err
}

func (r *repository) GetPlanByID(id uint64) (*InvestmentPlan, error) {
	var plan InvestmentPlan
	err := r.db.Where("id = ?", id).First(&plan).Error
	return &plan, err
}

func (r *repository) CreatePlan(plan *InvestmentPlan) error {
	return r.db.Create(plan).Error
}

func (r *repository) UpdatePlan(plan *InvestmentPlan) error {
	return r.db.Save(plan).Error
}

func (r *repository) DeletePlan(id uint64) error {
	return r.db.Delete(&InvestmentPlan{}, id).Error
}
