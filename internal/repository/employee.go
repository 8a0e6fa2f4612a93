package repository

import (
	"context"

	"employee-directory/internal/model"

	"gorm.io/gorm"
)

type EmployeeRepository struct {
	db *gorm.DB
}

func NewEmployeeRepository(db *gorm.DB) *EmployeeRepository {
	return &EmployeeRepository{db: db}
}

func (r *EmployeeRepository) List(ctx context.Context) ([]model.Employee, error) {
	employees := make([]model.Employee, 0)
	if err := r.db.WithContext(ctx).Order("created_at ASC").Find(&employees).Error; err != nil {
		return nil, err
	}
	return employees, nil
}

// Recent returns up to limit employees, newest first.
func (r *EmployeeRepository) Recent(ctx context.Context, limit int) ([]model.Employee, error) {
	employees := make([]model.Employee, 0, limit)
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Order("id DESC").
		Limit(limit).
		Find(&employees).Error
	if err != nil {
		return nil, err
	}
	return employees, nil
}

func (r *EmployeeRepository) GetByID(ctx context.Context, id string) (*model.Employee, error) {
	var employee model.Employee
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&employee).Error; err != nil {
		return nil, notFound(err)
	}
	return &employee, nil
}

func (r *EmployeeRepository) Create(ctx context.Context, employee *model.Employee) error {
	return r.db.WithContext(ctx).Create(employee).Error
}

// Save writes every column of an existing employee.
func (r *EmployeeRepository) Save(ctx context.Context, employee *model.Employee) error {
	return r.db.WithContext(ctx).Save(employee).Error
}

// Delete removes the employee and reports ErrNotFound when nothing matched.
func (r *EmployeeRepository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Employee{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
