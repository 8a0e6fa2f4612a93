package service

import (
	"context"
	"errors"

	"employee-directory/internal/model"
)

// Notifier receives committed employee changes.
type Notifier interface {
	Notify(ctx context.Context, event model.EmployeeEvent) error
}

// Notifiers fans an event out to every member and joins their errors.
type Notifiers []Notifier

func (ns Notifiers) Notify(ctx context.Context, event model.EmployeeEvent) error {
	var errs []error
	for _, n := range ns {
		if n == nil {
			continue
		}
		if err := n.Notify(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
