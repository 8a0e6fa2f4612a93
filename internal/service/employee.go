package service

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"employee-directory/internal/domain"
	"employee-directory/internal/logging"
	"employee-directory/internal/model"
	"employee-directory/internal/repository"
)

const RecentLimit = 3

// notifyTimeout bounds a single change notification.
const notifyTimeout = 10 * time.Second

// eventQueueSize is how many change events may wait for the notifier before
// writers block.
const eventQueueSize = 256

type EmployeeService struct {
	repo     *repository.EmployeeRepository
	notifier Notifier
	log      logging.Logger

	mu     sync.RWMutex
	closed bool
	events chan model.EmployeeEvent
	done   chan struct{}
}

// NewEmployeeService wires the store and an optional change notifier
// (nil disables notifications). Events reach the notifier one at a time in
// commit order; call Close to flush them.
func NewEmployeeService(repo *repository.EmployeeRepository, notifier Notifier, log logging.Logger) *EmployeeService {
	s := &EmployeeService{repo: repo, notifier: notifier, log: log, done: make(chan struct{})}
	if notifier == nil {
		close(s.done)
		return s
	}

	s.events = make(chan model.EmployeeEvent, eventQueueSize)
	go s.drain()
	return s
}

// Close stops accepting events and waits until the queued ones have been
// delivered or ctx is done.
func (s *EmployeeService) Close(ctx context.Context) error {
	s.mu.Lock()
	if !s.closed {
		s.closed = true
		if s.events != nil {
			close(s.events)
		}
	}
	s.mu.Unlock()

	select {
	case <-s.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *EmployeeService) List(ctx context.Context) ([]model.Employee, error) {
	employees, err := s.repo.List(ctx)
	if err != nil {
		return nil, domain.NewInternalError("Internal Server error", err)
	}
	return employees, nil
}

func (s *EmployeeService) GetByID(ctx context.Context, id string) (*model.Employee, error) {
	employee, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, s.lookupError(err, "Error fetching employee data")
	}
	return employee, nil
}

// Recent returns the most recently created employees, newest first.
func (s *EmployeeService) Recent(ctx context.Context) ([]model.Employee, error) {
	employees, err := s.repo.Recent(ctx, RecentLimit)
	if err != nil {
		return nil, domain.NewInternalError("Server error", err)
	}
	return employees, nil
}

func (s *EmployeeService) Create(ctx context.Context, actorID string, in model.EmployeeInput) (*model.Employee, error) {
	if missing := in.Missing(); len(missing) > 0 {
		return nil, domain.NewValidationError("All fields are required, including the image.")
	}

	createdDate, err := model.ParseCreatedDate(in.CreatedDate)
	if err != nil {
		return nil, domain.NewValidationError(err.Error())
	}

	employee := &model.Employee{
		Name:        strings.TrimSpace(in.Name),
		Email:       strings.TrimSpace(in.Email),
		Mobile:      strings.TrimSpace(in.Mobile),
		Designation: strings.TrimSpace(in.Designation),
		Gender:      strings.TrimSpace(in.Gender),
		Course:      strings.TrimSpace(in.Course),
		CreatedDate: createdDate,
		Image:       in.Image,
	}

	if err := s.repo.Create(ctx, employee); err != nil {
		return nil, domain.NewInternalError("Error saving employee", err)
	}

	s.log.Info(ctx, "employee created", "employee_id", employee.ID, "actor_id", actorID)
	s.publish(ctx, model.EmployeeCreated, actorID, employee.ID, employee)
	return employee, nil
}

func (s *EmployeeService) Update(ctx context.Context, actorID, id string, upd model.EmployeeUpdate) (*model.Employee, error) {
	employee, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, s.lookupError(err, "Error updating employee")
	}

	if blank := upd.Blank(); len(blank) > 0 {
		return nil, domain.NewValidationError("Fields cannot be empty: " + strings.Join(blank, ", "))
	}
	if upd.CreatedDate != nil {
		if _, err := model.ParseCreatedDate(*upd.CreatedDate); err != nil {
			return nil, domain.NewValidationError(err.Error())
		}
	}

	upd.Apply(employee)

	if err := s.repo.Save(ctx, employee); err != nil {
		return nil, domain.NewInternalError("Error updating employee", err)
	}

	s.log.Info(ctx, "employee updated", "employee_id", employee.ID, "actor_id", actorID)
	s.publish(ctx, model.EmployeeUpdated, actorID, employee.ID, employee)
	return employee, nil
}

func (s *EmployeeService) Delete(ctx context.Context, actorID, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return s.lookupError(err, "Error deleting employee")
	}

	s.log.Info(ctx, "employee deleted", "employee_id", id, "actor_id", actorID)
	s.publish(ctx, model.EmployeeDeleted, actorID, id, nil)
	return nil
}

func (s *EmployeeService) lookupError(err error, msg string) error {
	if errors.Is(err, repository.ErrNotFound) {
		return domain.NewNotFoundError("Employee not found")
	}
	return domain.NewInternalError(msg, err)
}

// publish queues the event for the notifier. Delivery failures are logged
// and never reach the caller.
func (s *EmployeeService) publish(ctx context.Context, action model.EmployeeAction, actorID, id string, employee *model.Employee) {
	if s.notifier == nil {
		return
	}

	event := model.EmployeeEvent{
		Action:     action,
		EmployeeID: id,
		ActorID:    actorID,
		At:         time.Now().UTC(),
	}
	if employee != nil {
		snapshot := *employee
		event.Employee = &snapshot
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		s.log.Warn(ctx, "employee notification dropped after close", "action", string(action), "employee_id", id)
		return
	}
	s.events <- event
}

func (s *EmployeeService) drain() {
	defer close(s.done)
	for event := range s.events {
		ctx, cancel := context.WithTimeout(context.Background(), notifyTimeout)
		if err := s.notifier.Notify(ctx, event); err != nil {
			s.log.Warn(ctx, "employee notification failed",
				"action", string(event.Action), "employee_id", event.EmployeeID, "error", err)
		}
		cancel()
	}
}
