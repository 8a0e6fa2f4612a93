package model

import "time"

type EmployeeAction string

const (
	EmployeeCreated EmployeeAction = "created"
	EmployeeUpdated EmployeeAction = "updated"
	EmployeeDeleted EmployeeAction = "deleted"
)

// EmployeeEvent describes a committed change. Employee is nil for deletes.
type EmployeeEvent struct {
	Action     EmployeeAction `json:"action"`
	EmployeeID string         `json:"employeeId"`
	ActorID    string         `json:"actorId"`
	Employee   *Employee      `json:"employee,omitempty"`
	At         time.Time      `json:"at"`
}
