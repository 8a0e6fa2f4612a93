package model

import (
	"fmt"
	"strings"
	"time"
)

const dateOnly = "2006-01-02"

// EmployeeInput is a create request. Every field and the image are required.
type EmployeeInput struct {
	Name        string
	Email       string
	Mobile      string
	Designation string
	Gender      string
	Course      string
	CreatedDate string
	Image       []byte
}

// Missing returns the names of the absent fields, in form order.
func (in EmployeeInput) Missing() []string {
	var missing []string
	for _, f := range []struct {
		name  string
		value string
	}{
		{"name", in.Name},
		{"email", in.Email},
		{"mobile", in.Mobile},
		{"designation", in.Designation},
		{"gender", in.Gender},
		{"course", in.Course},
		{"createdDate", in.CreatedDate},
	} {
		if strings.TrimSpace(f.value) == "" {
			missing = append(missing, f.name)
		}
	}
	if len(in.Image) == 0 {
		missing = append(missing, "image")
	}
	return missing
}

// EmployeeUpdate is a partial update: nil fields are left unchanged.
type EmployeeUpdate struct {
	Name        *string
	Email       *string
	Mobile      *string
	Designation *string
	Gender      *string
	Course      *string
	CreatedDate *string
	Image       []byte
}

// Blank returns the names of fields that are present but empty.
func (u EmployeeUpdate) Blank() []string {
	var blank []string
	for _, f := range []struct {
		name  string
		value *string
	}{
		{"name", u.Name},
		{"email", u.Email},
		{"mobile", u.Mobile},
		{"designation", u.Designation},
		{"gender", u.Gender},
		{"course", u.Course},
		{"createdDate", u.CreatedDate},
	} {
		if f.value != nil && strings.TrimSpace(*f.value) == "" {
			blank = append(blank, f.name)
		}
	}
	return blank
}

// Apply copies the present fields onto e, trimmed. CreatedDate must already have
// been validated with ParseCreatedDate.
func (u EmployeeUpdate) Apply(e *Employee) {
	set := func(dst *string, src *string) {
		if src != nil {
			*dst = strings.TrimSpace(*src)
		}
	}
	set(&e.Name, u.Name)
	set(&e.Email, u.Email)
	set(&e.Mobile, u.Mobile)
	set(&e.Designation, u.Designation)
	set(&e.Gender, u.Gender)
	set(&e.Course, u.Course)
	if u.CreatedDate != nil {
		if d, err := ParseCreatedDate(*u.CreatedDate); err == nil {
			e.CreatedDate = d
		}
	}
	if len(u.Image) > 0 {
		e.Image = u.Image
	}
}

// ParseCreatedDate accepts RFC3339 timestamps and plain YYYY-MM-DD dates.
func ParseCreatedDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	t, err := time.Parse(dateOnly, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid createdDate %q", s)
	}
	return t, nil
}
