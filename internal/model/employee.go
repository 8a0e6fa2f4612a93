package model

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Employee is a directory record. The photo is kept inline as a blob.
// Marshalled directly, Image is emitted as a base64 string.
type Employee struct {
	ID          string    `json:"_id" gorm:"primaryKey;type:varchar(36)"`
	Name        string    `json:"f_Name" gorm:"not null"`
	Email       string    `json:"f_Email" gorm:"not null"`
	Mobile      string    `json:"f_Mobile" gorm:"not null"`
	Designation string    `json:"f_Designation" gorm:"not null"`
	Gender      string    `json:"f_Gender" gorm:"not null"`
	Course      string    `json:"f_Course" gorm:"not null"`
	CreatedDate time.Time `json:"f_Createdate"`
	Image       []byte    `json:"f_Image" gorm:"not null"`
	CreatedAt   time.Time `json:"createdAt" gorm:"index"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func (e *Employee) BeforeCreate(tx *gorm.DB) error {
	if e.ID != "" {
		return nil
	}
	id, err := uuid.NewV7()
	if err != nil {
		return err
	}
	e.ID = id.String()
	return nil
}

// RawImage marshals as {"type":"Buffer","data":[...]}, the raw byte form
// write responses use.
type RawImage []byte

func (r RawImage) MarshalJSON() ([]byte, error) {
	data := make([]int, len(r))
	for i, b := range r {
		data[i] = int(b)
	}
	return json.Marshal(struct {
		Type string `json:"type"`
		Data []int  `json:"data"`
	}{Type: "Buffer", Data: data})
}

func (r *RawImage) UnmarshalJSON(b []byte) error {
	var buf struct {
		Data []int `json:"data"`
	}
	if err := json.Unmarshal(b, &buf); err != nil {
		return err
	}
	out := make([]byte, len(buf.Data))
	for i, v := range buf.Data {
		out[i] = byte(v)
	}
	*r = out
	return nil
}

// EmployeeRaw is an Employee whose image serializes in raw form.
type EmployeeRaw struct {
	*Employee
	Image RawImage `json:"f_Image"`
}

func (e *Employee) Raw() EmployeeRaw {
	return EmployeeRaw{Employee: e, Image: RawImage(e.Image)}
}
