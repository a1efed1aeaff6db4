package models

import "github.com/yigit/schoolrecords/internal/app/models/dto"

// Contact is an emergency contact for a student. StudentID becomes nil when
// the student is deleted.
type Contact struct {
	ID        int64   `json:"id" db:"id"`
	StudentID *int64  `json:"student_id" db:"student_id"`
	Name      string  `json:"name" db:"name"`
	Email     *string `json:"email" db:"email"`
	Phone     *string `json:"phone" db:"phone"`
	Other     *string `json:"other" db:"other"`
	Relation  *string `json:"relation" db:"relation"`
	IsPrimary bool    `json:"is_primary" db:"is_primary"`
}

var ContactColumns = []string{"id", "student_id", "name", "email", "phone", "other", "relation", "is_primary"}

func (c *Contact) ScanTargets() []interface{} {
	return []interface{}{&c.ID, &c.StudentID, &c.Name, &c.Email, &c.Phone, &c.Other, &c.Relation, &c.IsPrimary}
}

// Serialize omits id and is_primary.
func (c *Contact) Serialize() dto.ContactResponse {
	return dto.ContactResponse{
		StudentID: c.StudentID,
		Name:      c.Name,
		Email:     c.Email,
		Phone:     c.Phone,
		Other:     c.Other,
		Relation:  c.Relation,
	}
}
