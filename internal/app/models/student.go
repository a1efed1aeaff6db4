package models

import "github.com/yigit/schoolrecords/internal/app/models/dto"

// Student defines the student model based on the 'students' table
type Student struct {
	ID        int64   `json:"id" db:"id"`
	LastName  string  `json:"last_name" db:"last_name"`
	FirstName string  `json:"first_name" db:"first_name"`
	BirthDate string  `json:"birth_date" db:"birth_date"` // free-form, stored as entered
	Classroom *string `json:"classroom" db:"classroom"`
	ImageURL  *string `json:"image_url" db:"image_url"`
}

// StudentColumns lists the columns in scan order
var StudentColumns = []string{"id", "last_name", "first_name", "birth_date", "classroom", "image_url"}

// ScanTargets returns pointers matching StudentColumns
func (s *Student) ScanTargets() []interface{} {
	return []interface{}{&s.ID, &s.LastName, &s.FirstName, &s.BirthDate, &s.Classroom, &s.ImageURL}
}

// Serialize returns the flat representation of the student
func (s *Student) Serialize() dto.StudentResponse {
	return dto.StudentResponse{
		ID:        s.ID,
		LastName:  s.LastName,
		FirstName: s.FirstName,
		BirthDate: s.BirthDate,
		Classroom: s.Classroom,
		ImageURL:  s.ImageURL,
	}
}
