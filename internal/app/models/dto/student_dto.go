package dto

// StudentResponse is the serialized form of a student
type StudentResponse struct {
	ID        int64   `json:"id"`
	LastName  string  `json:"last_name"`
	FirstName string  `json:"first_name"`
	BirthDate string  `json:"birth_date"`
	Classroom *string `json:"classroom"`
	ImageURL  *string `json:"image_url"`
}
