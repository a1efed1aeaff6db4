package dto

// ContactResponse is the serialized form of an emergency contact
type ContactResponse struct {
	StudentID *int64  `json:"student_id"`
	Name      string  `json:"name"`
	Email     *string `json:"email"`
	Phone     *string `json:"phone"`
	Other     *string `json:"other"`
	Relation  *string `json:"relation"`
}
