package dto

// UserResponse is the serialized form of a guardian account. It has no
// password field at all.
type UserResponse struct {
	Username   string `json:"username"`
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	IsGuardian bool   `json:"is_guardian"`
}
