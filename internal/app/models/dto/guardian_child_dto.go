package dto

// GuardianChildResponse carries the two keys of a guardian link
type GuardianChildResponse struct {
	GuardianUsername string `json:"guardian_username"`
	ChildID          int64  `json:"child_id"`
}
