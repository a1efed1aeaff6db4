package dto

// MedicalRecordResponse is the serialized form of a medical record
type MedicalRecordResponse struct {
	StudentID     int64    `json:"student_id"`
	StudentWeight *float64 `json:"student_weight"`
	StudentHeight *float64 `json:"student_height"`
	Polio         *string  `json:"polio"`
	MMR           *string  `json:"mmr"`
	Covid1        *string  `json:"covid1"`
	Covid2        *string  `json:"covid2"`
	Flu           *string  `json:"flu"`
	TB            *string  `json:"tb"`
	Tetanus       *string  `json:"tetanus"`
}
