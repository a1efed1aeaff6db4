package models

import "github.com/yigit/schoolrecords/internal/app/models/dto"

// MedicalRecord shares its primary key with the student it belongs to.
// Vaccination fields hold whatever the school records (a date, "yes", a note).
type MedicalRecord struct {
	StudentID     int64    `json:"student_id" db:"student_id"`
	StudentWeight *float64 `json:"student_weight" db:"student_weight"`
	StudentHeight *float64 `json:"student_height" db:"student_height"`
	Polio         *string  `json:"polio" db:"polio"`
	MMR           *string  `json:"mmr" db:"mmr"`
	Covid1        *string  `json:"covid1" db:"covid1"`
	Covid2        *string  `json:"covid2" db:"covid2"`
	Flu           *string  `json:"flu" db:"flu"`
	TB            *string  `json:"tb" db:"tb"`
	Tetanus       *string  `json:"tetanus" db:"tetanus"`
}

var MedicalRecordColumns = []string{
	"student_id", "student_weight", "student_height",
	"polio", "mmr", "covid1", "covid2", "flu", "tb", "tetanus",
}

func (m *MedicalRecord) ScanTargets() []interface{} {
	return []interface{}{
		&m.StudentID, &m.StudentWeight, &m.StudentHeight,
		&m.Polio, &m.MMR, &m.Covid1, &m.Covid2, &m.Flu, &m.TB, &m.Tetanus,
	}
}

// Values returns column values in MedicalRecordColumns order
func (m *MedicalRecord) Values() []interface{} {
	return []interface{}{
		m.StudentID, m.StudentWeight, m.StudentHeight,
		m.Polio, m.MMR, m.Covid1, m.Covid2, m.Flu, m.TB, m.Tetanus,
	}
}

func (m *MedicalRecord) Serialize() dto.MedicalRecordResponse {
	return dto.MedicalRecordResponse{
		StudentID:     m.StudentID,
		StudentWeight: m.StudentWeight,
		StudentHeight: m.StudentHeight,
		Polio:         m.Polio,
		MMR:           m.MMR,
		Covid1:        m.Covid1,
		Covid2:        m.Covid2,
		Flu:           m.Flu,
		TB:            m.TB,
		Tetanus:       m.Tetanus,
	}
}
