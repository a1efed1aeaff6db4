package repositories

import (
	"github.com/yigit/schoolrecords/internal/pkg/auth"
)

// Repositories holds all the repository instances bound to one DBTX
type Repositories struct {
	Students         *StudentRepository
	Contacts         *ContactRepository
	MedicalRecords   *MedicalRecordRepository
	Users            *UserRepository
	GuardianChildren *GuardianChildRepository
}

// NewRepositories initializes all repositories on db. Pass a pgx.Tx to stage
// writes in a unit of work, or the pool for autocommit.
func NewRepositories(db DBTX, hasher auth.PasswordHasher) *Repositories {
	return &Repositories{
		Students:         NewStudentRepository(db),
		Contacts:         NewContactRepository(db),
		MedicalRecords:   NewMedicalRecordRepository(db),
		Users:            NewUserRepository(db, hasher),
		GuardianChildren: NewGuardianChildRepository(db),
	}
}
