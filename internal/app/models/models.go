package models

// DefaultImageURL is stored for students added without a picture.
const DefaultImageURL = "https://images.unsplash.com/photo-1621077699196-15b4693707d7?ixlib=rb-1.2.1&ixid=MnwxMjA3fDB8MHxwaG90by1wYWdlfHx8fGVufDB8fHx8&auto=format&fit=crop&w=987&q=80"

// Table names
const (
	TableStudents         = "students"
	TableContacts         = "contacts"
	TableMedicalRecords   = "medical_records"
	TableUsers            = "users"
	TableGuardianChildren = "guardian_children"
)
