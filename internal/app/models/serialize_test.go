package models

import (
	"encoding/json"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func keysOf(t *testing.T, v interface{}) []string {
	t.Helper()
	raw, err := json.Marshal(v)
	require.NoError(t, err)

	var m map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &m))

	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func TestStudentSerialize(t *testing.T) {
	s := &Student{ID: 4, LastName: "Lovelace", FirstName: "Ada", BirthDate: "2015-12-10", Classroom: strPtr("2B"), ImageURL: strPtr(DefaultImageURL)}

	out := s.Serialize()
	assert.Equal(t, int64(4), out.ID)
	assert.Equal(t, "2B", *out.Classroom)
	assert.Equal(t, DefaultImageURL, *out.ImageURL)
	assert.Equal(t, []string{"birth_date", "classroom", "first_name", "id", "image_url", "last_name"}, keysOf(t, out))
}

func TestContactSerialize(t *testing.T) {
	sid := int64(4)
	c := &Contact{ID: 11, StudentID: &sid, Name: "Grace", Phone: strPtr("555-0100"), IsPrimary: true}

	out := c.Serialize()
	assert.Equal(t, "Grace", out.Name)
	assert.Equal(t, []string{"email", "name", "other", "phone", "relation", "student_id"}, keysOf(t, out))
}

func TestMedicalRecordSerialize(t *testing.T) {
	w := 21.5
	m := &MedicalRecord{StudentID: 4, StudentWeight: &w, MMR: strPtr("2019-03-01")}

	out := m.Serialize()
	assert.Equal(t, 21.5, *out.StudentWeight)
	assert.Nil(t, out.StudentHeight)
	assert.Equal(t, []string{
		"covid1", "covid2", "flu", "mmr", "polio", "student_height",
		"student_id", "student_weight", "tb", "tetanus",
	}, keysOf(t, out))
}

func TestUserSerializeOmitsPassword(t *testing.T) {
	u := &User{Username: "alice", Password: "$2a$04$hash", FirstName: "Alice", LastName: "Liddell", Email: "alice@example.com", Phone: "555", IsGuardian: true}

	keys := keysOf(t, u.Serialize())
	assert.Equal(t, []string{"email", "first_name", "is_guardian", "last_name", "phone", "username"}, keys)
	assert.NotContains(t, keys, "password")

	// the model itself never marshals the hash either
	raw, err := json.Marshal(u)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "$2a$04$hash")
	assert.Equal(t, "<User alice: alice@example.com>", u.String())
}

func TestGuardianChildSerialize(t *testing.T) {
	g := &GuardianChild{GuardianUsername: "alice", ChildID: 4}

	assert.Equal(t, []string{"child_id", "guardian_username"}, keysOf(t, g.Serialize()))
	assert.Equal(t, "<Guardian alice: 4>", g.String())
}

func TestColumnsMatchScanTargets(t *testing.T) {
	assert.Len(t, (&Student{}).ScanTargets(), len(StudentColumns))
	assert.Len(t, (&Contact{}).ScanTargets(), len(ContactColumns))
	assert.Len(t, (&MedicalRecord{}).ScanTargets(), len(MedicalRecordColumns))
	assert.Len(t, (&MedicalRecord{}).Values(), len(MedicalRecordColumns))
	assert.Len(t, (&User{}).ScanTargets(), len(UserColumns))
	assert.Len(t, (&GuardianChild{}).ScanTargets(), len(GuardianChildColumns))
}
