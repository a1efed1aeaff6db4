package models

import (
	"fmt"

	"github.com/yigit/schoolrecords/internal/app/models/dto"
)

// GuardianChild links a guardian account to a student. Both sides cascade.
type GuardianChild struct {
	GuardianUsername string `json:"guardian_username" db:"guardian_username"`
	ChildID          int64  `json:"child_id" db:"child_id"`
}

var GuardianChildColumns = []string{"guardian_username", "child_id"}

func (g *GuardianChild) ScanTargets() []interface{} {
	return []interface{}{&g.GuardianUsername, &g.ChildID}
}

func (g *GuardianChild) Serialize() dto.GuardianChildResponse {
	return dto.GuardianChildResponse{
		GuardianUsername: g.GuardianUsername,
		ChildID:          g.ChildID,
	}
}

func (g *GuardianChild) String() string {
	return fmt.Sprintf("<Guardian %s: %d>", g.GuardianUsername, g.ChildID)
}
