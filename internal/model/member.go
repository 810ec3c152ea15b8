package model

import "strings"

// UnknownMemberName is rendered in place of a member that no longer exists.
// Reservations and charges keep their member_id after the member is deleted,
// so readers must tolerate dangling references.
const UnknownMemberName = "Unknown member"

// Member represents a club member as stored in the `members` table.
//
// Fields:
//  ID        – numeric primary key, assigned by the admin.
//  FirstName – given name.
//  LastName  – family name; the catalog is ordered by it.
//  Phone     – optional contact number.
type Member struct {
    ID        uint64  `json:"id"`         // members.id
    FirstName string  `json:"first_name"` // members.first_name
    LastName  string  `json:"last_name"`  // members.last_name
    Phone     *string `json:"phone"`      // members.phone (nullable)
}

// DisplayName returns "First Last".
func (m Member) DisplayName() string {
    return strings.TrimSpace(m.FirstName + " " + m.LastName)
}

// MemberName resolves id against members and falls back to UnknownMemberName.
func MemberName(members []Member, id uint64) string {
    for _, m := range members {
        if m.ID == id {
            return m.DisplayName()
        }
    }
    return UnknownMemberName
}
