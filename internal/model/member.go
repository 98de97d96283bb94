package model

import "regexp"

// Member is a team participant who can be assigned to tasks.
type Member struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Role  string `json:"role"`
	Color string `json:"color"`
}

// DefaultMemberColor is used when a member is added without a color.
const DefaultMemberColor = "#3B82F6"

// MemberPalette is the set of colors offered for new members.
var MemberPalette = []string{
	"#FF6B6B", "#4ECDC4", "#45B7D1", "#96CEB4",
	"#FECA57", "#DDA0DD", "#FF8B94", "#B4A7D6",
	"#FFB6C1", "#87CEEB", "#98D8C8", "#F7DC6F",
}

// NewMember creates a member with a fresh ID.
func NewMember(name, role, color string) *Member {
	m := &Member{
		ID:    NewID(),
		Name:  name,
		Role:  role,
		Color: color,
	}
	if m.Color == "" {
		m.Color = DefaultMemberColor
	}
	return m
}

// MemberPatch holds the fields to change on a member. Nil fields are left as-is.
type MemberPatch struct {
	Name  *string
	Role  *string
	Color *string
}

// Apply copies the set fields of the patch onto m.
func (p MemberPatch) Apply(m *Member) {
	if p.Name != nil {
		m.Name = *p.Name
	}
	if p.Role != nil {
		m.Role = *p.Role
	}
	if p.Color != nil {
		m.Color = *p.Color
	}
}

// hexColorRegex validates hex color format.
var hexColorRegex = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

// ValidateColor checks if a color string is a valid hex color.
func ValidateColor(color string) bool {
	if color == "" {
		return true
	}
	return hexColorRegex.MatchString(color)
}
