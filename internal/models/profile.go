package models

import "time"

// Profile holds the user's public profile fields.
type Profile struct {
	ID        string    `json:"id" db:"id"`
	Email     string    `json:"email" db:"email"`
	FullName  string    `json:"full_name" db:"full_name"`
	Username  string    `json:"username" db:"username"`
	AvatarURL string    `json:"avatar_url" db:"avatar_url"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// ProfilePatch is a partial profile update; nil fields are left unchanged.
type ProfilePatch struct {
	Email     *string `json:"email,omitempty"`
	FullName  *string `json:"full_name,omitempty"`
	Username  *string `json:"username,omitempty"`
	AvatarURL *string `json:"avatar_url,omitempty"`
}

// Apply copies the set fields of p onto profile.
func (p *ProfilePatch) Apply(profile *Profile) {
	if p.Email != nil {
		profile.Email = *p.Email
	}
	if p.FullName != nil {
		profile.FullName = *p.FullName
	}
	if p.Username != nil {
		profile.Username = *p.Username
	}
	if p.AvatarURL != nil {
		profile.AvatarURL = *p.AvatarURL
	}
}
