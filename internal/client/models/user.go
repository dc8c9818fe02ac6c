package models

// UserRecord is an account row in the admin view.
type UserRecord struct {
	ID        string `json:"_id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Role      Role   `json:"role"`
	Quota     int    `json:"quota"`
	UsedQuota int    `json:"usedQuota"`
}

// Deletable reports whether the admin view may offer deletion for this
// account. ADMIN accounts are never offered for deletion.
func (u UserRecord) Deletable() bool {
	return u.Role != RoleAdmin
}
