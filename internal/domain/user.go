package domain

// Name is the structured person name the directory stores per account.
type Name struct {
	First  string `json:"first"`
	Middle string `json:"middle,omitempty"`
	Last   string `json:"last"`
}

// User is the directory account attached to a session. The portal never
// stores credentials; the object is an advisory cache of the login response.
type User struct {
	ID         string  `json:"_id,omitempty"`
	Name       Name    `json:"name"`
	Email      string  `json:"email"`
	Phone      string  `json:"phone,omitempty"`
	Address    Address `json:"address,omitempty"`
	Image      Image   `json:"image,omitempty"`
	IsAdmin    bool    `json:"isAdmin,omitempty"`
	IsBusiness bool    `json:"isBusiness,omitempty"`
}

// DisplayName renders the name for the nav bar, falling back to the email.
func (u User) DisplayName() string {
	if u.Name.First == "" && u.Name.Last == "" {
		return u.Email
	}
	if u.Name.Last == "" {
		return u.Name.First
	}
	return u.Name.First + " " + u.Name.Last
}
