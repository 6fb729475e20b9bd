package model

// Profile is a portfolio profile: the person being showcased, with
// their projects and skills attached on reads.
type Profile struct {
	ID              int    `json:"id" msgpack:"id"`
	Name            string `json:"name" msgpack:"name"`
	Bio             string `json:"bio" msgpack:"bio"`
	ProfileImageURL string `json:"profileImageUrl" msgpack:"profileImageUrl"`

	// AccountID links the profile to the owning account. One profile
	// per account; empty for profiles not yet claimed.
	AccountID string `json:"accountId,omitempty" msgpack:"accountId,omitempty"`

	Projects []Project `json:"projects" msgpack:"projects"`
	Skills   []Skill   `json:"skills" msgpack:"skills"`
}

// EntityID returns the primary key.
func (p Profile) EntityID() int { return p.ID }

// Validate checks the write-payload rules for a profile.
func (p *Profile) Validate() error {
	if err := required("name", p.Name); err != nil {
		return err
	}
	if err := maxLen("name", p.Name, 100); err != nil {
		return err
	}
	if err := maxLen("bio", p.Bio, 2000); err != nil {
		return err
	}
	return maxLen("profileImageUrl", p.ProfileImageURL, 2048)
}
