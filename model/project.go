package model

// Project is a single portfolio entry owned by a profile.
type Project struct {
	ID          int    `json:"id" msgpack:"id"`
	Title       string `json:"title" msgpack:"title"`
	Description string `json:"description" msgpack:"description"`
	ImageURL    string `json:"imageUrl" msgpack:"imageUrl"`
	ProfileID   int    `json:"profileId" msgpack:"profileId"`
}

// EntityID returns the primary key.
func (p Project) EntityID() int { return p.ID }

// Validate checks the write-payload rules for a project. Existence of
// the referenced profile is the service layer's check, not a payload rule.
func (p *Project) Validate() error {
	if err := required("title", p.Title); err != nil {
		return err
	}
	if err := maxLen("title", p.Title, 200); err != nil {
		return err
	}
	if err := maxLen("description", p.Description, 4000); err != nil {
		return err
	}
	if err := maxLen("imageUrl", p.ImageURL, 2048); err != nil {
		return err
	}
	if p.ProfileID <= 0 {
		return &ValidationError{Field: "profileId", Reason: "must reference a profile"}
	}
	return nil
}
