package model

// Skill is a named skill with a proficiency level, owned by a profile.
type Skill struct {
	ID        int    `json:"id" msgpack:"id"`
	Name      string `json:"name" msgpack:"name"`
	Level     string `json:"level" msgpack:"level"`
	ProfileID int    `json:"profileId" msgpack:"profileId"`
}

// EntityID returns the primary key.
func (s Skill) EntityID() int { return s.ID }

// Validate checks the write-payload rules for a skill.
func (s *Skill) Validate() error {
	if err := required("name", s.Name); err != nil {
		return err
	}
	if err := maxLen("name", s.Name, 100); err != nil {
		return err
	}
	if err := required("level", s.Level); err != nil {
		return err
	}
	if err := maxLen("level", s.Level, 50); err != nil {
		return err
	}
	if s.ProfileID <= 0 {
		return &ValidationError{Field: "profileId", Reason: "must reference a profile"}
	}
	return nil
}
