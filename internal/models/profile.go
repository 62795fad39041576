package models

// ProfileID is the fixed identifier of the singleton profile record.
const ProfileID = "profile"

// SocialLinks holds the profile's outbound links.
type SocialLinks struct {
	GitHub   string `json:"github,omitempty"`
	LinkedIn string `json:"linkedin,omitempty"`
	Twitter  string `json:"twitter,omitempty"`
	Website  string `json:"website,omitempty"`
}

// Profile is the singleton owner record: exactly one exists, under a fixed
// id, with no slug and no featured flag. Title carries the display name.
type Profile struct {
	Meta
	Headline string      `json:"headline,omitempty"`
	Bio      string      `json:"bio,omitempty"`
	Email    string      `json:"email,omitempty"`
	Phone    string      `json:"phone,omitempty"`
	Location string      `json:"location,omitempty"`
	Skills   []string    `json:"skills,omitempty"`
	Social   SocialLinks `json:"social"`
}
