package export

import (
	"fmt"
	"slices"
)

// Profile determines which statements are included in an export.
type Profile string

const (
	// ProfileMinimal includes structure only: types, parents, domains,
	// ranges and enumeration membership.
	ProfileMinimal Profile = "minimal"

	// ProfileFull adds comments and supersededBy links.
	ProfileFull Profile = "full"
)

// ProfileConfig contains configuration for an export profile.
type ProfileConfig struct {
	// Name is the profile identifier.
	Name Profile

	// Description describes the profile.
	Description string

	// IncludeComments indicates whether rdfs:comment statements are written.
	IncludeComments bool

	// IncludeDeprecation indicates whether supersededBy statements are written.
	IncludeDeprecation bool

	// IncludeEnumValues indicates whether enumeration members are written.
	IncludeEnumValues bool
}

// Profiles contains the configuration for all available export profiles.
var Profiles = map[Profile]ProfileConfig{
	ProfileMinimal: {
		Name:              ProfileMinimal,
		Description:       "Classes, properties and enumeration members without documentation",
		IncludeEnumValues: true,
	},
	ProfileFull: {
		Name:               ProfileFull,
		Description:        "Everything the resolver keeps, including comments and deprecations",
		IncludeComments:    true,
		IncludeDeprecation: true,
		IncludeEnumValues:  true,
	},
}

// GetProfileConfig returns the configuration for a profile.
func GetProfileConfig(profile Profile) (ProfileConfig, error) {
	config, ok := Profiles[profile]
	if !ok {
		return ProfileConfig{}, fmt.Errorf("unknown profile: %s", profile)
	}
	return config, nil
}

// ListProfiles returns all available profile names sorted alphabetically.
func ListProfiles() []Profile {
	profiles := make([]Profile, 0, len(Profiles))
	for p := range Profiles {
		profiles = append(profiles, p)
	}
	slices.Sort(profiles)
	return profiles
}
