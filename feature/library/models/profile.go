package models

import "fmt"

// ForProfile returns the model of a database profile.
func ForProfile(profile string) (any, error) {
	switch profile {
	case "library":
		return StoryFile{}, nil
	case "legacy":
		return LegacyGame{}, nil
	default:
		return nil, fmt.Errorf("unknown library profile: %s", profile)
	}
}
