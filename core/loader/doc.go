// Package loader provides the plugin-like feature loading system.
//
// Each feature implements the Feature interface:
//
//	type Feature interface {
//	    Name() string
//	    IsEnabled() bool
//	    Load(app fiber.Router) error
//	}
//
// The Manager keeps the registry. Register adds features and LoadAll mounts
// the routes of every enabled one, in registration order.
package loader
