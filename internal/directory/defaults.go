// Package directory wires the user directory domain together.
package directory

import (
	"context"
	"fmt"

	"github.com/rinhomdf/userdir/internal/config"
	"github.com/rinhomdf/userdir/internal/directory/users"
)

// SetupDefaults creates the demo users declared in the seed section of the
// configuration. It runs once at startup against an empty store, before the
// server accepts traffic; seeding is the only path that can attach a profile
// to a user.
func SetupDefaults(ctx context.Context, userService users.UserService) error {
	for _, seed := range config.Seed().Users {
		var profile *users.Profile
		if seed.Profile != nil {
			profile = &users.Profile{
				Age:     seed.Profile.Age,
				Address: seed.Profile.Address,
				Phone:   seed.Profile.Phone,
			}
		}

		_, err := userService.SeedUser(ctx, seed.Name, seed.Email, profile)
		if err != nil {
			return fmt.Errorf("failed to seed user %q: %w", seed.Email, err)
		}
	}

	return nil
}
