package seeds

import (
	"gorm.io/gorm"

	hubs "github.com/rpasek2/V2-Teamhub-sub001/internals/seeds/hubs"
	messaging "github.com/rpasek2/V2-Teamhub-sub001/internals/seeds/messaging"
	users "github.com/rpasek2/V2-Teamhub-sub001/internals/seeds/users"
)

// RunAllSeeds loads the demo data set. Order matters: hubs reference
// users by email, channels reference hubs by slug. Every seeder is
// idempotent, so this can run on each boot.
func RunAllSeeds(db *gorm.DB) {

	//* Users
	users.SeedUsersFromJSON(db, "internals/seeds/users/data_users.json")

	//* Hubs (including memberships and permission matrices)
	hubs.SeedHubsFromJSON(db, "internals/seeds/hubs/data_hubs.json")

	//* Messaging
	messaging.SeedChannelsFromJSON(db, "internals/seeds/messaging/data_channels.json")
}
