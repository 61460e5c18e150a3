// file: internals/seeds/messaging/seed_channels.go
package messaging

import (
	"encoding/json"
	"log"
	"os"
	"strings"

	"gorm.io/gorm"

	hubModel "github.com/rpasek2/V2-Teamhub-sub001/internals/features/hubs/hub/model"
	channelModel "github.com/rpasek2/V2-Teamhub-sub001/internals/features/messaging/channels/model"
	helper "github.com/rpasek2/V2-Teamhub-sub001/internals/helpers"
)

type ChannelSeed struct {
	HubSlug     string `json:"hub_slug"`
	ChannelName string `json:"channel_name"`
	ChannelSlug string `json:"channel_slug"`
	Description string `json:"description"`
	IsDefault   bool   `json:"is_default"`
}

// SeedChannelsFromJSON creates the starter channels for the demo hubs.
// Channels are matched by hub+slug, so re-running changes nothing.
func SeedChannelsFromJSON(db *gorm.DB, filePath string) {
	log.Println("📥 Reading channel seed file:", filePath)

	file, err := os.ReadFile(filePath)
	if err != nil {
		log.Printf("❌ [SEED] Could not read %s: %v\n", filePath, err)
		return
	}

	var inputs []ChannelSeed
	if err := json.Unmarshal(file, &inputs); err != nil {
		log.Printf("❌ [SEED] Could not decode %s: %v\n", filePath, err)
		return
	}

	for _, data := range inputs {
		hubSlug := strings.ToLower(strings.TrimSpace(data.HubSlug))

		var hub hubModel.HubModel
		if err := db.Select("hub_id").Where("lower(hub_slug) = ?", hubSlug).First(&hub).Error; err != nil {
			log.Printf("⚠️ [SEED] No hub '%s' for channel '%s', skipped.\n", hubSlug, data.ChannelName)
			continue
		}

		slug := helper.NormalizeSlug(data.ChannelSlug)
		if slug == "" {
			slug = helper.NormalizeSlug(data.ChannelName)
		}

		var existing channelModel.ChannelModel
		if err := db.Where("channel_hub_id = ? AND channel_slug = ?", hub.HubID, slug).
			First(&existing).Error; err == nil {
			log.Printf("ℹ️ [SEED] Channel '%s/%s' already exists, skipped.\n", hubSlug, slug)
			continue
		}

		row := channelModel.ChannelModel{
			ChannelHubID:     hub.HubID,
			ChannelName:      strings.TrimSpace(data.ChannelName),
			ChannelSlug:      slug,
			ChannelIsDefault: data.IsDefault,
		}
		if v := strings.TrimSpace(data.Description); v != "" {
			row.ChannelDescription = &v
		}

		if err := db.Create(&row).Error; err != nil {
			log.Printf("❌ [SEED] Could not insert channel '%s/%s': %v\n", hubSlug, slug, err)
			continue
		}
		log.Printf("✅ [SEED] Channel '%s/%s' created.\n", hubSlug, slug)
	}
}
