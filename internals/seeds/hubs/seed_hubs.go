// file: internals/seeds/hubs/seed_hubs.go
package hubs

import (
	"encoding/json"
	"log"
	"os"
	"strings"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/rpasek2/V2-Teamhub-sub001/internals/constants"
	hubModel "github.com/rpasek2/V2-Teamhub-sub001/internals/features/hubs/hub/model"
	memberModel "github.com/rpasek2/V2-Teamhub-sub001/internals/features/hubs/members/model"
	permissionService "github.com/rpasek2/V2-Teamhub-sub001/internals/features/hubs/permissions/service"
	userModel "github.com/rpasek2/V2-Teamhub-sub001/internals/features/users/user/model"
)

type HubMemberSeed struct {
	Email string `json:"email"`
	Role  string `json:"role"`
}

type HubSeed struct {
	HubName        string          `json:"hub_name"`
	HubSlug        string          `json:"hub_slug"`
	HubSport       string          `json:"hub_sport"`
	HubDescription string          `json:"hub_description"`
	HubLocation    string          `json:"hub_location"`
	HubTimezone    string          `json:"hub_timezone"`
	Permissions    json.RawMessage `json:"permissions"`
	Members        []HubMemberSeed `json:"members"`
}

// SeedHubsFromJSON creates the demo hubs with their permission matrix
// and memberships. Hubs are matched by slug, members by the unique
// hub+user pair, so re-running changes nothing.
func SeedHubsFromJSON(db *gorm.DB, filePath string) {
	log.Println("📥 Reading hub seed file:", filePath)

	file, err := os.ReadFile(filePath)
	if err != nil {
		log.Printf("❌ [SEED] Could not read %s: %v\n", filePath, err)
		return
	}

	var inputs []HubSeed
	if err := json.Unmarshal(file, &inputs); err != nil {
		log.Printf("❌ [SEED] Could not decode %s: %v\n", filePath, err)
		return
	}

	for _, data := range inputs {
		slug := strings.ToLower(strings.TrimSpace(data.HubSlug))

		var hub hubModel.HubModel
		err := db.Where("lower(hub_slug) = ?", slug).First(&hub).Error
		switch {
		case err == nil:
			log.Printf("ℹ️ [SEED] Hub '%s' already exists, members re-checked.\n", slug)
		case err == gorm.ErrRecordNotFound:
			hub = hubModel.HubModel{
				HubName:     strings.TrimSpace(data.HubName),
				HubSlug:     slug,
				HubSport:    strings.ToLower(strings.TrimSpace(data.HubSport)),
				HubTimezone: strings.TrimSpace(data.HubTimezone),
				HubIsActive: true,
			}
			if hub.HubSport == "" {
				hub.HubSport = "gymnastics"
			}
			if hub.HubTimezone == "" {
				hub.HubTimezone = "America/New_York"
			}
			if v := strings.TrimSpace(data.HubDescription); v != "" {
				hub.HubDescription = &v
			}
			if v := strings.TrimSpace(data.HubLocation); v != "" {
				hub.HubLocation = &v
			}

			if matrixJSON := seedMatrix(slug, data.Permissions); matrixJSON != nil {
				hub.HubPermissions = datatypes.JSON(matrixJSON)
			}

			if err := db.Create(&hub).Error; err != nil {
				log.Printf("❌ [SEED] Could not insert hub '%s': %v\n", slug, err)
				continue
			}
			log.Printf("✅ [SEED] Hub '%s' created.\n", slug)
		default:
			log.Printf("❌ [SEED] Could not query hub '%s': %v\n", slug, err)
			continue
		}

		for _, member := range data.Members {
			seedMembership(db, &hub, member)
		}
	}
}

// seedMatrix validates the configured matrix; a broken seed entry is
// dropped rather than stored.
func seedMatrix(slug string, raw json.RawMessage) []byte {
	if len(raw) == 0 {
		return nil
	}
	matrix, err := permissionService.ParseMatrix(raw)
	if err != nil {
		log.Printf("⚠️ [SEED] Hub '%s' permission matrix unreadable, skipped: %v\n", slug, err)
		return nil
	}
	if errs := permissionService.ValidateMatrix(matrix); len(errs) > 0 {
		log.Printf("⚠️ [SEED] Hub '%s' permission matrix invalid, skipped: %v\n", slug, errs)
		return nil
	}
	out, err := permissionService.MarshalMatrix(matrix)
	if err != nil {
		log.Printf("⚠️ [SEED] Hub '%s' permission matrix unmarshalable, skipped: %v\n", slug, err)
		return nil
	}
	return out
}

func seedMembership(db *gorm.DB, hub *hubModel.HubModel, member HubMemberSeed) {
	email := strings.ToLower(strings.TrimSpace(member.Email))
	role := strings.ToLower(strings.TrimSpace(member.Role))
	if !constants.ValidRole(role) {
		log.Printf("⚠️ [SEED] Unknown role '%s' for '%s', skipped.\n", role, email)
		return
	}

	var user userModel.UserModel
	if err := db.Select("id").Where("lower(email) = ?", email).First(&user).Error; err != nil {
		log.Printf("⚠️ [SEED] No user '%s' for hub '%s', skipped.\n", email, hub.HubSlug)
		return
	}

	var existing memberModel.HubMemberModel
	err := db.Where("hub_member_hub_id = ? AND hub_member_user_id = ?", hub.HubID, user.ID).
		First(&existing).Error
	if err == nil {
		return
	}
	if err != gorm.ErrRecordNotFound {
		log.Printf("❌ [SEED] Could not query membership '%s': %v\n", email, err)
		return
	}

	row := memberModel.HubMemberModel{
		HubMemberHubID:    hub.HubID,
		HubMemberUserID:   user.ID,
		HubMemberRole:     role,
		HubMemberIsActive: true,
	}
	if err := db.Create(&row).Error; err != nil {
		log.Printf("❌ [SEED] Could not add member '%s' to '%s': %v\n", email, hub.HubSlug, err)
		return
	}
	log.Printf("✅ [SEED] Member '%s' joined '%s' as %s.\n", email, hub.HubSlug, role)
}
