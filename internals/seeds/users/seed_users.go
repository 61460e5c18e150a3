// file: internals/seeds/users/seed_users.go
package users

import (
	"encoding/json"
	"log"
	"os"
	"strings"

	"gorm.io/gorm"

	authHelper "github.com/rpasek2/V2-Teamhub-sub001/internals/features/users/auth/helper"
	"github.com/rpasek2/V2-Teamhub-sub001/internals/features/users/user/model"
)

type UserSeed struct {
	UserName         string `json:"user_name"`
	FullName         string `json:"full_name"`
	Email            string `json:"email"`
	Password         string `json:"password"`
	Role             string `json:"role"`
	SecurityQuestion string `json:"security_question"`
	SecurityAnswer   string `json:"security_answer"`
}

// SeedUsersFromJSON inserts the demo accounts. Existing emails are
// skipped, so the seeder is safe to run on every boot.
func SeedUsersFromJSON(db *gorm.DB, filePath string) {
	log.Println("📥 Reading user seed file:", filePath)

	file, err := os.ReadFile(filePath)
	if err != nil {
		log.Printf("❌ [SEED] Could not read %s: %v\n", filePath, err)
		return
	}

	var inputs []UserSeed
	if err := json.Unmarshal(file, &inputs); err != nil {
		log.Printf("❌ [SEED] Could not decode %s: %v\n", filePath, err)
		return
	}

	for _, data := range inputs {
		email := strings.ToLower(strings.TrimSpace(data.Email))

		var existing model.UserModel
		if err := db.Where("lower(email) = ?", email).First(&existing).Error; err == nil {
			log.Printf("ℹ️ [SEED] User '%s' already exists, skipped.\n", email)
			continue
		}

		hashed, err := authHelper.HashPassword(data.Password)
		if err != nil {
			log.Printf("❌ [SEED] Could not hash password for '%s': %v\n", email, err)
			continue
		}

		role := strings.ToLower(strings.TrimSpace(data.Role))
		if role == "" {
			role = "user"
		}

		newUser := model.UserModel{
			UserName:         data.UserName,
			FullName:         data.FullName,
			Email:            email,
			Password:         hashed,
			Role:             role,
			SecurityQuestion: data.SecurityQuestion,
			SecurityAnswer:   data.SecurityAnswer,
			IsActive:         true,
		}

		if err := db.Create(&newUser).Error; err != nil {
			log.Printf("❌ [SEED] Could not insert user '%s': %v\n", email, err)
		} else {
			log.Printf("✅ [SEED] User '%s' created.\n", email)
		}
	}
}
