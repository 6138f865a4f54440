// Seed script: wipes and repopulates the database with a sample staff
// roster, a service catalog, and a week of availability. Run manually
// against a development database; never point it at production.
package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"glowdesk/config"
	"glowdesk/database"
	"glowdesk/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"golang.org/x/crypto/bcrypt"
)

func main() {
	config.LoadConfig()
	database.InitDB()
	db := database.DB()

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	for _, name := range []string{"users", "services", "availability", "bookings"} {
		if _, err := db.Collection(name).DeleteMany(ctx, bson.M{}); err != nil {
			log.Fatalf("Failed to clear %s collection: %v", name, err)
		}
	}

	now := time.Now()

	// Staff roster.
	staffNames := [][2]string{
		{"Amara", "Okafor"},
		{"Elena", "Petrova"},
		{"Mei", "Tanaka"},
		{"Sophie", "Laurent"},
	}
	hash, err := bcrypt.GenerateFromPassword([]byte("changeme123"), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("Failed to hash seed password: %v", err)
	}

	var users []interface{}
	var staffIDs []string
	for i, n := range staffNames {
		id := uuid.New().String()
		staffIDs = append(staffIDs, id)
		users = append(users, models.User{
			ID:         id,
			Slug:       fmt.Sprintf("%s-%s-%d", n[0], n[1], i+1),
			FirstName:  n[0],
			LastName:   n[1],
			Mobile:     fmt.Sprintf("07000000%02d", i+1),
			Email:      fmt.Sprintf("%s.%s@example.com", n[0], n[1]),
			Password:   string(hash),
			Role:       models.RoleStaff,
			IsVerified: true,
			CreatedAt:  now,
			UpdatedAt:  now,
		})
	}
	if _, err := db.Collection("users").InsertMany(ctx, users); err != nil {
		log.Fatalf("Failed to seed users: %v", err)
	}

	// Service catalog.
	catalog := []struct {
		name     string
		price    float64
		duration int
	}{
		{"Classic Haircut", 25, 30},
		{"Beard Trim", 12, 15},
		{"Full Colour", 80, 60},
		{"Blow Dry", 30, 45},
	}
	var services []interface{}
	for _, entry := range catalog {
		services = append(services, models.Service{
			ID:        uuid.New().String(),
			Name:      entry.name,
			Price:     entry.price,
			Duration:  entry.duration,
			IsActive:  true,
			CreatedAt: now,
			UpdatedAt: now,
		})
	}
	if _, err := db.Collection("services").InsertMany(ctx, services); err != nil {
		log.Fatalf("Failed to seed services: %v", err)
	}

	// A week of availability per staff member: 09:00-12:00 and 13:00-17:00,
	// with Sundays off.
	var days []interface{}
	for i := 0; i < 7; i++ {
		date := now.AddDate(0, 0, i)
		dayOff := date.Weekday() == time.Sunday
		for _, staffID := range staffIDs {
			day := models.AvailabilityDay{
				ID:        uuid.New().String(),
				StaffID:   staffID,
				Date:      date.Format(models.DateLayout),
				IsDayOff:  dayOff,
				TimeSlots: []models.TimeSlot{},
				CreatedAt: now,
				UpdatedAt: now,
			}
			if !dayOff {
				day.TimeSlots = []models.TimeSlot{
					{Start: 9 * 60, End: 12 * 60},
					{Start: 13 * 60, End: 17 * 60},
				}
			}
			days = append(days, day)
		}
	}
	if _, err := db.Collection("availability").InsertMany(ctx, days); err != nil {
		log.Fatalf("Failed to seed availability: %v", err)
	}

	log.Printf("Seeded %d staff, %d services, %d availability days", len(users), len(services), len(days))
}
