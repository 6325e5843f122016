package main

import (
	"context"
	"flag"
	"fmt"
	"log"

	"kwikwork/database"
	"kwikwork/internal/models"
	"kwikwork/internal/repository"
	"kwikwork/internal/utils"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

func init() {
	if err := godotenv.Load(); err != nil {
		if err := godotenv.Load("../../.env"); err != nil {
			log.Printf("Warning: No .env file found: %v", err)
		}
	}
}

var demoLocations = []string{
	"Sandton", "Randburg", "Soweto", "Pretoria East", "Midrand", "Centurion",
}

func main() {
	numEmployers := flag.Int("employers", 3, "Number of demo employers to create")
	numSeekers := flag.Int("seekers", 10, "Number of demo seekers to create")
	jobsPerEmployer := flag.Int("jobs", 4, "Number of demo jobs per employer")
	flag.Parse()

	database.ConnectDatabase()
	if err := database.MigrateDatabase(); err != nil {
		log.Fatalf("Failed to run database migrations: %v", err)
	}

	ctx := context.Background()
	userRepo := repository.NewUserRepository(database.DB)
	jobRepo := repository.NewJobRepository(database.DB)

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("Failed to hash demo password: %v", err)
	}

	for i := 0; i < *numSeekers; i++ {
		seeker := models.User{
			Name:       fmt.Sprintf("Demo Seeker %d", i+1),
			Email:      fmt.Sprintf("seeker%d@example.com", i+1),
			Password:   string(hash),
			Phone:      fmt.Sprintf("+2771000%04d", i+1),
			Role:       models.RoleSeeker,
			UserNumber: utils.GenerateUserNumber(),
			Bio:        "Reliable and hard working, available on short notice.",
		}
		if err := userRepo.Create(ctx, &seeker); err != nil {
			log.Printf("Skipping seeker %s: %v", seeker.Email, err)
		}
	}
	log.Printf("Seeded %d seekers", *numSeekers)

	for i := 0; i < *numEmployers; i++ {
		employer := models.User{
			Name:         fmt.Sprintf("Demo Employer %d", i+1),
			Email:        fmt.Sprintf("employer%d@example.com", i+1),
			Password:     string(hash),
			Phone:        fmt.Sprintf("+2772000%04d", i+1),
			Role:         models.RoleEmployer,
			UserNumber:   utils.GenerateUserNumber(),
			BusinessName: fmt.Sprintf("Demo Business %d", i+1),
		}
		if err := userRepo.Create(ctx, &employer); err != nil {
			log.Printf("Skipping employer %s: %v", employer.Email, err)
			continue
		}

		for j := 0; j < *jobsPerEmployer; j++ {
			category := models.JobCategories[j%len(models.JobCategories)]
			job := models.Job{
				EmployerID:      employer.ID,
				ReferenceNumber: utils.GenerateReferenceNumber(),
				Category:        category,
				Description:     fmt.Sprintf("Demo %s work, tools provided.", category),
				Location:        demoLocations[(i+j)%len(demoLocations)],
				Date:            "2026-09-15",
				TimeFrom:        "08:00",
				TimeTo:          "16:00",
				Duration:        8,
				Payment:         350 + float64(j)*50,
				Currency:        "ZAR",
				Status:          models.JobStatusOpen,
			}
			if err := jobRepo.Create(ctx, &job); err != nil {
				log.Printf("Skipping job %s: %v", job.ReferenceNumber, err)
			}
		}
	}
	log.Printf("Seeded %d employers with %d jobs each", *numEmployers, *jobsPerEmployer)
}
