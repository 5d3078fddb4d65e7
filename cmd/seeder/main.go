// cmd/seeder/main.go
package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/brightpixel/agency-backend/internal/config"
	"github.com/brightpixel/agency-backend/internal/db"
	"github.com/brightpixel/agency-backend/internal/model"
	"github.com/brightpixel/agency-backend/internal/repository"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	ctx := context.Background()
	client, err := db.Connect(ctx, cfg.MongoURI)
	if err != nil {
		log.Fatal(err)
	}
	defer client.Disconnect(ctx)

	repo := repository.NewCustomerRepository(client.Database(cfg.MongoDatabase))
	if err := repo.EnsureIndexes(ctx); err != nil {
		log.Fatalf("failed to ensure indexes: %v", err)
	}

	now := time.Now().UTC()
	customers := []*model.Customer{
		{
			FirstName: "Alice",
			LastName:  "Smith",
			Email:     "alice.smith@example.com",
			Phone:     "+254 712 345 678",
			Company:   "Smith & Co",
			Status:    model.StatusContacted,
			Inquiries: []model.Inquiry{
				{
					ServicesInterested: []string{"Search Engine Optimization (SEO)", "Content Creation"},
					Budget:             "$1,000 - $5,000",
					Message:            "Looking to improve our organic traffic.",
					HowDidYouHear:      "Google Search",
					CreatedAt:          now.Add(-72 * time.Hour),
				},
				{
					ServicesInterested: []string{"Email Marketing"},
					Budget:             "$1,000 - $5,000",
					HowDidYouHear:      "Google Search",
					CreatedAt:          now.Add(-24 * time.Hour),
				},
			},
		},
		{
			FirstName: "Bob",
			LastName:  "Jones",
			Email:     "bob.jones@example.com",
			Phone:     "(020) 555-0134",
			Status:    model.StatusNew,
			Inquiries: []model.Inquiry{
				{
					ServicesInterested: []string{"Web Design & Development"},
					Budget:             model.DefaultBudget,
					Message:            "Need a new website for my bakery.",
					HowDidYouHear:      "Referral",
					CreatedAt:          now.Add(-48 * time.Hour),
				},
			},
		},
		{
			FirstName: "Carol",
			LastName:  "White",
			Email:     "carol.white@example.com",
			Phone:     "+1 415 555 0199",
			Company:   "White Consulting",
			Status:    model.StatusConverted,
			Inquiries: []model.Inquiry{
				{
					ServicesInterested: []string{"Social Media Marketing (SMM)", "Influencer Marketing"},
					Budget:             "$10,000 - $25,000",
					HowDidYouHear:      "Social Media",
					CreatedAt:          now.Add(-240 * time.Hour),
				},
			},
		},
	}

	for _, c := range customers {
		if err := repo.Insert(ctx, c); err != nil {
			log.Fatalf("failed to seed %s: %v", c.Email, err)
		}
		fmt.Printf("Seeded: %s\n", c.Email)
	}

	fmt.Println("Database seeding completed successfully!")
}
