package main

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"time"

	"tourhub/config"
	"tourhub/database"
	"tourhub/database/repository"
	"tourhub/models"

	"go.mongodb.org/mongo-driver/bson"
)

// Seeds a development database with users of every role, a package
// catalogue, bookings between tourists and guides, and a few stories.
func main() {
	config.LoadConfig()
	cfg := config.AppConfig

	client, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect: %v", err)
	}
	defer client.Disconnect(context.Background())
	db := client.Database(cfg.DatabaseName)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// Clear existing data.
	for _, name := range []string{database.UsersCollection, database.PackagesCollection, database.BookingsCollection, database.StoriesCollection} {
		if _, err := db.Collection(name).DeleteMany(ctx, bson.M{}); err != nil {
			log.Fatalf("Failed to clear %s collection: %v", name, err)
		}
	}

	repos, err := repository.NewMongoRepositories(db)
	if err != nil {
		log.Fatalf("Failed to initialize repositories: %v", err)
	}

	// Users: one admin, a handful of guides and tourists, and plain users.
	var guides, tourists []models.User
	newUser := func(role models.Role, i int) models.User {
		u := models.User{
			Email: fmt.Sprintf("%s%d@example.com", role, i),
			Name:  fmt.Sprintf("%s %d", role, i),
			Photo: fmt.Sprintf("https://i.pravatar.cc/150?u=%s%d", role, i),
			Role:  role,
		}
		if role == models.RoleGuide {
			now := time.Now()
			u.Status = models.StatusApproved
			u.ApprovedAt = &now
		}
		if err := repos.Users.Create(ctx, &u); err != nil {
			log.Fatalf("Failed to insert user %s: %v", u.Email, err)
		}
		return u
	}
	newUser(models.RoleAdmin, 1)
	for i := 1; i <= 4; i++ {
		guides = append(guides, newUser(models.RoleGuide, i))
		tourists = append(tourists, newUser(models.RoleTourist, i))
		newUser(models.RoleUser, i)
	}

	destinations := []string{"Sundarbans", "Cox's Bazar", "Sajek Valley", "Srimangal", "Bandarban", "Saint Martin"}
	var packages []models.Package
	for i, name := range destinations {
		pkg := models.Package{
			"name":     name,
			"tourType": []string{"Adventure", "Beach", "Hills", "Wildlife"}[i%4],
			"price":    150 + 50*i,
			"days":     2 + i%3,
			"images":   []string{fmt.Sprintf("https://picsum.photos/seed/%d/800/600", i)},
		}
		id, err := repos.Packages.Create(ctx, pkg)
		if err != nil {
			log.Fatalf("Failed to insert package %s: %v", name, err)
		}
		pkg["_id"] = id
		packages = append(packages, pkg)
	}

	statuses := []models.BookingStatus{models.BookingPending, models.BookingInReview, models.BookingAccepted, models.BookingRejected}
	bookingCount := 0
	for _, tourist := range tourists {
		for j := 0; j < 3; j++ {
			guide := guides[rand.Intn(len(guides))]
			pkg := packages[rand.Intn(len(packages))]
			b := models.Booking{
				PackageName:  fmt.Sprint(pkg["name"]),
				TourDate:     time.Now().AddDate(0, 0, 7+rand.Intn(60)).Format("2006-01-02"),
				TouristEmail: tourist.Email,
				TouristName:  tourist.Name,
				TouristPhoto: tourist.Photo,
				GuideEmail:   guide.Email,
				GuideName:    guide.Name,
				GuidePhoto:   guide.Photo,
				TotalPrice:   pkg["price"],
				Status:       statuses[rand.Intn(len(statuses))],
			}
			if err := repos.Bookings.Create(ctx, &b); err != nil {
				log.Fatalf("Failed to insert booking: %v", err)
			}
			if b.Status != models.BookingPending {
				if _, err := repos.Bookings.RecordPayment(ctx, b.ID, models.PaymentRecord{
					Status:        b.Status,
					TransactionID: fmt.Sprintf("pi_seed_%d", bookingCount),
					PaidAt:        time.Now(),
				}); err != nil {
					log.Fatalf("Failed to record payment: %v", err)
				}
			}
			bookingCount++
		}
	}

	authors := []models.User{guides[0], guides[1], tourists[0], tourists[1]}
	storyCount := 0
	for _, author := range authors {
		s := models.Story{
			Title:  fmt.Sprintf("A weekend in %s", destinations[storyCount%len(destinations)]),
			Text:   "Early boats, long walks and the best tea of the trip.",
			Images: []string{fmt.Sprintf("https://picsum.photos/seed/story%d/800/600", storyCount)},
			Author: models.StoryAuthor{
				ID:    author.ID,
				Name:  author.Name,
				Email: author.Email,
				Photo: author.Photo,
				Role:  author.Role,
			},
		}
		if err := repos.Stories.Create(ctx, &s); err != nil {
			log.Fatalf("Failed to insert story: %v", err)
		}
		storyCount++
	}

	fmt.Printf("Seeded %d guides, %d tourists, %d packages, %d bookings, %d stories\n",
		len(guides), len(tourists), len(packages), bookingCount, storyCount)
}
