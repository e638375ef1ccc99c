package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"cinebook/internal/movies"
	"cinebook/internal/shared/config"
	"cinebook/internal/shared/database"
	"cinebook/internal/shows"
	"cinebook/internal/users"
)

type Seeder struct {
	db *database.DB
}

func main() {
	fmt.Println("🌱 Starting CineBook Database Seeder...")

	cfg := config.Load()

	db, err := database.InitDB(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	seeder := &Seeder{db: db}

	fmt.Println("\n🧹 Cleaning database...")
	if err := seeder.CleanDatabase(); err != nil {
		log.Fatalf("Failed to clean database: %v", err)
	}
	fmt.Println("✅ Database cleaned successfully")

	fmt.Println("\n🌱 Seeding database...")
	if err := seeder.SeedAll(); err != nil {
		log.Fatalf("Failed to seed database: %v", err)
	}
	fmt.Println("✅ Database seeded successfully")

	fmt.Println("\n🎉 Seeding completed! Database is ready for testing.")
}

// CleanDatabase truncates all tables in reverse dependency order.
func (s *Seeder) CleanDatabase() error {
	tables := []string{
		"bookings",
		"shows",
		"movies",
		"users",
	}

	tx := s.db.PostgreSQL.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	for _, table := range tables {
		fmt.Printf("  Truncating table: %s\n", table)
		if err := tx.Exec(fmt.Sprintf("TRUNCATE TABLE %s RESTART IDENTITY CASCADE", table)).Error; err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to truncate table %s: %w", table, err)
		}
	}

	return tx.Commit().Error
}

// SeedAll seeds all required data
func (s *Seeder) SeedAll() error {
	ctx := context.Background()

	if _, err := s.SeedUsers(); err != nil {
		return fmt.Errorf("failed to seed users: %w", err)
	}

	movieIDs, err := s.SeedMovies()
	if err != nil {
		return fmt.Errorf("failed to seed movies: %w", err)
	}

	if err := s.SeedShows(movieIDs); err != nil {
		return fmt.Errorf("failed to seed shows: %w", err)
	}

	// Clear Redis cache to ensure fresh state
	if s.db.Redis != nil {
		if err := s.db.Redis.FlushDB(ctx).Err(); err != nil {
			log.Printf("Warning: Failed to clear Redis cache: %v", err)
		}
	}

	return nil
}

// SeedUsers creates 1 admin and 2 regular users
func (s *Seeder) SeedUsers() (map[string]uuid.UUID, error) {
	fmt.Println("  👤 Seeding users...")

	userIDs := make(map[string]uuid.UUID)

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte("qwerty"), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	usersData := []struct {
		key   string
		name  string
		email string
		role  users.Role
	}{
		{"admin", "Admin User", "admin@cinebook.local", users.RoleAdmin},
		{"user1", "Asha Rao", "asha@example.com", users.RoleUser},
		{"user2", "Dev Patel", "dev@example.com", users.RoleUser},
	}

	for _, userData := range usersData {
		user := users.User{
			ID:        uuid.New(),
			Name:      userData.name,
			Email:     userData.email,
			Password:  string(hashedPassword),
			Role:      userData.role,
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		}

		if err := s.db.PostgreSQL.Create(&user).Error; err != nil {
			return nil, fmt.Errorf("failed to create user %s: %w", userData.email, err)
		}

		userIDs[userData.key] = user.ID
		fmt.Printf("    ✅ Created user: %s (%s)\n", user.Email, user.Role)
	}

	return userIDs, nil
}

// SeedMovies creates the sample catalog
func (s *Seeder) SeedMovies() ([]uuid.UUID, error) {
	fmt.Println("  🎬 Seeding movies...")

	moviesData := []movies.Movie{
		{Title: "Interstellar", DurationMinutes: 169, Rating: "PG-13", Description: "A team of explorers travel through a wormhole in space."},
		{Title: "The Grand Budapest Hotel", DurationMinutes: 99, Rating: "R", Description: "The adventures of a legendary concierge and his protégé."},
		{Title: "Spirited Away", DurationMinutes: 125, Rating: "PG", Description: "A girl wanders into a world ruled by spirits and witches."},
		{Title: "Mad Max: Fury Road", DurationMinutes: 120, Rating: "R", Description: "A woman rebels against a tyrannical ruler in a post-apocalyptic wasteland."},
	}

	ids := make([]uuid.UUID, 0, len(moviesData))
	for i := range moviesData {
		moviesData[i].ID = uuid.New()
		if err := s.db.PostgreSQL.Create(&moviesData[i]).Error; err != nil {
			return nil, fmt.Errorf("failed to create movie %s: %w", moviesData[i].Title, err)
		}
		ids = append(ids, moviesData[i].ID)
		fmt.Printf("    ✅ Created movie: %s\n", moviesData[i].Title)
	}

	return ids, nil
}

// SeedShows schedules upcoming shows across the screens
func (s *Seeder) SeedShows(movieIDs []uuid.UUID) error {
	fmt.Println("  🎟️  Seeding shows...")

	screens := []string{"Screen 1", "Screen 2", "Screen 3"}
	prices := []float64{250, 350, 500}

	// Two showtimes per movie over the next few days, all comfortably
	// beyond the scheduling advance window.
	base := time.Now().Add(24 * time.Hour).Truncate(time.Hour)

	count := 0
	for i, movieID := range movieIDs {
		for j := 0; j < 2; j++ {
			show := shows.Show{
				ID:         uuid.New(),
				MovieID:    movieID,
				ScreenName: screens[(i+j)%len(screens)],
				DateTime:   base.Add(time.Duration(i*24+j*6) * time.Hour),
				TotalSeats: 100,
				Price:      prices[(i+j)%len(prices)],
			}

			if err := s.db.PostgreSQL.Create(&show).Error; err != nil {
				return fmt.Errorf("failed to create show: %w", err)
			}
			count++
		}
	}

	fmt.Printf("    ✅ Created %d shows\n", count)
	return nil
}
