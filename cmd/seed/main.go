package main // Seeds the event catalog

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"

	"github.com/iliyamo/college-event-ticketing/internal/config"
	"github.com/iliyamo/college-event-ticketing/internal/database"
	"github.com/iliyamo/college-event-ticketing/internal/model"
	"github.com/iliyamo/college-event-ticketing/internal/repository"
)

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		log.Fatalf("bad seed date %q: %v", s, err)
	}
	return t
}

// campusEvents is the fixed catalog for the academic year.  Seeding is
// idempotent: events already present by name are skipped.
func campusEvents() []model.Event {
	return []model.Event{
		{
			Name:        "Sankalan",
			Description: "The annual tech fest of the Computer Science department. Get ready for coding, gaming, and more.",
			Date:        day("2025-12-10"),
			Time:        "10:00 AM",
			Venue:       "Main Auditorium",
			PosterURL:   "/images/sankalan.jpg",
			Category:    "Technology",
			SeatRows:    10,
			SeatCols:    12,
		},
		{
			Name:        "Freshers Party",
			Description: "A warm welcome to all the new students. Music, dance, and fun await!",
			Date:        day("2025-11-20"),
			Time:        "6:00 PM",
			Venue:       "College Lawns",
			PosterURL:   "/images/Freshers.webp",
			Category:    "Festivals",
			SeatRows:    8,
			SeatCols:    10,
		},
		{
			Name:        "Farewell",
			Description: "Bidding adieu to the graduating batch. A night of memories and celebration.",
			Date:        day("2026-04-15"),
			Time:        "7:00 PM",
			Venue:       "Main Auditorium",
			PosterURL:   "/images/farewell.webp",
			Category:    "Festivals",
			SeatRows:    10,
			SeatCols:    12,
		},
		{
			Name:        "Diwali Night",
			Description: "Celebrate the festival of lights with the entire college. Fireworks, sweets, and cultural performances.",
			Date:        day("2025-11-01"),
			Time:        "6:30 PM",
			Venue:       "Sports Ground",
			PosterURL:   "/images/diwali.webp",
			Category:    "Festivals",
			SeatRows:    15,
			SeatCols:    15,
		},
		{
			Name:        "Graduation Party",
			Description: "The official graduation ceremony and celebration party. Don your caps!",
			Date:        day("2026-05-01"),
			Time:        "5:00 PM",
			Venue:       "Main Auditorium",
			PosterURL:   "/images/graduation.webp",
			Category:    "Festivals",
			SeatRows:    10,
			SeatCols:    12,
		},
		{
			Name:        "Annual Fest",
			Description: "The biggest event of the year! Star nights, competitions, and food stalls.",
			Date:        day("2026-02-14"),
			Time:        "12:00 PM",
			Venue:       "Entire Campus",
			PosterURL:   "/images/anuual.webp",
			Category:    "Festivals",
			SeatRows:    20,
			SeatCols:    20,
		},
		{
			Name:        "Talent Show",
			Description: "Showcase your hidden talents. Singing, dancing, magic, and more.",
			Date:        day("2025-12-01"),
			Time:        "4:00 PM",
			Venue:       "Mini Auditorium",
			PosterURL:   "/images/talent.webp",
			Category:    "Talent",
			SeatRows:    8,
			SeatCols:    8,
		},
		{
			Name:        "Alumni Meet",
			Description: "Reconnect with old friends and network with graduates from your college.",
			Date:        day("2026-01-10"),
			Time:        "11:00 AM",
			Venue:       "Seminar Hall",
			PosterURL:   "/images/alumni.webp",
			Category:    "Talent",
			SeatRows:    10,
			SeatCols:    10,
		},
		{
			Name:        "Inter-College Cricket",
			Description: "The final match of the inter-college cricket tournament. See the titans clash!",
			Date:        day("2026-01-20"),
			Time:        "9:00 AM",
			Venue:       "Main Sports Ground",
			PosterURL:   "/images/collegecricket.webp",
			Category:    "Sport",
			SeatRows:    20,
			SeatCols:    20,
		},
		{
			Name:        "Hackathon 24H",
			Description: "A 24-hour non-stop coding competition. Build, innovate, and win!",
			Date:        day("2026-03-05"),
			Time:        "5:00 PM",
			Venue:       "Computer Labs",
			PosterURL:   "/images/hackathon.webp",
			Category:    "Technology",
			SeatRows:    15,
			SeatCols:    10,
		},
		{
			Name:        "Annual Sports Day",
			Description: "Track and field events, team relays, and more. Come cheer for your friends.",
			Date:        day("2026-02-01"),
			Time:        "8:00 AM",
			Venue:       "Main Sports Ground",
			PosterURL:   "/images/annualsport.webp",
			Category:    "Sport",
			SeatRows:    20,
			SeatCols:    20,
		},
	}
}

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()
	if err := database.Migrate(db); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	events := repository.NewEventRepo(db)
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	created, skipped := 0, 0
	for _, e := range campusEvents() {
		exists, err := events.ExistsByName(ctx, e.Name)
		if err != nil {
			log.Fatalf("check %q: %v", e.Name, err)
		}
		if exists {
			skipped++
			continue
		}
		if err := events.Create(ctx, &e); err != nil {
			log.Fatalf("create %q: %v", e.Name, err)
		}
		log.Printf("seeded %q (id=%d, %dx%d seats)", e.Name, e.ID, e.SeatRows, e.SeatCols)
		created++
	}
	log.Printf("seed done: %d created, %d already present", created, skipped)
}
