// Command datagen writes a synthetic user_events.csv for seeding the
// analytics database during local development.
package main

import (
	"flag"
	"fmt"
	"log"
	"math"
	"math/rand"
	"os"
	"time"

	"engagelens/api/analytics"
	"engagelens/api/models"

	"github.com/google/uuid"
)

// Revenue multipliers per category; electronics orders are the largest.
var categoryMultipliers = map[string]float64{
	"Electronics":   3.0,
	"Clothing":      1.0,
	"Home & Garden": 2.0,
	"Sports":        1.5,
	"Books":         0.5,
}

func main() {
	var (
		numSessions = flag.Int("sessions", 750, "number of sessions to generate")
		seed        = flag.Int64("seed", 42, "random seed")
		out         = flag.String("out", "user_events.csv", "output CSV path")
	)
	flag.Parse()

	rng := rand.New(rand.NewSource(*seed))
	events := generate(rng, *numSessions)

	f, err := os.Create(*out)
	if err != nil {
		log.Fatalf("Failed to create %s: %v", *out, err)
	}
	defer f.Close()

	if err := analytics.WriteCSV(f, events); err != nil {
		log.Fatalf("Failed to write CSV: %v", err)
	}
	log.Printf("Wrote %d sessions to %s", len(events), *out)
}

func generate(rng *rand.Rand, numSessions int) []models.SessionEvent {
	numUsers := numSessions / 3 // a user averages three sessions
	if numUsers < 1 {
		numUsers = 1
	}
	start := time.Now().UTC().AddDate(0, 0, -90)

	events := make([]models.SessionEvent, 0, numSessions)
	for i := 0; i < numSessions; i++ {
		userNum := rng.Intn(numUsers) + 1

		pageViews := int(gamma(rng, 2, 2)) + 1
		if pageViews > 20 {
			pageViews = 20
		}
		timeOnPage := int(rng.ExpFloat64()*180) + 30
		if timeOnPage > 1800 {
			timeOnPage = 1800
		}
		triggered := poisson(rng, float64(pageViews)*1.5)

		category := models.Categories[rng.Intn(len(models.Categories))]

		// Early user IDs skew heavily toward returning visitors.
		isReturning := userNum < int(float64(numUsers)*0.4) || rng.Float64() < 0.3

		convProb := 0.05 + float64(pageViews)*0.01
		if isReturning {
			convProb += 0.1
		}
		if convProb > 0.5 {
			convProb = 0.5
		}
		converted := rng.Float64() < convProb

		revenue := 0.0
		if converted {
			revenue = math.Round(gamma(rng, 2, 30)*categoryMultipliers[category]*100) / 100
		}

		day := start.AddDate(0, 0, rng.Intn(91))
		events = append(events, models.SessionEvent{
			UserID:          fmt.Sprintf("user_%05d", userNum),
			SessionID:       uuid.New().String(),
			PageViews:       pageViews,
			TimeOnPage:      timeOnPage,
			EventsTriggered: triggered,
			Category:        category,
			IsReturning:     isReturning,
			Converted:       converted,
			Revenue:         revenue,
			SessionDate:     time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC),
		})
	}
	return events
}

// gamma samples a Gamma(shape, scale) value for integer shapes as a sum of
// exponentials.
func gamma(rng *rand.Rand, shape int, scale float64) float64 {
	var sum float64
	for i := 0; i < shape; i++ {
		sum += rng.ExpFloat64()
	}
	return sum * scale
}

// poisson samples a Poisson(lambda) count (Knuth's method; lambdas here stay
// small).
func poisson(rng *rand.Rand, lambda float64) int {
	l := math.Exp(-lambda)
	k := 0
	p := 1.0
	for {
		p *= rng.Float64()
		if p <= l {
			return k
		}
		k++
	}
}
