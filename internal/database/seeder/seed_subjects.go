package seeder

import (
	"context"

	"gigmatch/internal/database"
)

// SubjectsSeeder opens one job and one offer owned by the demo accounts.
// Fixed ids keep reruns idempotent.
type SubjectsSeeder struct{}

func (SubjectsSeeder) Name() string { return "subjects" }

func (SubjectsSeeder) Run(ctx context.Context, db database.DB) error {
	tx, err := db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback(context.Background())
	}()

	items := []struct {
		ID           string
		OwnerID      string
		Kind         string
		Title        string
		Description  string
		CapacityMode string
		Slots        int
	}{
		{
			ID:           "aa1f8e0a-0001-4000-8000-000000000001",
			OwnerID:      "9d1f8e0a-0001-4000-8000-000000000001",
			Kind:         "job",
			Title:        "Move a two-seater couch across town",
			Description:  "Pickup in the city centre, dropoff 6km away. One helper is enough.",
			CapacityMode: "single",
			Slots:        1,
		},
		{
			ID:           "aa1f8e0a-0001-4000-8000-000000000002",
			OwnerID:      "9d1f8e0a-0001-4000-8000-000000000002",
			Kind:         "job",
			Title:        "Catering crew for a garden party",
			Description:  "Need three pairs of hands for an afternoon.",
			CapacityMode: "multi",
			Slots:        3,
		},
		{
			ID:           "aa1f8e0a-0002-4000-8000-000000000001",
			OwnerID:      "9d1f8e0a-0002-4000-8000-000000000001",
			Kind:         "offer",
			Title:        "Courier with cargo bike, weekday evenings",
			Description:  "Anything up to 40kg within the city.",
			CapacityMode: "single",
			Slots:        1,
		},
	}

	for _, it := range items {
		_, err := tx.Exec(ctx,
			`INSERT INTO subjects (id, owner_id, kind, title, description, capacity_mode, slots_total, slots_remaining, status)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $7, 'open')
			 ON CONFLICT (id) DO NOTHING`,
			it.ID, it.OwnerID, it.Kind, it.Title, it.Description, it.CapacityMode, it.Slots,
		)
		if err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}
