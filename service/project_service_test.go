package service

import (
	"context"
	"errors"
	"testing"

	"aeroprocure-backend/models"
	"aeroprocure-backend/repository"
	"aeroprocure-backend/wizard"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// lazyPool builds a pool that never connects; pgxpool defers connection
// establishment, so guard paths that return before the first query can run
// without a database.
func lazyPool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	pool, err := pgxpool.New(context.Background(), "postgres://u:p@localhost:5432/none")
	if err != nil {
		t.Fatalf("pgxpool.New: %v", err)
	}
	t.Cleanup(pool.Close)
	return pool
}

func TestPublishProject_RequiresDatabase(t *testing.T) {
	svc := NewProjectService(
		WithProjectRepository(repository.NewProjectRepository(nil)),
		WithRequirementRepository(repository.NewRequirementRepository(nil)),
		WithProposalRepository(repository.NewProposalRepository(nil)),
	)

	_, err := svc.PublishProject(context.Background(), PublishProjectRequest{
		BuyerID: uuid.New(),
		Input: &wizard.PublishInput{
			Title:        "Crew rostering replacement",
			Requirements: []wizard.PublishRequirement{{Text: "a", Type: "text", Weight: 100}},
		},
	})
	if err == nil {
		t.Fatal("publish without a transaction-capable pool must fail fast")
	}
}

func TestPublishProject_RejectsEmptyInput(t *testing.T) {
	pool := lazyPool(t)
	svc := NewProjectService(
		WithDatabase(pool),
		WithProjectRepository(repository.NewProjectRepository(pool)),
		WithRequirementRepository(repository.NewRequirementRepository(pool)),
		WithProposalRepository(repository.NewProposalRepository(pool)),
	)

	cases := []struct {
		name  string
		input *wizard.PublishInput
	}{
		{"nil input", nil},
		{"no requirements", &wizard.PublishInput{Title: "Crew rostering"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.PublishProject(context.Background(), PublishProjectRequest{
				BuyerID: uuid.New(),
				Input:   tc.input,
			})
			if !errors.Is(err, ErrNothingToPublish) {
				t.Errorf("err = %v, want ErrNothingToPublish", err)
			}
		})
	}
}

func TestCanTransitionStatus(t *testing.T) {
	cases := []struct {
		from, to models.ProjectStatus
		want     bool
	}{
		{models.ProjectStatusPublished, models.ProjectStatusAwarded, true},
		{models.ProjectStatusPublished, models.ProjectStatusArchived, true},
		{models.ProjectStatusDraft, models.ProjectStatusArchived, true},
		{models.ProjectStatusAwarded, models.ProjectStatusArchived, true},
		{models.ProjectStatusDraft, models.ProjectStatusAwarded, false},
		{models.ProjectStatusArchived, models.ProjectStatusAwarded, false},
		{models.ProjectStatusArchived, models.ProjectStatusArchived, false},
		{models.ProjectStatusDraft, models.ProjectStatusPublished, false}, // publish-only path
		{models.ProjectStatusAwarded, models.ProjectStatusPublished, false},
	}
	for _, tc := range cases {
		if got := CanTransitionStatus(tc.from, tc.to); got != tc.want {
			t.Errorf("CanTransitionStatus(%s, %s) = %v, want %v", tc.from, tc.to, got, tc.want)
		}
	}
}
