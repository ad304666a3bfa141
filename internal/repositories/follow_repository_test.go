package repositories_test

import (
	"errors"
	"testing"

	"socialite/internal/models"
	"socialite/internal/repositories"
)

func TestCreateFollowDuplicateHitsConstraint(t *testing.T) {
	db := newTestDB(t)
	repo := repositories.NewPostgresFollowRepository(db)
	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")

	if err := repo.CreateFollow(&models.Follow{FollowerID: alice.ID, FollowedID: bob.ID}); err != nil {
		t.Fatalf("first follow: %v", err)
	}

	// Straight to the storage layer: the unique pair index, not a
	// pre-check, is what rejects the duplicate.
	err := repo.CreateFollow(&models.Follow{FollowerID: alice.ID, FollowedID: bob.ID})
	if !errors.Is(err, repositories.ErrAlreadyFollowing) {
		t.Fatalf("expected ErrAlreadyFollowing, got %v", err)
	}

	var count int64
	db.Model(&models.Follow{}).Count(&count)
	if count != 1 {
		t.Fatalf("expected 1 edge, got %d", count)
	}
}

func TestDeleteFollowAbsentEdge(t *testing.T) {
	db := newTestDB(t)
	repo := repositories.NewPostgresFollowRepository(db)
	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")

	err := repo.DeleteFollow(alice.ID, bob.ID)
	if !errors.Is(err, repositories.ErrNotFollowing) {
		t.Fatalf("expected ErrNotFollowing, got %v", err)
	}
}

func TestGetFollowingIDs(t *testing.T) {
	db := newTestDB(t)
	repo := repositories.NewPostgresFollowRepository(db)
	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")
	carol := seedUser(t, db, "carol")

	if err := repo.CreateFollow(&models.Follow{FollowerID: alice.ID, FollowedID: bob.ID}); err != nil {
		t.Fatalf("follow bob: %v", err)
	}
	if err := repo.CreateFollow(&models.Follow{FollowerID: alice.ID, FollowedID: carol.ID}); err != nil {
		t.Fatalf("follow carol: %v", err)
	}

	ids, err := repo.GetFollowingIDs(alice.ID)
	if err != nil {
		t.Fatalf("GetFollowingIDs: %v", err)
	}
	if len(ids) != 2 {
		t.Fatalf("expected 2 followed IDs, got %v", ids)
	}

	ids, err = repo.GetFollowingIDs(bob.ID)
	if err != nil {
		t.Fatalf("GetFollowingIDs: %v", err)
	}
	if len(ids) != 0 {
		t.Fatalf("expected no followed IDs for bob, got %v", ids)
	}
}
