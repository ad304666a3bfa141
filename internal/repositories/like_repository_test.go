package repositories_test

import (
	"errors"
	"sync"
	"testing"

	"socialite/internal/models"
	"socialite/internal/repositories"
)

func TestCreateLikeDuplicateHitsConstraint(t *testing.T) {
	db := newTestDB(t)
	repo := repositories.NewPostgresLikeRepository(db)
	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")
	post := seedPost(t, db, bob.ID, "hello")

	if err := repo.CreateLike(&models.Like{UserID: alice.ID, PostID: post.ID}, nil); err != nil {
		t.Fatalf("first like: %v", err)
	}

	err := repo.CreateLike(&models.Like{UserID: alice.ID, PostID: post.ID}, nil)
	if !errors.Is(err, repositories.ErrAlreadyLiked) {
		t.Fatalf("expected ErrAlreadyLiked, got %v", err)
	}

	var count int64
	db.Model(&models.Like{}).Count(&count)
	if count != 1 {
		t.Fatalf("expected 1 like, got %d", count)
	}
}

func TestCreateLikeWritesNotificationAtomically(t *testing.T) {
	db := newTestDB(t)
	repo := repositories.NewPostgresLikeRepository(db)
	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")
	post := seedPost(t, db, bob.ID, "hello")

	like := &models.Like{UserID: alice.ID, PostID: post.ID}
	notification := &models.Notification{
		RecipientID: bob.ID,
		ActorID:     alice.ID,
		Verb:        models.VerbLiked,
		TargetType:  models.TargetPost,
		TargetID:    post.ID,
	}
	if err := repo.CreateLike(like, notification); err != nil {
		t.Fatalf("CreateLike: %v", err)
	}

	var likes, notifications int64
	db.Model(&models.Like{}).Count(&likes)
	db.Model(&models.Notification{}).Count(&notifications)
	if likes != 1 || notifications != 1 {
		t.Fatalf("expected 1 like and 1 notification, got %d and %d", likes, notifications)
	}
}

func TestCreateLikeDuplicateRollsBackNotification(t *testing.T) {
	db := newTestDB(t)
	repo := repositories.NewPostgresLikeRepository(db)
	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")
	post := seedPost(t, db, bob.ID, "hello")

	notif := func() *models.Notification {
		return &models.Notification{
			RecipientID: bob.ID,
			ActorID:     alice.ID,
			Verb:        models.VerbLiked,
			TargetType:  models.TargetPost,
			TargetID:    post.ID,
		}
	}

	if err := repo.CreateLike(&models.Like{UserID: alice.ID, PostID: post.ID}, notif()); err != nil {
		t.Fatalf("first like: %v", err)
	}
	if err := repo.CreateLike(&models.Like{UserID: alice.ID, PostID: post.ID}, notif()); !errors.Is(err, repositories.ErrAlreadyLiked) {
		t.Fatalf("expected ErrAlreadyLiked, got %v", err)
	}

	// The failed like must not leave a second notification behind.
	var notifications int64
	db.Model(&models.Notification{}).Count(&notifications)
	if notifications != 1 {
		t.Fatalf("expected 1 notification after rolled-back duplicate, got %d", notifications)
	}
}

func TestConcurrentDuplicateLikes(t *testing.T) {
	db := newTestDB(t)
	repo := repositories.NewPostgresLikeRepository(db)
	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")
	post := seedPost(t, db, bob.ID, "hello")

	const attempts = 4
	errs := make([]error, attempts)
	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = repo.CreateLike(&models.Like{UserID: alice.ID, PostID: post.ID}, nil)
		}(i)
	}
	wg.Wait()

	var successes, conflicts int
	for _, err := range errs {
		switch {
		case err == nil:
			successes++
		case errors.Is(err, repositories.ErrAlreadyLiked):
			conflicts++
		default:
			t.Fatalf("unexpected error from racing like: %v", err)
		}
	}
	if successes != 1 || conflicts != attempts-1 {
		t.Fatalf("expected 1 winner and %d conflicts, got %d and %d", attempts-1, successes, conflicts)
	}

	var count int64
	db.Model(&models.Like{}).Count(&count)
	if count != 1 {
		t.Fatalf("expected 1 like after the race, got %d", count)
	}
}

func TestDeleteLikeAbsent(t *testing.T) {
	db := newTestDB(t)
	repo := repositories.NewPostgresLikeRepository(db)
	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")
	post := seedPost(t, db, bob.ID, "hello")

	err := repo.DeleteLike(post.ID, alice.ID)
	if !errors.Is(err, repositories.ErrLikeNotFound) {
		t.Fatalf("expected ErrLikeNotFound, got %v", err)
	}
}
