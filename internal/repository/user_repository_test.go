package repository_test

import (
	"errors"
	"testing"
	"time"

	"github.com/SketchShifter/journal_backend/internal/models"
	"github.com/SketchShifter/journal_backend/internal/repository"
	"github.com/SketchShifter/journal_backend/internal/testutil"
)

func TestUserRepository_Create_Duplicate(t *testing.T) {
	db := testutil.NewDB(t)
	createUser(t, db, "me@example.com")

	err := repository.NewUserRepository(db).Create(&models.User{Email: "me@example.com", PasswordHash: "!", Username: "x"})
	if !errors.Is(err, repository.ErrDuplicate) {
		t.Fatalf("expected duplicate error, got %v", err)
	}
}

func TestUserRepository_Delete_Cascade(t *testing.T) {
	db := testutil.NewDB(t)
	users := repository.NewUserRepository(db)
	entries := repository.NewEntryRepository(db)
	tokens := repository.NewTokenRepository(db)

	user := createUser(t, db, "me@example.com")
	other := createUser(t, db, "other@example.com")

	if err := entries.Create(&models.Entry{Title: "t", Content: "c", UserID: user.ID}, []string{"shared"}); err != nil {
		t.Fatalf("create entry: %v", err)
	}
	if err := entries.Create(&models.Entry{Title: "t", Content: "c", UserID: other.ID}, []string{"shared"}); err != nil {
		t.Fatalf("create other entry: %v", err)
	}
	if err := tokens.Create(&models.AuthToken{Key: "session", UserID: user.ID, ExpiresAt: time.Now().Add(time.Hour)}); err != nil {
		t.Fatalf("create token: %v", err)
	}

	if err := users.Delete(user.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := users.Delete(user.ID); !errors.Is(err, repository.ErrNotFound) {
		t.Errorf("second delete: %v", err)
	}

	if _, err := users.FindByID(user.ID); !errors.Is(err, repository.ErrNotFound) {
		t.Errorf("user still exists: %v", err)
	}
	if _, err := tokens.FindByKey("session"); !errors.Is(err, repository.ErrNotFound) {
		t.Errorf("session still exists: %v", err)
	}
	list, _ := entries.ListByUser(user.ID)
	if len(list) != 0 {
		t.Errorf("entries left: %d", len(list))
	}

	otherList, _ := entries.ListByUser(other.ID)
	if len(otherList) != 1 || len(otherList[0].Tags) != 1 {
		t.Errorf("other user's entry affected: %+v", otherList)
	}
}

func TestTokenRepository_DeleteExpired(t *testing.T) {
	db := testutil.NewDB(t)
	tokens := repository.NewTokenRepository(db)
	user := createUser(t, db, "me@example.com")
	now := time.Now()

	if err := tokens.Create(&models.AuthToken{Key: "old", UserID: user.ID, ExpiresAt: now.Add(-time.Minute)}); err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := tokens.Create(&models.AuthToken{Key: "fresh", UserID: user.ID, ExpiresAt: now.Add(time.Hour)}); err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := tokens.DeleteExpired(user.ID, now); err != nil {
		t.Fatalf("delete expired: %v", err)
	}
	if _, err := tokens.FindByKey("old"); !errors.Is(err, repository.ErrNotFound) {
		t.Errorf("expired token kept: %v", err)
	}
	if _, err := tokens.FindByKey("fresh"); err != nil {
		t.Errorf("fresh token removed: %v", err)
	}
	if err := tokens.DeleteByKey("missing"); !errors.Is(err, repository.ErrNotFound) {
		t.Errorf("delete missing: %v", err)
	}
}

func TestTokenRepository_PurgeExpired(t *testing.T) {
	db := testutil.NewDB(t)
	tokens := repository.NewTokenRepository(db)
	a := createUser(t, db, "a@example.com")
	b := createUser(t, db, "b@example.com")
	now := time.Now()

	for i, userID := range []uint{a.ID, a.ID, b.ID} {
		key := string(rune('x' + i))
		if err := tokens.Create(&models.AuthToken{Key: key, UserID: userID, ExpiresAt: now.Add(-time.Duration(i+1) * time.Minute)}); err != nil {
			t.Fatalf("create: %v", err)
		}
	}
	if err := tokens.Create(&models.AuthToken{Key: "live", UserID: b.ID, ExpiresAt: now.Add(time.Hour)}); err != nil {
		t.Fatalf("create: %v", err)
	}

	count, err := tokens.CountAllExpired(now)
	if err != nil || count != 3 {
		t.Fatalf("count = %d, %v", count, err)
	}

	deleted, err := tokens.PurgeExpired(now, 2)
	if err != nil || deleted != 2 {
		t.Fatalf("first purge = %d, %v", deleted, err)
	}
	deleted, err = tokens.PurgeExpired(now, 2)
	if err != nil || deleted != 1 {
		t.Fatalf("second purge = %d, %v", deleted, err)
	}
	if _, err := tokens.FindByKey("live"); err != nil {
		t.Errorf("live session removed: %v", err)
	}
}
