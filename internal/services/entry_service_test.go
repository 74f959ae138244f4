package services_test

import (
	"bytes"
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/SketchShifter/journal_backend/internal/repository"
	"github.com/SketchShifter/journal_backend/internal/services"
	"github.com/SketchShifter/journal_backend/internal/testutil"

	"gorm.io/gorm"
)

type entryFixture struct {
	db      *gorm.DB
	storage *testutil.MemoryStorage
	entries services.EntryService
	users   services.UserService
	tags    services.TagService
}

func newEntryFixture(t *testing.T) *entryFixture {
	t.Helper()

	db := testutil.NewDB(t)
	storage := testutil.NewMemoryStorage()
	entryRepo := repository.NewEntryRepository(db)

	return &entryFixture{
		db:      db,
		storage: storage,
		entries: services.NewEntryService(entryRepo, storage, testConfig()),
		users:   services.NewUserService(repository.NewUserRepository(db), entryRepo, storage),
		tags:    services.NewTagService(repository.NewTagRepository(db)),
	}
}

func (f *entryFixture) user(t *testing.T, email string) uint {
	t.Helper()

	user, err := f.users.CreateUser(email, "testing123#", services.UserAttrs{Username: "tester"})
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	return user.ID
}

func TestEntryService_Create_DefaultTitle(t *testing.T) {
	f := newEntryFixture(t)
	userID := f.user(t, "me@example.com")

	services.SetEntryClock(f.entries, func() time.Time {
		return time.Date(2024, time.April, 14, 9, 30, 0, 0, time.UTC)
	})

	entry, err := f.entries.Create(userID, services.EntryInput{Content: strPtr("body")})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if entry.Title != "14 April, 2024" {
		t.Errorf("title = %q, want %q", entry.Title, "14 April, 2024")
	}
	if entry.UserID != userID {
		t.Errorf("owner = %d, want %d", entry.UserID, userID)
	}
}

func TestEntryService_Create_BlankTitle(t *testing.T) {
	f := newEntryFixture(t)
	userID := f.user(t, "me@example.com")

	for _, title := range []string{"", "   "} {
		_, err := f.entries.Create(userID, services.EntryInput{Title: strPtr(title), Content: strPtr("body")})
		var verr *services.ValidationError
		if !errors.As(err, &verr) || verr.Fields["title"] == "" {
			t.Errorf("Create(title=%q) error = %v, want title validation error", title, err)
		}
	}

	list, err := f.entries.List(userID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 0 {
		t.Errorf("entries created with blank title: %d", len(list))
	}
}

func TestEntryService_Create_RequiresContent(t *testing.T) {
	f := newEntryFixture(t)
	userID := f.user(t, "me@example.com")

	for _, content := range []*string{nil, strPtr(""), strPtr("  \n")} {
		_, err := f.entries.Create(userID, services.EntryInput{Title: strPtr("t"), Content: content})
		var verr *services.ValidationError
		if !errors.As(err, &verr) || verr.Fields["content"] == "" {
			t.Errorf("expected content validation error, got %v", err)
		}
	}

	list, err := f.entries.List(userID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 0 {
		t.Errorf("entries created on invalid input: %d", len(list))
	}
}

func TestEntryService_Create_TitleTooLong(t *testing.T) {
	f := newEntryFixture(t)
	userID := f.user(t, "me@example.com")

	_, err := f.entries.Create(userID, services.EntryInput{
		Title:   strPtr(strings.Repeat("a", 256)),
		Content: strPtr("body"),
	})
	if !errors.Is(err, services.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestEntryService_Tags(t *testing.T) {
	f := newEntryFixture(t)
	userID := f.user(t, "me@example.com")

	entry, err := f.entries.Create(userID, services.EntryInput{
		Title:   strPtr("tagged"),
		Content: strPtr("body"),
		Tags:    tagsPtr("work", "travel"),
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if got := tagNames(entry); !reflect.DeepEqual(got, []string{"work", "travel"}) {
		t.Fatalf("tags = %v", got)
	}

	// 既存のタグは再利用される
	other, err := f.entries.Create(userID, services.EntryInput{
		Content: strPtr("second"),
		Tags:    tagsPtr("work"),
	})
	if err != nil {
		t.Fatalf("create second: %v", err)
	}
	if other.Tags[0].ID != entry.Tags[0].ID {
		t.Errorf("tag not reused: %d != %d", other.Tags[0].ID, entry.Tags[0].ID)
	}

	// タグ未指定の部分更新ではタグは変わらない
	updated, err := f.entries.Update(userID, entry.ID, services.EntryInput{Title: strPtr("renamed")}, true)
	if err != nil {
		t.Fatalf("patch: %v", err)
	}
	if updated.Title != "renamed" || updated.Content != "body" {
		t.Errorf("unexpected entry after patch: %+v", updated)
	}
	if got := tagNames(updated); !reflect.DeepEqual(got, []string{"work", "travel"}) {
		t.Errorf("tags changed by patch without tags: %v", got)
	}

	// タグの置き換え
	updated, err = f.entries.Update(userID, entry.ID, services.EntryInput{Tags: tagsPtr("family")}, true)
	if err != nil {
		t.Fatalf("replace tags: %v", err)
	}
	if got := tagNames(updated); !reflect.DeepEqual(got, []string{"family"}) {
		t.Errorf("tags = %v, want [family]", got)
	}

	// 空のリストはすべて外す
	updated, err = f.entries.Update(userID, entry.ID, services.EntryInput{Tags: tagsPtr()}, true)
	if err != nil {
		t.Fatalf("clear tags: %v", err)
	}
	if len(updated.Tags) != 0 {
		t.Errorf("tags not cleared: %v", tagNames(updated))
	}

	// 外したタグ自体は残る
	all, err := f.tags.List()
	if err != nil {
		t.Fatalf("list tags: %v", err)
	}
	if len(all) != 3 {
		t.Errorf("tag count = %d, want 3", len(all))
	}
}

func TestEntryService_Update_FullReplaceRequiresContent(t *testing.T) {
	f := newEntryFixture(t)
	userID := f.user(t, "me@example.com")

	entry, err := f.entries.Create(userID, services.EntryInput{Content: strPtr("body")})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if _, err := f.entries.Update(userID, entry.ID, services.EntryInput{Title: strPtr("x")}, false); !errors.Is(err, services.ErrValidation) {
		t.Errorf("expected validation error for PUT without content, got %v", err)
	}
	if _, err := f.entries.Update(userID, entry.ID, services.EntryInput{Title: strPtr(" ")}, true); !errors.Is(err, services.ErrValidation) {
		t.Errorf("expected validation error for blank title, got %v", err)
	}

	updated, err := f.entries.Update(userID, entry.ID, services.EntryInput{Title: strPtr("new"), Content: strPtr("new body")}, false)
	if err != nil {
		t.Fatalf("put: %v", err)
	}
	if updated.Title != "new" || updated.Content != "new body" {
		t.Errorf("unexpected entry after put: %+v", updated)
	}
}

func TestEntryService_OwnerIsolation(t *testing.T) {
	f := newEntryFixture(t)
	owner := f.user(t, "owner@example.com")
	stranger := f.user(t, "stranger@example.com")

	entry, err := f.entries.Create(owner, services.EntryInput{Content: strPtr("secret")})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if _, err := f.entries.GetByID(stranger, entry.ID); !errors.Is(err, services.ErrNotFound) {
		t.Errorf("get: expected not found, got %v", err)
	}
	if _, err := f.entries.Update(stranger, entry.ID, services.EntryInput{Content: strPtr("x")}, false); !errors.Is(err, services.ErrNotFound) {
		t.Errorf("update: expected not found, got %v", err)
	}
	if err := f.entries.Delete(context.Background(), stranger, entry.ID); !errors.Is(err, services.ErrNotFound) {
		t.Errorf("delete: expected not found, got %v", err)
	}

	list, err := f.entries.List(stranger)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 0 {
		t.Errorf("stranger sees %d entries", len(list))
	}

	got, err := f.entries.GetByID(owner, entry.ID)
	if err != nil || got.Content != "secret" {
		t.Errorf("owner entry changed: %+v, %v", got, err)
	}
}

func TestEntryService_UploadImage(t *testing.T) {
	f := newEntryFixture(t)
	userID := f.user(t, "me@example.com")
	ctx := context.Background()

	entry, err := f.entries.Create(userID, services.EntryInput{Content: strPtr("body")})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	first, err := f.entries.UploadImage(ctx, userID, entry.ID, bytes.NewReader(pngBytes(t)))
	if err != nil {
		t.Fatalf("upload: %v", err)
	}
	if !strings.HasPrefix(first.ImageURL, "https://images.test/entries/") || !strings.HasSuffix(first.ImageURL, ".png") {
		t.Errorf("image url = %q", first.ImageURL)
	}

	// 差し替えると古い画像は削除される
	second, err := f.entries.UploadImage(ctx, userID, entry.ID, bytes.NewReader(pngBytes(t)))
	if err != nil {
		t.Fatalf("second upload: %v", err)
	}
	if second.ImageKey == first.ImageKey {
		t.Error("image key not replaced")
	}
	if f.storage.Len() != 1 {
		t.Errorf("stored images = %d, want 1", f.storage.Len())
	}

	// 画像でないデータは拒否され、エントリーは変わらない
	_, err = f.entries.UploadImage(ctx, userID, entry.ID, strings.NewReader("not an image"))
	var verr *services.ValidationError
	if !errors.As(err, &verr) || verr.Fields["image"] == "" {
		t.Fatalf("expected image validation error, got %v", err)
	}
	got, err := f.entries.GetByID(userID, entry.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.ImageURL != second.ImageURL {
		t.Errorf("image changed after rejected upload: %q", got.ImageURL)
	}
}

func TestEntryService_UploadImage_TooLarge(t *testing.T) {
	f := newEntryFixture(t)
	userID := f.user(t, "me@example.com")

	cfg := testConfig()
	cfg.Storage.MaxUploadSize = 16
	svc := services.NewEntryService(repository.NewEntryRepository(f.db), f.storage, cfg)

	entry, err := svc.Create(userID, services.EntryInput{Content: strPtr("body")})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := svc.UploadImage(context.Background(), userID, entry.ID, bytes.NewReader(pngBytes(t))); !errors.Is(err, services.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if f.storage.Len() != 0 {
		t.Errorf("oversized image was stored")
	}
}

func TestEntryService_Delete(t *testing.T) {
	f := newEntryFixture(t)
	userID := f.user(t, "me@example.com")
	ctx := context.Background()

	entry, err := f.entries.Create(userID, services.EntryInput{Content: strPtr("body"), Tags: tagsPtr("a")})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := f.entries.UploadImage(ctx, userID, entry.ID, bytes.NewReader(pngBytes(t))); err != nil {
		t.Fatalf("upload: %v", err)
	}

	if err := f.entries.Delete(ctx, userID, entry.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := f.entries.GetByID(userID, entry.ID); !errors.Is(err, services.ErrNotFound) {
		t.Errorf("entry still exists: %v", err)
	}
	if f.storage.Len() != 0 {
		t.Errorf("image not removed from storage")
	}
}
