package service

import (
	"context"
	"testing"
	"time"

	"wey/internal/models"

	"github.com/google/uuid"
)

func TestListFeedIncludesViewerAndFriends(t *testing.T) {
	viewer := uuid.New()
	friendA := uuid.New()
	friendB := uuid.New()

	friends := noopFriendRepo()
	friends.getFriendsFn = func(context.Context, uuid.UUID) ([]models.User, error) {
		return []models.User{{ID: friendA}, {ID: friendB}}, nil
	}

	var queried []uuid.UUID
	posts := noopPostRepo()
	posts.listByAuthorsFn = func(_ context.Context, authorIDs []uuid.UUID, currentUserID uuid.UUID) ([]*models.Post, error) {
		if currentUserID != viewer {
			t.Fatalf("queried as wrong viewer %s", currentUserID)
		}
		queried = authorIDs
		return []*models.Post{
			{ID: uuid.New(), CreatedByID: friendA, CreatedAt: time.Now()},
			{ID: uuid.New(), CreatedByID: viewer, CreatedAt: time.Now().Add(-time.Hour)},
		}, nil
	}

	svc := NewFeedService(posts, friends, noopUserRepo())
	feed, err := svc.ListFeed(context.Background(), viewer)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := map[uuid.UUID]bool{viewer: true, friendA: true, friendB: true}
	if len(queried) != len(want) {
		t.Fatalf("expected %d author IDs, got %v", len(want), queried)
	}
	for _, id := range queried {
		if !want[id] {
			t.Fatalf("unexpected author ID %s", id)
		}
	}
	if len(feed) != 2 {
		t.Fatalf("expected 2 posts, got %d", len(feed))
	}
	if feed[0].CreatedAtFormatted == "" {
		t.Fatal("expected formatted timestamps")
	}
}

func TestListFeedNoFriendsStillQueriesViewer(t *testing.T) {
	viewer := uuid.New()

	posts := noopPostRepo()
	posts.listByAuthorsFn = func(_ context.Context, authorIDs []uuid.UUID, _ uuid.UUID) ([]*models.Post, error) {
		if len(authorIDs) != 1 || authorIDs[0] != viewer {
			t.Fatalf("expected only the viewer, got %v", authorIDs)
		}
		return nil, nil
	}

	svc := NewFeedService(posts, noopFriendRepo(), noopUserRepo())
	feed, err := svc.ListFeed(context.Background(), viewer)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if feed == nil || len(feed) != 0 {
		t.Fatalf("expected empty feed, got %#v", feed)
	}
}

func TestProfileUserNotFound(t *testing.T) {
	users := noopUserRepo()
	users.getByIDFn = func(_ context.Context, id uuid.UUID) (*models.User, error) {
		return nil, models.NewNotFoundError("User", id)
	}

	svc := NewFeedService(noopPostRepo(), noopFriendRepo(), users)
	_, err := svc.Profile(context.Background(), uuid.New(), uuid.New())
	assertAppErrorCode(t, err, "NOT_FOUND")
}

func TestProfileVisibleToNonFriends(t *testing.T) {
	viewer := uuid.New()
	author := uuid.New()

	friends := noopFriendRepo()
	friends.countFriendsFn = func(context.Context, uuid.UUID) (int64, error) { return 3, nil }

	posts := noopPostRepo()
	posts.listByAuthorFn = func(_ context.Context, authorID, currentUserID uuid.UUID) ([]*models.Post, error) {
		if authorID != author || currentUserID != viewer {
			t.Fatalf("queried wrong author/viewer: %s/%s", authorID, currentUserID)
		}
		return []*models.Post{{ID: uuid.New(), CreatedByID: author, CreatedAt: time.Now()}}, nil
	}

	svc := NewFeedService(posts, friends, noopUserRepo())
	page, err := svc.Profile(context.Background(), viewer, author)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if page.User.FriendsCount != 3 {
		t.Fatalf("expected friends count 3, got %d", page.User.FriendsCount)
	}
	if len(page.Posts) != 1 {
		t.Fatalf("expected 1 post, got %d", len(page.Posts))
	}
}
