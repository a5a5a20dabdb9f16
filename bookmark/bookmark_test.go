package bookmark

import (
	"context"
	"testing"

	"github.com/matchboard/matchboard/store"
)

func TestUserBookmarksOrderAndDedup(t *testing.T) {
	set := NewUserBookmarks(store.NewMemoryStore())
	ctx := context.Background()

	for _, id := range []string{"a", "b", "c"} {
		if err := set.Add(ctx, id); err != nil {
			t.Fatalf("Add(%q) failed: %v", id, err)
		}
	}

	ids, err := set.All(ctx)
	if err != nil {
		t.Fatalf("All failed: %v", err)
	}
	if len(ids) != 3 || ids[0] != "c" || ids[1] != "b" || ids[2] != "a" {
		t.Errorf("ids = %v, want most-recent-first [c b a]", ids)
	}

	// Re-adding keeps the original position.
	if err := set.Add(ctx, "a"); err != nil {
		t.Fatalf("duplicate Add failed: %v", err)
	}
	ids, _ = set.All(ctx)
	if len(ids) != 3 || ids[2] != "a" {
		t.Errorf("duplicate add reordered the set: %v", ids)
	}
}

func TestUserBookmarksRemove(t *testing.T) {
	set := NewUserBookmarks(store.NewMemoryStore())
	ctx := context.Background()

	set.Add(ctx, "a")
	set.Add(ctx, "b")

	if err := set.Remove(ctx, "a"); err != nil {
		t.Fatalf("Remove failed: %v", err)
	}
	ids, _ := set.All(ctx)
	if len(ids) != 1 || ids[0] != "b" {
		t.Errorf("ids = %v, want [b]", ids)
	}

	// Removing an absent id is a no-op.
	if err := set.Remove(ctx, "zzz"); err != nil {
		t.Errorf("Remove of absent id failed: %v", err)
	}
	ids, _ = set.All(ctx)
	if len(ids) != 1 {
		t.Errorf("no-op remove changed the set: %v", ids)
	}
}

func TestAllOnEmptySet(t *testing.T) {
	set := NewQuestionStars(store.NewMemoryStore())

	ids, err := set.All(context.Background())
	if err != nil {
		t.Fatalf("All failed: %v", err)
	}
	if ids == nil {
		t.Error("empty set is nil, want empty slice")
	}
	if len(ids) != 0 {
		t.Errorf("ids = %v, want empty", ids)
	}
}

func TestQuestionStarsIndependentOfUserBookmarks(t *testing.T) {
	mem := store.NewMemoryStore()
	users := NewUserBookmarks(mem)
	stars := NewQuestionStars(mem)
	ctx := context.Background()

	users.Add(ctx, "a")
	stars.Add(ctx, 42)

	ids, _ := stars.All(ctx)
	if len(ids) != 1 || ids[0] != 42 {
		t.Errorf("stars = %v, want [42]", ids)
	}
	userIDs, _ := users.All(ctx)
	if len(userIDs) != 1 || userIDs[0] != "a" {
		t.Errorf("bookmarks = %v, want [a]", userIDs)
	}
}
