package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

type cachedQuiz struct {
	ID    uint   `json:"id"`
	Title string `json:"title"`
}

func newTestHelper(t *testing.T) (*CacheHelper, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return NewCacheHelper(client, "quiz:"), mr
}

func TestCacheHelper_SetGet(t *testing.T) {
	helper, _ := newTestHelper(t)
	ctx := context.Background()

	want := cachedQuiz{ID: 1, Title: "Algebra Basics"}
	if err := helper.Set(ctx, "1", want, time.Minute); err != nil {
		t.Fatalf("set failed: %v", err)
	}

	var got cachedQuiz
	if err := helper.Get(ctx, "1", &got); err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if got != want {
		t.Errorf("got %+v, want %+v", got, want)
	}
}

func TestCacheHelper_GetMiss(t *testing.T) {
	helper, _ := newTestHelper(t)

	var got cachedQuiz
	err := helper.Get(context.Background(), "missing", &got)
	if !errors.Is(err, ErrCacheNotFound) {
		t.Fatalf("expected ErrCacheNotFound, got %v", err)
	}
}

func TestCacheHelper_NilClientDegrades(t *testing.T) {
	helper := NewCacheHelper(nil, "quiz:")
	ctx := context.Background()

	if err := helper.Set(ctx, "1", cachedQuiz{ID: 1}, time.Minute); err != nil {
		t.Errorf("set on nil client should be a no-op, got %v", err)
	}
	var got cachedQuiz
	if err := helper.Get(ctx, "1", &got); !errors.Is(err, ErrCacheNotAvailable) {
		t.Errorf("expected ErrCacheNotAvailable, got %v", err)
	}
	if err := helper.Delete(ctx, "1"); err != nil {
		t.Errorf("delete on nil client should be a no-op, got %v", err)
	}
}

func TestCacheHelper_Delete(t *testing.T) {
	helper, mr := newTestHelper(t)
	ctx := context.Background()

	_ = helper.Set(ctx, "1", cachedQuiz{ID: 1}, time.Minute)
	_ = helper.Set(ctx, "2", cachedQuiz{ID: 2}, time.Minute)

	if err := helper.Delete(ctx, "1", "2"); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if mr.Exists("quiz:1") || mr.Exists("quiz:2") {
		t.Error("keys should be gone after delete")
	}
}

func TestCacheHelper_InvalidatePattern(t *testing.T) {
	helper, mr := newTestHelper(t)
	ctx := context.Background()

	_ = helper.Set(ctx, "7:options", []uint{1, 2}, time.Minute)
	_ = helper.Set(ctx, "8:options", []uint{3}, time.Minute)
	_ = helper.Set(ctx, "7:meta", cachedQuiz{ID: 7}, time.Minute)

	if err := helper.InvalidatePattern(ctx, "7:*"); err != nil {
		t.Fatalf("invalidate failed: %v", err)
	}
	if mr.Exists("quiz:7:options") || mr.Exists("quiz:7:meta") {
		t.Error("keys under the pattern should be gone")
	}
	if !mr.Exists("quiz:8:options") {
		t.Error("keys outside the pattern must survive")
	}
}

func TestCacheHelper_CacheOrExecute(t *testing.T) {
	helper, _ := newTestHelper(t)
	ctx := context.Background()

	calls := 0
	fetch := func() (interface{}, error) {
		calls++
		return cachedQuiz{ID: 5, Title: "Geometry"}, nil
	}

	var first cachedQuiz
	if err := helper.CacheOrExecute(ctx, "5", &first, time.Minute, fetch); err != nil {
		t.Fatalf("first call failed: %v", err)
	}
	if calls != 1 || first.Title != "Geometry" {
		t.Fatalf("expected one fetch filling dest, calls=%d dest=%+v", calls, first)
	}

	// The populate goroutine races the second call; wait for the key.
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		var probe cachedQuiz
		if err := helper.Get(ctx, "5", &probe); err == nil {
			break
		}
		time.Sleep(10 * time.Millisecond)
	}

	var second cachedQuiz
	if err := helper.CacheOrExecute(ctx, "5", &second, time.Minute, fetch); err != nil {
		t.Fatalf("second call failed: %v", err)
	}
	if calls != 1 {
		t.Errorf("second call should hit the cache, fetch ran %d times", calls)
	}
	if second != first {
		t.Errorf("cached value mismatch: %+v vs %+v", second, first)
	}
}

func TestCacheHelper_CacheOrExecute_FetchErrorPassesThrough(t *testing.T) {
	helper, _ := newTestHelper(t)

	wantErr := errors.New("row missing")
	var dest cachedQuiz
	err := helper.CacheOrExecute(context.Background(), "404", &dest, time.Minute, func() (interface{}, error) {
		return nil, wantErr
	})
	if !errors.Is(err, wantErr) {
		t.Fatalf("fetch error should surface unwrapped, got %v", err)
	}
}

func TestInvalidateQuestionCache(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	cm := NewCacheManager(client)
	ctx := context.Background()

	_ = cm.Question.Set(ctx, "id:7", cachedQuiz{ID: 7}, time.Minute)
	_ = cm.Question.Set(ctx, "options:7", []uint{1, 2}, time.Minute)
	_ = cm.Question.Set(ctx, "id:8", cachedQuiz{ID: 8}, time.Minute)

	InvalidateQuestionCache(ctx, cm, 7)

	if mr.Exists("question:id:7") || mr.Exists("question:options:7") {
		t.Error("question 7 row and options should be dropped")
	}
	if !mr.Exists("question:id:8") {
		t.Error("other questions must keep their cached rows")
	}
}

func TestCacheManager_NilClient(t *testing.T) {
	cm := NewCacheManager(nil)
	if err := cm.HealthCheck(context.Background()); !errors.Is(err, ErrCacheNotAvailable) {
		t.Errorf("expected ErrCacheNotAvailable, got %v", err)
	}
}
