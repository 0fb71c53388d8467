package cache

import (
	"context"
	"fmt"
	"log/slog"
)

// SafeDelete deletes cache keys, logging instead of propagating failures.
// Cache invalidation must never fail the write that triggered it.
func SafeDelete(ctx context.Context, helper *CacheHelper, keys ...string) {
	if err := helper.Delete(ctx, keys...); err != nil {
		slog.ErrorContext(ctx, "failed to delete cache keys",
			"error", err,
			"keys", keys)
	}
}

// InvalidateQuestionCache drops every cached read a question mutation can
// stale: the question row and its option listing. Per-quiz and per-number
// question reads go straight to the table and need no invalidation.
func InvalidateQuestionCache(ctx context.Context, cm *CacheManager, questionID uint) {
	SafeDelete(ctx, cm.Question,
		fmt.Sprintf("id:%d", questionID),
		fmt.Sprintf("options:%d", questionID))
}
