package session

import (
	"context"
	"testing"
	"time"

	"github.com/cotodev/smsauth/internal/pkg/clock"
)

func TestMemoryStore(t *testing.T) {

	t.Run("SetGetRemove", func(t *testing.T) {

		// Arrange
		static := clock.NewStatic(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))
		store := NewMemory(static)
		ctx := context.Background()

		// Act
		if err := store.Set(ctx, "attempt-1", "code", "123456", time.Minute); err != nil {
			t.Fatalf("unexpected set error: %v", err)
		}

		// Assert
		val, ok, err := store.Get(ctx, "attempt-1", "code")
		if err != nil || !ok || val != "123456" {
			t.Fatalf("expected stored value, got val=%q ok=%v err=%v", val, ok, err)
		}

		if err := store.Remove(ctx, "attempt-1", "code"); err != nil {
			t.Fatalf("unexpected remove error: %v", err)
		}
		if _, ok, _ := store.Get(ctx, "attempt-1", "code"); ok {
			t.Fatalf("expected value removed")
		}
	})

	t.Run("KeysAreScopedByAttempt", func(t *testing.T) {

		// Arrange
		static := clock.NewStatic(time.Now())
		store := NewMemory(static)
		ctx := context.Background()

		// Act
		if err := store.Set(ctx, "attempt-1", "code", "111111", 0); err != nil {
			t.Fatalf("unexpected set error: %v", err)
		}
		if err := store.Set(ctx, "attempt-2", "code", "222222", 0); err != nil {
			t.Fatalf("unexpected set error: %v", err)
		}

		// Assert
		val, _, _ := store.Get(ctx, "attempt-1", "code")
		if val != "111111" {
			t.Fatalf("expected attempt-1 value, got %q", val)
		}
		val, _, _ = store.Get(ctx, "attempt-2", "code")
		if val != "222222" {
			t.Fatalf("expected attempt-2 value, got %q", val)
		}
	})

	t.Run("EntriesExpire", func(t *testing.T) {

		// Arrange
		static := clock.NewStatic(time.Now())
		store := NewMemory(static)
		ctx := context.Background()

		if err := store.Set(ctx, "attempt-1", "code", "123456", time.Minute); err != nil {
			t.Fatalf("unexpected set error: %v", err)
		}

		// Act
		static.Advance(time.Minute)

		// Assert
		if _, ok, _ := store.Get(ctx, "attempt-1", "code"); ok {
			t.Fatalf("expected entry expired")
		}
	})

	t.Run("NonPositiveTTLKeepsEntry", func(t *testing.T) {

		// Arrange
		static := clock.NewStatic(time.Now())
		store := NewMemory(static)
		ctx := context.Background()

		if err := store.Set(ctx, "attempt-1", "code", "123456", 0); err != nil {
			t.Fatalf("unexpected set error: %v", err)
		}

		// Act
		static.Advance(240 * time.Hour)

		// Assert
		if _, ok, _ := store.Get(ctx, "attempt-1", "code"); !ok {
			t.Fatalf("expected entry kept without ttl")
		}
	})
}
