package store_test

import (
	"context"
	"strings"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/ichef/ChefAPI/internal/config"
	"github.com/ichef/ChefAPI/internal/data/redisStore"
	"github.com/ichef/ChefAPI/internal/data/store"
	"github.com/ichef/ChefAPI/internal/domain/jobModel"
)

func newTestMessageStore(t *testing.T) *store.RedisMessageStore {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return store.TestMessageStore(redisStore.NewTestStore(client))
}

func TestRedisMessageStore_Lifecycle(t *testing.T) {
	ms := newTestMessageStore(t)
	ctx := context.WithValue(context.Background(), config.TRACE_ID_KEY, "msg-trace")
	chatId := "chat_abc"

	t.Run("Unknown chat is invalid", func(t *testing.T) {
		if ms.ValidateChatId(ctx, chatId) {
			t.Error("chat should not exist yet")
		}
		if err := ms.TrySaveChat(ctx, chatId, jobModel.JobPayload{Question: "oi"}); err == nil {
			t.Error("saving to an unknown chat should fail")
		}
	})

	t.Run("Init then save and read back", func(t *testing.T) {
		if err := ms.InitNewChat(ctx, chatId); err != nil {
			t.Fatalf("InitNewChat failed: %v", err)
		}
		if !ms.ValidateChatId(ctx, chatId) {
			t.Fatal("chat should exist after init")
		}

		err := ms.TrySaveChat(ctx, chatId, jobModel.JobPayload{
			Question: "qual a receita de bolo de cenoura?",
			Answer:   "aqui está a receita...",
		})
		if err != nil {
			t.Fatalf("TrySaveChat failed: %v", err)
		}

		lines, err := ms.GetMessageHistory(ctx, chatId)
		if err != nil {
			t.Fatalf("GetMessageHistory failed: %v", err)
		}
		if len(lines) != 2 {
			t.Fatalf("expected 2 lines (user + assistant), got %d: %v", len(lines), lines)
		}
		if !strings.HasPrefix(lines[0], "user: ") || !strings.HasPrefix(lines[1], "assistant: ") {
			t.Errorf("lines are not role-prefixed: %v", lines)
		}
	})

	t.Run("History is windowed, transcript is not", func(t *testing.T) {
		for i := 0; i < config.HistoryWindowLength+3; i++ {
			err := ms.TrySaveChat(ctx, chatId, jobModel.JobPayload{
				Question: "pergunta",
				Answer:   "resposta",
			})
			if err != nil {
				t.Fatalf("TrySaveChat failed: %v", err)
			}
		}

		history, err := ms.GetMessageHistory(ctx, chatId)
		if err != nil {
			t.Fatalf("GetMessageHistory failed: %v", err)
		}
		// window counts stored turns, each rendering as two lines
		if len(history) != config.HistoryWindowLength*2 {
			t.Errorf("history got %d lines, want %d", len(history), config.HistoryWindowLength*2)
		}

		transcript, err := ms.GetTranscript(ctx, chatId)
		if err != nil {
			t.Fatalf("GetTranscript failed: %v", err)
		}
		if len(transcript) <= len(history) {
			t.Errorf("transcript (%d lines) should be longer than the windowed history (%d)", len(transcript), len(history))
		}
	})

	t.Run("Clear removes every turn", func(t *testing.T) {
		if err := ms.ClearChat(ctx, chatId); err != nil {
			t.Fatalf("ClearChat failed: %v", err)
		}
		if ms.ValidateChatId(ctx, chatId) {
			t.Error("cleared chat should not validate until re-initialized")
		}
	})
}
