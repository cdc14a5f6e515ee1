package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/ichef/ChefAPI/internal/config"
	"github.com/ichef/ChefAPI/internal/data/redisStore"
	"github.com/ichef/ChefAPI/internal/domain/jobModel"
	"github.com/ichef/ChefAPI/pkg/logger_i"
)

type RedisMessageStore struct {
	store  *redisStore.Store
	logger *logger_i.Logger
}

func GetRedisMessageStore(ctx context.Context) *RedisMessageStore {
	return &RedisMessageStore{
		store:  redisStore.GetRedisStore(ctx, config.RedisMessageStore),
		logger: logger_i.NewLogger("MessageStore"),
	}
}

func (s *RedisMessageStore) ValidateChatId(ctx context.Context, chatId string) bool {
	log := s.logger.With("traceId", ctx.Value(config.TRACE_ID_KEY), "chat Id", chatId)
	log.Debug("validating chatId")
	isFound, err := s.store.Exists(ctx, chatId)
	if s.store.IsNil(err) {
		return false
	} else if err != nil {
		log.Error("Failed to check if chatId exists", "err", err)
		return false
	}
	return isFound
}

func (s *RedisMessageStore) TrySaveChat(ctx context.Context, id string, conversation jobModel.JobPayload) error {
	log := s.logger.With("traceId", ctx.Value(config.TRACE_ID_KEY), "chat Id", id)
	if s.ValidateChatId(ctx, id) == false {
		err := errors.New("invalid chat id")
		log.Error("Failed Validation before saving", "err", err)
		return err
	}
	return s.saveChatId(ctx, id, conversation)
}

func (s *RedisMessageStore) saveChatId(ctx context.Context, id string, conversation jobModel.JobPayload) error {
	log := s.logger.With("traceId", ctx.Value(config.TRACE_ID_KEY), "chat Id", id)
	err := s.store.ListPush(ctx, id, marshallJson(conversation, s.logger))
	if err != nil {
		log.Error("error saving chat", "error:", err)
	}
	log.Debug("Saved chat successfully")
	return err
}

func (s *RedisMessageStore) InitNewChat(ctx context.Context, id string) error {
	log := s.logger.With("traceId", ctx.Value(config.TRACE_ID_KEY), "chat Id", id)
	log.Debug("Initializing new chat")
	if err := s.store.Del(ctx, id); err != nil && !s.store.IsNil(err) {
		log.Error("Error initializing chat", "error", err)
	}
	return s.saveChatId(ctx, id, jobModel.JobPayload{})
}

func (s *RedisMessageStore) ClearChat(ctx context.Context, id string) error {
	log := s.logger.With("traceId", ctx.Value(config.TRACE_ID_KEY), "chat Id", id)
	log.Debug("Clearing chat")
	return s.store.Del(ctx, id)
}

func (s *RedisMessageStore) GetMessageHistory(ctx context.Context, chatId string) ([]string, error) {
	log := s.logger.With("traceId", ctx.Value(config.TRACE_ID_KEY), "chat Id", chatId)
	log.Debug("Getting message history")

	res, err := s.store.ListGetRecent(ctx, chatId, config.HistoryWindowLength)
	if err != nil {
		log.Error("Error getting history", "error:", err)
		return nil, err
	}
	return formatTurns(res), nil
}

func (s *RedisMessageStore) GetTranscript(ctx context.Context, chatId string) ([]string, error) {
	log := s.logger.With("traceId", ctx.Value(config.TRACE_ID_KEY), "chat Id", chatId)
	log.Debug("Getting full transcript")

	res, err := s.store.ListGetAll(ctx, chatId)
	if err != nil {
		log.Error("Error getting transcript", "error:", err)
		return nil, err
	}
	return formatTurns(res), nil
}

func TestMessageStore(store *redisStore.Store) *RedisMessageStore {
	return &RedisMessageStore{
		store:  store,
		logger: logger_i.NewLogger("test message store"),
	}
}

func marshallJson(payload jobModel.JobPayload, logger *logger_i.Logger) []byte {
	data, err := json.Marshal(payload)
	if err != nil {
		logger.Error("Error marshalling json :", "error", err)
	}
	return data
}

// formatTurns turns stored payloads into role-prefixed lines, oldest first.
// The empty payload written by InitNewChat is skipped.
func formatTurns(raw []string) []string {
	var lines []string
	for _, entry := range raw {
		var payload jobModel.JobPayload
		if err := json.Unmarshal([]byte(entry), &payload); err != nil {
			continue
		}
		lines = append(lines, FormatTurnPair(payload)...)
	}
	return lines
}

// FormatTurnPair renders one question/answer payload as user and assistant
// lines, the shape the reformulator and synthesizer prompts consume.
func FormatTurnPair(payload jobModel.JobPayload) []string {
	var lines []string
	if payload.Question != "" {
		lines = append(lines, fmt.Sprintf("user: %s", payload.Question))
	}
	if payload.Answer != "" {
		lines = append(lines, fmt.Sprintf("assistant: %s", payload.Answer))
	}
	return lines
}
