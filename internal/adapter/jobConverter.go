package adapter

import (
	"fmt"
	"strings"
	"time"

	"github.com/ichef/ChefAPI/internal/api"
	"github.com/ichef/ChefAPI/internal/domain/jobModel"
)

func ToInitJobResponse(id string) api.InitJobResponse {
	return api.InitJobResponse{
		Id:        id,
		StatusURL: fmt.Sprintf("status/%s", id),
	}
}

func ToAPIResponse(job jobModel.Job) api.JobResponse {

	var errorPtr *api.JobOutgoingError
	if job.Error.Message != "" || job.Error.Code != 0 {
		errorPtr = &api.JobOutgoingError{
			Code:    job.Error.Code,
			Message: job.Error.Message,
			Retry:   job.Error.Retry,
		}
	}

	result := api.Result{
		Status:              string(job.Status),
		RAGExternalResponse: ToRAGExternalStatus(job.JobPayload),
		ChunksIndexed:       job.JobPayload.ChunksIndexed,
	}

	return api.JobResponse{
		Id:        job.Id,
		ChatId:    job.ChatId,
		StartTime: job.CreatedTime,
		EndTime:   job.EndTime,
		Error:     errorPtr,
		Result:    result,
	}
}

func ToRAGExternalStatus(ragData jobModel.JobPayload) *api.RAGResponse {
	if ragData.Answer == "" && len(ragData.Sources) == 0 {
		return nil
	}

	sources := make([]api.Source, 0, len(ragData.Sources))
	for _, p := range ragData.Sources {
		sources = append(sources, api.Source{
			DocName: p.DocName,
			Page:    p.PageNum,
			Score:   p.Score,
			Excerpt: previewExcerpt(p.Content),
		})
	}

	steps := make([]api.AgentTraceStep, 0, len(ragData.Steps))
	for _, s := range ragData.Steps {
		steps = append(steps, api.AgentTraceStep{
			Tool:        string(s.Tool),
			Input:       s.Input,
			Observation: previewExcerpt(s.Observation),
		})
	}

	return &api.RAGResponse{
		Question: ragData.Question,
		Answer:   ragData.Answer,
		Sources:  sources,
		Steps:    steps,
	}
}

// previewExcerpt keeps the trace display short, full text stays in the store.
func previewExcerpt(text string) string {
	const max = 300
	if len(text) <= max {
		return text
	}
	return text[:max] + "..."
}

// ToHistoryResponse splits the store's role-prefixed lines back into turns.
func ToHistoryResponse(chatId string, lines []string) api.HistoryResponse {
	turns := make([]api.HistoryTurn, 0, len(lines))
	for _, line := range lines {
		role, text, found := strings.Cut(line, ": ")
		if !found {
			role, text = "assistant", line
		}
		turns = append(turns, api.HistoryTurn{Role: role, Text: text})
	}
	return api.HistoryResponse{ChatId: chatId, Turns: turns}
}

func BadRequest(id string, error string, code int) api.JobResponse {
	return api.JobResponse{
		Id:        id,
		ChatId:    "",
		StartTime: time.Time{},
		EndTime:   time.Time{},
		Result: api.Result{
			Status:              string(api.JobStatusError),
			RAGExternalResponse: ToRAGExternalStatus(jobModel.JobPayload{}),
		},
		Error: &api.JobOutgoingError{
			Code:    code,
			Message: error,
			Retry:   false,
		},
	}
}
