package handlers

import (
	"net/http"
	"strings"

	"github.com/ichef/ChefAPI/internal/adapter"
	"github.com/ichef/ChefAPI/internal/adapter/utils"
)

// GetHistoryHandler godoc
// @Summary      Get conversation history
// @Description  Returns the recent turns of a chat session, oldest first.
// @Tags         History
// @Produce      json
// @Param        chatId  path      string  true  "Chat ID"
// @Success      200  {object}  api.HistoryResponse
// @Failure      404  {object}  api.JobResponse  "Unknown chat"
// @Router       /history/{chatId} [get]
func GetHistoryHandler(w http.ResponseWriter, r *http.Request) {
	if !validateContext(r.Context()) {
		logRH.Warn("Invalid Context by request ", r.RemoteAddr)
		return
	}
	chatId, ok := knownChatId(w, r)
	if !ok {
		return
	}

	lines, err := handlerInstance.service.MessageStore.GetMessageHistory(r.Context(), chatId)
	if err != nil {
		WriteErrorResponse(w, http.StatusInternalServerError, chatId, "Could not read history")
		return
	}
	writeJsonResponse(w, http.StatusOK, adapter.ToHistoryResponse(chatId, lines))
}

// DeleteHistoryHandler godoc
// @Summary      Clear a conversation
// @Description  Removes every stored turn of the session. The chat id stays valid for new messages.
// @Tags         History
// @Param        chatId  path  string  true  "Chat ID"
// @Success      204  "Cleared"
// @Failure      404  {object}  api.JobResponse  "Unknown chat"
// @Router       /history/{chatId} [delete]
func DeleteHistoryHandler(w http.ResponseWriter, r *http.Request) {
	if !validateContext(r.Context()) {
		logRH.Warn("Invalid Context by request ", r.RemoteAddr)
		return
	}
	chatId, ok := knownChatId(w, r)
	if !ok {
		return
	}

	if err := handlerInstance.service.MessageStore.ClearChat(r.Context(), chatId); err != nil {
		WriteErrorResponse(w, http.StatusInternalServerError, chatId, "Could not clear history")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GetTranscriptHandler godoc
// @Summary      Download a conversation transcript
// @Description  Returns the full session as plain text, one role-prefixed line per message.
// @Tags         History
// @Produce      plain
// @Param        chatId  path  string  true  "Chat ID"
// @Success      200  {string}  string  "Transcript"
// @Failure      404  {object}  api.JobResponse  "Unknown chat"
// @Router       /history/{chatId}/transcript [get]
func GetTranscriptHandler(w http.ResponseWriter, r *http.Request) {
	if !validateContext(r.Context()) {
		logRH.Warn("Invalid Context by request ", r.RemoteAddr)
		return
	}
	chatId, ok := knownChatId(w, r)
	if !ok {
		return
	}

	lines, err := handlerInstance.service.MessageStore.GetTranscript(r.Context(), chatId)
	if err != nil {
		WriteErrorResponse(w, http.StatusInternalServerError, chatId, "Could not read transcript")
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Content-Disposition", "attachment; filename=\"transcript-"+chatId+".txt\"")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte(strings.Join(lines, "\n") + "\n")); err != nil {
		logRH.Error("Error writing transcript", "err", err)
	}
}

func knownChatId(w http.ResponseWriter, r *http.Request) (string, bool) {
	chatId := utils.GetChiURLParam(r, "chatId")
	if chatId == "" || handlerInstance == nil ||
		!handlerInstance.service.MessageStore.ValidateChatId(r.Context(), chatId) {
		WriteErrorResponse(w, http.StatusNotFound, chatId, "Chat not found")
		return "", false
	}
	return chatId, true
}
