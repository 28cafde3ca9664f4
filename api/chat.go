/*
chat.go - Chat and topic-explainer endpoints over the LLM client

PURPOSE:
  POST /api/chat: forwards a user message (with optional history and
  learning-module topic) to the generation backend and records the
  question against the module's progress when a topic is present.
  POST /api/explain: structured one-shot explanation of a financial
  topic at a chosen depth, no history.

SESSION IDS:
  The client may send a session_id to thread a conversation; absent one,
  a fresh UUID is issued and echoed back so the frontend can reuse it.

SEE ALSO:
  - llm/client.go: prompt assembly and transport
  - handlers.go: response helpers
*/
package api

import (
	"encoding/json"
	"log"
	"net/http"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/financegpt/finance-engine/llm"
)

// Chat handles POST /api/chat.
func (h *Handler) Chat(w http.ResponseWriter, r *http.Request) {
	var req ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if strings.TrimSpace(req.Message) == "" {
		writeError(w, http.StatusBadRequest, "Invalid message format", nil)
		return
	}

	sessionID := req.SessionID
	if sessionID == "" {
		sessionID = uuid.NewString()
	}

	reply, err := h.LLM.GenerateFinancialResponse(r.Context(), req.Message, toLLMHistory(req.History), req.Topic)
	if err != nil {
		log.Printf("api: chat generation failed: %v", err)
		writeError(w, http.StatusBadGateway, "Failed to generate response", nil)
		return
	}

	// A question inside a learning module counts toward its engagement.
	// Free-form topics without a module don't create progress records.
	if llm.HasModulePrompt(req.Topic) {
		h.Progress.RecordQuestionAsked(r.Context(), strings.ToLower(req.Topic))
	}

	writeJSON(w, http.StatusOK, ChatResponse{
		Message:   reply,
		SessionID: sessionID,
	})
}

// ListChatModules handles GET /api/chat/modules, listing the topics with
// a specialist persona. Stable-ordered for the learn UI.
func (h *Handler) ListChatModules(w http.ResponseWriter, _ *http.Request) {
	modules := llm.AvailableModules()
	sort.Strings(modules)
	writeJSON(w, http.StatusOK, modules)
}

// ExplainTopic handles POST /api/explain.
func (h *Handler) ExplainTopic(w http.ResponseWriter, r *http.Request) {
	var req ExplainRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if strings.TrimSpace(req.Topic) == "" {
		writeError(w, http.StatusBadRequest, "Topic is required", nil)
		return
	}

	explanation, err := h.LLM.ExplainTopic(r.Context(), req.Topic, req.Level)
	if err != nil {
		log.Printf("api: explain generation failed: %v", err)
		writeError(w, http.StatusBadGateway, "Failed to generate response", nil)
		return
	}

	writeJSON(w, http.StatusOK, ExplainResponse{
		Topic:       req.Topic,
		Explanation: explanation,
	})
}
