package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/HopeyCodeDS/mineralflow/internal/service/poll"
)

// PollHandler serves the current state of a background poller.
type PollHandler struct {
	poller *poll.Poller
}

// NewPollHandler constructs the HTTP handler adapter.
func NewPollHandler(poller *poll.Poller) *PollHandler {
	return &PollHandler{poller: poller}
}

// State returns the poller's latest value and its freshness metadata.
func (h *PollHandler) State(c *gin.Context) {
	state := h.poller.State()

	resp := gin.H{
		"data":    state.Data,
		"polling": state.Polling,
	}
	if !state.LastUpdated.IsZero() {
		resp["lastUpdated"] = state.LastUpdated.Format(time.RFC3339)
	}
	if state.Err != nil {
		resp["error"] = state.Err.Error()
	}

	c.JSON(http.StatusOK, resp)
}
