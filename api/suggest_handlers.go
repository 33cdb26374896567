package api

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	typeaheadErrors "github.com/gcbaptista/go-typeahead/internal/errors"
	"github.com/gcbaptista/go-typeahead/model"
	"github.com/gcbaptista/go-typeahead/services"
)

// SuggestRequest defines the structure for suggest queries.
type SuggestRequest struct {
	Query     string `json:"query"`
	SessionID string `json:"session_id,omitempty"` // Optional: route through an incremental typing session
	Limit     int    `json:"limit,omitempty"`      // Optional: override the list's max_results
}

// SuggestHandler handles suggest requests against a list.
// Request Body: SuggestRequest
func (api *API) SuggestHandler(c *gin.Context) {
	startTime := time.Now()
	listName := c.Param("listName")

	accessor, err := api.engine.GetList(listName)
	if err != nil {
		SendListNotFoundError(c, listName)
		return
	}

	var req SuggestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		SendInvalidJSONError(c, err)
		return
	}
	if req.Limit < 0 {
		SendValidationError(c, "limit", "limit cannot be negative")
		return
	}

	result, err := accessor.Suggest(services.SuggestQuery{
		QueryString: req.Query,
		SessionID:   req.SessionID,
		Limit:       req.Limit,
	})
	if err != nil {
		if errors.Is(err, typeaheadErrors.ErrSessionNotFound) {
			SendSessionNotFoundError(c, req.SessionID)
			return
		}
		SendError(c, http.StatusInternalServerError, ErrorCodeSuggestFailed,
			"Error performing suggest on list '"+listName+"': "+err.Error())
		return
	}

	event := model.SuggestEvent{
		ListName:     listName,
		Query:        req.Query,
		SessionID:    req.SessionID,
		Incremental:  req.SessionID != "",
		ResponseTime: time.Since(startTime),
		ResultCount:  result.Total,
	}

	// Track the event asynchronously to avoid slowing down the response
	go func() {
		if err := api.analytics.TrackSuggestEvent(event); err != nil {
			log.Printf("Warning: Failed to track suggest event: %v", err)
		}
	}()

	c.JSON(http.StatusOK, result)
}
