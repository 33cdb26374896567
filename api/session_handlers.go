package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	typeaheadErrors "github.com/gcbaptista/go-typeahead/internal/errors"
)

// CreateSessionHandler opens a new incremental typing session on a list.
func (api *API) CreateSessionHandler(c *gin.Context) {
	listName := c.Param("listName")
	accessor, err := api.engine.GetList(listName)
	if err != nil {
		SendListNotFoundError(c, listName)
		return
	}

	sessionID, err := accessor.CreateSession()
	if err != nil {
		SendInternalError(c, "create session on list '"+listName+"'", err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"session_id": sessionID,
		"list_name":  listName,
	})
}

// DropSessionHandler closes an incremental typing session.
func (api *API) DropSessionHandler(c *gin.Context) {
	listName := c.Param("listName")
	sessionID := c.Param("sessionId")

	accessor, err := api.engine.GetList(listName)
	if err != nil {
		SendListNotFoundError(c, listName)
		return
	}

	if err := accessor.DropSession(sessionID); err != nil {
		if errors.Is(err, typeaheadErrors.ErrSessionNotFound) {
			SendSessionNotFoundError(c, sessionID)
			return
		}
		SendInternalError(c, "drop session", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Session '" + sessionID + "' closed"})
}

// GetSessionStatsHandler returns cache statistics for one typing session.
func (api *API) GetSessionStatsHandler(c *gin.Context) {
	listName := c.Param("listName")
	sessionID := c.Param("sessionId")

	accessor, err := api.engine.GetList(listName)
	if err != nil {
		SendListNotFoundError(c, listName)
		return
	}

	stats, err := accessor.GetSessionStats(sessionID)
	if err != nil {
		if errors.Is(err, typeaheadErrors.ErrSessionNotFound) {
			SendSessionNotFoundError(c, sessionID)
			return
		}
		SendInternalError(c, "get session stats", err)
		return
	}

	c.JSON(http.StatusOK, stats)
}
