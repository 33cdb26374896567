package api

import (
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// CandidateListRequest defines the structure for candidate listing requests
type CandidateListRequest struct {
	Page     int `form:"page" json:"page"`
	PageSize int `form:"page_size" json:"page_size"`
}

// bindCandidates reads a JSON array of strings from the request body,
// rejecting empty and whitespace-only entries.
func bindCandidates(c *gin.Context) ([]string, bool) {
	var candidates []string
	if err := c.ShouldBindJSON(&candidates); err != nil {
		SendInvalidJSONError(c, err)
		return nil, false
	}
	if len(candidates) == 0 {
		SendValidationError(c, "candidates", "no candidates provided; expecting a JSON array of strings")
		return nil, false
	}
	for i, candidate := range candidates {
		if strings.TrimSpace(candidate) == "" {
			SendValidationError(c, "candidates",
				fmt.Sprintf("candidate at index %d is empty or whitespace-only", i))
			return nil, false
		}
	}
	return candidates, true
}

// ReplaceCandidatesHandler swaps the full candidate set of a list.
// Request Body: JSON array of strings.
func (api *API) ReplaceCandidatesHandler(c *gin.Context) {
	listName := c.Param("listName")
	accessor, err := api.engine.GetList(listName)
	if err != nil {
		SendListNotFoundError(c, listName)
		return
	}

	candidates, ok := bindCandidates(c)
	if !ok {
		return
	}

	if err := accessor.ReplaceCandidates(candidates); err != nil {
		SendInternalError(c, "replace candidates in list '"+listName+"'", err)
		return
	}
	api.persistAsync(listName)

	c.JSON(http.StatusOK, gin.H{
		"message": fmt.Sprintf("%d candidate(s) now in list '%s'", len(candidates), listName),
	})
}

// AppendCandidatesHandler adds candidates to the end of a list.
// Request Body: JSON array of strings.
func (api *API) AppendCandidatesHandler(c *gin.Context) {
	listName := c.Param("listName")
	accessor, err := api.engine.GetList(listName)
	if err != nil {
		SendListNotFoundError(c, listName)
		return
	}

	candidates, ok := bindCandidates(c)
	if !ok {
		return
	}

	if err := accessor.AppendCandidates(candidates); err != nil {
		SendInternalError(c, "append candidates to list '"+listName+"'", err)
		return
	}
	api.persistAsync(listName)

	c.JSON(http.StatusOK, gin.H{
		"message": fmt.Sprintf("%d candidate(s) appended to list '%s'", len(candidates), listName),
	})
}

// GetCandidatesHandler lists candidates in a list with pagination
func (api *API) GetCandidatesHandler(c *gin.Context) {
	listName := c.Param("listName")
	accessor, err := api.engine.GetList(listName)
	if err != nil {
		SendListNotFoundError(c, listName)
		return
	}

	var req CandidateListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		SendValidationError(c, "query", "invalid query parameters: "+err.Error())
		return
	}

	// Set defaults
	if req.Page <= 0 {
		req.Page = 1
	}
	if req.PageSize <= 0 {
		req.PageSize = 10
	}
	if req.PageSize > 100 {
		req.PageSize = 100 // Maximum page size
	}

	offset := (req.Page - 1) * req.PageSize
	candidates, total := accessor.GetCandidates(offset, req.PageSize)

	c.JSON(http.StatusOK, gin.H{
		"candidates": candidates,
		"total":      total,
		"page":       req.Page,
		"page_size":  req.PageSize,
		"pages":      (total + req.PageSize - 1) / req.PageSize,
	})
}

// DeleteCandidatesHandler removes every candidate from a list.
func (api *API) DeleteCandidatesHandler(c *gin.Context) {
	listName := c.Param("listName")
	accessor, err := api.engine.GetList(listName)
	if err != nil {
		SendListNotFoundError(c, listName)
		return
	}

	if err := accessor.DeleteAllCandidates(); err != nil {
		SendInternalError(c, "delete candidates from list '"+listName+"'", err)
		return
	}
	api.persistAsync(listName)

	c.JSON(http.StatusOK, gin.H{"message": "All candidates deleted from list '" + listName + "'"})
}

// persistAsync writes the list's data to disk without blocking the response.
func (api *API) persistAsync(listName string) {
	go func() {
		if err := api.engine.PersistListData(listName); err != nil {
			log.Printf("Warning: Failed to persist data for list %s: %v", listName, err)
		}
	}()
}
