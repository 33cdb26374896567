package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/gcbaptista/go-typeahead/config"
	"github.com/gcbaptista/go-typeahead/internal/analytics"
	typeaheadErrors "github.com/gcbaptista/go-typeahead/internal/errors"
	"github.com/gcbaptista/go-typeahead/services"
)

// API holds dependencies for API handlers, primarily the list manager.
type API struct {
	engine    services.ListManager
	analytics *analytics.Service
}

// NewAPI creates a new API handler structure.
func NewAPI(engine services.ListManager, analyticsFile string) *API {
	return &API{
		engine:    engine,
		analytics: analytics.NewService(engine, analyticsFile),
	}
}

// SetupRoutes defines all the API routes for the typeahead service.
func SetupRoutes(router *gin.Engine, engine services.ListManager, analyticsFile string) {
	apiHandler := NewAPI(engine, analyticsFile)

	// Health check route
	router.GET("/health", apiHandler.HealthCheckHandler)

	// Analytics route
	router.GET("/analytics", apiHandler.GetAnalyticsHandler)

	// List management routes
	listRoutes := router.Group("/lists")
	{
		listRoutes.POST("", apiHandler.CreateListHandler)                             // Create a new list
		listRoutes.GET("", apiHandler.ListListsHandler)                               // List all lists
		listRoutes.GET("/:listName", apiHandler.GetListHandler)                       // Get list details (its settings)
		listRoutes.DELETE("/:listName", apiHandler.DeleteListHandler)                 // Delete a list
		listRoutes.PATCH("/:listName/settings", apiHandler.UpdateListSettingsHandler) // Update list settings
		listRoutes.POST("/:listName/rename", apiHandler.RenameListHandler)            // Rename a list
		listRoutes.GET("/:listName/stats", apiHandler.GetListStatsHandler)            // Get list statistics

		// Candidate management routes per list
		candidateRoutes := listRoutes.Group("/:listName/candidates")
		{
			candidateRoutes.PUT("", apiHandler.ReplaceCandidatesHandler)      // Replace the full candidate set
			candidateRoutes.POST("", apiHandler.AppendCandidatesHandler)      // Append candidates
			candidateRoutes.GET("", apiHandler.GetCandidatesHandler)          // List candidates with pagination
			candidateRoutes.DELETE("", apiHandler.DeleteCandidatesHandler)    // Delete all candidates
		}

		// Typing session routes per list
		sessionRoutes := listRoutes.Group("/:listName/sessions")
		{
			sessionRoutes.POST("", apiHandler.CreateSessionHandler)                    // Open a new typing session
			sessionRoutes.DELETE("/:sessionId", apiHandler.DropSessionHandler)         // Close a typing session
			sessionRoutes.GET("/:sessionId/stats", apiHandler.GetSessionStatsHandler)  // Get session cache statistics
		}

		// Suggest route per list
		listRoutes.POST("/:listName/_suggest", apiHandler.SuggestHandler)
	}
}

// CreateListHandler handles the request to create a new candidate list.
// Request Body: config.ListSettings
func (api *API) CreateListHandler(c *gin.Context) {
	var settings config.ListSettings
	if err := c.ShouldBindJSON(&settings); err != nil {
		SendInvalidJSONError(c, err)
		return
	}

	if settings.Name == "" {
		SendValidationError(c, "name", "list name is required")
		return
	}

	if err := api.engine.CreateList(settings); err != nil {
		switch {
		case errors.Is(err, typeaheadErrors.ErrListAlreadyExists):
			SendListExistsError(c, settings.Name)
		case errors.Is(err, typeaheadErrors.ErrInvalidInput):
			SendValidationError(c, "settings", err.Error())
		default:
			SendInternalError(c, "create list", err)
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "List '" + settings.Name + "' created successfully"})
}

// ListListsHandler lists all available candidate lists.
func (api *API) ListListsHandler(c *gin.Context) {
	names := api.engine.ListLists()
	c.JSON(http.StatusOK, gin.H{"lists": names, "count": len(names)})
}

// GetListHandler retrieves details about a specific list (its settings).
func (api *API) GetListHandler(c *gin.Context) {
	listName := c.Param("listName")
	settings, err := api.engine.GetListSettings(listName)
	if err != nil {
		SendListNotFoundError(c, listName)
		return
	}
	c.JSON(http.StatusOK, settings)
}

// DeleteListHandler handles deleting a list.
func (api *API) DeleteListHandler(c *gin.Context) {
	listName := c.Param("listName")

	if err := api.engine.DeleteList(listName); err != nil {
		if errors.Is(err, typeaheadErrors.ErrListNotFound) {
			SendListNotFoundError(c, listName)
			return
		}
		SendInternalError(c, "delete list '"+listName+"'", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "List '" + listName + "' deleted successfully"})
}

// RenameListRequest defines the structure for renaming a list
type RenameListRequest struct {
	NewName string `json:"new_name" binding:"required"`
}

// RenameListHandler handles requests to rename a list
func (api *API) RenameListHandler(c *gin.Context) {
	oldName := c.Param("listName")

	var req RenameListRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		SendInvalidJSONError(c, err)
		return
	}

	if strings.TrimSpace(req.NewName) != req.NewName {
		SendValidationError(c, "new_name", "new_name cannot have leading or trailing whitespace")
		return
	}

	if err := api.engine.RenameList(oldName, req.NewName); err != nil {
		switch {
		case errors.Is(err, typeaheadErrors.ErrListNotFound):
			SendListNotFoundError(c, oldName)
		case errors.Is(err, typeaheadErrors.ErrListAlreadyExists):
			SendListExistsError(c, req.NewName)
		case errors.Is(err, typeaheadErrors.ErrSameName):
			SendSameNameError(c, req.NewName)
		case errors.Is(err, typeaheadErrors.ErrInvalidInput):
			SendValidationError(c, "new_name", err.Error())
		default:
			SendInternalError(c, "rename list", err)
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":  "List renamed successfully",
		"old_name": oldName,
		"new_name": req.NewName,
	})
}

// UpdateListSettingsHandler handles requests to update list settings.
// The list name itself cannot be changed here; use the rename endpoint.
func (api *API) UpdateListSettingsHandler(c *gin.Context) {
	listName := c.Param("listName")

	settings, err := api.engine.GetListSettings(listName)
	if err != nil {
		SendListNotFoundError(c, listName)
		return
	}

	// Read raw request first to check for key presence, so a client can set a
	// limit to zero (meaning "use the default") explicitly.
	rawRequest := make(map[string]interface{})
	if err := c.ShouldBindJSON(&rawRequest); err != nil {
		SendInvalidJSONError(c, err)
		return
	}

	updated := false

	if fieldValue, keyExists := rawRequest["max_results"]; keyExists {
		if num, isNum := fieldValue.(float64); isNum {
			settings.MaxResults = int(num)
			updated = true
		}
	}

	if fieldValue, keyExists := rawRequest["max_cache_entries"]; keyExists {
		if num, isNum := fieldValue.(float64); isNum {
			settings.MaxCacheEntries = int(num)
			updated = true
		}
	}

	if _, keyExists := rawRequest["name"]; keyExists {
		SendValidationError(c, "name", "list name cannot be changed via settings; use the rename endpoint")
		return
	}

	if !updated {
		SendValidationError(c, "settings", "no valid updatable fields provided")
		return
	}

	if err := api.engine.UpdateListSettings(listName, settings); err != nil {
		if errors.Is(err, typeaheadErrors.ErrInvalidInput) {
			SendValidationError(c, "settings", err.Error())
			return
		}
		SendInternalError(c, "update list settings", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Settings updated successfully for list '" + listName + "'"})
}

// GetListStatsHandler returns statistics for a specific list
func (api *API) GetListStatsHandler(c *gin.Context) {
	listName := c.Param("listName")
	stats, err := api.engine.GetListStats(listName)
	if err != nil {
		SendListNotFoundError(c, listName)
		return
	}
	c.JSON(http.StatusOK, stats)
}

// HealthCheckHandler provides a simple health check endpoint
func (api *API) HealthCheckHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"service":   "go-typeahead",
		"timestamp": fmt.Sprintf("%d", time.Now().Unix()),
	})
}

// GetAnalyticsHandler handles the request to get analytics data
func (api *API) GetAnalyticsHandler(c *gin.Context) {
	dashboard, err := api.analytics.GetDashboardData()
	if err != nil {
		SendInternalError(c, "retrieve analytics data", err)
		return
	}

	c.JSON(http.StatusOK, dashboard)
}
