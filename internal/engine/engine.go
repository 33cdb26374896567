// Package engine orchestrates the lifecycle of candidate lists: creation,
// loading from disk, settings updates, and persistence.
package engine

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/gcbaptista/go-typeahead/config"
	"github.com/gcbaptista/go-typeahead/internal/errors"
	"github.com/gcbaptista/go-typeahead/internal/persistence"
	"github.com/gcbaptista/go-typeahead/model"
	"github.com/gcbaptista/go-typeahead/services"
)

const (
	dataDirPerm    = 0755
	settingsFile   = "settings.gob"
	candidatesFile = "candidates.gob"

	// DefaultSessionTTL is used when the caller does not configure one.
	DefaultSessionTTL = 30 * time.Minute
)

// Engine manages multiple candidate lists.
// It implements the services.ListManager interface.
type Engine struct {
	mu         sync.RWMutex
	lists      map[string]*ListInstance
	dataDir    string
	sessionTTL time.Duration
}

// NewEngine creates a new typeahead engine rooted at dataDir, loading any
// lists persisted by a previous run.
func NewEngine(dataDir string, sessionTTL time.Duration) *Engine {
	if sessionTTL <= 0 {
		sessionTTL = DefaultSessionTTL
	}
	eng := &Engine{
		lists:      make(map[string]*ListInstance),
		dataDir:    dataDir,
		sessionTTL: sessionTTL,
	}
	if err := os.MkdirAll(dataDir, dataDirPerm); err != nil {
		log.Printf("Warning: Could not create data directory %s: %v. Proceeding without persistence for new lists if loading fails.", dataDir, err)
	}
	eng.loadListsFromDisk()
	return eng
}

// Close stops every list's session manager. The engine must not be used
// afterwards.
func (e *Engine) Close() {
	e.mu.Lock()
	defer e.mu.Unlock()
	for _, instance := range e.lists {
		instance.Stop()
	}
	e.lists = make(map[string]*ListInstance)
}

func (e *Engine) loadListsFromDisk() {
	log.Printf("Loading lists from disk: %s", e.dataDir)
	items, err := os.ReadDir(e.dataDir)
	if err != nil {
		log.Printf("Warning: Failed to read data directory %s: %v. No lists loaded.", e.dataDir, err)
		return
	}

	for _, item := range items {
		if !item.IsDir() {
			continue
		}
		listName := item.Name()
		listPath := filepath.Join(e.dataDir, listName)
		log.Printf("Attempting to load list: %s", listName)

		var settings config.ListSettings
		settingsPath := filepath.Join(listPath, settingsFile)
		if err := persistence.LoadGob(settingsPath, &settings); err != nil {
			log.Printf("Warning: Failed to load settings for list %s from %s: %v. Skipping this list.", listName, settingsPath, err)
			continue
		}

		// Basic validation, settings name should match directory name
		if settings.Name != listName {
			log.Printf("Warning: List name in settings ('%s') does not match directory name ('%s') for path %s. Skipping this list.", settings.Name, listName, listPath)
			continue
		}

		instance, err := NewListInstance(settings, e.sessionTTL)
		if err != nil {
			log.Printf("Error creating instance for loaded list %s: %v. Skipping.", listName, err)
			continue
		}

		csPath := filepath.Join(listPath, candidatesFile)
		if err := persistence.LoadGob(csPath, instance.CandidateStore); err != nil && err != os.ErrNotExist {
			log.Printf("Warning: Failed to load candidates for list %s from %s: %v. Proceeding with empty list.", listName, csPath, err)
		} else if err == os.ErrNotExist {
			log.Printf("Info: Candidates file %s not found for list %s. Initializing empty list.", csPath, listName)
		}

		e.lists[listName] = instance
		log.Printf("Successfully loaded list: %s (%d candidates)", listName, instance.CandidateStore.Count())
	}
}

// CreateList creates a new candidate list with the given settings and
// persists it.
func (e *Engine) CreateList(settings config.ListSettings) error {
	if problems := settings.Validate(); len(problems) > 0 {
		return errors.NewValidationError("settings", fmt.Sprintf("invalid list settings: %v", problems))
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if _, exists := e.lists[settings.Name]; exists {
		return errors.NewListAlreadyExistsError(settings.Name)
	}

	instance, err := NewListInstance(settings, e.sessionTTL)
	if err != nil {
		return fmt.Errorf("failed to create list instance: %w", err)
	}
	e.lists[settings.Name] = instance

	if err := e.persistListUnsafe(settings.Name, instance); err != nil {
		log.Printf("Warning: Failed to persist new list %s: %v", settings.Name, err)
	}
	return nil
}

// GetList returns the accessor for a named list.
func (e *Engine) GetList(name string) (services.ListAccessor, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	instance, exists := e.lists[name]
	if !exists {
		return nil, errors.NewListNotFoundError(name)
	}
	return instance, nil
}

// GetListSettings returns the settings of a named list.
func (e *Engine) GetListSettings(name string) (config.ListSettings, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	instance, exists := e.lists[name]
	if !exists {
		return config.ListSettings{}, errors.NewListNotFoundError(name)
	}
	return instance.Settings(), nil
}

// DeleteList removes a list and its persisted data.
func (e *Engine) DeleteList(name string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	instance, exists := e.lists[name]
	if !exists {
		return errors.NewListNotFoundError(name)
	}

	instance.Stop()
	delete(e.lists, name)

	listPath := filepath.Join(e.dataDir, name)
	if err := os.RemoveAll(listPath); err != nil {
		return fmt.Errorf("failed to remove list data at %s: %w", listPath, err)
	}
	return nil
}

// ListLists returns the names of all lists.
func (e *Engine) ListLists() []string {
	e.mu.RLock()
	defer e.mu.RUnlock()

	names := make([]string, 0, len(e.lists))
	for name := range e.lists {
		names = append(names, name)
	}
	return names
}

// GetListStats returns statistics for a named list.
func (e *Engine) GetListStats(name string) (model.ListStats, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	instance, exists := e.lists[name]
	if !exists {
		return model.ListStats{}, errors.NewListNotFoundError(name)
	}

	candidates, version := instance.CandidateStore.Snapshot()
	return model.ListStats{
		ListName:       name,
		CandidateCount: len(candidates),
		ActiveSessions: instance.ActiveSessions(),
		Version:        version,
	}, nil
}

// PersistListData writes a list's settings and candidates to disk.
func (e *Engine) PersistListData(listName string) error {
	e.mu.RLock()
	instance, exists := e.lists[listName]
	e.mu.RUnlock()
	if !exists {
		return errors.NewListNotFoundError(listName)
	}
	return e.persistListUnsafe(listName, instance)
}

// persistListUnsafe writes list data without taking the engine lock; callers
// hold it or own the instance.
func (e *Engine) persistListUnsafe(name string, instance *ListInstance) error {
	listPath := filepath.Join(e.dataDir, name)

	settings := instance.Settings()
	if err := persistence.SaveGob(filepath.Join(listPath, settingsFile), &settings); err != nil {
		return fmt.Errorf("failed to persist settings for list %s: %w", name, err)
	}
	if err := persistence.SaveGob(filepath.Join(listPath, candidatesFile), instance.CandidateStore); err != nil {
		return fmt.Errorf("failed to persist candidates for list %s: %w", name, err)
	}
	return nil
}
