package engine

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/gcbaptista/go-typeahead/config"
	"github.com/gcbaptista/go-typeahead/internal/errors"
)

// UpdateListSettings applies new settings to an existing list. The list name
// cannot be changed this way; use RenameList. Candidates and live sessions
// survive the update, but sessions created afterwards pick up the new cache
// bound.
func (e *Engine) UpdateListSettings(name string, newSettings config.ListSettings) error {
	if newSettings.Name != "" && newSettings.Name != name {
		return errors.NewValidationError("name", "settings update cannot change the list name")
	}
	newSettings.Name = name
	if problems := newSettings.Validate(); len(problems) > 0 {
		return errors.NewValidationError("settings", fmt.Sprintf("invalid list settings: %v", problems))
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	instance, exists := e.lists[name]
	if !exists {
		return errors.NewListNotFoundError(name)
	}

	*instance.settings = newSettings
	instance.sessions.UpdateCacheBound(newSettings.EffectiveMaxCacheEntries())

	if err := e.persistListUnsafe(name, instance); err != nil {
		log.Printf("Warning: Failed to persist updated settings for list %s: %v", name, err)
	}
	return nil
}

// RenameList renames a list and moves its persisted data. All sessions on
// the list survive; only the addressable name changes.
func (e *Engine) RenameList(oldName, newName string) error {
	if newName == "" {
		return errors.NewValidationError("new_name", "new list name cannot be empty")
	}
	if oldName == newName {
		return errors.NewSameNameError(newName)
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	instance, exists := e.lists[oldName]
	if !exists {
		return errors.NewListNotFoundError(oldName)
	}
	if _, exists := e.lists[newName]; exists {
		return errors.NewListAlreadyExistsError(newName)
	}

	renamed := instance.Settings()
	renamed.Name = newName
	if problems := renamed.Validate(); len(problems) > 0 {
		return errors.NewValidationError("new_name", fmt.Sprintf("invalid new list name: %v", problems))
	}

	*instance.settings = renamed
	e.lists[newName] = instance
	delete(e.lists, oldName)

	oldPath := filepath.Join(e.dataDir, oldName)
	newPath := filepath.Join(e.dataDir, newName)
	if err := os.Rename(oldPath, newPath); err != nil && !os.IsNotExist(err) {
		log.Printf("Warning: Failed to move list data from %s to %s: %v", oldPath, newPath, err)
	}

	if err := e.persistListUnsafe(newName, instance); err != nil {
		log.Printf("Warning: Failed to persist renamed list %s: %v", newName, err)
	}
	return nil
}
