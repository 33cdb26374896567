package engine

import (
	"errors"
	"testing"
	"time"

	"github.com/gcbaptista/go-typeahead/config"
	typeaheadErrors "github.com/gcbaptista/go-typeahead/internal/errors"
	"github.com/gcbaptista/go-typeahead/services"
)

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	eng := NewEngine(t.TempDir(), time.Hour)
	t.Cleanup(eng.Close)
	return eng
}

func TestEngineCreateAndGetList(t *testing.T) {
	eng := newTestEngine(t)

	if err := eng.CreateList(config.ListSettings{Name: "cities"}); err != nil {
		t.Fatalf("CreateList failed: %v", err)
	}

	accessor, err := eng.GetList("cities")
	if err != nil {
		t.Fatalf("GetList failed: %v", err)
	}
	if accessor == nil {
		t.Fatal("GetList returned nil accessor")
	}

	if err := eng.CreateList(config.ListSettings{Name: "cities"}); !errors.Is(err, typeaheadErrors.ErrListAlreadyExists) {
		t.Errorf("duplicate CreateList: err = %v, want ErrListAlreadyExists", err)
	}

	if _, err := eng.GetList("missing"); !errors.Is(err, typeaheadErrors.ErrListNotFound) {
		t.Errorf("GetList missing: err = %v, want ErrListNotFound", err)
	}
}

func TestEngineCreateListValidatesSettings(t *testing.T) {
	eng := newTestEngine(t)

	err := eng.CreateList(config.ListSettings{Name: ""})
	if !errors.Is(err, typeaheadErrors.ErrInvalidInput) {
		t.Errorf("CreateList with empty name: err = %v, want ErrInvalidInput", err)
	}

	err = eng.CreateList(config.ListSettings{Name: "bad", MaxResults: -1})
	if !errors.Is(err, typeaheadErrors.ErrInvalidInput) {
		t.Errorf("CreateList with negative limit: err = %v, want ErrInvalidInput", err)
	}
}

func TestEngineSuggestThroughAccessor(t *testing.T) {
	eng := newTestEngine(t)
	if err := eng.CreateList(config.ListSettings{Name: "fruit"}); err != nil {
		t.Fatalf("CreateList failed: %v", err)
	}

	accessor, err := eng.GetList("fruit")
	if err != nil {
		t.Fatalf("GetList failed: %v", err)
	}
	if err := accessor.ReplaceCandidates([]string{"Apple", "Banana", "Grape", "Pineapple"}); err != nil {
		t.Fatalf("ReplaceCandidates failed: %v", err)
	}

	result, err := accessor.Suggest(services.SuggestQuery{QueryString: "ap"})
	if err != nil {
		t.Fatalf("Suggest failed: %v", err)
	}
	if result.Total != 3 {
		t.Errorf("Total = %d, want 3", result.Total)
	}
	if result.Suggestions[0].Value != "Apple" {
		t.Errorf("top suggestion = %q, want Apple", result.Suggestions[0].Value)
	}
}

func TestEnginePersistenceRoundTrip(t *testing.T) {
	dataDir := t.TempDir()

	eng := NewEngine(dataDir, time.Hour)
	if err := eng.CreateList(config.ListSettings{Name: "cities", MaxResults: 5}); err != nil {
		t.Fatalf("CreateList failed: %v", err)
	}
	accessor, err := eng.GetList("cities")
	if err != nil {
		t.Fatalf("GetList failed: %v", err)
	}
	if err := accessor.ReplaceCandidates([]string{"Lisbon", "London", "Lima"}); err != nil {
		t.Fatalf("ReplaceCandidates failed: %v", err)
	}
	if err := eng.PersistListData("cities"); err != nil {
		t.Fatalf("PersistListData failed: %v", err)
	}
	eng.Close()

	// A new engine over the same data dir sees the persisted list.
	restored := NewEngine(dataDir, time.Hour)
	defer restored.Close()

	settings, err := restored.GetListSettings("cities")
	if err != nil {
		t.Fatalf("GetListSettings after reload failed: %v", err)
	}
	if settings.MaxResults != 5 {
		t.Errorf("reloaded MaxResults = %d, want 5", settings.MaxResults)
	}

	stats, err := restored.GetListStats("cities")
	if err != nil {
		t.Fatalf("GetListStats after reload failed: %v", err)
	}
	if stats.CandidateCount != 3 {
		t.Errorf("reloaded CandidateCount = %d, want 3", stats.CandidateCount)
	}

	restoredAccessor, err := restored.GetList("cities")
	if err != nil {
		t.Fatalf("GetList after reload failed: %v", err)
	}
	result, err := restoredAccessor.Suggest(services.SuggestQuery{QueryString: "li"})
	if err != nil {
		t.Fatalf("Suggest after reload failed: %v", err)
	}
	// Lisbon and Lima match "li"; London has no 'i'.
	if result.Total != 2 {
		t.Errorf("Total after reload = %d, want 2 (%+v)", result.Total, result.Suggestions)
	}
}

func TestEngineDeleteList(t *testing.T) {
	eng := newTestEngine(t)
	if err := eng.CreateList(config.ListSettings{Name: "tmp"}); err != nil {
		t.Fatalf("CreateList failed: %v", err)
	}

	if err := eng.DeleteList("tmp"); err != nil {
		t.Fatalf("DeleteList failed: %v", err)
	}
	if _, err := eng.GetList("tmp"); !errors.Is(err, typeaheadErrors.ErrListNotFound) {
		t.Errorf("GetList after delete: err = %v, want ErrListNotFound", err)
	}
	if err := eng.DeleteList("tmp"); !errors.Is(err, typeaheadErrors.ErrListNotFound) {
		t.Errorf("second DeleteList: err = %v, want ErrListNotFound", err)
	}
}

func TestEngineRenameList(t *testing.T) {
	eng := newTestEngine(t)
	if err := eng.CreateList(config.ListSettings{Name: "old"}); err != nil {
		t.Fatalf("CreateList failed: %v", err)
	}

	if err := eng.RenameList("old", "old"); !errors.Is(err, typeaheadErrors.ErrSameName) {
		t.Errorf("rename to same name: err = %v, want ErrSameName", err)
	}
	if err := eng.RenameList("missing", "x"); !errors.Is(err, typeaheadErrors.ErrListNotFound) {
		t.Errorf("rename missing: err = %v, want ErrListNotFound", err)
	}

	if err := eng.CreateList(config.ListSettings{Name: "taken"}); err != nil {
		t.Fatalf("CreateList failed: %v", err)
	}
	if err := eng.RenameList("old", "taken"); !errors.Is(err, typeaheadErrors.ErrListAlreadyExists) {
		t.Errorf("rename onto existing: err = %v, want ErrListAlreadyExists", err)
	}

	if err := eng.RenameList("old", "new"); err != nil {
		t.Fatalf("RenameList failed: %v", err)
	}
	if _, err := eng.GetList("old"); !errors.Is(err, typeaheadErrors.ErrListNotFound) {
		t.Errorf("old name still resolves after rename")
	}
	settings, err := eng.GetListSettings("new")
	if err != nil {
		t.Fatalf("GetListSettings for new name failed: %v", err)
	}
	if settings.Name != "new" {
		t.Errorf("settings.Name = %q, want new", settings.Name)
	}
}

func TestEngineUpdateListSettings(t *testing.T) {
	eng := newTestEngine(t)
	if err := eng.CreateList(config.ListSettings{Name: "cities"}); err != nil {
		t.Fatalf("CreateList failed: %v", err)
	}

	if err := eng.UpdateListSettings("cities", config.ListSettings{Name: "other"}); !errors.Is(err, typeaheadErrors.ErrInvalidInput) {
		t.Errorf("settings update changing name: err = %v, want ErrInvalidInput", err)
	}

	if err := eng.UpdateListSettings("cities", config.ListSettings{MaxResults: 3}); err != nil {
		t.Fatalf("UpdateListSettings failed: %v", err)
	}
	settings, err := eng.GetListSettings("cities")
	if err != nil {
		t.Fatalf("GetListSettings failed: %v", err)
	}
	if settings.MaxResults != 3 {
		t.Errorf("MaxResults = %d, want 3", settings.MaxResults)
	}

	if err := eng.UpdateListSettings("missing", config.ListSettings{}); !errors.Is(err, typeaheadErrors.ErrListNotFound) {
		t.Errorf("update missing list: err = %v, want ErrListNotFound", err)
	}
}

func TestEngineListLists(t *testing.T) {
	eng := newTestEngine(t)
	if len(eng.ListLists()) != 0 {
		t.Errorf("fresh engine lists = %v, want empty", eng.ListLists())
	}

	for _, name := range []string{"a", "b", "c"} {
		if err := eng.CreateList(config.ListSettings{Name: name}); err != nil {
			t.Fatalf("CreateList(%s) failed: %v", name, err)
		}
	}
	if got := len(eng.ListLists()); got != 3 {
		t.Errorf("ListLists returned %d names, want 3", got)
	}
}
