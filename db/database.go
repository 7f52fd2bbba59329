package db

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"sync"
	"time"

	"budgetbuddy/config"
	"budgetbuddy/metrics"
	"budgetbuddy/models"
)

// Database owns the on-disk JSON document and the in-memory session copy of
// the user state. The in-memory state is authoritative for the duration of a
// session and flushed to disk after every mutation.
//
// Known limitation: there is no cross-process locking. The design assumes a
// single active session per stored file; concurrent writers are not supported.
type Database struct {
	models.UserState // Embedded state: profile, months map and the RWMutex
	config           *config.Config
	saveTimer        *time.Timer // Timer for debounced saving (SaveInterval > 0)
	savePending      bool
	saveMutex        sync.Mutex // Guards the save timer logic
}

// NewDatabase creates a Database and loads existing data from the configured
// file. A missing or unparsable file is not an error: the store falls back to
// a freshly initialized default state.
func NewDatabase(cfg *config.Config) (*Database, error) {
	db := &Database{config: cfg}

	log.Printf("INFO: Initializing store with file: %s", cfg.DataFilePath)
	db.Load()

	return db, nil
}

// Load reads the state from the JSON file. Any failure (file missing,
// unreadable, unparsable) falls back to the default state; corruption is
// logged but never surfaced to the caller. After loading, every month record
// is re-derived so the totals invariants hold regardless of what the file
// claimed.
func (db *Database) Load() {
	db.Mu.Lock()
	defer db.Mu.Unlock()

	defaults := models.NewDefaultUserState()
	db.Profile = defaults.Profile
	db.Months = defaults.Months

	fileData, err := os.ReadFile(db.config.DataFilePath)
	if err != nil {
		if os.IsNotExist(err) {
			log.Printf("INFO: Data file '%s' not found. Initializing default state.", db.config.DataFilePath)
		} else {
			log.Printf("WARN: Failed to read data file '%s': %v. Initializing default state.", db.config.DataFilePath, err)
		}
		return
	}

	var loaded models.UserState
	if err := json.Unmarshal(fileData, &loaded); err != nil {
		log.Printf("WARN: Failed to parse data file '%s': %v. Falling back to default state.", db.config.DataFilePath, err)
		return
	}

	db.Profile = loaded.Profile
	if loaded.Months != nil {
		db.Months = loaded.Months
	}

	// Fill in any missing months and recompute derived figures instead of
	// trusting stored totals.
	for _, key := range models.MonthKeys() {
		rec, ok := db.Months[key]
		if !ok {
			db.Months[key] = models.MonthRecord{}
			continue
		}
		db.Months[key] = metrics.NormalizeMonth(rec)
	}

	log.Printf("INFO: Loaded state from %s (%d month records)", db.config.DataFilePath, len(db.Months))
}

// persist writes the full state to the data file: marshal pretty-printed,
// write to a temp file, optionally keep a .bak of the previous file, then
// rename atomically.
func (db *Database) persist() error {
	db.Mu.RLock()
	jsonData, err := json.MarshalIndent(&db.UserState, "", "  ")
	db.Mu.RUnlock()
	if err != nil {
		log.Printf("ERROR: Failed to marshal state to JSON: %v", err)
		return err
	}

	if err := os.MkdirAll(db.config.DataDir, 0755); err != nil {
		log.Printf("ERROR: Failed to create data directory '%s': %v", db.config.DataDir, err)
		return err
	}

	tempFilePath := db.config.DataFilePath + ".tmp"
	backupFilePath := db.config.DataFilePath + ".bak"

	if err := os.WriteFile(tempFilePath, jsonData, 0644); err != nil {
		log.Printf("ERROR: Failed to write temporary data file '%s': %v", tempFilePath, err)
		return err
	}

	if db.config.EnableBackup {
		if _, err := os.Stat(db.config.DataFilePath); err == nil {
			if err := os.Rename(db.config.DataFilePath, backupFilePath); err != nil {
				log.Printf("WARN: Failed to rename '%s' to '%s' for backup: %v. Proceeding with save.", db.config.DataFilePath, backupFilePath, err)
			}
		} else if !os.IsNotExist(err) {
			log.Printf("WARN: Error checking data file '%s' before backup: %v", db.config.DataFilePath, err)
		}
	}

	if err := os.Rename(tempFilePath, db.config.DataFilePath); err != nil {
		log.Printf("ERROR: Failed to rename temporary file '%s' to '%s': %v", tempFilePath, db.config.DataFilePath, err)
		_ = os.Remove(tempFilePath)
		return err
	}

	log.Printf("INFO: Saved state to %s", db.config.DataFilePath)
	return nil
}

// requestSave is called after every mutation. With a non-positive save
// interval the write happens synchronously and its error is returned, so
// callers can report "not persisted" while keeping the in-memory value. With
// a positive interval, writes are debounced and requestSave reports success
// optimistically.
func (db *Database) requestSave() error {
	db.saveMutex.Lock()

	if db.config.SaveInterval <= 0 {
		db.saveMutex.Unlock()
		return db.persist()
	}

	if db.saveTimer != nil {
		db.saveTimer.Stop()
	}
	db.savePending = true
	db.saveTimer = time.AfterFunc(db.config.SaveInterval, func() {
		db.saveMutex.Lock()
		if !db.savePending {
			db.saveMutex.Unlock()
			return
		}
		db.savePending = false
		db.saveMutex.Unlock()

		if err := db.persist(); err != nil {
			log.Printf("ERROR: Debounced persist failed: %v", err)
		}
	})
	db.saveMutex.Unlock()
	return nil
}

// GetProfile returns a copy of the stored profile.
func (db *Database) GetProfile() models.Profile {
	db.Mu.RLock()
	defer db.Mu.RUnlock()
	return db.Profile
}

// SetProfile replaces the profile wholesale and saves. A validation error
// leaves the state untouched. The returned bool reports whether the new state
// reached disk; on false the in-memory value is retained so the session can
// keep working.
func (db *Database) SetProfile(profile models.Profile) (bool, error) {
	if err := validateProfile(profile); err != nil {
		return false, err
	}

	db.Mu.Lock()
	db.Profile = profile
	db.Mu.Unlock()
	log.Printf("INFO: Updated profile (monthly savings target: %.2f)", profile.MonthlySavingsTarget)

	if err := db.requestSave(); err != nil {
		return false, nil
	}
	return true, nil
}

// UpdateSavingsTarget sets only the profile's monthly savings target,
// preserving the other fields. Used by the analysis apply flow.
func (db *Database) UpdateSavingsTarget(newTarget float64) (models.Profile, bool, error) {
	if newTarget < 0 {
		return models.Profile{}, false, fmt.Errorf("monthly savings target must be non-negative, got %.2f", newTarget)
	}

	db.Mu.Lock()
	db.Profile.MonthlySavingsTarget = newTarget
	profile := db.Profile
	db.Mu.Unlock()
	log.Printf("INFO: Applied new monthly savings target: %.2f", newTarget)

	if err := db.requestSave(); err != nil {
		return profile, false, nil
	}
	return profile, true, nil
}

// GetMonth returns the stored record for a month key. Unknown keys yield a
// zero record and false; this never fails.
func (db *Database) GetMonth(key string) (models.MonthRecord, bool) {
	db.Mu.RLock()
	defer db.Mu.RUnlock()
	rec, found := db.Months[key]
	return rec, found
}

// SetMonth replaces a month record wholesale and saves. Totals and savings
// figures are recomputed from the submitted components; the savings target is
// stamped from the current profile. Returns the derived record, whether it
// reached disk, and a validation error (which leaves the state untouched).
func (db *Database) SetMonth(key string, rec models.MonthRecord) (models.MonthRecord, bool, error) {
	if err := validateMonth(rec); err != nil {
		return models.MonthRecord{}, false, err
	}

	db.Mu.Lock()
	derived := metrics.RecomputeMonth(rec, db.Profile.MonthlySavingsTarget)
	db.Months[key] = derived
	db.Mu.Unlock()
	log.Printf("INFO: Updated month record '%s' (cash flow: %.2f)", key, derived.CashFlow)

	if err := db.requestSave(); err != nil {
		return derived, false, nil
	}
	return derived, true, nil
}

// GetAllMonths returns a copy of the month map.
func (db *Database) GetAllMonths() map[string]models.MonthRecord {
	db.Mu.RLock()
	defer db.Mu.RUnlock()
	months := make(map[string]models.MonthRecord, len(db.Months))
	for key, rec := range db.Months {
		months[key] = rec
	}
	return months
}

// Snapshot returns a consistent copy of the profile and the month map, taken
// under a single read lock. Metrics and advisor code work on snapshots.
func (db *Database) Snapshot() (models.Profile, map[string]models.MonthRecord) {
	db.Mu.RLock()
	defer db.Mu.RUnlock()
	months := make(map[string]models.MonthRecord, len(db.Months))
	for key, rec := range db.Months {
		months[key] = rec
	}
	return db.Profile, months
}

// Close flushes any pending debounced save before shutdown.
func (db *Database) Close() error {
	var needsFinalPersist bool

	db.saveMutex.Lock()
	if db.saveTimer != nil {
		db.saveTimer.Stop()
		db.saveTimer = nil
	}
	if db.savePending {
		needsFinalPersist = true
		db.savePending = false
	}
	db.saveMutex.Unlock()

	if needsFinalPersist {
		log.Printf("INFO: Performing final persist on close...")
		return db.persist()
	}
	return nil
}

// validateProfile rejects negative amounts defensively. The UI boundary
// already enforces non-negative inputs, but the store does not rely on it.
func validateProfile(p models.Profile) error {
	if p.CurrentIncome < 0 || p.CurrentSavings < 0 || p.InflationRate < 0 || p.MonthlySavingsTarget < 0 {
		return fmt.Errorf("profile amounts must be non-negative")
	}
	if p.CurrentAge < 0 || p.RetirementAge < 0 {
		return fmt.Errorf("profile ages must be non-negative")
	}
	if p.RiskTolerance != "" && !models.ValidRiskTolerance(p.RiskTolerance) {
		return fmt.Errorf("invalid risk tolerance '%s'", p.RiskTolerance)
	}
	return nil
}

// validateMonth rejects negative income or expense components.
func validateMonth(rec models.MonthRecord) error {
	components := []float64{
		rec.Income.Salary, rec.Income.Investment, rec.Income.OtherIncome,
		rec.Expenses.Rent, rec.Expenses.Groceries, rec.Expenses.Transportation,
		rec.Expenses.Utilities, rec.Expenses.Entertainment, rec.Expenses.OtherExpenses,
	}
	for _, v := range components {
		if v < 0 {
			return fmt.Errorf("month amounts must be non-negative")
		}
	}
	return nil
}
