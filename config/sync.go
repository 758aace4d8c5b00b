package config

import (
	"fmt"
	"time"

	"github.com/0xalexb/hjarta-config/config/tree"
)

// SyncSchedule is the typed view of the syncWithDrive section.
type SyncSchedule struct {
	Due       time.Time
	LastSync  time.Time
	Frequency int
}

// Interval returns Frequency as a duration.
func (s SyncSchedule) Interval() time.Duration {
	return time.Duration(s.Frequency) * 24 * time.Hour
}

// SyncSchedule reads the syncWithDrive section. The second result is false
// when the section or one of its keys is absent.
func (m *Manager) SyncSchedule() (SyncSchedule, bool, error) {
	var schedule SyncSchedule

	due, found, err := GetAs(m, syncDueKey, tree.Time)
	if err != nil || !found {
		return schedule, found, wrapSyncErr(syncDueKey, err)
	}

	lastSync, found, err := GetAs(m, syncLastSyncKey, tree.Time)
	if err != nil || !found {
		return schedule, found, wrapSyncErr(syncLastSyncKey, err)
	}

	frequency, found, err := GetAs(m, syncFrequencyKey, tree.Int)
	if err != nil || !found {
		return schedule, found, wrapSyncErr(syncFrequencyKey, err)
	}

	schedule.Due = due
	schedule.LastSync = lastSync
	schedule.Frequency = frequency

	return schedule, true, nil
}

func wrapSyncErr(key string, err error) error {
	if err == nil {
		return nil
	}

	return fmt.Errorf("reading %s: %w", key, err)
}
