package player

import "time"

// Timer is the host-supplied periodic callback capability. The player
// registers its tick handler on Start and expects no further callbacks
// once Stop has returned, as observed from the goroutine the callbacks
// run on. The loop package provides the real implementation; tests
// drive the player with a manual fake.
type Timer interface {
	// Start schedules fn to run repeatedly at the given interval.
	// Calling Start again replaces the previous schedule.
	Start(interval time.Duration, fn func(now time.Time))
	// Stop cancels the schedule. Stopping an idle timer is a no-op.
	Stop()
}
