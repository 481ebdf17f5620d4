package liveness

import "fmt"

const (
	StatusLive         = "Live Person Detected!"
	StatusBlinkPassed  = "Blink Check Passed! Now turn your head slightly."
	StatusCheckingInit = "Checking..."
)

// Status aggregates blink and head-turn counts into the user-facing liveness message.
func Status(blinks, directionChanges int) string {
	switch {
	case blinks >= BlinkThreshold && directionChanges >= DirectionThreshold:
		return StatusLive
	case blinks >= BlinkThreshold:
		return StatusBlinkPassed
	default:
		return fmt.Sprintf("Please blink naturally (%d/%d) and turn your head slightly", blinks, BlinkThreshold)
	}
}
