package evaluation

// Classification is the audit tri-state. The source product modeled this as
// three independent booleans cleared against each other in the UI; collapsing
// it into one enum makes the mutual exclusivity structural.
type Classification string

const (
	ClassificationRegular  Classification = "regular"
	ClassificationRework   Classification = "rework"
	ClassificationNoTarget Classification = "no_target"
)

func (c Classification) Valid() bool {
	switch c {
	case ClassificationRegular, ClassificationRework, ClassificationNoTarget:
		return true
	default:
		return false
	}
}

// Label is the human-readable form used in confirmation summaries.
func (c Classification) Label() string {
	switch c {
	case ClassificationRegular:
		return "Regular"
	case ClassificationRework:
		return "Rework"
	case ClassificationNoTarget:
		return "No Target"
	default:
		return string(c)
	}
}

// Time slots an audit can be filed under.
const (
	TimeSlotNoon    = "12 PM"
	TimeSlotFour    = "4 PM"
	TimeSlotEvening = "6 PM"
)

func ValidTimeSlot(slot string) bool {
	switch slot {
	case TimeSlotNoon, TimeSlotFour, TimeSlotEvening:
		return true
	default:
		return false
	}
}

var TimeSlots = []string{TimeSlotNoon, TimeSlotFour, TimeSlotEvening}
