package models

// Outcome is the classification of a source file against the destination
type Outcome string

const (
	// OutcomeNewFile means no same-named entry exists in the destination
	OutcomeNewFile Outcome = "new"
	// OutcomeIdentical means both files have byte-identical content
	OutcomeIdentical Outcome = "identical"
	// OutcomeSourceNewer means content differs and the source mtime is later
	OutcomeSourceNewer Outcome = "source-newer"
	// OutcomeDestinationNewer means content differs and the destination mtime is not earlier
	OutcomeDestinationNewer Outcome = "destination-newer"
)

// Action returns the action applied for the outcome
func (o Outcome) Action() Action {
	switch o {
	case OutcomeNewFile:
		return ActionCopy
	case OutcomeSourceNewer:
		return ActionUpdate
	default:
		return ActionSkip
	}
}

// EventKind returns the event emitted for the outcome
func (o Outcome) EventKind() EventKind {
	switch o {
	case OutcomeNewFile:
		return EventNewFile
	case OutcomeIdentical:
		return EventIdentical
	case OutcomeSourceNewer:
		return EventUpdated
	default:
		return EventDestinationNewer
	}
}
