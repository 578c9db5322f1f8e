package domain

type NodeKind string

const (
	KindPillar    NodeKind = "pillar"
	KindSector    NodeKind = "sector"
	KindOutcome   NodeKind = "outcome"
	KindOutput    NodeKind = "output"
	KindIndicator NodeKind = "indicator"
)

// Depth returns the zero-based level of the kind, pillar first.
// Unknown kinds return -1.
func (k NodeKind) Depth() int {
	switch k {
	case KindPillar:
		return 0
	case KindSector:
		return 1
	case KindOutcome:
		return 2
	case KindOutput:
		return 3
	case KindIndicator:
		return 4
	default:
		return -1
	}
}

type Status string

const (
	StatusOnTrack  Status = "ON_TRACK"
	StatusWarning  Status = "WARNING"
	StatusCritical Status = "CRITICAL"
)

const (
	onTrackThreshold = 90.0
	warningThreshold = 70.0
)

// StatusFor classifies a progress percentage. The same thresholds apply to
// indicators and to every aggregate level.
func StatusFor(progress float64) Status {
	switch {
	case progress >= onTrackThreshold:
		return StatusOnTrack
	case progress >= warningThreshold:
		return StatusWarning
	default:
		return StatusCritical
	}
}

// IndicatorField names the free-text attributes of an indicator that can be
// edited after creation.
type IndicatorField string

const (
	FieldName         IndicatorField = "name"
	FieldBaseline     IndicatorField = "baseline"
	FieldSourceOfData IndicatorField = "sourceOfData"
)

// ValidIndicatorFields is the canonical set of editable indicator fields.
var ValidIndicatorFields = map[IndicatorField]bool{
	FieldName: true, FieldBaseline: true, FieldSourceOfData: true,
}
