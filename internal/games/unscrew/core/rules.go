package core

import "fmt"

// Reference rule values.
const (
	DefaultLayerCount        = 7
	DefaultSlotsPerLane      = 3
	DefaultQueueCapacity     = 4
	DefaultCoverageThreshold = 0.5
	DefaultPaletteSize       = 8
	DefaultPieceRadius       = 9
	DefaultWorldWidth        = 800
	DefaultWorldHeight       = 480
)

// PolicyKind names a lane refresh policy.
type PolicyKind string

const (
	PolicyModule PolicyKind = "module"
	PolicyRandom PolicyKind = "random"
)

// Rules holds the per-level configuration of the rules engine.
type Rules struct {
	LayerCount         int
	SlotsPerLane       int
	QueueCapacity      int
	CoverageThreshold  float64 // Exclusive: a piece at exactly this ratio is not clickable
	PaletteSize        int
	PieceRadius        int
	RefreshPolicy      PolicyKind
	EmptyLayersOcclude bool
	WorldWidth         int
	WorldHeight        int
}

// DefaultRules returns the reference rules.
func DefaultRules() Rules {
	return Rules{
		LayerCount:         DefaultLayerCount,
		SlotsPerLane:       DefaultSlotsPerLane,
		QueueCapacity:      DefaultQueueCapacity,
		CoverageThreshold:  DefaultCoverageThreshold,
		PaletteSize:        DefaultPaletteSize,
		PieceRadius:        DefaultPieceRadius,
		RefreshPolicy:      PolicyModule,
		EmptyLayersOcclude: true,
		WorldWidth:         DefaultWorldWidth,
		WorldHeight:        DefaultWorldHeight,
	}
}

// World returns the world rectangle anchored at the origin.
func (r Rules) World() Rect {
	return R(0, 0, r.WorldWidth, r.WorldHeight)
}

// Palette returns the logical colors in play.
func (r Rules) Palette() []Color {
	return Palette(r.PaletteSize)
}

// ValidationError contains details about a construction-time contract violation.
type ValidationError struct {
	Code    string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Validate checks that the rules can build a level.
func (r Rules) Validate() error {
	switch {
	case r.LayerCount < 1:
		return ValidationError{Code: "INVALID_LAYERS", Message: fmt.Sprintf("layer count must be >= 1, got %d", r.LayerCount)}
	case r.SlotsPerLane < 1:
		return ValidationError{Code: "INVALID_SLOTS", Message: fmt.Sprintf("slots per lane must be >= 1, got %d", r.SlotsPerLane)}
	case r.QueueCapacity < 0:
		return ValidationError{Code: "INVALID_CAPACITY", Message: fmt.Sprintf("queue capacity must be >= 0, got %d", r.QueueCapacity)}
	case r.CoverageThreshold <= 0 || r.CoverageThreshold > 1:
		return ValidationError{Code: "INVALID_THRESHOLD", Message: fmt.Sprintf("coverage threshold must be in (0, 1], got %g", r.CoverageThreshold)}
	case r.PaletteSize < 1 || r.PaletteSize > int(ColorCount):
		return ValidationError{Code: "INVALID_PALETTE", Message: fmt.Sprintf("palette size must be in [1, %d], got %d", ColorCount, r.PaletteSize)}
	case r.PieceRadius < 1:
		return ValidationError{Code: "INVALID_RADIUS", Message: fmt.Sprintf("piece radius must be >= 1, got %d", r.PieceRadius)}
	case r.WorldWidth < 1 || r.WorldHeight < 1:
		return ValidationError{Code: "INVALID_WORLD", Message: fmt.Sprintf("world must be non-empty, got %dx%d", r.WorldWidth, r.WorldHeight)}
	}
	switch r.RefreshPolicy {
	case "", PolicyModule, PolicyRandom:
	default:
		return ValidationError{Code: "INVALID_POLICY", Message: fmt.Sprintf("unknown refresh policy %q", r.RefreshPolicy)}
	}
	return nil
}
