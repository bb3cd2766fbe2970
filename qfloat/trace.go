package qfloat

import (
	"context"
	"log/slog"
	"math"

	"github.com/avdva/fixedpoint"
)

// Stage identifies an intermediate value of AddTraced.
type Stage int

const (
	// StageMax is the operand with the larger exponent.
	StageMax Stage = iota
	// StageMin is the operand with the smaller exponent.
	StageMin
	// StageAligned is the smaller operand shifted to the larger exponent.
	StageAligned
	// StageSum is the raw sum before normalization.
	StageSum
	// StageConstrained is the result.
	StageConstrained
)

var stageNames = [...]string{"max", "min", "aligned", "sum", "constrained"}

func (s Stage) String() string {
	if s < 0 || int(s) >= len(stageNames) {
		return "unknown"
	}
	return stageNames[s]
}

// TraceFunc receives the intermediate values of an addition.
// frac is in the units of the mantissa format, and may exceed its range for StageSum.
type TraceFunc func(stage Stage, base int, frac int64)

func nopTrace(Stage, int, int64) {}

// SlogTracer returns a TraceFunc logging every stage to l at debug level.
// A nil l means fixed.Logger().
func SlogTracer[T fixed.Fixed](l *slog.Logger) TraceFunc {
	f := int(fixed.FracBits[T]())
	return func(stage Stage, base int, frac int64) {
		logger := l
		if logger == nil {
			logger = fixed.Logger()
		}
		if !logger.Enabled(context.Background(), slog.LevelDebug) {
			return
		}
		logger.Debug("qfloat add",
			slog.String("stage", stage.String()),
			slog.Int("base", base),
			slog.Int64("frac", frac),
			slog.Float64("value", math.Ldexp(float64(frac), base-f)))
	}
}
