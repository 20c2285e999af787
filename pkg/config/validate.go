package config

import (
	"log"
	"math"
)

// maxSafeInteger is the largest integer a float64 represents exactly
// together with all integers below it (2^53 - 1).
const maxSafeInteger = 1<<53 - 1

// ValidationError 描述单个字段的校验失败
//
// 校验失败不是致命错误：Validate 只记录日志并返回 false，
// 调用方据此决定不渲染本次爆炸。
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Check returns the first field that violates its constraint, or nil.
//
// Fields are checked in a fixed order and the check stops at the first
// failure. Numeric range checks only apply to values that are safe integers;
// a fractional override such as force 1.5 is not range-checked.
func Check(o Options) error {
	if nonNegativeViolated(o.ParticleCount) {
		return &ValidationError{"particleCount", "particleCount must be a positive integer"}
	}
	if nonNegativeViolated(o.Duration) {
		return &ValidationError{"duration", "duration must be a positive integer"}
	}
	if o.ParticlesShape != nil && !o.ParticlesShape.Valid() {
		return &ValidationError{"particlesShape", `particlesShape should be either "mix" or "circles" or "rectangle"`}
	}
	if o.colorsMalformed {
		return &ValidationError{"colors", "colors must be an array of strings"}
	}
	if nonNegativeViolated(o.ParticleSize) {
		return &ValidationError{"particleSize", "particleSize must be a positive integer"}
	}
	if o.Force != nil && isSafeInteger(*o.Force) && (*o.Force < 0 || *o.Force > 1) {
		return &ValidationError{"force", "force must be a positive integer and should be within 0 and 1"}
	}
	if nonNegativeViolated(o.StageHeight) {
		return &ValidationError{"stageHeight", "floorHeight must be a positive integer"}
	}
	if nonNegativeViolated(o.StageWidth) {
		return &ValidationError{"stageWidth", "floorWidth must be a positive integer"}
	}
	return nil
}

// Validate 校验参数，失败时输出诊断日志并返回 false
func Validate(o Options) bool {
	if err := Check(o); err != nil {
		log.Printf("[Validator] %v", err)
		return false
	}
	return true
}

// Valid reports whether s is one of the three known shape modes.
func (s ParticleShape) Valid() bool {
	switch s {
	case ShapeMix, ShapeCircles, ShapeRectangles:
		return true
	}
	return false
}

func nonNegativeViolated(v *float64) bool {
	return v != nil && isSafeInteger(*v) && *v < 0
}

func isSafeInteger(v float64) bool {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return false
	}
	return v == math.Trunc(v) && math.Abs(v) <= maxSafeInteger
}
