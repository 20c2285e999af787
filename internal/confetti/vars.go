package confetti

import (
	"fmt"
	"strconv"
	"time"
)

// Animation variable names bound by the host's keyframe animations.
const (
	VarLandingPoint     = "--x-landing-point"
	VarDurationChaos    = "--duration-chaos"
	VarX1               = "--x1"
	VarX2               = "--x2"
	VarX3               = "--x3"
	VarX4               = "--x4"
	VarY1               = "--y1"
	VarY2               = "--y2"
	VarY3               = "--y3"
	VarY4               = "--y4"
	VarWidth            = "--width"
	VarHeight           = "--height"
	VarRotation         = "--rotation"
	VarRotationDuration = "--rotation-duration"
	VarBorderRadius     = "--border-radius"
	VarBackground       = "--bgcolor"
	VarFloorHeight      = "--floor-height"
)

// Vars flattens the record into named animation variables with units.
func (m MotionParameters) Vars() map[string]string {
	return map[string]string{
		VarLandingPoint:     px(m.LandingPoint),
		VarDurationChaos:    ms(m.ChaosDuration),
		VarX1:               num(m.X1),
		VarX2:               num(m.X2),
		VarX3:               num(m.X3),
		VarX4:               num(m.X4),
		VarY1:               num(m.Y1),
		VarY2:               num(m.Y2),
		VarY3:               num(m.Y3),
		VarY4:               num(m.Y4),
		VarWidth:            px(m.Width),
		VarHeight:           px(m.Height),
		VarRotation:         m.Axis.String(),
		VarRotationDuration: ms(m.RotationDuration),
		VarBorderRadius:     m.BorderRadius(),
		VarBackground:       m.Color,
	}
}

// String renders the axis as a rotate3d argument list, e.g. "1,1,0".
func (a Axis) String() string {
	return fmt.Sprintf("%d,%d,%d", a[0], a[1], a[2])
}

// ContainerVars returns the variables of the element wrapping all particles.
func ContainerVars(stageHeight float64) map[string]string {
	return map[string]string{VarFloorHeight: px(stageHeight)}
}

func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func px(v float64) string { return num(v) + "px" }

func ms(d time.Duration) string {
	return num(float64(d)/float64(time.Millisecond)) + "ms"
}
