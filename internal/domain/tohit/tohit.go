// Package tohit holds the closed-form scoring used for beam accuracy and ship defense.
//
// All scores live on a logistic scale: a net score of 0 is a 50% hit chance.
//
//	radius          = 40 * (mass/1000)^(1/3)
//	surfaceDistance = max(0, centerDistance - radius)
//	sizeScore       = -2.5 * log10(2*radius / 80)
//	maneuverScore   = sqrt(acceleration/20 + turnRate/360)
//	defenseScore    = sizeScore + maneuverScore + ecmScore
//	netScore        = (baseAccuracy + sensorScore) - (falloff*surfaceDistance + defenseScore)
//	P(hit)          = 1 / (1 + e^-netScore)
package tohit

import "math"

const (
	referenceMass     = 1000.0
	referenceRadius   = 40.0
	referenceDiameter = 80.0
	sizeScoreScale    = 2.5
	accelerationScale = 20.0
	turnRateScale     = 360.0
)

// Radius is the collision radius of a body of the given mass
func Radius(mass float64) float64 {
	if mass <= 0 {
		return 0
	}
	return referenceRadius * math.Cbrt(mass/referenceMass)
}

// SurfaceDistance is the distance from the shooter to the target's surface, never negative
func SurfaceDistance(centerDistance, targetRadius float64) float64 {
	return math.Max(0, centerDistance-targetRadius)
}

// SizeScore rewards small targets: a 1000-mass body scores 0, smaller bodies score positive
func SizeScore(radius float64) float64 {
	if radius <= 0 {
		return 0
	}
	return -sizeScoreScale * math.Log10(2*radius/referenceDiameter)
}

// ManeuverScore rewards agile targets
func ManeuverScore(acceleration, turnRate float64) float64 {
	v := acceleration/accelerationScale + turnRate/turnRateScale
	if v <= 0 {
		return 0
	}
	return math.Sqrt(v)
}

// DefenseScore combines size, maneuverability and ECM
func DefenseScore(mass, acceleration, turnRate, ecm float64) float64 {
	return SizeScore(Radius(mass)) + ManeuverScore(acceleration, turnRate) + ecm
}

// NetScore is the logistic argument for a beam shot
func NetScore(baseAccuracy, sensorScore, accuracyFalloff, surfaceDistance, defenseScore float64) float64 {
	return (baseAccuracy + sensorScore) - (accuracyFalloff*surfaceDistance + defenseScore)
}

// Probability maps a net score onto (0, 1)
func Probability(netScore float64) float64 {
	return 1 / (1 + math.Exp(-netScore))
}

// Shot is everything needed to price a single beam shot
type Shot struct {
	BaseAccuracy    float64
	AccuracyFalloff float64
	SensorScore     float64
	CenterDistance  float64
	TargetMass      float64
	TargetDefense   float64
}

// Breakdown exposes the intermediate values of a hit calculation
type Breakdown struct {
	TargetRadius    float64
	SurfaceDistance float64
	RangePenalty    float64
	DefenseScore    float64
	NetScore        float64
	Probability     float64
}

// Evaluate prices a beam shot using the distance to the target's surface
func Evaluate(s Shot) Breakdown {
	r := Radius(s.TargetMass)
	surface := SurfaceDistance(s.CenterDistance, r)
	net := NetScore(s.BaseAccuracy, s.SensorScore, s.AccuracyFalloff, surface, s.TargetDefense)
	return Breakdown{
		TargetRadius:    r,
		SurfaceDistance: surface,
		RangePenalty:    s.AccuracyFalloff * surface,
		DefenseScore:    s.TargetDefense,
		NetScore:        net,
		Probability:     Probability(net),
	}
}
