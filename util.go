package main

import (
	"crypto/rand"
	"encoding/hex"
	"math"
)

// GenerateID returns a random hex string of the given byte length
func GenerateID(byteLen int) string {
	b := make([]byte, byteLen)
	rand.Read(b)
	return hex.EncodeToString(b)
}

// Clamp restricts v to [min, max]
func Clamp(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

// Distance returns the distance between two points
func Distance(x1, y1, x2, y2 float64) float64 {
	dx := x2 - x1
	dy := y2 - y1
	return math.Sqrt(dx*dx + dy*dy)
}

// round1 rounds to one decimal place, keeping broadcast payloads small
func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// NormalizeAngle wraps angle to [0, 2*PI)
func NormalizeAngle(a float64) float64 {
	for a >= 2*math.Pi {
		a -= 2 * math.Pi
	}
	for a < 0 {
		a += 2 * math.Pi
	}
	return a
}
