package models

import "strings"

type Direction string

const (
	DirectionUp   Direction = "up"
	DirectionDown Direction = "down"
)

// NormalizeDirection folds the feed's direction vocabulary onto up/down.
// Anything that is not an explicit up or long call counts as down.
func NormalizeDirection(s string) Direction {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "up", "long":
		return DirectionUp
	default:
		return DirectionDown
	}
}
