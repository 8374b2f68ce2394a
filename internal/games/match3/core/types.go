// Package core provides the board, match and cascade engine for the match-3 game.
// This package is UI-agnostic and deterministic given an injected random source.
package core

import "strings"

// Dir represents one of the four grid directions.
type Dir uint8

const (
	DirUp Dir = iota
	DirRight
	DirDown
	DirLeft
)

// String returns the string representation of a direction.
func (d Dir) String() string {
	switch d {
	case DirUp:
		return "Up"
	case DirRight:
		return "Right"
	case DirDown:
		return "Down"
	case DirLeft:
		return "Left"
	default:
		return "Unknown"
	}
}

// Delta returns the (dRow, dCol) offset for one step in this direction.
// Up decreases the row, Down increases it.
func (d Dir) Delta() (dr, dc int) {
	switch d {
	case DirUp:
		return -1, 0
	case DirRight:
		return 0, 1
	case DirDown:
		return 1, 0
	case DirLeft:
		return 0, -1
	default:
		return 0, 0
	}
}

// TokenType is the kind of token occupying a cell.
type TokenType uint8

const (
	TokenEmpty  TokenType = iota // Transient, only between clear and refill
	TokenCar                     // Major, large advance
	TokenFuel                    // Major, carries the bonus multiplier
	TokenFlower                  // Minor, pays currency per triple
	TokenBlock                   // Minor, small advance
	tokenCount
)

// String returns the string representation of a token type.
func (t TokenType) String() string {
	switch t {
	case TokenEmpty:
		return "empty"
	case TokenCar:
		return "car"
	case TokenFuel:
		return "fuel"
	case TokenFlower:
		return "flower"
	case TokenBlock:
		return "block"
	default:
		return "unknown"
	}
}

// Char returns a single character representation for ASCII rendering.
func (t TokenType) Char() rune {
	switch t {
	case TokenEmpty:
		return '.'
	case TokenCar:
		return 'C'
	case TokenFuel:
		return 'F'
	case TokenFlower:
		return 'W'
	case TokenBlock:
		return 'B'
	default:
		return '?'
	}
}

// Valid reports whether t is a placeable token (not empty, not out of range).
func (t TokenType) Valid() bool {
	return t > TokenEmpty && t < tokenCount
}

// ParseToken converts a name or single-letter code to a TokenType.
// Returns TokenEmpty and false if the string is not recognized.
func ParseToken(s string) (TokenType, bool) {
	switch strings.ToLower(s) {
	case "car", "c":
		return TokenCar, true
	case "fuel", "f":
		return TokenFuel, true
	case "flower", "w":
		return TokenFlower, true
	case "block", "b":
		return TokenBlock, true
	case "empty", ".":
		return TokenEmpty, true
	default:
		return TokenEmpty, false
	}
}

// AllTokens returns every placeable token type.
func AllTokens() []TokenType {
	return []TokenType{TokenCar, TokenFuel, TokenFlower, TokenBlock}
}
