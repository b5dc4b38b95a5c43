package model

import "github.com/jask/playingcards/internal/card"

// Invariant is a predicate over a pile's contents, bottom first. It must hold
// after every mutation.
type Invariant func(cards []*card.Card) bool

// Always accepts every state; the default for stock piles.
func Always([]*card.Card) bool { return true }

// AllFaceDown holds when no card faces up.
func AllFaceDown(cards []*card.Card) bool {
	for _, c := range cards {
		if !c.IsFaceDown() {
			return false
		}
	}
	return true
}

// AllFaceUp holds when every card faces up.
func AllFaceUp(cards []*card.Card) bool {
	for _, c := range cards {
		if !c.IsFaceUp() {
			return false
		}
	}
	return true
}

// MaxSize holds while the pile has at most n cards.
func MaxSize(n int) Invariant {
	return func(cards []*card.Card) bool { return len(cards) <= n }
}

// Cell holds at most one card.
var Cell = MaxSize(1)

// All holds when every invariant holds.
func All(invs ...Invariant) Invariant {
	return func(cards []*card.Card) bool {
		for _, inv := range invs {
			if inv != nil && !inv(cards) {
				return false
			}
		}
		return true
	}
}
