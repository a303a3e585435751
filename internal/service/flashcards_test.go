package service

import (
	"testing"
	"time"

	"github.com/keycardsapp/keycards-bot/internal/domain/entities"
)

func browseCards() []entities.Flashcard {
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	return []entities.Flashcard{
		{ID: "1", Keyword: "defer", Question: "What does defer do?", CreatedAt: base.Add(2 * time.Hour)},
		{ID: "2", Keyword: "chan", Question: "Declare a channel", CreatedAt: base},
		{ID: "3", Keyword: "select", Question: "Wait on several channels", CreatedAt: base.Add(time.Hour)},
	}
}

func TestSearchCards(t *testing.T) {
	cards := browseCards()

	if got := SearchCards(cards, "DEFER"); len(got) != 1 || got[0].ID != "1" {
		t.Errorf("search by keyword: got %v", got)
	}
	// Matches inside the question text too.
	if got := SearchCards(cards, "channel"); len(got) != 2 {
		t.Errorf("search by question: got %d cards, want 2", len(got))
	}
	if got := SearchCards(cards, "  "); len(got) != len(cards) {
		t.Errorf("blank query should return all cards, got %d", len(got))
	}
}

func TestSortCards(t *testing.T) {
	cards := browseCards()

	byKeyword := SortCards(cards, SortByKeyword)
	if byKeyword[0].Keyword != "chan" || byKeyword[2].Keyword != "select" {
		t.Errorf("keyword order wrong: %v", byKeyword)
	}

	newest := SortCards(cards, SortByNewest)
	if newest[0].ID != "1" {
		t.Errorf("newest first, got %s", newest[0].ID)
	}

	oldest := SortCards(cards, SortByOldest)
	if oldest[0].ID != "2" {
		t.Errorf("oldest first, got %s", oldest[0].ID)
	}

	// The input slice must stay untouched.
	if cards[0].ID != "1" {
		t.Error("SortCards mutated its input")
	}
}

func TestShuffleCardsKeepsElements(t *testing.T) {
	cards := browseCards()
	shuffled := ShuffleCards(cards)

	if len(shuffled) != len(cards) {
		t.Fatalf("len = %d, want %d", len(shuffled), len(cards))
	}

	seen := make(map[string]bool, len(shuffled))
	for _, c := range shuffled {
		seen[c.ID] = true
	}
	for _, c := range cards {
		if !seen[c.ID] {
			t.Errorf("card %s lost in shuffle", c.ID)
		}
	}
}
