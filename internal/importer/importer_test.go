package importer

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/hiten-shah0106/flashify/internal/domain"
)

type fakeAPI struct {
	cards  []domain.Card
	nextID int
}

func (f *fakeAPI) ListCards(ctx context.Context, token, deckID string) ([]domain.Card, error) {
	return f.cards, nil
}

func (f *fakeAPI) CreateCard(ctx context.Context, token, deckID, question, answer string) (*domain.Card, error) {
	f.nextID++
	card := domain.Card{
		ID:       fmt.Sprintf("c%d", f.nextID),
		DeckID:   deckID,
		Question: question,
		Answer:   answer,
	}
	f.cards = append(f.cards, card)
	return &card, nil
}

func (f *fakeAPI) DeleteCard(ctx context.Context, token, cardID string) error {
	for i, card := range f.cards {
		if card.ID == cardID {
			f.cards = append(f.cards[:i], f.cards[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("card %s not found", cardID)
}

func writeSource(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			t.Fatalf("Failed to write fixture %s: %v", name, err)
		}
	}
	return dir
}

func TestRunCreatesMissingCards(t *testing.T) {
	dir := writeSource(t, map[string]string{
		"spanish.md": "Q: hola\nA: hello\n---\nQ: gracias\nA: thanks\n",
		"notes.txt":  "Q: not markdown\nA: ignored\n",
	})
	apiFake := &fakeAPI{}
	im := New(apiFake, t.TempDir())

	stats, err := im.Run(context.Background(), "tok", "d1", dir, false)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if stats.Parsed != 2 || stats.Created != 2 || stats.Skipped != 0 {
		t.Errorf("Expected 2 parsed and created, got %+v", stats)
	}
	if len(apiFake.cards) != 2 {
		t.Errorf("Expected 2 remote cards, got %d", len(apiFake.cards))
	}
}

func TestRunIsIdempotent(t *testing.T) {
	dir := writeSource(t, map[string]string{
		"deck.md": "Q: hola\nA: hello\n",
	})
	apiFake := &fakeAPI{}
	im := New(apiFake, t.TempDir())
	ctx := context.Background()

	if _, err := im.Run(ctx, "tok", "d1", dir, false); err != nil {
		t.Fatalf("Unexpected error on first run: %v", err)
	}
	stats, err := im.Run(ctx, "tok", "d1", dir, false)
	if err != nil {
		t.Fatalf("Unexpected error on second run: %v", err)
	}
	if stats.Created != 0 || stats.Skipped != 1 {
		t.Errorf("Expected the re-run to skip everything, got %+v", stats)
	}
	if len(apiFake.cards) != 1 {
		t.Errorf("Expected no duplicate cards, got %d", len(apiFake.cards))
	}
}

func TestRunMatchesDespiteCosmeticDifferences(t *testing.T) {
	dir := writeSource(t, map[string]string{
		"deck.md": "Q: What Is Go?\nA: A programming language.\n",
	})
	apiFake := &fakeAPI{cards: []domain.Card{
		{ID: "c1", DeckID: "d1", Question: "  what is go? ", Answer: "A programming language."},
	}}
	im := New(apiFake, t.TempDir())

	stats, err := im.Run(context.Background(), "tok", "d1", dir, false)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if stats.Created != 0 || stats.Skipped != 1 {
		t.Errorf("Expected the normalized match to be skipped, got %+v", stats)
	}
}

func TestRunPrunesOrphans(t *testing.T) {
	dir := writeSource(t, map[string]string{
		"deck.md": "Q: keep\nA: me\n",
	})
	apiFake := &fakeAPI{cards: []domain.Card{
		{ID: "c1", DeckID: "d1", Question: "keep", Answer: "me"},
		{ID: "c2", DeckID: "d1", Question: "stale", Answer: "gone"},
	}}
	im := New(apiFake, t.TempDir())

	stats, err := im.Run(context.Background(), "tok", "d1", dir, true)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if stats.Pruned != 1 {
		t.Errorf("Expected 1 pruned card, got %+v", stats)
	}
	if len(apiFake.cards) != 1 || apiFake.cards[0].ID != "c1" {
		t.Errorf("Expected only the kept card to remain, got %v", apiFake.cards)
	}
}

func TestRunWithoutPruneLeavesOrphans(t *testing.T) {
	dir := writeSource(t, map[string]string{
		"deck.md": "Q: keep\nA: me\n",
	})
	apiFake := &fakeAPI{cards: []domain.Card{
		{ID: "c1", DeckID: "d1", Question: "keep", Answer: "me"},
		{ID: "c2", DeckID: "d1", Question: "stale", Answer: "gone"},
	}}
	im := New(apiFake, t.TempDir())

	stats, err := im.Run(context.Background(), "tok", "d1", dir, false)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if stats.Pruned != 0 || len(apiFake.cards) != 2 {
		t.Errorf("Expected no pruning without the flag, got %+v", stats)
	}
}

func TestGitLocalPath(t *testing.T) {
	testCases := []struct {
		name     string
		url      string
		expected string
		wantErr  bool
	}{
		{
			name:     "https URL",
			url:      "https://github.com/owner/cards.git",
			expected: filepath.Join("cache", "github.com", "owner", "cards"),
		},
		{
			name:     "scp-style URL",
			url:      "git@github.com:owner/cards.git",
			expected: filepath.Join("cache", "github.com", "owner", "cards"),
		},
		{
			name:    "garbage",
			url:     "definitely not a url",
			wantErr: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := gitLocalPath("cache", tc.url)
			if tc.wantErr {
				if err == nil {
					t.Errorf("Expected an error for %q", tc.url)
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if got != tc.expected {
				t.Errorf("Expected %q, got %q", tc.expected, got)
			}
		})
	}
}
