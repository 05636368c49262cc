// Package importer reconciles a directory (or git repository) of
// markdown card files into a remote deck. The remote deck is the source
// of truth for what already exists: cards are matched by content hash,
// only the missing ones are created, and pruning removes remote cards
// the source no longer contains.
package importer

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"net/url"
	"path/filepath"
	"strings"

	"github.com/hiten-shah0106/flashify/internal/dedupe"
	"github.com/hiten-shah0106/flashify/internal/domain"
	"github.com/hiten-shah0106/flashify/internal/gitsource"
	"github.com/hiten-shah0106/flashify/internal/parser"
)

// API is the slice of the remote client the importer needs.
type API interface {
	ListCards(ctx context.Context, token, deckID string) ([]domain.Card, error)
	CreateCard(ctx context.Context, token, deckID, question, answer string) (*domain.Card, error)
	DeleteCard(ctx context.Context, token, cardID string) error
}

// Stats summarizes one import run. Per-file parse failures and per-card
// API failures are collected rather than aborting the run.
type Stats struct {
	Parsed  int
	Created int
	Skipped int
	Pruned  int
	Errors  []error
}

// Importer runs imports against a remote deck.
type Importer struct {
	api      API
	cacheDir string
}

// New creates an importer. cacheDir is where git sources are mirrored.
func New(api API, cacheDir string) *Importer {
	return &Importer{api: api, cacheDir: cacheDir}
}

// Run imports the cards found under source into the given deck. source
// may be a local directory or a git URL. With prune set, remote cards
// whose content no longer appears in the source are deleted.
func (im *Importer) Run(ctx context.Context, token, deckID, source string, prune bool) (*Stats, error) {
	dir := source
	if gitsource.IsGitURL(source) {
		localPath, err := gitLocalPath(im.cacheDir, source)
		if err != nil {
			return nil, err
		}
		if err := gitsource.Sync(ctx, source, localPath); err != nil {
			return nil, err
		}
		dir = localPath
	}

	stats := &Stats{}
	sourceHashes := make(map[string]domain.Card)

	walkErr := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(strings.ToLower(d.Name()), ".md") {
			return nil
		}
		fileCards, parseErr := parser.ParseFile(path)
		if parseErr != nil {
			stats.Errors = append(stats.Errors, fmt.Errorf("parsing %s: %w", path, parseErr))
		}
		for _, card := range fileCards {
			stats.Parsed++
			sourceHashes[dedupe.Hash(card)] = card
		}
		return nil
	})
	if walkErr != nil {
		return nil, fmt.Errorf("failed to walk source %s: %w", dir, walkErr)
	}

	remote, err := im.api.ListCards(ctx, token, deckID)
	if err != nil {
		return nil, fmt.Errorf("failed to list remote cards for deck %s: %w", deckID, err)
	}
	remoteHashes := make(map[string]domain.Card, len(remote))
	for _, card := range remote {
		remoteHashes[dedupe.Hash(card)] = card
	}

	for hash, card := range sourceHashes {
		if _, exists := remoteHashes[hash]; exists {
			stats.Skipped++
			continue
		}
		if _, err := im.api.CreateCard(ctx, token, deckID, card.Question, card.Answer); err != nil {
			stats.Errors = append(stats.Errors, fmt.Errorf("creating card %q: %w", card.Question, err))
			continue
		}
		slog.Info("imported card", "deck", deckID, "hash", hash)
		stats.Created++
	}

	if prune {
		for hash, card := range remoteHashes {
			if _, found := sourceHashes[hash]; found {
				continue
			}
			if err := im.api.DeleteCard(ctx, token, card.ID); err != nil {
				stats.Errors = append(stats.Errors, fmt.Errorf("pruning card %s: %w", card.ID, err))
				continue
			}
			slog.Info("pruned card absent from source", "deck", deckID, "card", card.ID)
			stats.Pruned++
		}
	}

	slog.Info("import complete",
		"deck", deckID,
		"parsed", stats.Parsed,
		"created", stats.Created,
		"skipped", stats.Skipped,
		"pruned", stats.Pruned,
		"errors", len(stats.Errors),
	)
	return stats, nil
}

// gitLocalPath maps a git URL onto a stable path under baseDir, so a
// re-run of the same source pulls instead of re-cloning.
func gitLocalPath(baseDir, repoURL string) (string, error) {
	parsed, err := url.Parse(repoURL)
	if err == nil && (parsed.Scheme == "https" || parsed.Scheme == "http") {
		return filepath.Join(baseDir, parsed.Host, strings.TrimSuffix(parsed.Path, ".git")), nil
	}

	// scp-style git@host:owner/repo.git
	if strings.Contains(repoURL, "@") {
		parts := strings.SplitN(repoURL, ":", 2)
		if len(parts) == 2 {
			hostAndUser := strings.SplitN(parts[0], "@", 2)
			if len(hostAndUser) == 2 {
				return filepath.Join(baseDir, hostAndUser[1], strings.TrimSuffix(parts[1], ".git")), nil
			}
		}
	}
	return "", fmt.Errorf("could not parse git URL: %s", repoURL)
}
