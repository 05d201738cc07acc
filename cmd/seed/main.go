// Package main provides a tool to seed the store with development data.
//
// It creates drifts, layers and a library item for a demo user, plus legacy
// notes for a second user so the legacy fallback can be exercised, and prints
// a token for each so a local client can authenticate.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/driftapp/drift-server/internal/auth"
	"github.com/driftapp/drift-server/internal/domain"
	"github.com/driftapp/drift-server/internal/id"
	"github.com/driftapp/drift-server/internal/logger"
	"github.com/driftapp/drift-server/internal/store"
)

func main() {
	dataPath := flag.String("data-path", "", "Base path for the document store (required)")
	demoUser := flag.String("user", "demo-user", "User id to seed drifts and layers for")
	legacyUser := flag.String("legacy-user", "legacy-user", "User id to seed legacy notes for")
	flag.Parse()

	if *dataPath == "" {
		fmt.Fprintln(os.Stderr, "usage: seed -data-path <dir> [-user <id>] [-legacy-user <id>]")
		os.Exit(1)
	}

	log := logger.New(logger.Config{Environment: "development"})

	db, err := store.New(filepath.Join(*dataPath, "db"), log.Logger)
	if err != nil {
		log.Fatal("Failed to open store", "error", err)
	}
	defer db.Close()

	ctx := context.Background()

	if err := seedDrifts(ctx, db, *demoUser); err != nil {
		log.Fatal("Failed to seed drifts", "error", err)
	}
	if err := seedLayers(ctx, db, *demoUser); err != nil {
		log.Fatal("Failed to seed layers", "error", err)
	}
	if err := seedLibrary(ctx, db, *demoUser); err != nil {
		log.Fatal("Failed to seed library", "error", err)
	}
	if err := seedLegacyNotes(ctx, db, *legacyUser); err != nil {
		log.Fatal("Failed to seed legacy notes", "error", err)
	}

	log.Info("Seed complete",
		"user", *demoUser,
		"legacy_user", *legacyUser,
	)

	printTokens(*dataPath, log, *demoUser, *legacyUser)
}

func seedDrifts(ctx context.Context, db *store.Store, userID string) error {
	drifts := []*domain.Drift{
		{
			Title:        "On beginnings",
			SourceType:   domain.SourceTypeBook,
			SourceID:     "ashtanga-hridaya",
			SourceTitle:  "Ashtanga Hridaya",
			SourceAuthor: "Vagbhata",
			SourceRef:    "Sutrasthana 1",
			SourceAnchor: "1.2",
			Excerpt:      "Now we shall expound the chapter on the desire for long life.",
			Content:      "The opening verse frames the whole work: health is the root of every pursuit.",
			Tags:         []string{"ayurveda", "openings"},
			Words:        14,
			Status:       domain.DriftStatusPublished,
		},
		{
			Title:      "Notes toward a reading list",
			SourceType: domain.SourceTypeArticle,
			SourceID:   "reading-lists",
			Content:    "Collect the threads from the last three drifts before the month ends.",
			Tags:       []string{"meta"},
			Words:      12,
			Status:     domain.DriftStatusDraft,
		},
	}

	for _, d := range drifts {
		driftID, err := id.Generate("drift")
		if err != nil {
			return err
		}
		d.ID = driftID
		d.UserID = userID
		if err := db.CreateDrift(ctx, d); err != nil {
			return err
		}
	}
	return nil
}

func seedLayers(ctx context.Context, db *store.Store, userID string) error {
	layers := []*domain.Layer{
		{
			Title:       "Gloss on the invocation",
			Type:        domain.LayerTypeCommentary,
			SourceType:  domain.SourceTypeBook,
			SourceID:    "ashtanga-hridaya",
			SourceTitle: "Ashtanga Hridaya",
			SourceRef:   "Sutrasthana 1",
			Anchor:      "1.1",
			Text:        "The invocation names the eight branches before any of them is defined.",
			Tags:        []string{"structure"},
			Pinned:      true,
		},
	}

	for _, l := range layers {
		layerID, err := id.Generate("layer")
		if err != nil {
			return err
		}
		l.ID = layerID
		l.UserID = userID
		if err := db.CreateLayer(ctx, l); err != nil {
			return err
		}
	}
	return nil
}

func seedLibrary(ctx context.Context, db *store.Store, userID string) error {
	title := "Ashtanga Hridaya"
	author := "Vagbhata"
	return db.UpsertLibraryItem(ctx, userID, "ashtanga-hridaya", domain.LibraryItemPatch{
		Title:  &title,
		Author: &author,
		Meta:   map[string]any{"pages": 412},
	})
}

func seedLegacyNotes(ctx context.Context, db *store.Store, userID string) error {
	now := time.Now()
	notes := []*domain.LegacyNote{
		{
			ArticleTitle: "Charaka on digestion",
			BookID:       "charaka-samhita",
			Verse:        "6.14",
			Excerpt:      "<p>The <b>digestive fire</b> governs all transformation.</p>",
			Timestamp:    now.Add(-48 * time.Hour),
		},
		{
			Title:     "Untitled clipping",
			BookID:    "charaka-samhita",
			BlockID:   "blk-77",
			Excerpt:   "A note saved before titles were required.",
			Timestamp: now.Add(-24 * time.Hour),
		},
	}

	for _, n := range notes {
		noteID, err := id.Generate("legacy")
		if err != nil {
			return err
		}
		n.ID = noteID
		n.UserID = userID
		if err := db.CreateLegacyNote(ctx, n); err != nil {
			return err
		}
	}
	return nil
}

// printTokens mints a dev token per seeded user so a local client can talk to
// the server without an external identity provider.
func printTokens(dataPath string, log *logger.Logger, userIDs ...string) {
	key, err := auth.LoadOrGenerateKey(dataPath)
	if err != nil {
		log.Fatal("Failed to load token key", "error", err)
	}

	tokens, err := auth.NewTokenService(key, 30*24*time.Hour)
	if err != nil {
		log.Fatal("Failed to create token service", "error", err)
	}

	for _, userID := range userIDs {
		token, err := tokens.IssueToken(userID)
		if err != nil {
			log.Fatal("Failed to issue token", "error", err, "user_id", userID)
		}
		fmt.Printf("%s: %s\n", userID, token)
	}
}
