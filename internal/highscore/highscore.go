// Package highscore submits finished games and reads the leaderboard.
// Submission is fire-and-forget: failures are logged and never reach the game.
package highscore

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"
	"unicode"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/depthscraper/internal/storage"
)

const (
	// TopN is the number of leaderboard rows shown before the player's own.
	TopN = 9
	// MaxNameLen is the longest accepted player name, in runes.
	MaxNameLen = 10
	// DefaultName replaces an empty player name.
	DefaultName = "anon"
	// DefaultTimeout bounds one asynchronous submission.
	DefaultTimeout = 5 * time.Second
)

// ErrNoStore indicates a service without persistence.
var ErrNoStore = errors.New("highscore: no store configured")

// Entry is one leaderboard row.
type Entry struct {
	Rank     int // 1-based position on the board, 0 when unknown
	Name     string
	Score    int
	Moves    int
	PlayerID string
	Own      bool // Entry belongs to the local player
}

// Submitter records finished games.
type Submitter interface {
	Submit(ctx context.Context, e Entry) error
}

// Fetcher reads the leaderboard.
type Fetcher interface {
	Fetch(ctx context.Context) ([]Entry, error)
}

// Service implements Submitter and Fetcher for one mode over a Store.
type Service struct {
	store    *storage.Store
	mode     string
	playerID string
	logger   *log.Logger
	timeout  time.Duration
	wg       sync.WaitGroup
}

var (
	_ Submitter = (*Service)(nil)
	_ Fetcher   = (*Service)(nil)
)

// NewService creates a service for mode. store may be nil, in which case
// submissions fail with ErrNoStore and the leaderboard is empty.
// A nil logger discards log output.
func NewService(store *storage.Store, mode, playerID string, logger *log.Logger) *Service {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Service{
		store:    store,
		mode:     mode,
		playerID: playerID,
		logger:   logger,
		timeout:  DefaultTimeout,
	}
}

// Mode returns the mode the service records.
func (s *Service) Mode() string {
	return s.mode
}

// PlayerID returns the local player's ID.
func (s *Service) PlayerID() string {
	return s.playerID
}

// Submit records e. The name is sanitized and the player ID defaults to the
// local player.
func (s *Service) Submit(ctx context.Context, e Entry) error {
	if s.store == nil {
		return ErrNoStore
	}
	if e.PlayerID == "" {
		e.PlayerID = s.playerID
	}
	_, err := s.store.SaveScore(ctx, storage.Score{
		Mode:       s.mode,
		Score:      e.Score,
		PlayerName: SanitizeName(e.Name),
		PlayerID:   e.PlayerID,
		Moves:      e.Moves,
	})
	if err != nil {
		return fmt.Errorf("highscore: submit: %w", err)
	}
	return nil
}

// SubmitAsync records e on its own goroutine with a bounded timeout.
// done, if non-nil, is called with the result.
func (s *Service) SubmitAsync(e Entry, done func(error)) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
		defer cancel()

		err := s.Submit(ctx, e)
		if err != nil {
			s.logger.Warn("score submission failed", "mode", s.mode, "score", e.Score, "err", err)
		} else {
			s.logger.Debug("score submitted", "mode", s.mode, "score", e.Score, "name", SanitizeName(e.Name))
		}
		if done != nil {
			done(err)
		}
	}()
}

// Wait blocks until pending asynchronous submissions finish.
func (s *Service) Wait() {
	s.wg.Wait()
}

// Fetch returns the top TopN entries, followed by the local player's best
// entry when it ranks below them.
func (s *Service) Fetch(ctx context.Context) ([]Entry, error) {
	if s.store == nil {
		return nil, nil
	}

	rows, err := s.store.TopScores(ctx, s.mode, TopN)
	if err != nil {
		return nil, fmt.Errorf("highscore: fetch: %w", err)
	}

	entries := make([]Entry, 0, len(rows)+1)
	ownListed := false
	for i, r := range rows {
		e := fromRow(r, i+1, s.playerID)
		ownListed = ownListed || e.Own
		entries = append(entries, e)
	}

	if ownListed || s.playerID == "" {
		return entries, nil
	}

	best, rank, ok, err := s.store.PlayerBest(ctx, s.mode, s.playerID)
	if err != nil {
		return nil, fmt.Errorf("highscore: fetch own best: %w", err)
	}
	if ok {
		entries = append(entries, fromRow(best, rank, s.playerID))
	}
	return entries, nil
}

func fromRow(r storage.ScoreEntry, rank int, playerID string) Entry {
	return Entry{
		Rank:     rank,
		Name:     r.PlayerName,
		Score:    r.Score,
		Moves:    r.Moves,
		PlayerID: r.PlayerID,
		Own:      playerID != "" && r.PlayerID == playerID,
	}
}

// SanitizeName trims s, drops control characters and cuts it to MaxNameLen
// runes. An empty result becomes DefaultName.
func SanitizeName(s string) string {
	var b strings.Builder
	n := 0
	for _, r := range strings.TrimSpace(s) {
		if unicode.IsControl(r) {
			continue
		}
		if n == MaxNameLen {
			break
		}
		b.WriteRune(r)
		n++
	}
	name := strings.TrimSpace(b.String())
	if name == "" {
		return DefaultName
	}
	return name
}
