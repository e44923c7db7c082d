// Package db persists generated puzzles to a PocketBase collection.
package db

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/habibrosyad/pocketbase-go-sdk"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"sudoku_play_go/internal/grid"
)

const collection = "sudokus"

// Config is the PocketBase connection configuration, read from the
// environment (optionally via a .env file).
type Config struct {
	URL      string
	Email    string
	Password string
}

// LoadConfig reads the configuration from POCKETBASE_URL, POCKETBASE_EMAIL
// and POCKETBASE_PASSWORD. A missing .env file is not an error.
func LoadConfig() Config {
	_ = godotenv.Load()
	return Config{
		URL:      os.Getenv("POCKETBASE_URL"),
		Email:    os.Getenv("POCKETBASE_EMAIL"),
		Password: os.Getenv("POCKETBASE_PASSWORD"),
	}
}

// Configured reports whether a store can be constructed at all.
func (c Config) Configured() bool { return c.URL != "" }

// PuzzleData is the JSON payload stored inside a record.
type PuzzleData struct {
	Puzzle   [][]int  `json:"puzzle"`
	Solution [][]int  `json:"solution"`
	Givens   [][]bool `json:"givens"`
	Size     int      `json:"size"`
}

// Store wraps an authorized PocketBase client.
type Store struct {
	client *pocketbase.Client
	log    *logrus.Logger
}

// New connects and authorizes against PocketBase and starts a background
// re-authorization ticker, since admin tokens expire.
func New(cfg Config, log *logrus.Logger) (*Store, error) {
	if !cfg.Configured() {
		return nil, errors.New("POCKETBASE_URL is not set")
	}

	client := pocketbase.NewClient(cfg.URL,
		pocketbase.WithAdminEmailPassword(cfg.Email, cfg.Password))
	if err := client.Authorize(); err != nil {
		return nil, fmt.Errorf("pocketbase authorization failed: %w", err)
	}

	s := &Store{client: client, log: log}
	go s.reauthorize(30 * time.Minute)
	return s, nil
}

func (s *Store) reauthorize(every time.Duration) {
	ticker := time.NewTicker(every)
	for range ticker.C {
		if err := s.client.Authorize(); err != nil {
			s.log.WithError(err).Warn("pocketbase re-authorization failed")
		} else {
			s.log.Debug("re-authorized with pocketbase")
		}
	}
}

// Save uploads the grid's puzzle and solution and returns the record ID.
// IDs are short so they can be read back over the phone; a collision is
// unlikely but checked anyway before creating the record.
func (s *Store) Save(g *grid.Grid) (string, error) {
	id := strings.ReplaceAll(uuid.NewString(), "-", "")[:6]

	exists, err := s.Exists(id)
	if err != nil {
		return "", fmt.Errorf("failed to check for an ID collision: %w", err)
	}
	if exists {
		return "", fmt.Errorf("puzzle ID %s is already taken", id)
	}

	payload, err := json.Marshal(PuzzleData{
		Puzzle:   g.Values(),
		Solution: g.SolvedValues(),
		Givens:   g.Givens(),
		Size:     g.Side(),
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal puzzle: %w", err)
	}

	givens := 0
	for _, row := range g.Givens() {
		for _, locked := range row {
			if locked {
				givens++
			}
		}
	}

	data := map[string]any{
		"id":     id,
		"sudoku": string(payload),
		"size":   fmt.Sprintf("%d", g.Side()),
		"givens": fmt.Sprintf("%d", givens),
	}

	if _, err := s.client.Create(collection, data); err != nil {
		return "", fmt.Errorf("failed to upload puzzle: %w", err)
	}
	return id, nil
}

// Get loads a stored puzzle by ID.
func (s *Store) Get(id string) (*PuzzleData, error) {
	record, err := s.client.One(collection, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load puzzle %s: %w", id, err)
	}

	raw, ok := record["sudoku"].(string)
	if !ok {
		return nil, fmt.Errorf("record %s has no puzzle payload", id)
	}

	var data PuzzleData
	if err := json.Unmarshal([]byte(raw), &data); err != nil {
		return nil, fmt.Errorf("failed to unmarshal puzzle %s: %w", id, err)
	}
	return &data, nil
}

// List pages through stored puzzles, optionally filtered by board size.
func (s *Store) List(page, perPage, size int) (*pocketbase.ResponseList[map[string]any], error) {
	var filter string
	if size > 0 {
		filter = fmt.Sprintf("size = \"%d\"", size)
	}

	params := pocketbase.ParamsList{
		Page:    page,
		Size:    perPage,
		Sort:    "-created",
		Filters: filter,
	}

	result, err := s.client.List(collection, params)
	if err != nil {
		return nil, fmt.Errorf("failed to list puzzles: %w", err)
	}
	return &result, nil
}

// Exists reports whether a record with the given ID is already stored.
func (s *Store) Exists(id string) (bool, error) {
	_, err := s.client.One(collection, id)
	if err != nil {
		if strings.Contains(err.Error(), "404") {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
