package commands

import (
	"context"
	"fmt"
	"strconv"

	"github.com/dyluth/retro/internal/actions"
	"github.com/dyluth/retro/internal/board"
	"github.com/dyluth/retro/internal/config"
	"github.com/dyluth/retro/internal/printer"
	"github.com/dyluth/retro/pkg/retro"
	"github.com/redis/go-redis/v9"
)

// confirmPrompt builds the deletion prompt; replaced in tests
var confirmPrompt = printer.TerminalConfirm

// session bundles what every idea command needs
type session struct {
	cfg    *config.SessionConfig
	board  *board.Board
	client *retro.Client
}

func (s *session) Close() {
	if s.client != nil {
		s.client.Close()
	}
}

// loadSession reads the session file. With connect set it also opens and
// verifies the session channel.
func loadSession(ctx context.Context, connect bool) (*session, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, printer.ErrorWithContext(
			"failed to load session file",
			err.Error(),
			map[string]string{"Config": configPath},
			[]string{"Check the file or point to another one:\n  retro --config path/to/retro.yml"},
		)
	}

	s := &session{cfg: cfg, board: board.New(cfg.Ideas)}
	if !connect {
		return s, nil
	}

	redisOpts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	client, err := retro.NewClient(redisOpts, cfg.Session)
	if err != nil {
		return nil, fmt.Errorf("failed to create channel client: %w", err)
	}

	if err := client.Ping(ctx); err != nil {
		client.Close()
		return nil, printer.ErrorWithContext(
			"Redis connection failed",
			fmt.Sprintf("Could not connect to Redis at %s", cfg.RedisURL),
			map[string]string{"Session": cfg.Session},
			[]string{"Set REDIS_URL or redis_url in the session file to a reachable server"},
		)
	}

	s.client = client
	return s, nil
}

// controller wires the actions controller for the configured user
func (s *session) controller(assumeYes bool) (*actions.Controller, error) {
	return actions.NewController(s.cfg.User, s.client, s.board, confirmPrompt(assumeYes))
}

// idea resolves a command-line idea ID against the board
func (s *session) idea(arg string) (retro.Idea, error) {
	id, err := strconv.Atoi(arg)
	if err != nil {
		return retro.Idea{}, printer.Error(
			"invalid idea ID",
			fmt.Sprintf("%q is not a number", arg),
			[]string{"List ideas and their IDs:\n  retro ideas"},
		)
	}

	idea, err := s.board.Get(id)
	if err != nil {
		return retro.Idea{}, printer.Error(
			fmt.Sprintf("idea #%d not found", id),
			fmt.Sprintf("Session %s has no idea with ID %d.", s.cfg.Session, id),
			[]string{"List ideas and their IDs:\n  retro ideas"},
		)
	}
	return idea, nil
}
