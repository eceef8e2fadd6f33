package repository

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/rocketscienceinc/sos-backend/internal/apperror"
	"github.com/rocketscienceinc/sos-backend/internal/movelog"
)

const gameKeyPrefix = "game:"

// GameRepository keeps every game as its move log text, keyed by game ID.
type GameRepository interface {
	CreateOrUpdate(ctx context.Context, id string, moveLog *movelog.Log) error
	GetByID(ctx context.Context, id string) (*movelog.Log, error)
	DeleteByID(ctx context.Context, id string) error
}

type dbGame struct {
	client *redis.Client
}

func NewGameRepository(client *redis.Client) GameRepository {
	return &dbGame{
		client: client,
	}
}

func (that *dbGame) CreateOrUpdate(ctx context.Context, id string, moveLog *movelog.Log) error {
	text, err := moveLog.MarshalText()
	if err != nil {
		return fmt.Errorf("could not marshal move log: %w", err)
	}

	if err = that.client.Set(ctx, gameKey(id), text, 0).Err(); err != nil {
		return fmt.Errorf("failed to set game: %w", err)
	}

	return nil
}

func (that *dbGame) GetByID(ctx context.Context, id string) (*movelog.Log, error) {
	response, err := that.client.Get(ctx, gameKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, apperror.ErrGameNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("failed to get game by id: %w", err)
	}

	moveLog, err := movelog.Parse(bytes.NewReader(response))
	if err != nil {
		return nil, fmt.Errorf("failed to parse stored game %s: %w", id, err)
	}

	return moveLog, nil
}

func (that *dbGame) DeleteByID(ctx context.Context, id string) error {
	deleted, err := that.client.Del(ctx, gameKey(id)).Result()
	if err != nil {
		return fmt.Errorf("failed to delete game by id: %w", err)
	}

	if deleted == 0 {
		return apperror.ErrGameNotFound
	}

	return nil
}

func gameKey(id string) string {
	return gameKeyPrefix + id
}
