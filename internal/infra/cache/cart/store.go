package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/m04kA/SMC-BarberService/internal/cart"
)

const keyPrefix = "barber:cart:"

// Store хранилище корзин в Redis, одна корзина на пользователя.
// TTL продлевается при каждом сохранении.
type Store struct {
	client *redis.Client
	ttl    time.Duration
}

// NewStore создает хранилище корзин
func NewStore(client *redis.Client, ttl time.Duration) *Store {
	return &Store{client: client, ttl: ttl}
}

// Load загружает корзину пользователя. Если корзины нет, возвращается новая пустая.
func (s *Store) Load(ctx context.Context, ownerID int64) (*cart.Session, error) {
	val, err := s.client.Get(ctx, key(ownerID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return cart.NewSession(ownerID), nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Load: %v", ErrRedis, err)
	}

	var session cart.Session
	if err := json.Unmarshal(val, &session); err != nil {
		return nil, fmt.Errorf("%w: Load: %v", ErrDecode, err)
	}
	if session.Drafts == nil {
		session.Drafts = []cart.Draft{}
	}
	if session.LooseProducts == nil {
		session.LooseProducts = []cart.ProductLine{}
	}

	return &session, nil
}

// Save сохраняет корзину
func (s *Store) Save(ctx context.Context, session *cart.Session) error {
	session.UpdatedAt = time.Now().UTC()

	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("%w: Save: %v", ErrEncode, err)
	}

	if err := s.client.Set(ctx, key(session.OwnerID), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("%w: Save: %v", ErrRedis, err)
	}

	return nil
}

// Delete удаляет корзину пользователя
func (s *Store) Delete(ctx context.Context, ownerID int64) error {
	if err := s.client.Del(ctx, key(ownerID)).Err(); err != nil {
		return fmt.Errorf("%w: Delete: %v", ErrRedis, err)
	}
	return nil
}

func key(ownerID int64) string {
	return fmt.Sprintf("%s%d", keyPrefix, ownerID)
}
