package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"gamestore_bff/internal/models"
)

const sessionTTL = 24 * time.Hour

var ErrNotFound = errors.New("sesión no encontrada")

// Store persiste las sesiones (token del backend, email, rol) en Redis.
// Es el reemplazo del preference store del cliente móvil: sobrevive
// reinicios del proceso y se borra en el logout.
type Store struct {
	redis *redis.Client
}

func NewStore(client *redis.Client) *Store {
	return &Store{redis: client}
}

func sessionKey(id string) string {
	return "session:" + id
}

// Create guarda la sesión y devuelve su id.
func (s *Store) Create(ctx context.Context, sess models.Session) (string, error) {
	id := uuid.NewString()
	data, err := json.Marshal(sess)
	if err != nil {
		return "", fmt.Errorf("serializando sesión: %w", err)
	}
	if err := s.redis.Set(ctx, sessionKey(id), data, sessionTTL).Err(); err != nil {
		return "", fmt.Errorf("guardando sesión: %w", err)
	}
	return id, nil
}

func (s *Store) Get(ctx context.Context, id string) (*models.Session, error) {
	data, err := s.redis.Get(ctx, sessionKey(id)).Result()
	if err == redis.Nil {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("leyendo sesión: %w", err)
	}

	var sess models.Session
	if err := json.Unmarshal([]byte(data), &sess); err != nil {
		return nil, fmt.Errorf("decodificando sesión: %w", err)
	}
	return &sess, nil
}

func (s *Store) Delete(ctx context.Context, id string) error {
	return s.redis.Del(ctx, sessionKey(id)).Err()
}
