package cart

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"gamestore_bff/internal/models"
)

const cartTTL = 30 * 24 * time.Hour

// Store persiste el ledger de cada usuario en Redis y publica eventos de
// cambio en el canal "cart:<email>" para los clientes websocket.
type Store struct {
	redis *redis.Client
}

func NewStore(client *redis.Client) *Store {
	return &Store{redis: client}
}

func cartKey(email string) string {
	return "cart:" + email
}

// Load reconstruye el ledger del usuario. Sin clave => carrito vacío.
func (s *Store) Load(ctx context.Context, email string) (*Ledger, error) {
	data, err := s.redis.Get(ctx, cartKey(email)).Result()
	if err == redis.Nil || data == "" {
		return NewLedger(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("cargando carrito de %s: %w", email, err)
	}

	var lines []models.CartLine
	if err := json.Unmarshal([]byte(data), &lines); err != nil {
		return nil, fmt.Errorf("decodificando carrito de %s: %w", email, err)
	}
	return NewLedgerFromLines(lines), nil
}

// Save guarda el ledger (TTL 30 días) y notifica el cambio.
func (s *Store) Save(ctx context.Context, email string, ledger *Ledger) error {
	data, err := json.Marshal(ledger.Lines())
	if err != nil {
		return fmt.Errorf("serializando carrito de %s: %w", email, err)
	}
	if err := s.redis.Set(ctx, cartKey(email), data, cartTTL).Err(); err != nil {
		return fmt.Errorf("guardando carrito de %s: %w", email, err)
	}
	s.redis.Publish(ctx, cartKey(email), "updated")
	return nil
}

// Clear elimina el carrito persistido y notifica.
func (s *Store) Clear(ctx context.Context, email string) error {
	if err := s.redis.Del(ctx, cartKey(email)).Err(); err != nil {
		return fmt.Errorf("vaciando carrito de %s: %w", email, err)
	}
	s.redis.Publish(ctx, cartKey(email), "cleared")
	return nil
}
