package player

import "context"

// Repository describes player persistence needs from use cases.
type Repository interface {
	GetByID(ctx context.Context, playerID int64) (Player, bool, error)
	ListByIDs(ctx context.Context, playerIDs []int64) ([]Player, error)
	ListAll(ctx context.Context) ([]Player, error)
	FindByName(ctx context.Context, name string) (Player, bool, error)
	Create(ctx context.Context, p Player) (Player, error)
	Update(ctx context.Context, p Player) error
}
