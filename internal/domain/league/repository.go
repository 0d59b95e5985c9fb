package league

import "context"

// Repository describes league persistence needs from use cases.
type Repository interface {
	List(ctx context.Context) ([]League, error)
	GetByID(ctx context.Context, leagueID int64) (League, bool, error)
	// GetCurrent returns the league with the latest season, newest id first.
	GetCurrent(ctx context.Context) (League, bool, error)
	Create(ctx context.Context, l League) (League, error)
	ReplaceTemplate(ctx context.Context, leagueID int64, slots []TemplateSlot) error
	ListTemplate(ctx context.Context, leagueID int64) ([]TemplateSlot, error)
}
