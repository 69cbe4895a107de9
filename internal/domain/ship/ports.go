package ship

import "context"

// DesignRepository stores ship designs as blueprints
type DesignRepository interface {
	Save(ctx context.Context, bp Blueprint) error
	FindByID(ctx context.Context, id string) (*Blueprint, error)
	List(ctx context.Context) ([]Blueprint, error)
	Delete(ctx context.Context, id string) error
}
