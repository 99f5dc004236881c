package rawdata

import "context"

type Repository interface {
	Upsert(ctx context.Context, item Payload) error
}
