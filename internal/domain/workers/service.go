package workers

import "context"

type storeAPI interface {
	ListDirectory(ctx context.Context, specialty string) ([]Identity, error)
	ListLocal(ctx context.Context) ([]Identity, error)
	AddLocal(ctx context.Context, name string) (Identity, error)
}

// Service merges the external directory with locally added workers into
// the single roster the salary view works from.
type Service struct {
	store     storeAPI
	specialty string
}

func NewService(store storeAPI, specialty string) *Service {
	return &Service{store: store, specialty: specialty}
}

func (s *Service) List(ctx context.Context) ([]Identity, error) {
	directory, err := s.store.ListDirectory(ctx, s.specialty)
	if err != nil {
		return nil, err
	}
	local, err := s.store.ListLocal(ctx)
	if err != nil {
		return nil, err
	}
	return append(directory, local...), nil
}

func (s *Service) AddLocal(ctx context.Context, name string) (Identity, error) {
	return s.store.AddLocal(ctx, name)
}
