package service

import (
	"context"

	"telemetry_demo/internal/repository"
)

type FaultService struct {
	faultRepo repository.FaultRepo
}

func NewFaultService(faultRepo repository.FaultRepo) *FaultService {
	return &FaultService{faultRepo: faultRepo}
}

// SetFault stores the flag unconditionally and returns the new value.
func (s *FaultService) SetFault(ctx context.Context, on bool) (bool, error) {
	return s.faultRepo.Set(ctx, on)
}

func (s *FaultService) GetFault(ctx context.Context) (bool, error) {
	return s.faultRepo.Get(ctx)
}
