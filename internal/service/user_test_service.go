package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Loikaaa/neplia-sub001/internal/cache"
	"github.com/Loikaaa/neplia-sub001/internal/dto"
	"github.com/Loikaaa/neplia-sub001/internal/repository"
	"github.com/jinzhu/copier"
	"github.com/rs/zerolog/log"
)

type UserTestService interface {
	GetAllTests(ctx context.Context) ([]dto.TestSummaryDTO, error)
	GetTestDetails(ctx context.Context, testID uint) (*dto.TestResponseDTO, error)
}

type userTestService struct {
	testRepo repository.TestRepository
	cache    cache.Store
	ttl      time.Duration
}

func NewUserTestService(testRepo repository.TestRepository, cacheStore cache.Store, ttl time.Duration) UserTestService {
	return &userTestService{testRepo: testRepo, cache: cacheStore, ttl: ttl}
}

func (s *userTestService) GetAllTests(ctx context.Context) ([]dto.TestSummaryDTO, error) {
	var cached []dto.TestSummaryDTO
	if err := s.cache.Get(ctx, cache.KeyTestCatalog, &cached); err == nil {
		return cached, nil
	} else if !errors.Is(err, cache.ErrCacheMiss) {
		log.Warn().Err(err).Msg("Test catalog cache read failed, falling through to database")
	}

	testsWithCount, err := s.testRepo.FindAllWithSectionCount()
	if err != nil {
		log.Error().Err(err).Msg("Failed to get tests with section count from repository")
		return nil, fmt.Errorf("error fetching tests: %w", err)
	}

	dtos := make([]dto.TestSummaryDTO, 0, len(testsWithCount))
	for _, twc := range testsWithCount {
		dtos = append(dtos, dto.TestSummaryDTO{
			ID:           twc.Test.ID,
			Title:        twc.Test.Title,
			Description:  twc.Test.Description,
			SectionCount: twc.SectionCount,
			CreatedAt:    twc.Test.CreatedAt,
		})
	}

	if err := s.cache.Set(ctx, cache.KeyTestCatalog, dtos, s.ttl); err != nil {
		log.Warn().Err(err).Msg("Failed to cache test catalog")
	}
	return dtos, nil
}

func (s *userTestService) GetTestDetails(ctx context.Context, testID uint) (*dto.TestResponseDTO, error) {
	key := cache.KeyTestDetail(testID)
	var cached dto.TestResponseDTO
	if err := s.cache.Get(ctx, key, &cached); err == nil {
		return &cached, nil
	} else if !errors.Is(err, cache.ErrCacheMiss) {
		log.Warn().Err(err).Uint("testID", testID).Msg("Test detail cache read failed, falling through to database")
	}

	test, err := s.testRepo.FindByIDWithSections(testID)
	if err != nil {
		log.Error().Err(err).Uint("testID", testID).Msg("Failed to get test details from repository")
		return nil, fmt.Errorf("test not found with ID %d: %w", testID, err)
	}

	var resp dto.TestResponseDTO
	if err := copier.Copy(&resp, test); err != nil {
		log.Error().Err(err).Msg("Failed to copy Test model to TestResponseDTO")
		return nil, fmt.Errorf("error preparing test details response: %w", err)
	}

	if err := s.cache.Set(ctx, key, &resp, s.ttl); err != nil {
		log.Warn().Err(err).Uint("testID", testID).Msg("Failed to cache test details")
	}
	return &resp, nil
}
