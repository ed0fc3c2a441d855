package leavetype

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const catalogCacheKey = "leave_types:catalog"

type LeaveTypeResponse struct {
	ID          int     `json:"id"`
	Code        string  `json:"code"`
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
	MaxDays     *int    `json:"max_days,omitempty"`
}

//go:generate mockgen -source=leavetype_service.go -destination=mock/leavetype_service_mock.go -package=mock
type Service interface {
	GetCatalog(ctx context.Context) ([]LeaveTypeResponse, error)
}

type service struct {
	repo   Repository
	rdb    *redis.Client
	sf     *singleflight.Group
	logger *zap.Logger
}

func NewService(repo Repository, rdb *redis.Client, logger ...*zap.Logger) Service {
	l := zap.L().Named("leavetype.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leavetype.service")
	}
	return &service{repo: repo, rdb: rdb, sf: &singleflight.Group{}, logger: l}
}

// GetCatalog serves the active leave types from redis when possible; cache
// misses collapse into one database read via singleflight.
func (s *service) GetCatalog(ctx context.Context) ([]LeaveTypeResponse, error) {
	if s.rdb != nil {
		cached, err := s.rdb.Get(ctx, catalogCacheKey).Result()
		if err == nil {
			var resp []LeaveTypeResponse
			if jsonErr := json.Unmarshal([]byte(cached), &resp); jsonErr == nil {
				return resp, nil
			}
		} else if !errors.Is(err, redis.Nil) {
			s.logger.Warn("leave type cache read failed", zap.Error(err))
		}
	}

	v, err, _ := s.sf.Do(catalogCacheKey, func() (interface{}, error) {
		types, err := s.repo.ListActive(ctx)
		if err != nil {
			return nil, err
		}

		resp := make([]LeaveTypeResponse, len(types))
		for i, t := range types {
			resp[i] = LeaveTypeResponse{
				ID:          t.ID,
				Code:        t.Code,
				Name:        t.Name,
				Description: t.Description,
				MaxDays:     t.MaxDays,
			}
		}

		if s.rdb != nil {
			if payload, err := json.Marshal(resp); err == nil {
				if err := s.rdb.Set(ctx, catalogCacheKey, payload, time.Hour).Err(); err != nil {
					s.logger.Warn("leave type cache write failed", zap.Error(err))
				}
			}
		}
		return resp, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]LeaveTypeResponse), nil
}
