package refdata

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"
)

const refDataCacheKey = "refdata:all"

type OfficeResponse struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type PositionResponse struct {
	ID    int    `json:"id"`
	Title string `json:"title"`
}

type SalaryGradeResponse struct {
	ID          int     `json:"id"`
	Grade       string  `json:"grade"`
	MonthlyRate float64 `json:"monthly_rate"`
}

// RefDataResponse bundles every dropdown the form client renders.
type RefDataResponse struct {
	Offices         []OfficeResponse      `json:"offices"`
	Positions       []PositionResponse    `json:"positions"`
	SalaryGrades    []SalaryGradeResponse `json:"salary_grades"`
	EmploymentTypes []string              `json:"employment_types"`
	HiringNatures   []string              `json:"hiring_natures"`
	FundSources     []string              `json:"fund_sources"`
	Sexes           []string              `json:"sexes"`
}

//go:generate mockgen -source=refdata_service.go -destination=mock/refdata_service_mock.go -package=mock

type Service interface {
	GetAll(ctx context.Context) (RefDataResponse, error)
	// The resolvers map free text from registrations and imports onto
	// catalog rows, case-insensitively. A miss returns (0, nil).
	ResolveOffice(ctx context.Context, name string) (int, error)
	ResolvePosition(ctx context.Context, title string) (int, error)
	ResolveSalaryGrade(ctx context.Context, grade string) (int, error)
}

type service struct {
	repo   Repository
	rdb    *redis.Client
	sf     *singleflight.Group
	logger *zap.Logger
}

func NewService(repo Repository, rdb *redis.Client, logger ...*zap.Logger) Service {
	l := zap.L().Named("refdata.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("refdata.service")
	}
	return &service{repo: repo, rdb: rdb, sf: &singleflight.Group{}, logger: l}
}

func (s *service) GetAll(ctx context.Context) (RefDataResponse, error) {
	if s.rdb != nil {
		cached, err := s.rdb.Get(ctx, refDataCacheKey).Result()
		if err == nil {
			var resp RefDataResponse
			if jsonErr := json.Unmarshal([]byte(cached), &resp); jsonErr == nil {
				return resp, nil
			}
		} else if !errors.Is(err, redis.Nil) {
			s.logger.Warn("refdata cache read failed", zap.Error(err))
		}
	}

	v, err, _ := s.sf.Do(refDataCacheKey, func() (interface{}, error) {
		offices, err := s.repo.ListOffices(ctx)
		if err != nil {
			return nil, err
		}
		positions, err := s.repo.ListPositions(ctx)
		if err != nil {
			return nil, err
		}
		grades, err := s.repo.ListSalaryGrades(ctx)
		if err != nil {
			return nil, err
		}

		resp := RefDataResponse{
			EmploymentTypes: EmploymentTypes,
			HiringNatures:   HiringNatures,
			FundSources:     FundSources,
			Sexes:           Sexes,
		}
		for _, o := range offices {
			resp.Offices = append(resp.Offices, OfficeResponse{ID: o.ID, Name: o.Name})
		}
		for _, p := range positions {
			resp.Positions = append(resp.Positions, PositionResponse{ID: p.ID, Title: p.Title})
		}
		for _, g := range grades {
			resp.SalaryGrades = append(resp.SalaryGrades, SalaryGradeResponse{
				ID:          g.ID,
				Grade:       g.Grade,
				MonthlyRate: g.MonthlyRate.InexactFloat64(),
			})
		}

		if s.rdb != nil {
			if payload, err := json.Marshal(resp); err == nil {
				if err := s.rdb.Set(ctx, refDataCacheKey, payload, time.Hour).Err(); err != nil {
					s.logger.Warn("refdata cache write failed", zap.Error(err))
				}
			}
		}
		return resp, nil
	})
	if err != nil {
		return RefDataResponse{}, err
	}
	return v.(RefDataResponse), nil
}

func (s *service) ResolveOffice(ctx context.Context, name string) (int, error) {
	office, err := s.repo.FindOfficeByName(ctx, name)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, nil
		}
		return 0, err
	}
	return office.ID, nil
}

func (s *service) ResolvePosition(ctx context.Context, title string) (int, error) {
	position, err := s.repo.FindPositionByTitle(ctx, title)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, nil
		}
		return 0, err
	}
	return position.ID, nil
}

func (s *service) ResolveSalaryGrade(ctx context.Context, grade string) (int, error) {
	sg, err := s.repo.FindSalaryGradeByGrade(ctx, grade)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, nil
		}
		return 0, err
	}
	return sg.ID, nil
}
