package dashboard

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"smart-campus/internal/domain"
	"smart-campus/internal/repository"
)

// Home is the landing-page payload: a sample of campus activity plus
// headline counters.
type Home struct {
	RecentEvents  []domain.Event    `json:"recent_events"`
	FeaturedClubs []domain.Club     `json:"featured_clubs"`
	LostItems     []domain.LostItem `json:"lost_items"`
	Stats         Stats             `json:"stats"`
}

type Stats struct {
	TotalEvents     int64 `json:"total_events"`
	TotalClubs      int64 `json:"total_clubs"`
	TotalStudents   int64 `json:"total_students"`
	TotalFaculty    int64 `json:"total_faculty"`
	PendingRequests int64 `json:"pending_requests"`
}

type Service interface {
	GetHome(ctx context.Context) (*Home, error)
	GetStats(ctx context.Context) (*Stats, error)
}

type service struct {
	eventRepo repository.EventRepository
	clubRepo  repository.ClubRepository
	itemRepo  repository.LostItemRepository
	userRepo  repository.UserRepository
	reqRepo   repository.PermissionRequestRepository
	redis     *redis.Client
}

func NewService(
	eventRepo repository.EventRepository,
	clubRepo repository.ClubRepository,
	itemRepo repository.LostItemRepository,
	userRepo repository.UserRepository,
	reqRepo repository.PermissionRequestRepository,
	redis *redis.Client,
) Service {
	return &service{
		eventRepo: eventRepo,
		clubRepo:  clubRepo,
		itemRepo:  itemRepo,
		userRepo:  userRepo,
		reqRepo:   reqRepo,
		redis:     redis,
	}
}

// GetHome assembles the landing page. Cached for a minute: the home page is
// the hottest read path and none of its content needs to be fresh.
func (s *service) GetHome(ctx context.Context) (*Home, error) {
	cacheKey := "dashboard:home"

	if s.redis != nil {
		if cached, err := s.redis.Get(ctx, cacheKey).Result(); err == nil {
			var home Home
			if json.Unmarshal([]byte(cached), &home) == nil {
				return &home, nil
			}
		}
	}

	events, err := s.eventRepo.ListRecent(ctx, 6)
	if err != nil {
		return nil, err
	}

	clubs, err := s.clubRepo.ListRandom(ctx, 3)
	if err != nil {
		return nil, err
	}

	items, err := s.itemRepo.ListRecent(ctx, domain.ItemLost, 5)
	if err != nil {
		return nil, err
	}

	stats, err := s.GetStats(ctx)
	if err != nil {
		return nil, err
	}

	home := &Home{
		RecentEvents:  events,
		FeaturedClubs: clubs,
		LostItems:     items,
		Stats:         *stats,
	}

	if s.redis != nil {
		if homeJSON, err := json.Marshal(home); err == nil {
			_ = s.redis.Set(ctx, cacheKey, homeJSON, time.Minute).Err()
		}
	}

	return home, nil
}

func (s *service) GetStats(ctx context.Context) (*Stats, error) {
	totalEvents, err := s.eventRepo.Count(ctx)
	if err != nil {
		return nil, err
	}

	totalClubs, err := s.clubRepo.Count(ctx)
	if err != nil {
		return nil, err
	}

	totalStudents, err := s.userRepo.CountByRole(ctx, domain.RoleStudent)
	if err != nil {
		return nil, err
	}

	totalFaculty, err := s.userRepo.CountByRole(ctx, domain.RoleFaculty)
	if err != nil {
		return nil, err
	}

	pendingRequests, err := s.reqRepo.CountPending(ctx)
	if err != nil {
		return nil, err
	}

	return &Stats{
		TotalEvents:     totalEvents,
		TotalClubs:      totalClubs,
		TotalStudents:   totalStudents,
		TotalFaculty:    totalFaculty,
		PendingRequests: pendingRequests,
	}, nil
}
