package courts

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CourtBookingService/internal/domain"
	courtRepo "github.com/m04kA/SMC-CourtBookingService/internal/infra/storage/court"
	"github.com/m04kA/SMC-CourtBookingService/internal/service/courts/models"
	"github.com/m04kA/SMC-CourtBookingService/pkg/ptr"
)

// Стабы зависимостей

type stubCourtRepo struct {
	byID   map[int64]*domain.Court
	listed []*domain.Court

	created *domain.Court
	updated *domain.Court
	deleted []int64
}

func newStubCourtRepo(courts ...*domain.Court) *stubCourtRepo {
	s := &stubCourtRepo{byID: make(map[int64]*domain.Court)}
	for _, c := range courts {
		s.byID[c.ID] = c
		s.listed = append(s.listed, c)
	}
	return s
}

func (s *stubCourtRepo) Create(_ context.Context, c *domain.Court) (*domain.Court, error) {
	created := *c
	created.ID = 10
	s.created = &created
	return &created, nil
}

func (s *stubCourtRepo) GetByID(_ context.Context, id int64) (*domain.Court, error) {
	c, ok := s.byID[id]
	if !ok {
		return nil, courtRepo.ErrCourtNotFound
	}
	return c, nil
}

func (s *stubCourtRepo) List(_ context.Context, filter domain.CourtFilter) ([]*domain.Court, error) {
	result := make([]*domain.Court, 0, len(s.listed))
	for _, c := range s.listed {
		if filter.Sport != nil && c.Sport != *filter.Sport {
			continue
		}
		result = append(result, c)
	}
	return result, nil
}

func (s *stubCourtRepo) Update(_ context.Context, c *domain.Court) (*domain.Court, error) {
	if _, ok := s.byID[c.ID]; !ok {
		return nil, courtRepo.ErrCourtNotFound
	}
	updated := *c
	s.updated = &updated
	return &updated, nil
}

func (s *stubCourtRepo) Delete(_ context.Context, id int64) error {
	if _, ok := s.byID[id]; !ok {
		return courtRepo.ErrCourtNotFound
	}
	s.deleted = append(s.deleted, id)
	return nil
}

type fixedTimeProvider struct {
	now time.Time
}

func (p *fixedTimeProvider) Now() time.Time {
	return p.now
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

// Фикстуры

// Полдень: корты с обычным дневным окном работы открыты
var midday = time.Date(2025, 10, 15, 12, 0, 0, 0, time.UTC)

func newTestService(repo *stubCourtRepo, now time.Time) *Service {
	return NewService(repo, nopLogger{}).WithTimeProvider(&fixedTimeProvider{now: now})
}

func createRequest() *models.CreateCourtRequest {
	return &models.CreateCourtRequest{
		Name:         "Центральный корт",
		Sport:        "tennis",
		Location:     "Москва, Лужники",
		PricePerHour: 1500,
		Capacity:     2,
		OpenTime:     "08:00",
		CloseTime:    "22:00",
	}
}

// Тесты

func TestCreate(t *testing.T) {
	t.Run("initial status follows the clock", func(t *testing.T) {
		repo := newStubCourtRepo()
		svc := newTestService(repo, midday)

		resp, err := svc.Create(context.Background(), createRequest())

		require.NoError(t, err)
		assert.Equal(t, "active", resp.Status)
		assert.Equal(t, domain.CourtStatusActive, repo.created.Status)
	})

	t.Run("created outside operating hours starts inactive", func(t *testing.T) {
		night := time.Date(2025, 10, 15, 23, 30, 0, 0, time.UTC)
		repo := newStubCourtRepo()
		svc := newTestService(repo, night)

		resp, err := svc.Create(context.Background(), createRequest())

		require.NoError(t, err)
		assert.Equal(t, "inactive", resp.Status)
	})
}

func TestCreate_Validation(t *testing.T) {
	mutate := func(fn func(req *models.CreateCourtRequest)) *models.CreateCourtRequest {
		req := createRequest()
		fn(req)
		return req
	}

	tests := []struct {
		name string
		req  *models.CreateCourtRequest
	}{
		{name: "empty name", req: mutate(func(r *models.CreateCourtRequest) { r.Name = "" })},
		{name: "empty sport", req: mutate(func(r *models.CreateCourtRequest) { r.Sport = "" })},
		{name: "empty location", req: mutate(func(r *models.CreateCourtRequest) { r.Location = "" })},
		{name: "zero price", req: mutate(func(r *models.CreateCourtRequest) { r.PricePerHour = 0 })},
		{name: "negative price", req: mutate(func(r *models.CreateCourtRequest) { r.PricePerHour = -100 })},
		{name: "zero capacity", req: mutate(func(r *models.CreateCourtRequest) { r.Capacity = 0 })},
		{name: "capacity above limit", req: mutate(func(r *models.CreateCourtRequest) { r.Capacity = 51 })},
		{name: "bad open time", req: mutate(func(r *models.CreateCourtRequest) { r.OpenTime = "8am" })},
		{name: "open after close", req: mutate(func(r *models.CreateCourtRequest) { r.OpenTime = "22:00"; r.CloseTime = "08:00" })},
		{name: "window under an hour", req: mutate(func(r *models.CreateCourtRequest) { r.OpenTime = "10:00"; r.CloseTime = "10:30" })},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newTestService(newStubCourtRepo(), midday)

			_, err := svc.Create(context.Background(), tt.req)

			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestGetByID_StatusOverlay(t *testing.T) {
	court := &domain.Court{
		ID: 1, Name: "Корт", Sport: "tennis", Location: "Москва",
		PricePerHour: 1000, Capacity: 2,
		OpenTime: "08:00", CloseTime: "22:00",
		Status: domain.CourtStatusActive,
	}
	repo := newStubCourtRepo(court)

	t.Run("open during operating hours", func(t *testing.T) {
		resp, err := newTestService(repo, midday).GetByID(context.Background(), 1)
		require.NoError(t, err)
		assert.Equal(t, "active", resp.Status)
	})

	t.Run("closed outside operating hours", func(t *testing.T) {
		night := time.Date(2025, 10, 15, 23, 30, 0, 0, time.UTC)
		resp, err := newTestService(repo, night).GetByID(context.Background(), 1)
		require.NoError(t, err)
		assert.Equal(t, "inactive", resp.Status)
	})

	t.Run("admin-disabled court stays inactive at midday", func(t *testing.T) {
		disabled := &domain.Court{
			ID: 2, Name: "Корт", Sport: "tennis", Location: "Москва",
			PricePerHour: 1000, Capacity: 2,
			OpenTime: "08:00", CloseTime: "22:00",
			Status: domain.CourtStatusInactive,
		}
		resp, err := newTestService(newStubCourtRepo(disabled), midday).GetByID(context.Background(), 2)
		require.NoError(t, err)
		assert.Equal(t, "inactive", resp.Status)
	})

	t.Run("not found", func(t *testing.T) {
		_, err := newTestService(newStubCourtRepo(), midday).GetByID(context.Background(), 404)
		assert.ErrorIs(t, err, ErrCourtNotFound)
	})
}

func TestList_ActiveFirst(t *testing.T) {
	// Корт 1 сейчас закрыт (ночное окно), корты 2 и 3 открыты
	courts := []*domain.Court{
		{ID: 1, Name: "Ночной", Sport: "tennis", Location: "A", PricePerHour: 1000, Capacity: 2, OpenTime: "18:00", CloseTime: "23:00", Status: domain.CourtStatusActive},
		{ID: 2, Name: "Дневной", Sport: "tennis", Location: "B", PricePerHour: 1000, Capacity: 2, OpenTime: "08:00", CloseTime: "22:00", Status: domain.CourtStatusActive},
		{ID: 3, Name: "Утренний", Sport: "padel", Location: "C", PricePerHour: 1000, Capacity: 2, OpenTime: "07:00", CloseTime: "14:00", Status: domain.CourtStatusActive},
	}
	svc := newTestService(newStubCourtRepo(courts...), midday)

	resp, err := svc.List(context.Background(), &models.ListCourtsRequest{})

	require.NoError(t, err)
	require.Len(t, resp.Courts, 3)
	// Открытые первыми, внутри группы — исходный порядок
	assert.Equal(t, int64(2), resp.Courts[0].ID)
	assert.Equal(t, int64(3), resp.Courts[1].ID)
	assert.Equal(t, int64(1), resp.Courts[2].ID)
	assert.Equal(t, "inactive", resp.Courts[2].Status)
}

func TestList_Filters(t *testing.T) {
	courts := []*domain.Court{
		{ID: 1, Name: "Теннис", Sport: "tennis", Location: "A", PricePerHour: 1000, Capacity: 2, OpenTime: "08:00", CloseTime: "22:00", Status: domain.CourtStatusActive},
		{ID: 2, Name: "Падел", Sport: "padel", Location: "B", PricePerHour: 1000, Capacity: 2, OpenTime: "08:00", CloseTime: "22:00", Status: domain.CourtStatusActive},
		{ID: 3, Name: "Закрытый", Sport: "tennis", Location: "C", PricePerHour: 1000, Capacity: 2, OpenTime: "18:00", CloseTime: "23:00", Status: domain.CourtStatusActive},
	}

	t.Run("by sport", func(t *testing.T) {
		svc := newTestService(newStubCourtRepo(courts...), midday)

		resp, err := svc.List(context.Background(), &models.ListCourtsRequest{Sport: ptr.Ptr("padel")})

		require.NoError(t, err)
		require.Len(t, resp.Courts, 1)
		assert.Equal(t, int64(2), resp.Courts[0].ID)
	})

	t.Run("by real-time status", func(t *testing.T) {
		svc := newTestService(newStubCourtRepo(courts...), midday)

		// Корт 3 administratively active, но сейчас вне окна работы
		resp, err := svc.List(context.Background(), &models.ListCourtsRequest{Status: ptr.Ptr("inactive")})

		require.NoError(t, err)
		require.Len(t, resp.Courts, 1)
		assert.Equal(t, int64(3), resp.Courts[0].ID)
	})

	t.Run("invalid status", func(t *testing.T) {
		svc := newTestService(newStubCourtRepo(courts...), midday)

		_, err := svc.List(context.Background(), &models.ListCourtsRequest{Status: ptr.Ptr("open")})

		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}

func TestUpdate(t *testing.T) {
	base := func() *domain.Court {
		return &domain.Court{
			ID: 1, Name: "Корт", Sport: "tennis", Location: "Москва",
			PricePerHour: 1000, Capacity: 2,
			OpenTime: "08:00", CloseTime: "22:00",
			Status: domain.CourtStatusActive,
		}
	}

	t.Run("partial update keeps other fields", func(t *testing.T) {
		repo := newStubCourtRepo(base())
		svc := newTestService(repo, midday)

		resp, err := svc.Update(context.Background(), 1, &models.UpdateCourtRequest{
			PricePerHour: ptr.Ptr(2000.0),
		})

		require.NoError(t, err)
		assert.Equal(t, 2000.0, resp.PricePerHour)
		assert.Equal(t, "Корт", resp.Name)
		assert.Equal(t, "08:00", resp.OpenTime)
	})

	t.Run("admin can disable the court", func(t *testing.T) {
		repo := newStubCourtRepo(base())
		svc := newTestService(repo, midday)

		resp, err := svc.Update(context.Background(), 1, &models.UpdateCourtRequest{
			Status: ptr.Ptr("inactive"),
		})

		require.NoError(t, err)
		// Отключённый корт остаётся inactive даже в часы работы
		assert.Equal(t, "inactive", resp.Status)
		assert.Equal(t, domain.CourtStatusInactive, repo.updated.Status)
	})

	t.Run("invalid resulting window is rejected", func(t *testing.T) {
		repo := newStubCourtRepo(base())
		svc := newTestService(repo, midday)

		_, err := svc.Update(context.Background(), 1, &models.UpdateCourtRequest{
			CloseTime: ptr.Ptr("07:00"),
		})

		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("not found", func(t *testing.T) {
		svc := newTestService(newStubCourtRepo(), midday)

		_, err := svc.Update(context.Background(), 404, &models.UpdateCourtRequest{})

		assert.ErrorIs(t, err, ErrCourtNotFound)
	})
}

func TestDelete(t *testing.T) {
	court := &domain.Court{ID: 1, Name: "Корт", Sport: "tennis", Location: "A", PricePerHour: 1000, Capacity: 2, OpenTime: "08:00", CloseTime: "22:00", Status: domain.CourtStatusActive}
	repo := newStubCourtRepo(court)
	svc := newTestService(repo, midday)

	require.NoError(t, svc.Delete(context.Background(), 1))
	assert.Equal(t, []int64{1}, repo.deleted)

	assert.ErrorIs(t, svc.Delete(context.Background(), 404), ErrCourtNotFound)
}
