package catalog

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/makeup-studio/internal/httperr"
	"github.com/BruksfildServices01/makeup-studio/internal/infra/repository"
	"github.com/BruksfildServices01/makeup-studio/internal/models"
	"github.com/BruksfildServices01/makeup-studio/internal/testutil"
)

type memoryCache struct {
	services    []models.Service
	ok          bool
	invalidated int
}

func (c *memoryCache) GetServiceList(ctx context.Context) ([]models.Service, bool) {
	return c.services, c.ok
}

func (c *memoryCache) SetServiceList(ctx context.Context, services []models.Service) error {
	c.services, c.ok = services, true
	return nil
}

func (c *memoryCache) InvalidateServiceList(ctx context.Context) error {
	c.services, c.ok = nil, false
	c.invalidated++
	return nil
}

type fixture struct {
	db     *gorm.DB
	cache  *memoryCache
	list   *ListServices
	get    *GetService
	create *CreateService
	update *UpdateService
	delete *DeleteService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	gdb := testutil.NewDB(t)
	repo := repository.NewServiceGormRepository(gdb)
	dispatcher := testutil.NewAuditDispatcher(t, gdb)
	cache := &memoryCache{}
	logger := zerolog.Nop()

	return &fixture{
		db:     gdb,
		cache:  cache,
		list:   NewListServices(repo, cache),
		get:    NewGetService(repo),
		create: NewCreateService(repo, cache, dispatcher, logger),
		update: NewUpdateService(repo, cache, dispatcher, logger),
		delete: NewDeleteService(repo, cache, dispatcher, logger),
	}
}

func validationFields(t *testing.T, err error) map[string]string {
	t.Helper()

	var be httperr.BusinessError
	if !errors.As(err, &be) || be.Kind != httperr.KindValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
	out := map[string]string{}
	for _, f := range be.Fields {
		out[f.Field] = f.Rule
	}
	return out
}

func TestCreateService_PersistsAndInvalidatesCache(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	if _, err := f.list.Execute(ctx); err != nil {
		t.Fatalf("warm cache: %v", err)
	}
	if !f.cache.ok {
		t.Fatalf("expected listing to fill the cache")
	}

	s, err := f.create.Execute(ctx, CreateServiceInput{
		Name:            "  Editorial Makeup ",
		DurationMinutes: 75,
		Price:           2000,
		Actor:           "admin@makeupstudio.com",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if s.ID == 0 || s.Name != "Editorial Makeup" {
		t.Fatalf("unexpected service %+v", s)
	}
	if f.cache.ok || f.cache.invalidated != 1 {
		t.Fatalf("expected cache invalidation after create")
	}

	all, err := f.list.Execute(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(all) != 1 || all[0].ID != s.ID {
		t.Fatalf("expected the new service in the listing, got %+v", all)
	}
}

func TestCreateService_ReportsEveryInvalidField(t *testing.T) {
	f := newFixture(t)

	_, err := f.create.Execute(context.Background(), CreateServiceInput{
		Name:            "   ",
		DurationMinutes: 0,
		Price:           -1,
	})

	fields := validationFields(t, err)
	want := map[string]string{"name": "required", "durationMinutes": "min", "price": "min"}
	for field, rule := range want {
		if fields[field] != rule {
			t.Fatalf("expected %s to fail %s, got %v", field, rule, fields)
		}
	}

	var count int64
	f.db.Model(&models.Service{}).Count(&count)
	if count != 0 {
		t.Fatalf("invalid service must not be persisted")
	}
}

func TestCreateService_Bounds(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	long := make([]byte, 101)
	for i := range long {
		long[i] = 'a'
	}

	_, err := f.create.Execute(ctx, CreateServiceInput{Name: string(long), DurationMinutes: 601, Price: 100000.01})
	fields := validationFields(t, err)
	if fields["name"] != "max" || fields["durationMinutes"] != "max" || fields["price"] != "max" {
		t.Fatalf("expected max violations, got %v", fields)
	}

	if _, err := f.create.Execute(ctx, CreateServiceInput{Name: string(long[:100]), DurationMinutes: 600, Price: 100000}); err != nil {
		t.Fatalf("upper bounds must be accepted: %v", err)
	}
	if _, err := f.create.Execute(ctx, CreateServiceInput{Name: "Touch-up", DurationMinutes: 1, Price: 0}); err != nil {
		t.Fatalf("lower bounds must be accepted: %v", err)
	}
}

func TestListServices_ServesFromCache(t *testing.T) {
	f := newFixture(t)
	f.cache.services = []models.Service{{ID: 99, Name: "Cached"}}
	f.cache.ok = true

	all, err := f.list.Execute(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(all) != 1 || all[0].ID != 99 {
		t.Fatalf("expected cached listing, got %+v", all)
	}
}

func TestListServices_OrderedByID(t *testing.T) {
	f := newFixture(t)
	c := testutil.SeedService(t, f.db, "C", 30, 10)
	a := testutil.SeedService(t, f.db, "A", 30, 10)

	all, err := f.list.Execute(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(all) != 2 || all[0].ID != c.ID || all[1].ID != a.ID {
		t.Fatalf("expected id order, got %+v", all)
	}
}

func TestGetService_NotFound(t *testing.T) {
	f := newFixture(t)

	_, err := f.get.Execute(context.Background(), 404)
	if !httperr.IsBusiness(err, httperr.CodeServiceNotFound) {
		t.Fatalf("expected service_not_found, got %v", err)
	}
}

func TestUpdateService_PartialPatch(t *testing.T) {
	f := newFixture(t)
	s := testutil.SeedService(t, f.db, "Soft Makeup", 60, 1500)

	price := 1800.0
	updated, err := f.update.Execute(context.Background(), UpdateServiceInput{ID: s.ID, Price: &price})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Name != "Soft Makeup" || updated.DurationMinutes != 60 || updated.Price != 1800 {
		t.Fatalf("unexpected service after patch %+v", updated)
	}
	if f.cache.invalidated != 1 {
		t.Fatalf("expected cache invalidation after update")
	}

	bad := 0
	_, err = f.update.Execute(context.Background(), UpdateServiceInput{ID: s.ID, DurationMinutes: &bad})
	if fields := validationFields(t, err); fields["durationMinutes"] != "min" {
		t.Fatalf("expected duration violation, got %v", fields)
	}

	_, err = f.update.Execute(context.Background(), UpdateServiceInput{ID: 12345, Price: &price})
	if !httperr.IsBusiness(err, httperr.CodeServiceNotFound) {
		t.Fatalf("expected service_not_found, got %v", err)
	}
}

func TestDeleteService(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	s := testutil.SeedService(t, f.db, "Soft Makeup", 60, 1500)

	if err := f.delete.Execute(ctx, s.ID, "admin@makeupstudio.com"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := f.get.Execute(ctx, s.ID); !httperr.IsBusiness(err, httperr.CodeServiceNotFound) {
		t.Fatalf("expected deleted service to be gone, got %v", err)
	}

	if err := f.delete.Execute(ctx, s.ID, ""); !httperr.IsBusiness(err, httperr.CodeServiceNotFound) {
		t.Fatalf("expected service_not_found on second delete, got %v", err)
	}
}

func TestDeleteService_InUse(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	s := testutil.SeedService(t, f.db, "Bridal Makeup", 120, 3500)

	start := time.Date(2026, 6, 1, 10, 0, 0, 0, time.UTC)
	ap := models.Appointment{
		AppointmentDate: start,
		EndsAt:          start.Add(2 * time.Hour),
		DurationMinutes: 120,
		ClientName:      "Ana",
		PhoneNumber:     "070123456",
		Email:           "ana@example.com",
		Status:          "Cancelled",
	}
	if err := f.db.Create(&ap).Error; err != nil {
		t.Fatalf("create appointment: %v", err)
	}
	link := models.AppointmentService{
		AppointmentID:   ap.ID,
		ServiceID:       s.ID,
		ServiceName:     s.Name,
		DurationMinutes: s.DurationMinutes,
		Price:           s.Price,
	}
	if err := f.db.Create(&link).Error; err != nil {
		t.Fatalf("create link: %v", err)
	}

	err := f.delete.Execute(ctx, s.ID, "admin@makeupstudio.com")
	if !httperr.IsBusiness(err, httperr.CodeServiceInUse) {
		t.Fatalf("expected service_in_use, got %v", err)
	}
	if !httperr.IsKind(err, httperr.KindReferenced) {
		t.Fatalf("expected referenced kind")
	}
	if _, err := f.get.Execute(ctx, s.ID); err != nil {
		t.Fatalf("service must survive a refused delete: %v", err)
	}
}
