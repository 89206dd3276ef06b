package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/websiters/gastroreview/internal/core/domain"
	"github.com/websiters/gastroreview/internal/core/ports"
)

func ownedRestaurantRepo() *stubRestaurantRepo {
	return &stubRestaurantRepo{restaurants: map[string]*domain.Restaurant{
		"rest1": {ID: "rest1", OwnerEmail: "owner@example.com", Name: "Trattoria", City: "Rome"},
	}}
}

func TestRestaurantService_CreateValidatesInput(t *testing.T) {
	svc := NewRestaurantService(ownedRestaurantRepo(), zerolog.Nop())

	_, err := svc.Create(context.Background(), ports.CreateRestaurantInput{
		OwnerEmail: "owner@example.com",
		Name:       "  ",
		City:       "Rome",
	})
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestRestaurantService_CreateNormalizesOwnerEmail(t *testing.T) {
	svc := NewRestaurantService(ownedRestaurantRepo(), zerolog.Nop())

	created, err := svc.Create(context.Background(), ports.CreateRestaurantInput{
		OwnerEmail: " Owner@Example.COM ",
		Name:       "Osteria",
		City:       "Milan",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.OwnerEmail != "owner@example.com" {
		t.Fatalf("expected normalized owner email, got %q", created.OwnerEmail)
	}
}

func TestRestaurantService_UpdateOwnership(t *testing.T) {
	svc := NewRestaurantService(ownedRestaurantRepo(), zerolog.Nop())
	ctx := context.Background()
	newName := "Trattoria Nuova"

	stranger := domain.Principal{Email: "other@example.com", Roles: []domain.Role{domain.RoleOwner}}
	if _, err := svc.Update(ctx, "rest1", stranger, ports.UpdateRestaurantInput{Name: &newName}); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden for a non-owner, got %v", err)
	}

	owner := domain.Principal{Email: "owner@example.com", Roles: []domain.Role{domain.RoleOwner}}
	updated, err := svc.Update(ctx, "rest1", owner, ports.UpdateRestaurantInput{Name: &newName})
	if err != nil {
		t.Fatalf("owner update: %v", err)
	}
	if updated.Name != newName {
		t.Fatalf("name not applied, got %q", updated.Name)
	}
	if updated.City != "Rome" {
		t.Fatalf("untouched field changed, city=%q", updated.City)
	}

	admin := domain.Principal{Email: "root@example.com", Roles: []domain.Role{domain.RoleAdmin}}
	if _, err := svc.Update(ctx, "rest1", admin, ports.UpdateRestaurantInput{Name: &newName}); err != nil {
		t.Fatalf("admin update: %v", err)
	}
}

func TestRestaurantService_UpdateMissingRestaurant(t *testing.T) {
	svc := NewRestaurantService(ownedRestaurantRepo(), zerolog.Nop())
	owner := domain.Principal{Email: "owner@example.com", Roles: []domain.Role{domain.RoleOwner}}

	if _, err := svc.Update(context.Background(), "nope", owner, ports.UpdateRestaurantInput{}); !errors.Is(err, domain.ErrRestaurantNotFound) {
		t.Fatalf("expected ErrRestaurantNotFound, got %v", err)
	}
}

type stubDishRepo struct {
	dishes map[string]*domain.Dish
}

func (r *stubDishRepo) Create(_ context.Context, d *domain.Dish) (*domain.Dish, error) {
	stored := *d
	stored.ID = "d1"
	if r.dishes == nil {
		r.dishes = map[string]*domain.Dish{}
	}
	r.dishes[stored.ID] = &stored
	return &stored, nil
}

func (r *stubDishRepo) FindByID(_ context.Context, id string) (*domain.Dish, error) {
	d, ok := r.dishes[id]
	if !ok {
		return nil, domain.ErrDishNotFound
	}
	return d, nil
}

func (r *stubDishRepo) ListByRestaurant(_ context.Context, _ string, _ ports.Page) ([]domain.Dish, int64, error) {
	return nil, 0, nil
}

func (r *stubDishRepo) Update(_ context.Context, d *domain.Dish) error {
	if _, ok := r.dishes[d.ID]; !ok {
		return domain.ErrDishNotFound
	}
	stored := *d
	r.dishes[stored.ID] = &stored
	return nil
}

func (r *stubDishRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.dishes[id]; !ok {
		return domain.ErrDishNotFound
	}
	delete(r.dishes, id)
	return nil
}

func TestDishService_CreateRequiresOwnership(t *testing.T) {
	svc := NewDishService(&stubDishRepo{}, ownedRestaurantRepo(), zerolog.Nop())
	in := ports.CreateDishInput{RestaurantID: "rest1", Name: "Carbonara", PriceCents: 1250, Available: true}

	stranger := domain.Principal{Email: "other@example.com", Roles: []domain.Role{domain.RoleOwner}}
	if _, err := svc.Create(context.Background(), stranger, in); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}

	owner := domain.Principal{Email: "owner@example.com", Roles: []domain.Role{domain.RoleOwner}}
	dish, err := svc.Create(context.Background(), owner, in)
	if err != nil {
		t.Fatalf("owner create: %v", err)
	}
	if dish.RestaurantID != "rest1" {
		t.Fatalf("unexpected restaurant id %q", dish.RestaurantID)
	}
}

func TestDishService_CreateValidatesPrice(t *testing.T) {
	svc := NewDishService(&stubDishRepo{}, ownedRestaurantRepo(), zerolog.Nop())
	owner := domain.Principal{Email: "owner@example.com", Roles: []domain.Role{domain.RoleOwner}}

	_, err := svc.Create(context.Background(), owner, ports.CreateDishInput{
		RestaurantID: "rest1",
		Name:         "Carbonara",
		PriceCents:   0,
	})
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestDishService_UpdateChecksParentOwnership(t *testing.T) {
	dishes := &stubDishRepo{dishes: map[string]*domain.Dish{
		"d1": {ID: "d1", RestaurantID: "rest1", Name: "Carbonara", PriceCents: 1250},
	}}
	svc := NewDishService(dishes, ownedRestaurantRepo(), zerolog.Nop())
	ctx := context.Background()
	newPrice := 1400

	stranger := domain.Principal{Email: "other@example.com", Roles: []domain.Role{domain.RoleOwner}}
	if _, err := svc.Update(ctx, stranger, "d1", ports.UpdateDishInput{PriceCents: &newPrice}); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}

	owner := domain.Principal{Email: "owner@example.com", Roles: []domain.Role{domain.RoleOwner}}
	updated, err := svc.Update(ctx, owner, "d1", ports.UpdateDishInput{PriceCents: &newPrice})
	if err != nil {
		t.Fatalf("owner update: %v", err)
	}
	if updated.PriceCents != newPrice {
		t.Fatalf("price not applied, got %d", updated.PriceCents)
	}
	if updated.Name != "Carbonara" {
		t.Fatalf("untouched field changed, name=%q", updated.Name)
	}
}

func TestDishService_UpdateValidatesPrice(t *testing.T) {
	dishes := &stubDishRepo{dishes: map[string]*domain.Dish{
		"d1": {ID: "d1", RestaurantID: "rest1", Name: "Carbonara", PriceCents: 1250},
	}}
	svc := NewDishService(dishes, ownedRestaurantRepo(), zerolog.Nop())
	owner := domain.Principal{Email: "owner@example.com", Roles: []domain.Role{domain.RoleOwner}}

	zero := 0
	if _, err := svc.Update(context.Background(), owner, "d1", ports.UpdateDishInput{PriceCents: &zero}); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
	if dishes.dishes["d1"].PriceCents != 1250 {
		t.Fatalf("price mutated on rejected update: %d", dishes.dishes["d1"].PriceCents)
	}
}

func TestDishService_DeleteChecksParentOwnership(t *testing.T) {
	dishes := &stubDishRepo{dishes: map[string]*domain.Dish{
		"d1": {ID: "d1", RestaurantID: "rest1", Name: "Carbonara"},
	}}
	svc := NewDishService(dishes, ownedRestaurantRepo(), zerolog.Nop())
	ctx := context.Background()

	stranger := domain.Principal{Email: "other@example.com", Roles: []domain.Role{domain.RoleOwner}}
	if err := svc.Delete(ctx, stranger, "d1"); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}

	admin := domain.Principal{Email: "root@example.com", Roles: []domain.Role{domain.RoleAdmin}}
	if err := svc.Delete(ctx, admin, "d1"); err != nil {
		t.Fatalf("admin delete: %v", err)
	}
	if err := svc.Delete(ctx, admin, "d1"); !errors.Is(err, domain.ErrDishNotFound) {
		t.Fatalf("expected ErrDishNotFound after delete, got %v", err)
	}
}
