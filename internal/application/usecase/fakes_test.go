package usecase_test

import (
	"context"
	"errors"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/hamagardy/mandoubi-api/internal/domain/entity"
)

// In-memory repository fakes. Maps are keyed by ID; methods copy on the way
// out so tests cannot mutate stored state by accident.

type fakeUserRepo struct {
	users map[string]*entity.User
	// failTargets makes SetTarget fail for the listed user IDs, to exercise
	// partial fan-out.
	failTargets map[string]bool
}

func newFakeUserRepo(users ...*entity.User) *fakeUserRepo {
	r := &fakeUserRepo{users: map[string]*entity.User{}, failTargets: map[string]bool{}}
	for _, u := range users {
		r.users[u.ID] = u
	}
	return r
}

func (r *fakeUserRepo) Create(_ context.Context, u *entity.User) error {
	r.users[u.ID] = u
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) List(_ context.Context) ([]entity.User, error) {
	ids := make([]string, 0, len(r.users))
	for id := range r.users {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	out := make([]entity.User, 0, len(ids))
	for _, id := range ids {
		out = append(out, *r.users[id])
	}
	return out, nil
}

func (r *fakeUserRepo) UpdateProfile(_ context.Context, u *entity.User) error {
	if _, ok := r.users[u.ID]; !ok {
		return errors.New("no such user")
	}
	cp := *u
	r.users[u.ID] = &cp
	return nil
}

func (r *fakeUserRepo) SetTarget(_ context.Context, userID string, monthIndex int, value decimal.Decimal) error {
	if r.failTargets[userID] {
		return errors.New("simulated write failure")
	}
	u, ok := r.users[userID]
	if !ok {
		return errors.New("no such user")
	}
	if u.MonthlyTargets == nil {
		u.MonthlyTargets = map[int]decimal.Decimal{}
	}
	u.MonthlyTargets[monthIndex] = value
	return nil
}

func (r *fakeUserRepo) Delete(_ context.Context, id string) error {
	delete(r.users, id)
	return nil
}

type fakeSaleRepo struct {
	sales map[string]*entity.Sale
	// listAllErr makes ListAll fail, to exercise degraded cross-user
	// aggregates.
	listAllErr error
}

func newFakeSaleRepo(sales ...*entity.Sale) *fakeSaleRepo {
	r := &fakeSaleRepo{sales: map[string]*entity.Sale{}}
	for _, s := range sales {
		r.sales[s.ID] = s
	}
	return r
}

func (r *fakeSaleRepo) Create(_ context.Context, s *entity.Sale) error {
	cp := *s
	r.sales[s.ID] = &cp
	return nil
}

func (r *fakeSaleRepo) GetByID(_ context.Context, id string) (*entity.Sale, error) {
	s, ok := r.sales[id]
	if !ok {
		return nil, nil
	}
	cp := *s
	return &cp, nil
}

func (r *fakeSaleRepo) sorted() []entity.Sale {
	ids := make([]string, 0, len(r.sales))
	for id := range r.sales {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	out := make([]entity.Sale, 0, len(ids))
	for _, id := range ids {
		out = append(out, *r.sales[id])
	}
	return out
}

func (r *fakeSaleRepo) ListByUser(_ context.Context, userID string) ([]entity.Sale, error) {
	var out []entity.Sale
	for _, s := range r.sorted() {
		if s.UserID == userID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *fakeSaleRepo) ListAll(_ context.Context) ([]entity.Sale, error) {
	if r.listAllErr != nil {
		return nil, r.listAllErr
	}
	return r.sorted(), nil
}

func (r *fakeSaleRepo) ReplaceItems(_ context.Context, saleID string, items []entity.SaleItem, total decimal.Decimal) error {
	s, ok := r.sales[saleID]
	if !ok {
		return errors.New("no such sale")
	}
	s.Items = append([]entity.SaleItem(nil), items...)
	s.TotalPrice = total
	return nil
}

func (r *fakeSaleRepo) UpdateStatus(_ context.Context, saleID, status string) error {
	s, ok := r.sales[saleID]
	if !ok {
		return errors.New("no such sale")
	}
	s.Status = status
	return nil
}

func (r *fakeSaleRepo) Delete(_ context.Context, saleID string) error {
	delete(r.sales, saleID)
	return nil
}

func (r *fakeSaleRepo) DeleteAll(_ context.Context) error {
	r.sales = map[string]*entity.Sale{}
	return nil
}

type fakeItemRepo struct {
	items map[string]*entity.Item
}

func newFakeItemRepo(items ...*entity.Item) *fakeItemRepo {
	r := &fakeItemRepo{items: map[string]*entity.Item{}}
	for _, it := range items {
		r.items[it.ID] = it
	}
	return r
}

func (r *fakeItemRepo) Create(_ context.Context, it *entity.Item) error {
	r.items[it.ID] = it
	return nil
}

func (r *fakeItemRepo) GetByID(_ context.Context, id string) (*entity.Item, error) {
	it, ok := r.items[id]
	if !ok {
		return nil, nil
	}
	cp := *it
	return &cp, nil
}

func (r *fakeItemRepo) List(_ context.Context) ([]entity.Item, error) {
	ids := make([]string, 0, len(r.items))
	for id := range r.items {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	out := make([]entity.Item, 0, len(ids))
	for _, id := range ids {
		out = append(out, *r.items[id])
	}
	return out, nil
}

func (r *fakeItemRepo) Update(_ context.Context, it *entity.Item) error {
	if _, ok := r.items[it.ID]; !ok {
		return errors.New("no such item")
	}
	cp := *it
	r.items[it.ID] = &cp
	return nil
}

func (r *fakeItemRepo) Delete(_ context.Context, id string) error {
	delete(r.items, id)
	return nil
}
