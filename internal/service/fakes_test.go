package service

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/shopspring/decimal"

	"gift-service/internal/domain"
)

// memStore 内存版仓储，锁粒度与数据库行锁等效：ApplyOffer 全程持锁
type memStore struct {
	mu     sync.Mutex
	users  map[uint]*domain.User
	wishes map[uint]*domain.Wish
	offers map[uint]*domain.Offer
	lists  map[uint]*domain.Wishlist
	seq    uint
}

func newMemStore() *memStore {
	return &memStore{
		users:  map[uint]*domain.User{},
		wishes: map[uint]*domain.Wish{},
		offers: map[uint]*domain.Offer{},
		lists:  map[uint]*domain.Wishlist{},
	}
}

// 调用方需已持有 mu
func (s *memStore) nextID() uint { s.seq++; return s.seq }

func (s *memStore) seedUser(username, email string) *domain.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	u := &domain.User{Username: username, Email: email, PasswordHash: "x"}
	u.ID = s.nextID()
	s.users[u.ID] = u
	return u
}

func (s *memStore) seedWish(ownerID uint, name string, price string) *domain.Wish {
	s.mu.Lock()
	defer s.mu.Unlock()
	w := &domain.Wish{
		Name:    name,
		Price:   decimal.RequireFromString(price),
		Raised:  decimal.Zero,
		OwnerID: ownerID,
	}
	w.ID = s.nextID()
	s.wishes[w.ID] = w
	return w
}

// ---------- UserRepository ----------

type memUserRepo struct{ *memStore }

func (r *memUserRepo) Create(_ context.Context, u *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u.ID = r.nextID()
	cp := *u
	r.users[u.ID] = &cp
	return nil
}

func (r *memUserRepo) FindByID(_ context.Context, id uint) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.users[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, nil
}

func (r *memUserRepo) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Username == username {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memUserRepo) FindByIdentifier(_ context.Context, identifier string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Username == identifier || u.Email == identifier {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memUserRepo) SearchLike(_ context.Context, query string) ([]domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	q := strings.ToLower(query)
	var out []domain.User
	for _, u := range r.users {
		if strings.Contains(strings.ToLower(u.Username), q) ||
			strings.Contains(strings.ToLower(u.Email), q) {
			out = append(out, *u)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *memUserRepo) Update(_ context.Context, u *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *u
	r.users[u.ID] = &cp
	return nil
}

// ---------- WishRepository ----------

type memWishRepo struct{ *memStore }

func (r *memWishRepo) Create(_ context.Context, w *domain.Wish) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	w.ID = r.nextID()
	cp := *w
	r.wishes[w.ID] = &cp
	return nil
}

func (r *memWishRepo) FindByID(_ context.Context, id uint) (*domain.Wish, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if w, ok := r.wishes[id]; ok {
		cp := *w
		return &cp, nil
	}
	return nil, nil
}

func (r *memWishRepo) FindByIDFull(ctx context.Context, id uint) (*domain.Wish, error) {
	return r.FindByID(ctx, id)
}

func (r *memWishRepo) FindByIDs(_ context.Context, ids []uint) ([]domain.Wish, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.Wish
	for _, id := range ids {
		if w, ok := r.wishes[id]; ok {
			out = append(out, *w)
		}
	}
	return out, nil
}

func (r *memWishRepo) ListByOwner(_ context.Context, ownerID uint) ([]domain.Wish, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.Wish
	for _, w := range r.wishes {
		if w.OwnerID == ownerID {
			out = append(out, *w)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *memWishRepo) Recent(_ context.Context, limit int) ([]domain.Wish, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.Wish
	for _, w := range r.wishes {
		out = append(out, *w)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *memWishRepo) Popular(_ context.Context, limit int) ([]domain.Wish, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.Wish
	for _, w := range r.wishes {
		out = append(out, *w)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Copied > out[j].Copied })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *memWishRepo) SearchByName(_ context.Context, q string) ([]domain.Wish, error) {
	return r.searchField(q, func(w *domain.Wish) string { return w.Name })
}

func (r *memWishRepo) SearchByDescription(_ context.Context, q string) ([]domain.Wish, error) {
	return r.searchField(q, func(w *domain.Wish) string { return w.Description })
}

func (r *memWishRepo) searchField(q string, field func(*domain.Wish) string) ([]domain.Wish, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.Wish
	for _, w := range r.wishes {
		if strings.Contains(strings.ToLower(field(w)), strings.ToLower(q)) {
			out = append(out, *w)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *memWishRepo) Update(_ context.Context, w *domain.Wish) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *w
	r.wishes[w.ID] = &cp
	return nil
}

func (r *memWishRepo) Delete(_ context.Context, id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.wishes, id)
	for oid, o := range r.offers {
		if o.ItemID == id {
			delete(r.offers, oid)
		}
	}
	for _, wl := range r.lists {
		kept := wl.Items[:0]
		for _, it := range wl.Items {
			if it.ID != id {
				kept = append(kept, it)
			}
		}
		wl.Items = kept
	}
	return nil
}

func (r *memWishRepo) CopyTo(_ context.Context, id, newOwnerID uint) (*domain.Wish, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	src, ok := r.wishes[id]
	if !ok {
		return nil, nil
	}
	src.Copied++
	clone := &domain.Wish{
		Name:        src.Name,
		Link:        src.Link,
		Image:       src.Image,
		Price:       src.Price,
		Raised:      decimal.Zero,
		Description: src.Description,
		OwnerID:     newOwnerID,
	}
	clone.ID = r.nextID()
	r.wishes[clone.ID] = clone
	cp := *clone
	return &cp, nil
}

// ---------- OfferRepository ----------

type memOfferRepo struct{ *memStore }

func (r *memOfferRepo) ApplyOffer(_ context.Context, o *domain.Offer) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	w, ok := r.wishes[o.ItemID]
	if !ok {
		return domain.ErrWishNotFound
	}
	remaining := w.Price.Sub(w.Raised)
	if remaining.IsZero() {
		return domain.ErrAlreadyFunded
	}
	if o.Amount.GreaterThan(remaining) {
		return domain.ErrOverprice
	}
	w.Raised = w.Raised.Add(o.Amount)
	o.ID = r.nextID()
	cp := *o
	r.offers[o.ID] = &cp
	return nil
}

func (r *memOfferRepo) FindByID(_ context.Context, id uint) (*domain.Offer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if o, ok := r.offers[id]; ok {
		cp := *o
		return &cp, nil
	}
	return nil, nil
}

func (r *memOfferRepo) List(_ context.Context) ([]domain.Offer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.Offer
	for _, o := range r.offers {
		out = append(out, *o)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// ---------- WishlistRepository ----------

type memWishlistRepo struct{ *memStore }

func (r *memWishlistRepo) Create(_ context.Context, wl *domain.Wishlist) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	wl.ID = r.nextID()
	cp := *wl
	cp.Items = append([]domain.Wish(nil), wl.Items...)
	r.lists[wl.ID] = &cp
	return nil
}

func (r *memWishlistRepo) FindByID(_ context.Context, id uint) (*domain.Wishlist, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if wl, ok := r.lists[id]; ok {
		cp := *wl
		cp.Items = append([]domain.Wish(nil), wl.Items...)
		return &cp, nil
	}
	return nil, nil
}

func (r *memWishlistRepo) ListByOwner(_ context.Context, ownerID uint) ([]domain.Wishlist, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.Wishlist
	for _, wl := range r.lists {
		if wl.OwnerID == ownerID {
			out = append(out, *wl)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *memWishlistRepo) Search(_ context.Context, q string) ([]domain.Wishlist, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.Wishlist
	for _, wl := range r.lists {
		if strings.Contains(strings.ToLower(wl.Name), strings.ToLower(q)) {
			out = append(out, *wl)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *memWishlistRepo) Update(_ context.Context, wl *domain.Wishlist, items []domain.Wish) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cur, ok := r.lists[wl.ID]
	if !ok {
		return nil
	}
	cp := *wl
	if items == nil {
		cp.Items = cur.Items
	} else {
		cp.Items = append([]domain.Wish(nil), items...)
	}
	r.lists[wl.ID] = &cp
	return nil
}

func (r *memWishlistRepo) Delete(_ context.Context, id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.lists, id)
	return nil
}
