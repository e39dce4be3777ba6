package cart

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-BarberService/internal/domain"
)

var (
	// ErrInvalidDraft возвращается при некорректном черновике записи
	ErrInvalidDraft = fmt.Errorf("%w: cart: invalid draft", domain.ErrValidation)

	// ErrInvalidProduct возвращается при некорректном товаре
	ErrInvalidProduct = fmt.Errorf("%w: cart: invalid product line", domain.ErrValidation)

	// ErrBranchMismatch возвращается, когда в корзину добавляют позицию другого филиала
	ErrBranchMismatch = fmt.Errorf("%w: cart: all items must belong to one branch", domain.ErrValidation)

	// ErrDraftNotFound возвращается, когда удаляемого черновика нет в корзине
	ErrDraftNotFound = fmt.Errorf("%w: cart: draft not found", domain.ErrNotFound)
)

// ProductLine товар с количеством
type ProductLine struct {
	ProductID int64 `json:"productId"`
	Quantity  int   `json:"quantity"`
}

// DraftKey идентичность черновика: одна услуга у одного мастера на одно время
type DraftKey struct {
	ServiceID int64
	StaffID   int64
	Start     time.Time
}

// Draft черновик записи на услугу с приложенными товарами
type Draft struct {
	BranchID   int64         `json:"branchId"`
	StaffID    int64         `json:"staffId"`
	ServiceID  int64         `json:"serviceId"`
	PriceMinor int64         `json:"priceMinor"`
	Start      time.Time     `json:"start"`
	End        time.Time     `json:"end"`
	Products   []ProductLine `json:"products,omitempty"`
}

// Key возвращает ключ черновика
func (d Draft) Key() DraftKey {
	return DraftKey{ServiceID: d.ServiceID, StaffID: d.StaffID, Start: d.Start}
}

// Matches сравнивает ключи, время сравнивается как момент, а не по зоне
func (k DraftKey) Matches(other DraftKey) bool {
	return k.ServiceID == other.ServiceID && k.StaffID == other.StaffID && k.Start.Equal(other.Start)
}

func (d Draft) validate() error {
	if d.BranchID <= 0 || d.StaffID <= 0 || d.ServiceID <= 0 {
		return fmt.Errorf("%w: branch, staff and service ids must be positive", ErrInvalidDraft)
	}
	if d.PriceMinor < 0 {
		return fmt.Errorf("%w: price must be non-negative", ErrInvalidDraft)
	}
	if !d.Start.Before(d.End) {
		return fmt.Errorf("%w: start must be before end", ErrInvalidDraft)
	}
	for _, p := range d.Products {
		if err := p.validate(); err != nil {
			return err
		}
	}
	return nil
}

func (p ProductLine) validate() error {
	if p.ProductID <= 0 {
		return fmt.Errorf("%w: productId must be positive", ErrInvalidProduct)
	}
	if p.Quantity < 1 || p.Quantity > domain.MaxItemQuantity {
		return fmt.Errorf("%w: quantity must be in 1..%d", ErrInvalidProduct, domain.MaxItemQuantity)
	}
	return nil
}

// Session корзина пользователя: черновики записей и товары без привязки к услуге.
// Передается явно через цепочку вызовов, хранение подключается через Store.
type Session struct {
	ID            uuid.UUID     `json:"id"`
	OwnerID       int64         `json:"ownerId"`
	BranchID      int64         `json:"branchId,omitempty"`
	ClientID      *int64        `json:"clientId,omitempty"`
	Drafts        []Draft       `json:"drafts"`
	LooseProducts []ProductLine `json:"looseProducts"`
	UpdatedAt     time.Time     `json:"updatedAt"`
}

// NewSession создает пустую корзину владельца
func NewSession(ownerID int64) *Session {
	return &Session{
		ID:            uuid.New(),
		OwnerID:       ownerID,
		Drafts:        []Draft{},
		LooseProducts: []ProductLine{},
	}
}

// IsEmpty возвращает true, если в корзине нечего оформлять
func (s *Session) IsEmpty() bool {
	return len(s.Drafts) == 0 && len(s.LooseProducts) == 0
}

// AddDraft добавляет черновик. Повторное добавление той же тройки
// (услуга, мастер, время) суммирует количества товаров, а не дублирует запись.
func (s *Session) AddDraft(d Draft) error {
	if err := d.validate(); err != nil {
		return err
	}
	if err := s.bindBranch(d.BranchID); err != nil {
		return err
	}

	key := d.Key()
	for i := range s.Drafts {
		if s.Drafts[i].Key().Matches(key) {
			s.Drafts[i].Products = mergeLines(s.Drafts[i].Products, d.Products)
			return nil
		}
	}

	d.Products = mergeLines(nil, d.Products)
	s.Drafts = append(s.Drafts, d)
	return nil
}

// AddLooseProduct добавляет товар без привязки к услуге
func (s *Session) AddLooseProduct(branchID int64, line ProductLine) error {
	if branchID <= 0 {
		return fmt.Errorf("%w: branchId must be positive", ErrInvalidProduct)
	}
	if err := line.validate(); err != nil {
		return err
	}
	if err := s.bindBranch(branchID); err != nil {
		return err
	}
	s.LooseProducts = mergeLines(s.LooseProducts, []ProductLine{line})
	return nil
}

// RemoveDraft удаляет черновик по ключу
func (s *Session) RemoveDraft(key DraftKey) error {
	for i := range s.Drafts {
		if s.Drafts[i].Key().Matches(key) {
			s.Drafts = append(s.Drafts[:i], s.Drafts[i+1:]...)
			s.releaseBranch()
			return nil
		}
	}
	return ErrDraftNotFound
}

// Clear очищает корзину, сохраняя ее идентификатор и владельца
func (s *Session) Clear() {
	s.Drafts = []Draft{}
	s.LooseProducts = []ProductLine{}
	s.BranchID = 0
	s.ClientID = nil
}

func (s *Session) bindBranch(branchID int64) error {
	if s.BranchID == 0 {
		s.BranchID = branchID
		return nil
	}
	if s.BranchID != branchID {
		return fmt.Errorf("%w: cart is bound to branch %d", ErrBranchMismatch, s.BranchID)
	}
	return nil
}

func (s *Session) releaseBranch() {
	if s.IsEmpty() {
		s.BranchID = 0
	}
}

// mergeLines суммирует количества одинаковых товаров, сохраняя порядок первого появления
func mergeLines(base, add []ProductLine) []ProductLine {
	result := make([]ProductLine, 0, len(base)+len(add))
	index := make(map[int64]int, len(base)+len(add))

	for _, line := range append(append([]ProductLine{}, base...), add...) {
		if i, ok := index[line.ProductID]; ok {
			result[i].Quantity += line.Quantity
			continue
		}
		index[line.ProductID] = len(result)
		result = append(result, line)
	}
	return result
}
