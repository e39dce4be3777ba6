package cart

import (
	"context"
	"fmt"

	"github.com/m04kA/SMC-BarberService/internal/cart"
	"github.com/m04kA/SMC-BarberService/internal/domain"
	"github.com/m04kA/SMC-BarberService/internal/service/cart/models"
)

// Service сервис корзины: черновики записей и товары до оформления
type Service struct {
	store       CartStore
	catalogRepo CatalogRepository
	logger      Logger
}

// NewService создает новый экземпляр сервиса корзины
func NewService(store CartStore, catalogRepo CatalogRepository, logger Logger) *Service {
	return &Service{
		store:       store,
		catalogRepo: catalogRepo,
		logger:      logger,
	}
}

// Get получает корзину пользователя
func (s *Service) Get(ctx context.Context, ownerID int64) (*models.CartResponse, error) {
	session, err := s.load(ctx, "Get", ownerID)
	if err != nil {
		return nil, err
	}
	return models.FromSession(session), nil
}

// AddDraft добавляет черновик записи. Цена и время окончания берутся из каталога,
// время мастера не резервируется до оформления.
func (s *Service) AddDraft(ctx context.Context, ownerID int64, req *models.AddDraftRequest) (*models.CartResponse, error) {
	s.logger.Info("AddDraft: user=%d, branch=%d, staff=%d, service=%d", ownerID, req.BranchID, req.StaffID, req.ServiceID)

	services, err := s.catalogRepo.GetServicesByIDs(ctx, []int64{req.ServiceID})
	if err != nil {
		s.logger.Error("AddDraft: failed to load service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: AddDraft - load service: %v", ErrInternal, err)
	}
	service, ok := services[req.ServiceID]
	if !ok || service.BranchID != req.BranchID || !service.IsBookable() {
		s.logger.Warn("AddDraft: service id=%d is not available in branch=%d", req.ServiceID, req.BranchID)
		return nil, ErrServiceNotFound
	}

	if err := s.checkProducts(ctx, "AddDraft", req.BranchID, req.Products); err != nil {
		return nil, err
	}

	return s.update(ctx, "AddDraft", ownerID, func(session *cart.Session) error {
		return session.AddDraft(cart.Draft{
			BranchID:   req.BranchID,
			StaffID:    req.StaffID,
			ServiceID:  req.ServiceID,
			PriceMinor: service.PriceMinor,
			Start:      req.Start,
			End:        domain.AddMinutes(req.Start, service.DurationMinutes),
			Products:   req.Products,
		})
	})
}

// AddProduct добавляет товар без привязки к услуге
func (s *Service) AddProduct(ctx context.Context, ownerID int64, req *models.AddProductRequest) (*models.CartResponse, error) {
	s.logger.Info("AddProduct: user=%d, branch=%d, product=%d, qty=%d", ownerID, req.BranchID, req.ProductID, req.Quantity)

	line := cart.ProductLine{ProductID: req.ProductID, Quantity: req.Quantity}
	if err := s.checkProducts(ctx, "AddProduct", req.BranchID, []cart.ProductLine{line}); err != nil {
		return nil, err
	}

	return s.update(ctx, "AddProduct", ownerID, func(session *cart.Session) error {
		return session.AddLooseProduct(req.BranchID, line)
	})
}

// RemoveDraft удаляет черновик по (услуга, мастер, время)
func (s *Service) RemoveDraft(ctx context.Context, ownerID int64, req *models.RemoveDraftRequest) (*models.CartResponse, error) {
	s.logger.Info("RemoveDraft: user=%d, service=%d, staff=%d", ownerID, req.ServiceID, req.StaffID)

	return s.update(ctx, "RemoveDraft", ownerID, func(session *cart.Session) error {
		return session.RemoveDraft(cart.DraftKey{ServiceID: req.ServiceID, StaffID: req.StaffID, Start: req.Start})
	})
}

// Clear очищает корзину
func (s *Service) Clear(ctx context.Context, ownerID int64) error {
	s.logger.Info("Clear: user=%d", ownerID)

	if err := s.store.Delete(ctx, ownerID); err != nil {
		s.logger.Error("Clear: failed to delete cart of user=%d: %v", ownerID, err)
		return fmt.Errorf("%w: Clear: %v", ErrInternal, err)
	}
	return nil
}

func (s *Service) load(ctx context.Context, op string, ownerID int64) (*cart.Session, error) {
	session, err := s.store.Load(ctx, ownerID)
	if err != nil {
		s.logger.Error("%s: failed to load cart of user=%d: %v", op, ownerID, err)
		return nil, fmt.Errorf("%w: %s - load: %v", ErrInternal, op, err)
	}
	return session, nil
}

// update загружает корзину, применяет изменение и сохраняет ее.
// Ошибки изменения (валидация, другой филиал) возвращаются как есть.
func (s *Service) update(ctx context.Context, op string, ownerID int64, fn func(session *cart.Session) error) (*models.CartResponse, error) {
	session, err := s.load(ctx, op, ownerID)
	if err != nil {
		return nil, err
	}

	if err := fn(session); err != nil {
		s.logger.Warn("%s: rejected for user=%d: %v", op, ownerID, err)
		return nil, err
	}

	if err := s.store.Save(ctx, session); err != nil {
		s.logger.Error("%s: failed to save cart of user=%d: %v", op, ownerID, err)
		return nil, fmt.Errorf("%w: %s - save: %v", ErrInternal, op, err)
	}

	return models.FromSession(session), nil
}

func (s *Service) checkProducts(ctx context.Context, op string, branchID int64, lines []cart.ProductLine) error {
	if len(lines) == 0 {
		return nil
	}

	ids := make([]int64, 0, len(lines))
	for _, l := range lines {
		ids = append(ids, l.ProductID)
	}

	products, err := s.catalogRepo.GetProductsByIDs(ctx, ids)
	if err != nil {
		s.logger.Error("%s: failed to load products: %v", op, err)
		return fmt.Errorf("%w: %s - load products: %v", ErrInternal, op, err)
	}

	for _, l := range lines {
		p, ok := products[l.ProductID]
		if !ok || p.BranchID != branchID || !p.IsSellable() {
			s.logger.Warn("%s: product id=%d is not available in branch=%d", op, l.ProductID, branchID)
			return fmt.Errorf("%w: id=%d", ErrProductNotFound, l.ProductID)
		}
	}
	return nil
}
