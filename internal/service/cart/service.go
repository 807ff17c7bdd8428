package cart

import (
	"context"
	"errors"
	"fmt"
	"hash/fnv"
	"strings"
	"sync"

	"dermayooth-storefront/internal/cart"
	"dermayooth-storefront/internal/domain"
	"dermayooth-storefront/internal/logging"
	cartrepo "dermayooth-storefront/internal/repository/cart"
	"go.uber.org/zap"
)

var (
	ErrNoActions         = errors.New("actions required")
	ErrUnsupportedAction = errors.New("unsupported action")
)

// productSource resolves products for add-to-cart. Both the local product
// service and the remote catalog client satisfy it.
type productSource interface {
	Get(ctx context.Context, id string) (*domain.Product, error)
}

// Service opens per-session cart stores over a shared durable storage.
// Requests for the same session are serialised within this process; across
// processes the last write wins.
type Service struct {
	storage cartrepo.Storage
	baseKey string
	catalog productSource
	logger  *zap.Logger

	locks [64]sync.Mutex
}

func New(storage cartrepo.Storage, baseKey string, catalog productSource, logger *zap.Logger) *Service {
	if baseKey == "" {
		baseKey = cart.DefaultStorageKey
	}
	return &Service{
		storage: storage,
		baseKey: baseKey,
		catalog: catalog,
		logger:  logging.OrNop(logger),
	}
}

// WithCart loads the session's cart, runs fn against it and returns the
// resulting lines. Mutations made by fn are persisted by the store.
func (s *Service) WithCart(ctx context.Context, sessionID string, fn func(*cart.Store) error) ([]domain.CartLine, error) {
	mu := s.lockFor(sessionID)
	mu.Lock()
	defer mu.Unlock()

	store := cart.NewStore(s.storage, cartrepo.SessionKey(s.baseKey, sessionID), s.logger)
	store.Load(ctx)
	if fn != nil {
		if err := fn(store); err != nil {
			return store.Items(), err
		}
	}
	return store.Items(), nil
}

// Items returns the session's cart.
func (s *Service) Items(ctx context.Context, sessionID string) ([]domain.CartLine, error) {
	return s.WithCart(ctx, sessionID, nil)
}

// AddProduct adds a catalog product, copying its name, price and first image
// into the line.
func (s *Service) AddProduct(ctx context.Context, sessionID, productID string, quantity int) ([]domain.CartLine, error) {
	p, err := s.lookup(ctx, productID)
	if err != nil {
		return nil, err
	}
	return s.WithCart(ctx, sessionID, func(store *cart.Store) error {
		return store.AddToCart(ctx, itemFromProduct(*p, quantity))
	})
}

// Action is one step of a batched cart update.
type Action struct {
	Action    string `json:"action"`
	ProductID any    `json:"productId,omitempty"`
	Name      string `json:"name,omitempty"`
	Price     string `json:"price,omitempty"`
	Image     string `json:"image,omitempty"`
	Quantity  int    `json:"quantity,omitempty"`
}

type UpdateInput struct {
	Actions []Action `json:"actions"`
}

// Update applies actions in order. Unknown products in quantity or removal
// actions are ignored; an unsupported action stops the batch, keeping the
// actions already applied.
func (s *Service) Update(ctx context.Context, sessionID string, in UpdateInput) ([]domain.CartLine, error) {
	if len(in.Actions) == 0 {
		return nil, ErrNoActions
	}
	return s.WithCart(ctx, sessionID, func(store *cart.Store) error {
		for i, action := range in.Actions {
			if err := s.apply(ctx, store, action); err != nil {
				return fmt.Errorf("action %d (%s): %w", i, action.Action, err)
			}
		}
		return nil
	})
}

func (s *Service) apply(ctx context.Context, store *cart.Store, a Action) error {
	id := cart.NormalizeID(a.ProductID)
	switch strings.ToLower(strings.TrimSpace(a.Action)) {
	case "addtocart", "addlineitem":
		item := cart.Item{ProductID: id, Name: a.Name, UnitPrice: a.Price, Image: a.Image, Quantity: a.Quantity}
		if item.Name == "" && item.UnitPrice == "" && id != "" && s.catalog != nil {
			p, err := s.lookup(ctx, id)
			if err != nil {
				return err
			}
			item = itemFromProduct(*p, a.Quantity)
		}
		if err := store.AddToCart(ctx, item); err != nil {
			return fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
		}
	case "updatequantity", "changelineitemquantity":
		store.UpdateQuantity(ctx, id, a.Quantity)
	case "increment":
		store.Increment(ctx, id)
	case "decrement":
		store.Decrement(ctx, id)
	case "removefromcart", "removelineitem":
		store.RemoveFromCart(ctx, id)
	case "clearcart":
		store.ClearCart(ctx)
	default:
		return ErrUnsupportedAction
	}
	return nil
}

func (s *Service) lookup(ctx context.Context, productID string) (*domain.Product, error) {
	id := cart.NormalizeID(productID)
	if id == "" {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, cart.ErrMissingProductID)
	}
	if s.catalog == nil {
		return nil, errors.New("catalog unavailable")
	}
	return s.catalog.Get(ctx, id)
}

func (s *Service) lockFor(sessionID string) *sync.Mutex {
	h := fnv.New32a()
	_, _ = h.Write([]byte(sessionID))
	return &s.locks[h.Sum32()%uint32(len(s.locks))]
}

func itemFromProduct(p domain.Product, quantity int) cart.Item {
	return cart.Item{
		ProductID: p.ID,
		Name:      p.Name,
		UnitPrice: p.Price,
		Image:     p.PrimaryImage(),
		Quantity:  quantity,
	}
}
