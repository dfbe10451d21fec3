// Package state owns the synced views shared by every use case. Each view
// mirrors one stored document and is mounted for the lifetime of the process.
package state

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"go.uber.org/fx"

	"veluna/config"
	"veluna/internal/domain/constants"
	"veluna/internal/domain/entity"
	"veluna/internal/domain/repository"
	"veluna/internal/domain/seed"
	"veluna/internal/errors"
	"veluna/internal/infra/broadcast"
	"veluna/internal/usecase/collection"
	"veluna/internal/usecase/view"
)

type mountable interface {
	Key() string
	Mount(ctx context.Context) error
	Unmount()
	Reload(ctx context.Context) error
}

// State holds one synced view per stored collection.
type State struct {
	Products   *view.SyncedView[[]entity.Product]
	Categories *view.SyncedView[[]entity.Category]
	Reviews    *view.SyncedView[[]entity.Review]

	Cart     *view.SyncedView[[]entity.CartItem]
	Wishlist *view.SyncedView[[]entity.Product]
	Compare  *view.SyncedView[[]entity.Product]
	Viewed   *view.SyncedView[[]entity.Product]

	Orders        *view.SyncedView[[]entity.Order]
	Notifications *view.SyncedView[[]entity.Notification]
	Users         *view.SyncedView[[]entity.User]

	Banners        *view.SyncedView[[]entity.Banner]
	PromoCodes     *view.SyncedView[[]entity.PromoCode]
	EmailCampaigns *view.SyncedView[[]entity.EmailCampaign]
	Settings       *view.SyncedView[entity.SiteSettings]

	Admins         *view.SyncedView[[]entity.Admin]
	Couriers       *view.SyncedView[[]entity.Courier]
	ShippingZones  *view.SyncedView[[]entity.ShippingZone]
	PaymentMethods *view.SyncedView[[]entity.PaymentMethod]
	ActivityLog    *view.SyncedView[[]entity.LogEntry]

	AllChats *view.SyncedView[map[string]entity.ChatThread]

	store        repository.KeyedStore
	keys         repository.Keys
	subscriber   view.Subscriber
	chatInterval time.Duration
	chatIdle     time.Duration
	now          func() time.Time
	logger       *slog.Logger

	views []mountable

	chatMu    sync.Mutex
	chats     map[string]*chatView
	stopSweep chan struct{}
	sweepDone chan struct{}
}

// chatView is a mounted conversation and the last time a caller used it.
type chatView struct {
	*view.SyncedView[[]entity.ChatMessage]
	lastUsed time.Time
}

const (
	defaultChatIdle = 10 * time.Minute
	minChatSweep    = 10 * time.Millisecond
)

// Params holds dependencies for State, injected by Fx.
type Params struct {
	fx.In

	Lc          fx.Lifecycle
	Config      *config.Config
	Logger      *slog.Logger
	Store       repository.KeyedStore
	Keys        repository.Keys
	Broadcaster *broadcast.Broadcaster
}

// NewState builds the views and mounts them when the application starts.
func NewState(params Params) *State {
	relay := params.Config.ChatNotify != nil &&
		params.Config.ChatNotify.Provider != constants.ChatNotifyProviderNone &&
		params.Config.ChatNotify.Provider != constants.ChatNotifyProviderNoop
	s := New(params.Store, params.Keys, params.Broadcaster, params.Config.Sync, relay, params.Logger)

	params.Lc.Append(fx.Hook{
		OnStart: s.Mount,
		OnStop: func(context.Context) error {
			s.Unmount()

			return nil
		},
	})

	return s
}

// New builds unmounted views. Chat views poll at the relay interval when relay is set.
func New(store repository.KeyedStore, keys repository.Keys, subscriber view.Subscriber, intervals *config.SyncConfig, relay bool, logger *slog.Logger) *State {
	if intervals == nil {
		intervals = &config.SyncConfig{}
	}

	s := &State{
		store:        store,
		keys:         keys,
		subscriber:   subscriber,
		chatInterval: intervals.ChatInterval,
		chatIdle:     intervals.ChatIdleTimeout,
		now:          time.Now,
		logger:       logger,
		chats:        make(map[string]*chatView),
	}
	if s.chatIdle <= 0 {
		s.chatIdle = defaultChatIdle
	}
	if relay {
		s.chatInterval = intervals.RelayChatInterval
	}

	catalog := intervals.ProductInterval
	settings := intervals.SettingsInterval

	s.Products = register(s, newView(s, keys.Products(), seed.Products, catalog))
	s.Categories = register(s, newView(s, keys.Categories(), seed.Categories, catalog))
	s.Reviews = register(s, newView(s, keys.Reviews(), seed.Reviews, catalog))

	s.Cart = register(s, newView[entity.CartItem](s, keys.Cart(), nil, catalog))
	s.Wishlist = register(s, newView[entity.Product](s, keys.Wishlist(), nil, catalog))
	s.Compare = register(s, newView[entity.Product](s, keys.Compare(), nil, catalog))
	s.Viewed = register(s, newView[entity.Product](s, keys.Viewed(), nil, catalog))

	s.Orders = register(s, newView(s, keys.Orders(), seed.Orders, catalog))
	s.Notifications = register(s, newView(s, keys.Notifications(), seed.Notifications, catalog))
	s.Users = register(s, newView(s, keys.Users(), seed.Users, catalog))

	s.Banners = register(s, newView(s, keys.Banners(), seed.Banners, catalog))
	s.PromoCodes = register(s, newView(s, keys.PromoCodes(), seed.PromoCodes, catalog))
	s.EmailCampaigns = register(s, newView(s, keys.EmailCampaigns(), seed.EmailCampaigns, catalog))
	s.Settings = register(s, view.ForDocument(
		collection.NewDocument(store, keys.SiteSettings(), seed.SiteSettings, logger),
		subscriber, settings, logger,
	))

	s.Admins = register(s, newView[entity.Admin](s, keys.Admins(), nil, settings))
	s.Couriers = register(s, newView(s, keys.Couriers(), seed.Couriers, settings))
	s.ShippingZones = register(s, newView(s, keys.ShippingZones(), seed.ShippingZones, settings))
	s.PaymentMethods = register(s, newView(s, keys.PaymentMethods(), seed.PaymentMethods, settings))
	s.ActivityLog = register(s, newView[entity.LogEntry](s, keys.ActivityLog(), nil, settings))

	s.AllChats = register(s, view.ForMap(
		collection.NewDocument(store, keys.AllChats(), func() map[string]entity.ChatThread {
			return map[string]entity.ChatThread{}
		}, logger),
		subscriber, intervals.ChatListInterval, logger,
	))

	return s
}

func newView[T any](s *State, key string, seed func() []T, interval time.Duration) *view.SyncedView[[]T] {
	return view.ForCollection(collection.New(s.store, key, seed, s.logger), s.subscriber, interval, s.logger)
}

func register[V mountable](s *State, v V) V {
	s.views = append(s.views, v)

	return v
}

// Keys returns the storage key set.
func (s *State) Keys() repository.Keys {
	return s.keys
}

// Mount loads every view. Views stay mounted with defaults when loading
// fails; the failures are returned joined.
func (s *State) Mount(ctx context.Context) error {
	var errs []error
	for _, v := range s.views {
		if err := v.Mount(ctx); err != nil {
			errs = append(errs, errors.Wrapf(err, "mount %s", v.Key()))
		}
	}

	s.chatMu.Lock()
	if s.stopSweep == nil {
		s.stopSweep = make(chan struct{})
		s.sweepDone = make(chan struct{})
		go s.sweepChats(s.stopSweep, s.sweepDone)
	}
	s.chatMu.Unlock()

	s.logger.Info("State mounted", slog.Int("views", len(s.views)))

	return errors.Join(errs...)
}

// Unmount stops change delivery for every view, chat views included.
func (s *State) Unmount() {
	for _, v := range s.views {
		v.Unmount()
	}

	s.chatMu.Lock()
	stop, done := s.stopSweep, s.sweepDone
	s.stopSweep, s.sweepDone = nil, nil
	chats := s.chats
	s.chats = make(map[string]*chatView)
	s.chatMu.Unlock()

	if stop != nil {
		close(stop)
		<-done
	}
	for _, v := range chats {
		v.Unmount()
	}
}

// Reload re-reads every static view from storage.
func (s *State) Reload(ctx context.Context) error {
	var errs []error
	for _, v := range s.views {
		if err := v.Reload(ctx); err != nil {
			errs = append(errs, errors.Wrapf(err, "reload %s", v.Key()))
		}
	}

	return errors.Join(errs...)
}

// Chat returns the mounted message view of one user, creating it on first
// use. Views left unused for the idle timeout are unmounted again.
func (s *State) Chat(ctx context.Context, userID string) (*view.SyncedView[[]entity.ChatMessage], error) {
	s.chatMu.Lock()
	defer s.chatMu.Unlock()

	if v, ok := s.chats[userID]; ok {
		v.lastUsed = s.now()

		return v.SyncedView, nil
	}

	v := newView[entity.ChatMessage](s, s.keys.Chat(userID), nil, s.chatInterval)
	if err := v.Mount(ctx); err != nil {
		v.Unmount()

		return nil, err
	}
	s.chats[userID] = &chatView{SyncedView: v, lastUsed: s.now()}

	return v, nil
}

// ChatMessages reads the conversation of one user without mounting a view
// or creating its key. An open view answers from its local state.
func (s *State) ChatMessages(ctx context.Context, userID string) ([]entity.ChatMessage, error) {
	s.chatMu.Lock()
	if v, ok := s.chats[userID]; ok {
		v.lastUsed = s.now()
		s.chatMu.Unlock()

		return v.Items(), nil
	}
	s.chatMu.Unlock()

	return collection.New[entity.ChatMessage](s.store, s.keys.Chat(userID), nil, s.logger).Peek(ctx)
}

// CloseChat unmounts the message view of one user.
func (s *State) CloseChat(userID string) {
	s.chatMu.Lock()
	v, ok := s.chats[userID]
	delete(s.chats, userID)
	s.chatMu.Unlock()

	if ok {
		v.Unmount()
	}
}

// OpenChatUsers returns the users whose chat views are mounted.
func (s *State) OpenChatUsers() []string {
	s.chatMu.Lock()
	defer s.chatMu.Unlock()

	users := make([]string, 0, len(s.chats))
	for userID := range s.chats {
		users = append(users, userID)
	}

	return users
}

// OpenChats returns the number of mounted chat views.
func (s *State) OpenChats() int {
	s.chatMu.Lock()
	defer s.chatMu.Unlock()

	return len(s.chats)
}

// EvictIdleChats unmounts chat views unused for longer than the idle timeout
// and returns how many were closed.
func (s *State) EvictIdleChats() int {
	cutoff := s.now().Add(-s.chatIdle)

	s.chatMu.Lock()
	var idle []*chatView
	for userID, v := range s.chats {
		if v.lastUsed.Before(cutoff) {
			idle = append(idle, v)
			delete(s.chats, userID)
		}
	}
	s.chatMu.Unlock()

	for _, v := range idle {
		v.Unmount()
	}
	if len(idle) > 0 {
		s.logger.Debug("Idle chat views closed", slog.Int("count", len(idle)))
	}

	return len(idle)
}

func (s *State) sweepChats(stop <-chan struct{}, done chan<- struct{}) {
	defer close(done)

	ticker := time.NewTicker(max(s.chatIdle/2, minChatSweep))
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			s.EvictIdleChats()
		}
	}
}

// Module provides State to the Fx application.
var Module = fx.Options(
	fx.Provide(NewState),
)
