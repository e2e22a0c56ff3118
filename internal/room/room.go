package room

import (
	"errors"
	"log"
	"sync"

	"focusroom/internal/model"
	"focusroom/internal/store"
)

var (
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrUnknownItem       = errors.New("unknown item")
	ErrNotOwned          = errors.New("item not owned")
)

// Wallet is the coin balance the shop debits. SpendCoins must be an atomic
// check-then-debit.
type Wallet interface {
	SpendCoins(amount int) bool
}

// Notifier schedules a debounced cloud push after a mutation.
type Notifier interface {
	Schedule()
}

// Store holds ownership, active-item selection and spatial placement of
// room items. Active items are always a subset of owned items, and
// exclusive categories keep at most one active item.
type Store struct {
	mu     sync.Mutex
	state  model.RoomState
	wallet Wallet
	local  *store.Local
	notify Notifier
}

func New(local *store.Local, wallet Wallet) *Store {
	s := &Store{
		state:  model.DefaultRoomState(),
		wallet: wallet,
		local:  local,
	}
	if local != nil {
		var saved model.RoomState
		if err := local.LoadJSON(store.KeyRoom, &saved); err == nil {
			s.state = normalize(saved)
		} else if err != store.ErrKeyNotFound {
			log.Printf("load room: %v", err)
		}
	}
	return s
}

func (s *Store) SetNotifier(n Notifier) {
	s.mu.Lock()
	s.notify = n
	s.mu.Unlock()
}

// Purchase atomically checks the balance, debits it and newly activates the
// item. Buying an already-owned item is a silent no-op.
func (s *Store) Purchase(itemID string) error {
	item, ok := model.CatalogItem(itemID)
	if !ok {
		return ErrUnknownItem
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if contains(s.state.OwnedItemIDs, itemID) {
		return nil
	}
	if s.wallet != nil && !s.wallet.SpendCoins(item.Price) {
		return ErrInsufficientFunds
	}

	s.state.OwnedItemIDs = append(s.state.OwnedItemIDs, itemID)
	s.activateLocked(item)
	s.commitLocked()
	return nil
}

// Toggle flips an owned item's visibility. Activating an item in an
// exclusive category deactivates any sibling first, in the same update.
func (s *Store) Toggle(itemID string) error {
	item, ok := model.CatalogItem(itemID)
	if !ok {
		return ErrUnknownItem
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if !contains(s.state.OwnedItemIDs, itemID) {
		return ErrNotOwned
	}

	if contains(s.state.ActiveItemIDs, itemID) {
		s.state.ActiveItemIDs = remove(s.state.ActiveItemIDs, itemID)
	} else {
		s.activateLocked(item)
	}
	s.commitLocked()
	return nil
}

func (s *Store) SetTheme(theme string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Theme = model.ValidateTheme(theme)
	s.commitLocked()
}

// SetPosition clamps the normalized coordinates away from the floor's
// edges and stores them.
func (s *Store) SetPosition(itemID string, u, v float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.ItemPositions[itemID] = [2]float64{clamp(u), clamp(v)}
	s.commitLocked()
}

func (s *Store) Position(itemID string) [2]float64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	if pos, ok := s.state.ItemPositions[itemID]; ok {
		return pos
	}
	if pos, ok := model.DefaultItemPositions[itemID]; ok {
		return pos
	}
	return [2]float64{0.5, 0.5}
}

func (s *Store) Owns(itemID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return contains(s.state.OwnedItemIDs, itemID)
}

func (s *Store) IsActive(itemID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return contains(s.state.ActiveItemIDs, itemID)
}

func (s *Store) Snapshot() model.RoomState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return copyState(s.state)
}

// Replace overwrites the full room state during login reconciliation.
func (s *Store) Replace(state model.RoomState) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = normalize(state)
	s.persistLocked()
}

// activateLocked makes the item visible, clearing any active sibling when
// the category holds a single display slot.
func (s *Store) activateLocked(item model.ShopItem) {
	if model.ExclusiveCategory(item.Category) {
		kept := s.state.ActiveItemIDs[:0]
		for _, id := range s.state.ActiveItemIDs {
			if other, ok := model.CatalogItem(id); ok && other.Category == item.Category {
				continue
			}
			kept = append(kept, id)
		}
		s.state.ActiveItemIDs = kept
	}
	if !contains(s.state.ActiveItemIDs, item.ID) {
		s.state.ActiveItemIDs = append(s.state.ActiveItemIDs, item.ID)
	}
}

func (s *Store) commitLocked() {
	s.persistLocked()
	if s.notify != nil {
		s.notify.Schedule()
	}
}

func (s *Store) persistLocked() {
	if s.local == nil {
		return
	}
	if err := s.local.SaveJSON(store.KeyRoom, s.state); err != nil {
		log.Printf("persist room: %v", err)
	}
}

func normalize(state model.RoomState) model.RoomState {
	state.Theme = model.ValidateTheme(state.Theme)
	if state.OwnedItemIDs == nil {
		state.OwnedItemIDs = []string{}
	}
	if state.ItemPositions == nil {
		state.ItemPositions = map[string][2]float64{}
	}

	// Drop active ids that are not owned.
	active := make([]string, 0, len(state.ActiveItemIDs))
	for _, id := range state.ActiveItemIDs {
		if contains(state.OwnedItemIDs, id) {
			active = append(active, id)
		}
	}
	state.ActiveItemIDs = active
	return state
}

func copyState(state model.RoomState) model.RoomState {
	out := state
	out.OwnedItemIDs = append([]string{}, state.OwnedItemIDs...)
	out.ActiveItemIDs = append([]string{}, state.ActiveItemIDs...)
	out.ItemPositions = make(map[string][2]float64, len(state.ItemPositions))
	for k, v := range state.ItemPositions {
		out.ItemPositions[k] = v
	}
	return out
}

func clamp(value float64) float64 {
	if value < model.MinPlacement {
		return model.MinPlacement
	}
	if value > model.MaxPlacement {
		return model.MaxPlacement
	}
	return value
}

func contains(ids []string, id string) bool {
	for _, candidate := range ids {
		if candidate == id {
			return true
		}
	}
	return false
}

func remove(ids []string, id string) []string {
	out := ids[:0]
	for _, candidate := range ids {
		if candidate != id {
			out = append(out, candidate)
		}
	}
	return out
}
