package room

import (
	"testing"

	"focusroom/internal/model"
)

type fakeWallet struct {
	balance int
	spends  int
}

func (w *fakeWallet) SpendCoins(amount int) bool {
	if w.balance < amount {
		return false
	}
	w.balance -= amount
	w.spends++
	return true
}

type countingNotifier struct {
	calls int
}

func (n *countingNotifier) Schedule() { n.calls++ }

func TestPurchaseDebitsAndActivates(t *testing.T) {
	wallet := &fakeWallet{balance: 5}
	rooms := New(nil, wallet)

	if err := rooms.Purchase("plant_02"); err != nil {
		t.Fatalf("purchase: %v", err)
	}
	if wallet.balance != 3 {
		t.Fatalf("expected balance 3 after buying Monstera, got %d", wallet.balance)
	}
	if !rooms.Owns("plant_02") || !rooms.IsActive("plant_02") {
		t.Fatal("purchased item must be owned and newly active")
	}
}

func TestPurchaseInsufficientFunds(t *testing.T) {
	wallet := &fakeWallet{balance: 1}
	rooms := New(nil, wallet)

	if err := rooms.Purchase("theme_space"); err != ErrInsufficientFunds {
		t.Fatalf("expected ErrInsufficientFunds, got %v", err)
	}
	if wallet.balance != 1 || rooms.Owns("theme_space") {
		t.Fatal("failed purchase must not change wallet or ownership")
	}
}

func TestPurchaseUnknownItem(t *testing.T) {
	rooms := New(nil, &fakeWallet{balance: 100})
	if err := rooms.Purchase("plant_99"); err != ErrUnknownItem {
		t.Fatalf("expected ErrUnknownItem, got %v", err)
	}
}

func TestRepurchaseIsSilentNoop(t *testing.T) {
	wallet := &fakeWallet{balance: 5}
	rooms := New(nil, wallet)

	if err := rooms.Purchase("plant_01"); err != nil {
		t.Fatalf("purchase: %v", err)
	}
	if err := rooms.Purchase("plant_01"); err != nil {
		t.Fatalf("repurchase: %v", err)
	}
	if wallet.spends != 1 || wallet.balance != 4 {
		t.Fatalf("repurchase must not debit again: spends=%d balance=%d", wallet.spends, wallet.balance)
	}
}

func TestExclusiveCategoryKeepsOneActive(t *testing.T) {
	wallet := &fakeWallet{balance: 20}
	rooms := New(nil, wallet)

	for _, id := range []string{"plant_01", "plant_02", "furniture_01"} {
		if err := rooms.Purchase(id); err != nil {
			t.Fatalf("purchase %s: %v", id, err)
		}
	}

	// Buying plant_02 displaced plant_01; furniture is not exclusive.
	if rooms.IsActive("plant_01") {
		t.Fatal("buying a second plant must deactivate the first")
	}
	if !rooms.IsActive("plant_02") || !rooms.IsActive("furniture_01") {
		t.Fatal("latest plant and the furniture item should both be active")
	}

	// Toggling the first plant back on displaces the second.
	if err := rooms.Toggle("plant_01"); err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if !rooms.IsActive("plant_01") || rooms.IsActive("plant_02") {
		t.Fatal("exclusive category must hold at most one active item")
	}

	// Toggling an active item just hides it.
	if err := rooms.Toggle("plant_01"); err != nil {
		t.Fatalf("toggle off: %v", err)
	}
	if rooms.IsActive("plant_01") || rooms.IsActive("plant_02") {
		t.Fatal("toggling off must not resurrect the sibling")
	}
}

func TestToggleRequiresOwnership(t *testing.T) {
	rooms := New(nil, &fakeWallet{})
	if err := rooms.Toggle("cat_01"); err != ErrNotOwned {
		t.Fatalf("expected ErrNotOwned, got %v", err)
	}
}

func TestSetPositionClamps(t *testing.T) {
	rooms := New(nil, &fakeWallet{})

	rooms.SetPosition("plant_01", -0.4, 1.7)
	if got := rooms.Position("plant_01"); got != [2]float64{model.MinPlacement, model.MaxPlacement} {
		t.Fatalf("expected clamped position, got %v", got)
	}

	rooms.SetPosition("plant_01", 0.3, 0.6)
	if got := rooms.Position("plant_01"); got != [2]float64{0.3, 0.6} {
		t.Fatalf("expected stored position, got %v", got)
	}
}

func TestPositionFallsBackToDefaults(t *testing.T) {
	rooms := New(nil, &fakeWallet{})

	if got := rooms.Position("cat_01"); got != model.DefaultItemPositions["cat_01"] {
		t.Fatalf("expected catalog default, got %v", got)
	}
	if got := rooms.Position("theme_cozy"); got != [2]float64{0.5, 0.5} {
		t.Fatalf("expected center fallback, got %v", got)
	}
}

func TestSetThemeValidates(t *testing.T) {
	rooms := New(nil, &fakeWallet{})

	rooms.SetTheme("space")
	if got := rooms.Snapshot().Theme; got != "space" {
		t.Fatalf("expected space theme, got %s", got)
	}
	rooms.SetTheme("disco")
	if got := rooms.Snapshot().Theme; got != model.ThemeDefault {
		t.Fatalf("unknown theme must fall back to default, got %s", got)
	}
}

func TestReplaceNormalizes(t *testing.T) {
	rooms := New(nil, &fakeWallet{})

	rooms.Replace(model.RoomState{
		Theme:         "cozy",
		OwnedItemIDs:  []string{"plant_01"},
		ActiveItemIDs: []string{"plant_01", "cat_01"},
	})

	snap := rooms.Snapshot()
	if snap.Theme != "cozy" {
		t.Fatalf("expected cozy theme, got %s", snap.Theme)
	}
	if len(snap.ActiveItemIDs) != 1 || snap.ActiveItemIDs[0] != "plant_01" {
		t.Fatalf("active ids must be pruned to owned ids, got %v", snap.ActiveItemIDs)
	}
	if snap.ItemPositions == nil {
		t.Fatal("positions map must be initialized")
	}
}

func TestMutationsNotify(t *testing.T) {
	rooms := New(nil, &fakeWallet{balance: 10})
	notifier := &countingNotifier{}
	rooms.SetNotifier(notifier)

	if err := rooms.Purchase("plant_01"); err != nil {
		t.Fatalf("purchase: %v", err)
	}
	rooms.SetTheme("nature")
	rooms.SetPosition("plant_01", 0.4, 0.4)

	if notifier.calls != 3 {
		t.Fatalf("expected 3 scheduled pushes, got %d", notifier.calls)
	}

	// Login reconciliation overwrites silently.
	rooms.Replace(model.RoomState{})
	if notifier.calls != 3 {
		t.Fatal("replace must not schedule a push")
	}
}

func TestSnapshotIsDeepCopy(t *testing.T) {
	rooms := New(nil, &fakeWallet{balance: 10})
	if err := rooms.Purchase("plant_01"); err != nil {
		t.Fatalf("purchase: %v", err)
	}

	snap := rooms.Snapshot()
	snap.OwnedItemIDs[0] = "hacked"
	snap.ItemPositions["plant_01"] = [2]float64{0, 0}

	if !rooms.Owns("plant_01") {
		t.Fatal("mutating a snapshot must not affect the store")
	}
}
