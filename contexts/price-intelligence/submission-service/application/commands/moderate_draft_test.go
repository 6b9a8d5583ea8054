package commands

import (
	"context"
	"errors"
	"testing"

	"pricesaver/contexts/price-intelligence/submission-service/adapters/memory"
	"pricesaver/contexts/price-intelligence/submission-service/domain/entities"
	domainerrors "pricesaver/contexts/price-intelligence/submission-service/domain/errors"
	"pricesaver/contexts/price-intelligence/submission-service/ports"
)

func newModerateFixture(store *memory.Store) ModerateDraftUseCase {
	return ModerateDraftUseCase{
		Repository:   store,
		Stores:       store,
		Clock:        store,
		IDGen:        store,
		RewardAmount: 50,
	}
}

func submitFixtureDraft(t *testing.T, store *memory.Store, cmd SubmitDraftCommand) entities.Draft {
	t.Helper()
	uc := SubmitDraftUseCase{Repository: store, Clock: store, IDGen: store}
	draft, err := uc.Execute(context.Background(), cmd)
	if err != nil {
		t.Fatalf("submit draft failed: %v", err)
	}
	return draft
}

func floatPtr(v float64) *float64 {
	return &v
}

func TestApproveCreatesObservationAndReward(t *testing.T) {
	store := memory.NewStore(nil)
	draft := submitFixtureDraft(t, store, SubmitDraftCommand{
		ItemName:     "Rice",
		ParsedPrice:  floatPtr(450),
		LocationText: "Moremi Canteen",
		SubmitterID:  "user-1",
		ProofRef:     "uploads/receipt-1.jpg",
	})

	svc := newModerateFixture(store)
	observation, err := svc.Approve(context.Background(), ApproveDraftCommand{DraftID: draft.DraftID})
	if err != nil {
		t.Fatalf("approve failed: %v", err)
	}
	if observation.Status != entities.ReviewStatusApproved {
		t.Fatalf("expected approved observation, got %s", observation.Status)
	}
	if observation.Amount != 450 {
		t.Fatalf("expected amount 450, got %v", observation.Amount)
	}

	updated, err := store.GetDraft(context.Background(), draft.DraftID)
	if err != nil {
		t.Fatalf("get draft failed: %v", err)
	}
	if updated.Status != entities.ReviewStatusApproved {
		t.Fatalf("expected draft approved, got %s", updated.Status)
	}
	if updated.ObservationID != observation.ObservationID {
		t.Fatalf("expected draft linked to observation")
	}

	if got := store.Balance("user-1"); got != 50 {
		t.Fatalf("expected balance 50, got %v", got)
	}
	entries := store.Ledger("user-1")
	if len(entries) != 1 {
		t.Fatalf("expected exactly one ledger entry, got %d", len(entries))
	}
	if entries[0].Reason != "Cashback for price approval of Rice" {
		t.Fatalf("unexpected ledger reason: %s", entries[0].Reason)
	}
}

func TestApproveWithoutSubmitterSkipsReward(t *testing.T) {
	store := memory.NewStore(nil)
	draft := submitFixtureDraft(t, store, SubmitDraftCommand{
		ItemName:    "Bread",
		ParsedPrice: floatPtr(900),
	})

	svc := newModerateFixture(store)
	if _, err := svc.Approve(context.Background(), ApproveDraftCommand{DraftID: draft.DraftID}); err != nil {
		t.Fatalf("approve failed: %v", err)
	}
	if entries := store.Ledger(""); len(entries) != 0 {
		t.Fatalf("expected no ledger entries, got %d", len(entries))
	}
}

func TestApproveWithoutParsedPriceUsesZeroAmount(t *testing.T) {
	store := memory.NewStore(nil)
	draft := submitFixtureDraft(t, store, SubmitDraftCommand{ItemName: "Garri"})

	svc := newModerateFixture(store)
	observation, err := svc.Approve(context.Background(), ApproveDraftCommand{DraftID: draft.DraftID})
	if err != nil {
		t.Fatalf("approve failed: %v", err)
	}
	if observation.Amount != 0 {
		t.Fatalf("expected zero amount for unparsed price, got %v", observation.Amount)
	}
}

func TestApproveFinalizedDraftFails(t *testing.T) {
	store := memory.NewStore(nil)
	draft := submitFixtureDraft(t, store, SubmitDraftCommand{
		ItemName:    "Rice",
		ParsedPrice: floatPtr(500),
		SubmitterID: "user-1",
	})

	svc := newModerateFixture(store)
	if _, err := svc.Approve(context.Background(), ApproveDraftCommand{DraftID: draft.DraftID}); err != nil {
		t.Fatalf("first approve failed: %v", err)
	}

	if _, err := svc.Approve(context.Background(), ApproveDraftCommand{DraftID: draft.DraftID}); !errors.Is(err, domainerrors.ErrDraftFinalized) {
		t.Fatalf("expected finalized error on repeat approve, got %v", err)
	}
	if _, err := svc.Reject(context.Background(), RejectDraftCommand{DraftID: draft.DraftID}); !errors.Is(err, domainerrors.ErrDraftFinalized) {
		t.Fatalf("expected finalized error on reject after approve, got %v", err)
	}

	// The repeat calls must not double-credit.
	if got := store.Balance("user-1"); got != 50 {
		t.Fatalf("expected balance unchanged at 50, got %v", got)
	}
}

func TestApproveMissingDraft(t *testing.T) {
	store := memory.NewStore(nil)
	svc := newModerateFixture(store)
	if _, err := svc.Approve(context.Background(), ApproveDraftCommand{DraftID: "nope"}); !errors.Is(err, domainerrors.ErrDraftNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestApproveUnknownStore(t *testing.T) {
	store := memory.NewStore(nil)
	draft := submitFixtureDraft(t, store, SubmitDraftCommand{ItemName: "Rice", ParsedPrice: floatPtr(500)})

	svc := newModerateFixture(store)
	if _, err := svc.Approve(context.Background(), ApproveDraftCommand{
		DraftID: draft.DraftID,
		StoreID: "store-404",
	}); !errors.Is(err, domainerrors.ErrStoreNotFound) {
		t.Fatalf("expected store not found, got %v", err)
	}

	updated, err := store.GetDraft(context.Background(), draft.DraftID)
	if err != nil {
		t.Fatalf("get draft failed: %v", err)
	}
	if updated.Status != entities.ReviewStatusPending {
		t.Fatalf("expected draft still pending, got %s", updated.Status)
	}
}

func TestApproveWithRegisteredStore(t *testing.T) {
	store := memory.NewStore(nil)
	store.RegisterStore("store-1")
	draft := submitFixtureDraft(t, store, SubmitDraftCommand{ItemName: "Rice", ParsedPrice: floatPtr(500)})

	svc := newModerateFixture(store)
	observation, err := svc.Approve(context.Background(), ApproveDraftCommand{
		DraftID: draft.DraftID,
		StoreID: "store-1",
	})
	if err != nil {
		t.Fatalf("approve failed: %v", err)
	}
	if observation.StoreID != "store-1" {
		t.Fatalf("expected observation linked to store-1, got %q", observation.StoreID)
	}
}

func TestRejectDefaultsNotes(t *testing.T) {
	store := memory.NewStore(nil)
	draft := submitFixtureDraft(t, store, SubmitDraftCommand{ItemName: "Rice", ParsedPrice: floatPtr(500)})

	svc := newModerateFixture(store)
	rejected, err := svc.Reject(context.Background(), RejectDraftCommand{DraftID: draft.DraftID})
	if err != nil {
		t.Fatalf("reject failed: %v", err)
	}
	if rejected.Status != entities.ReviewStatusRejected {
		t.Fatalf("expected rejected status, got %s", rejected.Status)
	}
	if rejected.ModeratorNotes != defaultRejectionNotes {
		t.Fatalf("expected default notes, got %q", rejected.ModeratorNotes)
	}

	observations, err := store.ListObservations(context.Background(), ports.ObservationFilter{})
	if err != nil {
		t.Fatalf("list observations failed: %v", err)
	}
	if len(observations) != 0 {
		t.Fatalf("reject must not create observations, got %d", len(observations))
	}
}

type failingFinalizeRepo struct {
	*memory.Store
}

func (failingFinalizeRepo) FinalizeApproval(context.Context, ports.Approval) error {
	return errors.New("storage unavailable")
}

func TestApproveStorageFailureLeavesNoPartialState(t *testing.T) {
	store := memory.NewStore(nil)
	draft := submitFixtureDraft(t, store, SubmitDraftCommand{
		ItemName:    "Rice",
		ParsedPrice: floatPtr(500),
		SubmitterID: "user-1",
	})

	svc := newModerateFixture(store)
	svc.Repository = failingFinalizeRepo{store}

	if _, err := svc.Approve(context.Background(), ApproveDraftCommand{DraftID: draft.DraftID}); err == nil {
		t.Fatalf("expected storage failure to surface")
	}

	current, err := store.GetDraft(context.Background(), draft.DraftID)
	if err != nil {
		t.Fatalf("get draft failed: %v", err)
	}
	if current.Status != entities.ReviewStatusPending {
		t.Fatalf("expected draft still pending after failure, got %s", current.Status)
	}
	observations, _ := store.ListObservations(context.Background(), ports.ObservationFilter{})
	if len(observations) != 0 {
		t.Fatalf("expected no observation after failure, got %d", len(observations))
	}
	if got := store.Balance("user-1"); got != 0 {
		t.Fatalf("expected no reward after failure, got %v", got)
	}
	if entries := store.Ledger("user-1"); len(entries) != 0 {
		t.Fatalf("expected no ledger entry after failure, got %d", len(entries))
	}
}
