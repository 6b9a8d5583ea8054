package commands

import (
	"context"
	"errors"
	"testing"

	"pricesaver/contexts/price-intelligence/submission-service/adapters/memory"
	"pricesaver/contexts/price-intelligence/submission-service/domain/entities"
	domainerrors "pricesaver/contexts/price-intelligence/submission-service/domain/errors"
)

func TestSubmitDraftRequiresItem(t *testing.T) {
	store := memory.NewStore(nil)
	uc := SubmitDraftUseCase{Repository: store, Clock: store, IDGen: store}
	if _, err := uc.Execute(context.Background(), SubmitDraftCommand{ItemName: "  "}); !errors.Is(err, domainerrors.ErrInvalidDraftInput) {
		t.Fatalf("expected invalid input, got %v", err)
	}
}

func TestSubmitDraftRejectsNonPositivePrice(t *testing.T) {
	store := memory.NewStore(nil)
	uc := SubmitDraftUseCase{Repository: store, Clock: store, IDGen: store}
	if _, err := uc.Execute(context.Background(), SubmitDraftCommand{
		ItemName:    "Rice",
		ParsedPrice: floatPtr(0),
	}); !errors.Is(err, domainerrors.ErrInvalidDraftInput) {
		t.Fatalf("expected invalid input for zero price, got %v", err)
	}
	if _, err := uc.Execute(context.Background(), SubmitDraftCommand{
		ItemName:    "Rice",
		ParsedPrice: floatPtr(-10),
	}); !errors.Is(err, domainerrors.ErrInvalidDraftInput) {
		t.Fatalf("expected invalid input for negative price, got %v", err)
	}
}

func TestSubmitDraftStartsPending(t *testing.T) {
	store := memory.NewStore(nil)
	uc := SubmitDraftUseCase{Repository: store, Clock: store, IDGen: store}
	draft, err := uc.Execute(context.Background(), SubmitDraftCommand{
		ItemName:     " Rice ",
		ParsedPrice:  floatPtr(450),
		LocationText: " Moremi Canteen ",
	})
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	if draft.Status != entities.ReviewStatusPending {
		t.Fatalf("expected pending, got %s", draft.Status)
	}
	if draft.ItemName != "Rice" || draft.LocationText != "Moremi Canteen" {
		t.Fatalf("expected trimmed fields, got %q / %q", draft.ItemName, draft.LocationText)
	}
}
