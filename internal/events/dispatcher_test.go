package events

import (
	"context"
	"testing"

	"github.com/spec-kit/petmatch-service/internal/domain"
)

func TestDispatcherDeliversToSubscribers(t *testing.T) {
	d := NewInMemoryDispatcher()

	var got []Event
	d.Subscribe(EventPetAdopted, func(_ context.Context, e Event) error {
		got = append(got, e)
		return nil
	})

	_ = d.Publish(context.Background(), Event{Type: EventPetAdopted, PetID: "pet-1"})
	_ = d.Publish(context.Background(), Event{
		Type: EventAdoptionRequestStatusChanged,
		Payload: AdoptionRequestStatusChangedPayload{
			OldStatus: domain.AdoptionStatusPending,
			NewStatus: domain.AdoptionStatusApproved,
		},
	})

	if len(got) != 1 {
		t.Fatalf("got %d events, want 1 (only subscribed type)", len(got))
	}
	if got[0].PetID != "pet-1" {
		t.Fatalf("pet id = %s, want pet-1", got[0].PetID)
	}
}
