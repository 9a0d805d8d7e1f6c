package order

import (
	"errors"
	"testing"
)

func TestTransition(t *testing.T) {
	allStatuses := []Status{StatusNew, StatusPaid, StatusCancelled, StatusAbandoned, StatusShipped}

	legal := map[Status]map[Status]bool{
		StatusNew:  {StatusPaid: false, StatusCancelled: true, StatusAbandoned: true},
		StatusPaid: {StatusShipped: false},
	}

	for _, from := range allStatuses {
		for _, to := range allStatuses {
			result, err := Transition(from, to)

			wantRevoked, allowed := legal[from][to]
			if !allowed {
				if err == nil {
					t.Errorf("Transition(%s, %s): expected error, got %+v", from, to, result)
					continue
				}
				if !errors.Is(err, ErrInvalidStatusTransition) {
					t.Errorf("Transition(%s, %s): error %v does not wrap ErrInvalidStatusTransition", from, to, err)
				}
				continue
			}

			if err != nil {
				t.Errorf("Transition(%s, %s): unexpected error %v", from, to, err)
				continue
			}
			if result.Status != to {
				t.Errorf("Transition(%s, %s): status = %s", from, to, result.Status)
			}
			if result.Revoked != wantRevoked {
				t.Errorf("Transition(%s, %s): revoked = %v, want %v", from, to, result.Revoked, wantRevoked)
			}
		}
	}
}

func TestTransitionErrorMessage(t *testing.T) {
	_, err := Transition(StatusCancelled, StatusPaid)
	if err == nil {
		t.Fatal("expected error")
	}
	want := "unable to mark CANCELLED order as PAID"
	if err.Error() != want {
		t.Errorf("error = %q, want %q", err.Error(), want)
	}
}

func TestParseStatus(t *testing.T) {
	tests := []struct {
		input string
		want  Status
		ok    bool
	}{
		{input: "PAID", want: StatusPaid, ok: true},
		{input: "paid", want: StatusPaid, ok: true},
		{input: "Cancelled", want: StatusCancelled, ok: true},
		{input: "SHIPPED", want: StatusShipped, ok: true},
		{input: "UNKNOWN", ok: false},
		{input: "", ok: false},
	}

	for _, tt := range tests {
		got, ok := ParseStatus(tt.input)
		if ok != tt.ok || got != tt.want {
			t.Errorf("ParseStatus(%q) = (%s, %v), want (%s, %v)", tt.input, got, ok, tt.want, tt.ok)
		}
	}
}

func TestIsTerminal(t *testing.T) {
	terminal := map[Status]bool{
		StatusNew:       false,
		StatusPaid:      false,
		StatusCancelled: true,
		StatusAbandoned: true,
		StatusShipped:   true,
	}
	for status, want := range terminal {
		if got := status.IsTerminal(); got != want {
			t.Errorf("%s.IsTerminal() = %v, want %v", status, got, want)
		}
	}
}

func TestParseDelivery(t *testing.T) {
	if d, ok := ParseDelivery("courier"); !ok || d != DeliveryCourier {
		t.Errorf("ParseDelivery(courier) = (%s, %v)", d, ok)
	}
	if d, ok := ParseDelivery("SELF_PICKUP"); !ok || d != DeliverySelfPickup {
		t.Errorf("ParseDelivery(SELF_PICKUP) = (%s, %v)", d, ok)
	}
	if _, ok := ParseDelivery("DRONE"); ok {
		t.Error("ParseDelivery(DRONE) should fail")
	}
}

func TestDeliveryPrice(t *testing.T) {
	if got := DeliveryCourier.Price().String(); got != "9.90" {
		t.Errorf("courier price = %s, want 9.90", got)
	}
	if got := DeliverySelfPickup.Price().String(); got != "0.00" {
		t.Errorf("self pickup price = %s, want 0.00", got)
	}
}
