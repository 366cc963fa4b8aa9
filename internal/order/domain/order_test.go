package domain

import (
	"reflect"
	"testing"
)

func TestSKUCodes_DistinctFirstOccurrenceOrder(t *testing.T) {
	o := NewOrder("ord-1", []OrderLineItem{
		{SKUCode: "B2", Quantity: 1, PriceCents: 100},
		{SKUCode: "A1", Quantity: 2, PriceCents: 200},
		{SKUCode: "B2", Quantity: 5, PriceCents: 100},
	})

	got := o.SKUCodes()
	want := []string{"B2", "A1"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("SKUCodes() = %v, want %v", got, want)
	}
	if len(o.Items) != 3 {
		t.Errorf("line items must stay unmerged, got %d", len(o.Items))
	}
}

func TestSKUCodes_EmptyOrder(t *testing.T) {
	o := NewOrder("ord-1", nil)
	if got := o.SKUCodes(); len(got) != 0 {
		t.Errorf("expected no codes, got %v", got)
	}
}
