package ingest

import (
	"errors"
	"reflect"
	"testing"

	"github.com/ariefcatur/go-split-bill.git/internal/rooms"
)

func TestParseReceiptLines(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []rooms.Item
	}{
		{
			name: "plain lines",
			text: "Americano 4500\nCheese Cake 6000",
			want: []rooms.Item{
				{Name: "Americano", PriceCents: 4500},
				{Name: "Cheese Cake", PriceCents: 6000},
			},
		},
		{
			name: "thousand separators and currency suffix",
			text: "Coffee 3,000원\nNasi Goreng 25.000 Rp",
			want: []rooms.Item{
				{Name: "Coffee", PriceCents: 3000},
				{Name: "Nasi Goreng", PriceCents: 25000},
			},
		},
		{
			name: "skips blank and unparseable lines",
			text: "\n====\nLatte 5000\nthanks for visiting\n",
			want: []rooms.Item{{Name: "Latte", PriceCents: 5000}},
		},
		{
			name: "skips aggregate lines",
			text: "Latte 5000\nSubtotal 5000\nTax 500\nTotal 5500",
			want: []rooms.Item{{Name: "Latte", PriceCents: 5000}},
		},
		{
			name: "dots between name and price",
			text: "Iced Tea....3500",
			want: []rooms.Item{{Name: "Iced Tea", PriceCents: 3500}},
		},
	}

	p := LineParser{}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := p.Parse(tt.text)
			if err != nil {
				t.Fatalf("parse: %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestParseNoItems(t *testing.T) {
	p := LineParser{}
	for _, text := range []string{"", "thanks for visiting", "Total 9900"} {
		if _, err := p.Parse(text); !errors.Is(err, ErrNoItems) {
			t.Fatalf("text %q: expected ErrNoItems, got %v", text, err)
		}
	}
}
