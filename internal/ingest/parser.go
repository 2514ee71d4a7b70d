// Package ingest adalah boundary Ingestion Adapter: teks struk masuk,
// kandidat item {name, price} keluar. OCR dan pemotretan terjadi di luar
// sistem; paket ini cuma menerima hasil teksnya.
package ingest

import (
	"errors"
	"regexp"
	"strconv"
	"strings"

	"github.com/ariefcatur/go-split-bill.git/internal/rooms"
)

// ErrNoItems: tidak ada satu baris pun yang bisa diparse jadi item.
// Caller tidak boleh commit apa pun (no partial items).
var ErrNoItems = errors.New("no items extracted from receipt text")

type Parser interface {
	Parse(text string) ([]rooms.Item, error)
}

// LineParser memetakan tiap baris "nama ... harga" jadi satu item.
// Angka terakhir di baris dianggap harga; sisanya nama.
type LineParser struct{}

var lineRe = regexp.MustCompile(`^(.+?)[\s:.]*([0-9][0-9.,]*)\s*(?:원|Rp|IDR|KRW)?\s*$`)

// Baris agregat di struk bukan item; di-skip berdasarkan nama.
var skipNames = map[string]bool{
	"total":    true,
	"subtotal": true,
	"tax":      true,
	"cash":     true,
	"change":   true,
	"합계":       true,
	"총액":       true,
}

func (LineParser) Parse(text string) ([]rooms.Item, error) {
	var items []rooms.Item
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		m := lineRe.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		name := strings.TrimSpace(m[1])
		if name == "" || skipNames[strings.ToLower(name)] {
			continue
		}
		price, err := parsePrice(m[2])
		if err != nil || price < 0 {
			continue
		}
		items = append(items, rooms.Item{Name: name, PriceCents: price})
	}
	if len(items) == 0 {
		return nil, ErrNoItems
	}
	return items, nil
}

// parsePrice: "3,000" dan "7.000" dua-duanya 3000/7000 — separator ribuan
// dibuang semua, harga diasumsikan sudah dalam satuan minor.
func parsePrice(s string) (int, error) {
	s = strings.NewReplacer(",", "", ".", "").Replace(s)
	return strconv.Atoi(s)
}
