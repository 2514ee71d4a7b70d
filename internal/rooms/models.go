package rooms

// Item adalah satu baris belanjaan di catalog room. Harga dalam satuan
// minor (cents / rupiah penuh), identitas untuk split berdasarkan Name.
type Item struct {
	Name       string `json:"name"`
	PriceCents int    `json:"price_cents"`
}

// ShareLine: satu klaim milik user beserta hasil pembagiannya.
type ShareLine struct {
	Name       string  `json:"name"`
	PriceCents int     `json:"price_cents"`
	Claimants  int     `json:"claimants"`
	ShareCents float64 `json:"share_cents"`
}

type UserAllocation struct {
	Lines      []ShareLine `json:"lines"`
	TotalCents float64     `json:"total_cents"`
}

// Allocation adalah derived view dari seluruh claims satu room.
type Allocation struct {
	PerUser           map[string]UserAllocation `json:"per_user"`
	OverallTotalCents float64                   `json:"overall_total_cents"`
}

// Snapshot lengkap room untuk dikirim ke client saat join / via REST.
type Snapshot struct {
	RoomCode   string     `json:"room_code"`
	Catalog    []Item     `json:"catalog"`
	Allocation Allocation `json:"allocation"`
}
