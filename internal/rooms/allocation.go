package rooms

// Allocate menghitung split biaya dari snapshot claims (user -> daftar item).
// Pure function: tidak pegang state, output deterministik untuk input sama.
//
// Denominator = jumlah user distinct yang klaim nama item tsb, bukan jumlah
// instance klaim. User yang klaim nama sama dua kali tetap dihitung sekali,
// tapi dua instance-nya masing-masing kena share penuh.
func Allocate(claims map[string][]Item) Allocation {
	claimants := make(map[string]map[string]struct{})
	for user, items := range claims {
		for _, it := range items {
			set, ok := claimants[it.Name]
			if !ok {
				set = make(map[string]struct{})
				claimants[it.Name] = set
			}
			set[user] = struct{}{}
		}
	}

	out := Allocation{PerUser: make(map[string]UserAllocation, len(claims))}
	for user, items := range claims {
		ua := UserAllocation{Lines: make([]ShareLine, 0, len(items))}
		for _, it := range items {
			// len > 0 terjamin: nama masuk map hanya lewat klaim user.
			n := len(claimants[it.Name])
			share := float64(it.PriceCents) / float64(n)
			ua.Lines = append(ua.Lines, ShareLine{
				Name:       it.Name,
				PriceCents: it.PriceCents,
				Claimants:  n,
				ShareCents: share,
			})
			ua.TotalCents += share
		}
		out.PerUser[user] = ua
		out.OverallTotalCents += ua.TotalCents
	}
	return out
}
