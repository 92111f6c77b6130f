package auction

import "rentauction/internal/models"

// ResolveWinner picks the highest non-dropped bid. Equal amounts go to the
// earliest BidTime, then to the lowest commit sequence.
func ResolveWinner(bids []models.Bid) (models.Bid, bool) {
	var (
		best  models.Bid
		found bool
	)
	for _, b := range bids {
		if b.Dropped {
			continue
		}
		if !found || beats(b, best) {
			best = b
			found = true
		}
	}
	return best, found
}

func beats(b, cur models.Bid) bool {
	switch {
	case b.Amount != cur.Amount:
		return b.Amount > cur.Amount
	case !b.BidTime.Equal(cur.BidTime):
		return b.BidTime.Before(cur.BidTime)
	default:
		return b.Seq < cur.Seq
	}
}
