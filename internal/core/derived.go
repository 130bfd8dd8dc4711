package core

// bidStep is one row of the bid increment table: at-or-above Threshold, the
// next legal bid adds Increment to the current bid.
type bidStep struct {
	Threshold int64
	Increment int64
}

// bidIncrementTable is ordered ascending by Threshold; NextBid picks the
// largest Increment whose Threshold is <= currentBid.
var bidIncrementTable = []bidStep{
	{0, 500_000},
	{10_000_000, 1_000_000},
	{50_000_000, 2_500_000},
	{100_000_000, 5_000_000},
	{150_000_000, 10_000_000},
}

// NextBid returns the next legal bid amount above currentBid per the
// increment table.
func NextBid(currentBid int64) int64 {
	increment := bidIncrementTable[0].Increment
	for _, step := range bidIncrementTable {
		if currentBid >= step.Threshold {
			increment = step.Increment
		} else {
			break
		}
	}
	return currentBid + increment
}
