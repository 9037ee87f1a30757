package v1

// Neighbor is one scored vocabulary entry.
type Neighbor struct {
	Word  string  `json:"word"`
	Score float64 `json:"score"`
}
