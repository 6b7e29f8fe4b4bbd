package model

// Revision summarizes one accepted save: which words appeared and which
// disappeared relative to the previous snapshot. Immutable once stored.
type Revision struct {
	ID           string   `json:"id"`
	SavedAt      string   `json:"saved_at"`
	Ctime        int64    `json:"ctime"`
	AddedWords   []string `json:"added_words"`
	RemovedWords []string `json:"removed_words"`
	OldLength    int      `json:"old_length"`
	NewLength    int      `json:"new_length"`
}
