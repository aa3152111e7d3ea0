package models

// Badge is a derived achievement flag; never persisted, recomputed per request.
type Badge struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Icon     string `json:"icon"`
	Unlocked bool   `json:"unlocked"`
}
