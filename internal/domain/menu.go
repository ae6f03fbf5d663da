package domain

// MenuItem is one entry of the server-driven client menu.
type MenuItem struct {
	Title  string `json:"title"`
	Icon   string `json:"icon"`
	Action string `json:"action"`
}
