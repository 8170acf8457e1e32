package domain

// Book is a catalog record. Unlike accounts, books carry no invariants
// beyond field validation; they go through the generic catalog service.
type Book struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Author      string `json:"author"`
	Genre       string `json:"genre"`
	Publication int    `json:"publication"`
}
