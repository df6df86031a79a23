package model

// Edition is a released set of cards. Name and Code are unique.
type Edition struct {
	ID    int64
	Name  string
	Code  string
	Cards []Card
}
