package model

// Todo is a row in the todos table. UserID references an existing user;
// deleting the user cascades to its todos at the store level.
type Todo struct {
	ID     int64  `json:"id"`
	Title  string `json:"title"`
	Done   bool   `json:"done"`
	UserID int64  `json:"user_id"`
}
