package model

import "strings"

// Author là entity được Post tham chiếu qua ID (không embed)
type Author struct {
	ID        string `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	UserName  string `json:"userName"` // unique trên toàn bộ authors
}

// FullName ghép first + last name, trim để không thừa khoảng trắng
// khi thiếu một trong hai.
func (a *Author) FullName() string {
	if a == nil {
		return ""
	}
	return strings.TrimSpace(a.FirstName + " " + a.LastName)
}
