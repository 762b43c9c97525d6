package model

// Post là document gốc; author chỉ là reference (id), không embed
type Post struct {
	ID       string    `json:"id"`
	Title    string    `json:"title"`
	Content  string    `json:"content"`
	AuthorID string    `json:"author"`
	Comments []Comment `json:"comments"`
}

// Comment thuộc về post, bị xóa cùng post
type Comment struct {
	ID      string `json:"id"`
	Content string `json:"content"`
}

// PostUpdate là tập field được phép sửa qua API.
// nil nghĩa là field không có trong request body.
type PostUpdate struct {
	Title   *string
	Content *string
}

func (u PostUpdate) IsEmpty() bool {
	return u.Title == nil && u.Content == nil
}

// Fields trả về các field sẽ được set, theo tên trong document
func (u PostUpdate) Fields() map[string]string {
	fields := make(map[string]string, 2)
	if u.Title != nil {
		fields["title"] = *u.Title
	}
	if u.Content != nil {
		fields["content"] = *u.Content
	}
	return fields
}

// Apply ghi các field được set lên post
func (u PostUpdate) Apply(p *Post) {
	if u.Title != nil {
		p.Title = *u.Title
	}
	if u.Content != nil {
		p.Content = *u.Content
	}
}
