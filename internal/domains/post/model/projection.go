package model

import authormodel "blog-backend/internal/domains/author/model"

// PostResponse là shape public của một post.
// Thứ tự field: id, author, content, title, comments.
type PostResponse struct {
	ID       string            `json:"id"`
	Author   string            `json:"author"`
	Content  string            `json:"content"`
	Title    string            `json:"title"`
	Comments []CommentResponse `json:"comments"`
}

type CommentResponse struct {
	ID      string `json:"id"`
	Content string `json:"content"`
}

// UpdatedPostResponse - PUT /posts/:id
type UpdatedPostResponse struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Content string `json:"content"`
}

// Project builds the public view of a post. A nil author (dangling reference)
// projects as an empty name. Comments is never nil.
func Project(p *Post, author *authormodel.Author) PostResponse {
	comments := make([]CommentResponse, 0, len(p.Comments))
	for _, c := range p.Comments {
		comments = append(comments, CommentResponse{ID: c.ID, Content: c.Content})
	}

	return PostResponse{
		ID:       p.ID,
		Author:   author.FullName(),
		Content:  p.Content,
		Title:    p.Title,
		Comments: comments,
	}
}

// ProjectAll projects posts against an id-indexed author lookup.
func ProjectAll(posts []*Post, authors map[string]*authormodel.Author) []PostResponse {
	res := make([]PostResponse, 0, len(posts))
	for _, p := range posts {
		res = append(res, Project(p, authors[p.AuthorID]))
	}
	return res
}

func ProjectUpdated(p *Post) UpdatedPostResponse {
	return UpdatedPostResponse{
		ID:      p.ID,
		Title:   p.Title,
		Content: p.Content,
	}
}
