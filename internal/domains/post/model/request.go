package model

import (
	"encoding/json"
)

const pathIDMismatch = "Request path id and request body id values must match"

// createRequiredFields are checked in this order; the first one missing wins.
var createRequiredFields = []string{"title", "content", "author_id"}

// CreatePostRequest - POST /posts
type CreatePostRequest struct {
	Title    string
	Content  string
	AuthorID string
}

// ToEntity binds the post to the resolved author id.
func (r *CreatePostRequest) ToEntity(authorID string) *Post {
	return &Post{
		Title:    r.Title,
		Content:  r.Content,
		AuthorID: authorID,
		Comments: []Comment{},
	}
}

// ParseCreatePostRequest checks key presence on the raw body before building
// the request. Values must be strings; only title must also be non-empty.
func ParseCreatePostRequest(body []byte) (*CreatePostRequest, error) {
	fields, err := decodeObject(body)
	if err != nil {
		return nil, err
	}

	values := make(map[string]string, len(createRequiredFields))
	for _, field := range createRequiredFields {
		raw, ok := fields[field]
		if !ok {
			return nil, missingField(field)
		}
		s, err := decodeString(field, raw)
		if err != nil {
			return nil, err
		}
		values[field] = s
	}

	if values["title"] == "" {
		return nil, emptyTitle()
	}

	return &CreatePostRequest{
		Title:    values["title"],
		Content:  values["content"],
		AuthorID: values["author_id"],
	}, nil
}

// ParseUpdatePostRequest requires the body id to equal the path id and keeps
// only title and content. Any other key is ignored. A present title must be
// non-empty.
func ParseUpdatePostRequest(pathID string, body []byte) (PostUpdate, error) {
	var update PostUpdate

	fields, err := decodeObject(body)
	if err != nil {
		return update, err
	}

	raw, ok := fields["id"]
	if !ok || pathID == "" {
		return update, &ValidationError{Field: "id", Message: pathIDMismatch}
	}
	var bodyID string
	if err := json.Unmarshal(raw, &bodyID); err != nil || bodyID != pathID {
		return update, &ValidationError{Field: "id", Message: pathIDMismatch}
	}

	if raw, ok := fields["title"]; ok {
		s, err := decodeString("title", raw)
		if err != nil {
			return update, err
		}
		if s == "" {
			return update, emptyTitle()
		}
		update.Title = &s
	}
	if raw, ok := fields["content"]; ok {
		s, err := decodeString("content", raw)
		if err != nil {
			return update, err
		}
		update.Content = &s
	}

	return update, nil
}

func decodeObject(body []byte) (map[string]json.RawMessage, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil || fields == nil {
		return nil, &ValidationError{Message: "Request body must be a JSON object"}
	}
	return fields, nil
}

func decodeString(field string, raw json.RawMessage) (string, error) {
	var s string
	if err := json.Unmarshal(raw, &s); err != nil || string(raw) == "null" {
		return "", &ValidationError{Field: field, Message: "`" + field + "` must be a string"}
	}
	return s, nil
}

func emptyTitle() *ValidationError {
	return &ValidationError{Field: "title", Message: "`title` must not be empty"}
}
