package model

import (
	"regexp"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

const (
	MaxNameLength     = 100
	MinUserNameLength = 2
	MaxUserNameLength = 64
)

var userNamePattern = regexp.MustCompile(`^[a-zA-Z0-9._-]+$`)

// CreateAuthorRequest - POST /authors
type CreateAuthorRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	UserName  string `json:"userName"`
}

func (r *CreateAuthorRequest) Normalize() {
	r.FirstName = strings.TrimSpace(r.FirstName)
	r.LastName = strings.TrimSpace(r.LastName)
	r.UserName = strings.TrimSpace(r.UserName)
}

func (r CreateAuthorRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.FirstName,
			validation.Length(0, MaxNameLength),
		),
		validation.Field(&r.LastName,
			validation.Length(0, MaxNameLength),
		),
		validation.Field(&r.UserName,
			validation.Required.Error("userName is required"),
			validation.Length(MinUserNameLength, MaxUserNameLength),
			is.PrintableASCII,
			validation.Match(userNamePattern).Error("userName may only contain letters, digits, '.', '_' and '-'"),
		),
	)
}

// ToEntity converts CreateAuthorRequest to Author entity
func (r *CreateAuthorRequest) ToEntity() *Author {
	return &Author{
		FirstName: r.FirstName,
		LastName:  r.LastName,
		UserName:  r.UserName,
	}
}

// AuthorResponse - public author representation
type AuthorResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	UserName  string `json:"userName"`
}

// ToResponse converts Author to AuthorResponse
func (a *Author) ToResponse() *AuthorResponse {
	return &AuthorResponse{
		ID:        a.ID,
		Name:      a.FullName(),
		FirstName: a.FirstName,
		LastName:  a.LastName,
		UserName:  a.UserName,
	}
}

func ToResponses(authors []*Author) []*AuthorResponse {
	res := make([]*AuthorResponse, 0, len(authors))
	for _, a := range authors {
		res = append(res, a.ToResponse())
	}
	return res
}
