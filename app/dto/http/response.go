package http

// Envelope is the uniform success response body.
type Envelope struct {
	Success    bool        `json:"success"`
	Count      *int        `json:"count,omitempty"`
	Pagination *Pagination `json:"pagination,omitempty"`
	Token      string      `json:"token,omitempty"`
	Data       interface{} `json:"data"`
}

type Pagination struct {
	Next *Page `json:"next,omitempty"`
	Prev *Page `json:"prev,omitempty"`
}

type Page struct {
	Page  int64 `json:"page"`
	Limit int64 `json:"limit"`
}

type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

func NewError(message string) ErrorResponse {
	return ErrorResponse{Success: false, Error: message}
}

func NewEnvelope(data interface{}) Envelope {
	return Envelope{Success: true, Data: data}
}

func NewTokenEnvelope(token string) Envelope {
	return Envelope{Success: true, Token: token, Data: map[string]interface{}{}}
}

// NewListEnvelope wraps a page of results with count and prev/next markers.
func NewListEnvelope(data interface{}, count int, page, limit, total int64) Envelope {
	env := Envelope{Success: true, Count: &count, Data: data}

	if page < 1 {
		page = 1
	}
	if limit < 1 {
		return env
	}

	pagination := &Pagination{}
	if page*limit < total {
		pagination.Next = &Page{Page: page + 1, Limit: limit}
	}
	if page > 1 {
		pagination.Prev = &Page{Page: page - 1, Limit: limit}
	}
	if pagination.Next != nil || pagination.Prev != nil {
		env.Pagination = pagination
	}
	return env
}
