package api

import (
	"encoding/json"
	"net/url"
	"strconv"
)

// PageRequest передается в списки как параметры page/size.
type PageRequest struct {
	Page int
	Size int
}

const defaultPageSize = 10

// DefaultPage первая страница стандартного размера.
func DefaultPage() PageRequest {
	return PageRequest{Page: 0, Size: defaultPageSize}
}

// params набор параметров запроса, пустые значения отбрасываются при кодировании.
type params map[string]string

func (p PageRequest) params() params {
	size := p.Size
	if size == 0 {
		size = defaultPageSize
	}
	return params{
		"page": strconv.Itoa(p.Page),
		"size": strconv.Itoa(size),
	}
}

func (p params) with(key, value string) params {
	p[key] = value
	return p
}

func (p params) values() url.Values {
	values := make(url.Values, len(p))
	for key, value := range p {
		if value != "" {
			values.Set(key, value)
		}
	}
	return values
}

// Page оболочка постраничного списка бэкенда.
type Page[T any] struct {
	Content       []T   `json:"content"`
	TotalElements int64 `json:"totalElements"`
	TotalPages    int   `json:"totalPages"`
	Number        int   `json:"number"`
	Size          int   `json:"size"`
	Last          bool  `json:"last"`

	// bounded: в ответе было поле last или totalPages.
	bounded bool
}

type pageEnvelope[T any] struct {
	Content       []T   `json:"content"`
	TotalElements int64 `json:"totalElements"`
	TotalPages    *int  `json:"totalPages"`
	Number        int   `json:"number"`
	Size          int   `json:"size"`
	Last          *bool `json:"last"`
}

func (p *Page[T]) UnmarshalJSON(data []byte) error {
	var env pageEnvelope[T]
	if err := json.Unmarshal(data, &env); err != nil {
		return err
	}
	*p = Page[T]{
		Content:       env.Content,
		TotalElements: env.TotalElements,
		Number:        env.Number,
		Size:          env.Size,
	}
	if env.TotalPages != nil {
		p.TotalPages = *env.TotalPages
		p.bounded = true
	}
	if env.Last != nil {
		p.Last = *env.Last
		p.bounded = true
	}
	return nil
}

// more сообщает, есть ли страницы после текущей. Короткая страница считается
// последней только если бэкенд не прислал ни last, ни totalPages.
func (p *Page[T]) more(requested int) bool {
	if len(p.Content) == 0 || p.Last {
		return false
	}
	if p.TotalPages > 0 && p.Number+1 >= p.TotalPages {
		return false
	}
	if !p.bounded && len(p.Content) < requested {
		return false
	}
	return true
}
