package api

import (
	"context"
	"net/http"
	"strconv"
)

// resource реализует create/get/update/delete, общие для всех ресурсов.
type resource[T any] struct {
	client *Client
	path   string
}

func (r resource[T]) itemPath(id int64) string {
	return r.path + "/" + strconv.FormatInt(id, 10)
}

// Create отправляет запись в коллекцию ресурса.
func (r resource[T]) Create(ctx context.Context, record T) (*T, error) {
	var out T
	if err := r.client.do(ctx, http.MethodPost, r.path, nil, record, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Get получает одну запись по id.
func (r resource[T]) Get(ctx context.Context, id int64) (*T, error) {
	var out T
	if err := r.client.do(ctx, http.MethodGet, r.itemPath(id), nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Update заменяет запись с данным id.
func (r resource[T]) Update(ctx context.Context, id int64, record T) (*T, error) {
	var out T
	if err := r.client.do(ctx, http.MethodPut, r.itemPath(id), nil, record, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Delete удаляет запись с данным id.
func (r resource[T]) Delete(ctx context.Context, id int64) error {
	return r.client.do(ctx, http.MethodDelete, r.itemPath(id), nil, nil, nil)
}

func (r resource[T]) list(ctx context.Context, path string, query params) (*Page[T], error) {
	var out Page[T]
	if err := r.client.do(ctx, http.MethodGet, path, query.values(), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
