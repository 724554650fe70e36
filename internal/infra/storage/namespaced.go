package storage

import (
	"context"

	repo "ticketstore/internal/repository"
)

// プロファイルごとにキーを分ける（別プロファイルとは共有しない）
type NamespacedStore struct {
	inner  repo.KeyValueStore
	prefix string
}

func Namespaced(inner repo.KeyValueStore, namespace string) *NamespacedStore {
	return &NamespacedStore{inner: inner, prefix: "profile:" + namespace + ":"}
}

func (s *NamespacedStore) Get(ctx context.Context, key string) ([]byte, error) {
	return s.inner.Get(ctx, s.prefix+key)
}

func (s *NamespacedStore) Set(ctx context.Context, key string, value []byte) error {
	return s.inner.Set(ctx, s.prefix+key, value)
}

func (s *NamespacedStore) Remove(ctx context.Context, key string) error {
	return s.inner.Remove(ctx, s.prefix+key)
}
