package usecase

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"ticketstore/internal/domain/model"
	"ticketstore/internal/logger"
	repo "ticketstore/internal/repository"

	"go.uber.org/zap"
)

// 表示テーマ（文字列のまま保存）
type PreferenceUsecase struct {
	store repo.KeyValueStore
	log   *zap.Logger
}

func NewPreferenceUsecase(store repo.KeyValueStore, log *zap.Logger) *PreferenceUsecase {
	return &PreferenceUsecase{store: store, log: logger.OrNop(log)}
}

// 未設定・不正な値はlight
func (u *PreferenceUsecase) Theme(ctx context.Context) model.Theme {
	raw, err := u.store.Get(ctx, repo.KeyTheme)
	if err != nil {
		if !errors.Is(err, repo.ErrNotFound) {
			u.log.Warn("theme read failed", zap.Error(err))
		}
		return model.ThemeLight
	}

	t := model.Theme(strings.TrimSpace(string(raw)))
	if !t.Valid() {
		return model.ThemeLight
	}
	return t
}

func (u *PreferenceUsecase) SetTheme(ctx context.Context, theme model.Theme) (model.Theme, error) {
	if !theme.Valid() {
		return "", NewHTTPError(http.StatusBadRequest, "invalid theme")
	}
	if err := u.store.Set(ctx, repo.KeyTheme, []byte(theme)); err != nil {
		u.log.Error("theme save failed", zap.Error(err))
		return "", NewHTTPError(http.StatusInternalServerError, "storage error")
	}
	return theme, nil
}

func (u *PreferenceUsecase) ToggleTheme(ctx context.Context) (model.Theme, error) {
	next := model.ThemeDark
	if u.Theme(ctx) == model.ThemeDark {
		next = model.ThemeLight
	}
	return u.SetTheme(ctx, next)
}
