package service

import (
	"context"
	"log/slog"

	config "github.com/ravichandra178/mynitrends/configs"
	"github.com/ravichandra178/mynitrends/internal/models"
	"github.com/ravichandra178/mynitrends/internal/repository"
	"github.com/ravichandra178/mynitrends/pkg/utils"
)

type SettingsService interface {
	Get(ctx context.Context) (*models.Settings, error)
	Update(ctx context.Context, update models.SettingsUpdate) (*models.Settings, error)
	Credentials(ctx context.Context) (pageID, token string, err error)
}

type settingsService struct {
	sr  repository.SettingsRepository
	cfg config.Config
}

func NewSettingsService(sr repository.SettingsRepository, cfg config.Config) SettingsService {
	return &settingsService{
		sr:  sr,
		cfg: cfg,
	}
}

// Get returns the settings row, or nil when nothing has been saved yet.
func (s *settingsService) Get(ctx context.Context) (*models.Settings, error) {
	settings, isExist, err := s.sr.Get(ctx)
	if err != nil {
		return nil, err
	}
	if !isExist {
		return nil, nil
	}

	settings.FacebookPageAccessToken = s.decryptToken(settings.FacebookPageAccessToken)
	return settings, nil
}

func (s *settingsService) Update(ctx context.Context, update models.SettingsUpdate) (*models.Settings, error) {
	if update.FacebookPageAccessToken != nil && *update.FacebookPageAccessToken != "" {
		encrypted, err := s.encryptToken(*update.FacebookPageAccessToken)
		if err != nil {
			return nil, err
		}
		update.FacebookPageAccessToken = &encrypted
	}

	settings, err := s.sr.Upsert(ctx, update)
	if err != nil {
		return nil, err
	}

	settings.FacebookPageAccessToken = s.decryptToken(settings.FacebookPageAccessToken)
	return settings, nil
}

// Credentials returns the page id and token to publish with. Stored settings
// win over the environment.
func (s *settingsService) Credentials(ctx context.Context) (string, string, error) {
	settings, err := s.Get(ctx)
	if err != nil {
		return "", "", err
	}

	if settings != nil && settings.FacebookPageID != "" && settings.FacebookPageAccessToken != "" {
		return settings.FacebookPageID, settings.FacebookPageAccessToken, nil
	}
	if s.cfg.Facebook.PageID != "" && s.cfg.Facebook.PageAccessToken != "" {
		return s.cfg.Facebook.PageID, s.cfg.Facebook.PageAccessToken, nil
	}
	return "", "", ErrFacebookNotConfigured
}

func (s *settingsService) encryptToken(token string) (string, error) {
	key := utils.EncryptionKey(s.cfg.SecretKey)
	if key == nil {
		return token, nil
	}
	return utils.Encrypt([]byte(token), key)
}

// decryptToken tolerates tokens stored before SECRET_KEY was set.
func (s *settingsService) decryptToken(stored string) string {
	key := utils.EncryptionKey(s.cfg.SecretKey)
	if key == nil || stored == "" {
		return stored
	}

	token, err := utils.Decrypt(stored, key)
	if err != nil {
		slog.Warn("stored page token is not encrypted with the current key")
		return stored
	}
	return token
}
