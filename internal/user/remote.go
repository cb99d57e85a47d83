package user

import (
	"context"
	"net/url"

	"pawmart-web/internal/apiclient"
	"pawmart-web/internal/logger"

	"go.uber.org/zap"
)

type API interface {
	Session(ctx context.Context) (*SessionUser, error)
	GetProfile(ctx context.Context, userID string) (*Profile, error)
	UpdateProfile(ctx context.Context, userID string, params UpdateProfileParams) (*Profile, error)
}

type remote struct {
	api *apiclient.Client
}

func NewRemote(api *apiclient.Client) API {
	return &remote{api: api}
}

func (r *remote) Session(ctx context.Context) (*SessionUser, error) {
	var u SessionUser
	if err := r.api.Get(ctx, "/api/users/session", &u); err != nil {
		return nil, err
	}
	if u.ID == "" {
		return nil, ErrUserNotAuthenticated
	}
	return &u, nil
}

func (r *remote) GetProfile(ctx context.Context, userID string) (*Profile, error) {
	if userID == "" {
		return nil, ErrMissingUserID
	}
	var p Profile
	if err := r.api.Get(ctx, "/api/users/"+url.PathEscape(userID), &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *remote) UpdateProfile(ctx context.Context, userID string, params UpdateProfileParams) (*Profile, error) {
	if userID == "" {
		return nil, ErrMissingUserID
	}

	log := logger.FromCtx(ctx).With(
		zap.String("layer", "user"),
		zap.String("method", "UpdateProfile"),
		zap.String("user_id", userID),
	)

	var p Profile
	if err := r.api.Put(ctx, "/api/users/"+url.PathEscape(userID), params, &p); err != nil {
		log.Warn("profile update failed", zap.Error(err))
		return nil, err
	}

	log.Info("profile updated", zap.Bool("delivery_details", params.DeliveryDetails != nil))
	return &p, nil
}
