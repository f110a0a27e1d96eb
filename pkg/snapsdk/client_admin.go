package snapsdk

import (
	"context"
	"net/http"
)

func (c *SDKClient) ListUsers(ctx context.Context, accessToken string) (*UserList, error) {
	var out UserList
	if err := c.doJSON(ctx, http.MethodGet, "/admin/users", accessToken, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateUser bans/unbans a user and replaces their roles.
func (c *SDKClient) UpdateUser(ctx context.Context, accessToken string, req UserUpdate) (*Message, error) {
	var out Message
	if err := c.doJSON(ctx, http.MethodPost, "/admin/user/update", accessToken, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *SDKClient) GetWebhook(ctx context.Context, accessToken string) (*Webhook, error) {
	var out Webhook
	if err := c.doJSON(ctx, http.MethodGet, "/admin/webhook", accessToken, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *SDKClient) PutWebhook(ctx context.Context, accessToken string, w Webhook) (*Message, error) {
	var out Message
	if err := c.doJSON(ctx, http.MethodPut, "/admin/webhook", accessToken, w, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *SDKClient) UsageSummary(ctx context.Context, accessToken string) ([]UsageSummary, error) {
	var out struct {
		UsageSummary []UsageSummary `json:"usage_summary"`
	}
	if err := c.doJSON(ctx, http.MethodGet, "/stats/usage-summary", accessToken, nil, &out); err != nil {
		return nil, err
	}
	return out.UsageSummary, nil
}

func (c *SDKClient) TopLanguages(ctx context.Context, accessToken string) ([]StatBucket, error) {
	var out struct {
		TopLanguages []StatBucket `json:"top_languages"`
	}
	if err := c.doJSON(ctx, http.MethodGet, "/stats/top-languages", accessToken, nil, &out); err != nil {
		return nil, err
	}
	return out.TopLanguages, nil
}

func (c *SDKClient) ImageCategories(ctx context.Context, accessToken string) ([]StatBucket, error) {
	var out struct {
		ImageCategories []StatBucket `json:"image_categories"`
	}
	if err := c.doJSON(ctx, http.MethodGet, "/stats/image-categories", accessToken, nil, &out); err != nil {
		return nil, err
	}
	return out.ImageCategories, nil
}

func (c *SDKClient) FeedbackStats(ctx context.Context, accessToken string) (*FeedbackStats, error) {
	var out struct {
		FeedbackStats FeedbackStats `json:"feedback_stats"`
	}
	if err := c.doJSON(ctx, http.MethodGet, "/feedback/stats", accessToken, nil, &out); err != nil {
		return nil, err
	}
	return &out.FeedbackStats, nil
}
