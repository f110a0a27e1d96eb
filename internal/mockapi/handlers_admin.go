package mockapi

import (
	"cmp"
	"net/http"
	"slices"

	"github.com/aussiebroadwan/snaptranslate/pkg/httpx"
	"github.com/aussiebroadwan/snaptranslate/pkg/snapsdk"
)

func (s *Server) handleListUsers(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	users := make([]snapsdk.AdminUser, 0, len(s.users))
	for _, u := range s.users {
		users = append(users, u.adminView())
	}
	s.mu.Unlock()

	slices.SortFunc(users, func(a, b snapsdk.AdminUser) int { return cmp.Compare(a.ID, b.ID) })
	httpx.WriteJSON(w, http.StatusOK, snapsdk.UserList{Users: users, Count: len(users)})
}

func (s *Server) handleUpdateUser(w http.ResponseWriter, r *http.Request) {
	var req snapsdk.UserUpdate
	if err := httpx.DecodeJSON(r, &req); err != nil || req.Email == "" {
		writeDetail(w, http.StatusUnprocessableEntity, "email is required")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[req.Email]
	if !ok {
		writeDetail(w, http.StatusNotFound, "User not found")
		return
	}
	u.banned = req.IsBanned
	if len(req.Roles) > 0 {
		u.roles = slices.Clone(req.Roles)
	}

	httpx.WriteJSON(w, http.StatusOK, snapsdk.Message{Message: "User updated successfully"})
}

func (s *Server) handleGetWebhook(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	url := s.webhook
	s.mu.Unlock()

	httpx.WriteJSON(w, http.StatusOK, snapsdk.Webhook{DiscordWebhookURL: url})
}

func (s *Server) handlePutWebhook(w http.ResponseWriter, r *http.Request) {
	var req snapsdk.Webhook
	if err := httpx.DecodeJSON(r, &req); err != nil {
		writeDetail(w, http.StatusUnprocessableEntity, "discord_webhook_url is required")
		return
	}

	s.mu.Lock()
	s.webhook = req.DiscordWebhookURL
	s.mu.Unlock()

	httpx.WriteJSON(w, http.StatusOK, snapsdk.Message{Message: "Webhook updated successfully"})
}

func (s *Server) handleUsageSummary(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	byUser := map[string]*snapsdk.UsageSummary{}
	var order []string
	for _, u := range s.usage {
		sum, ok := byUser[u.email]
		if !ok {
			sum = &snapsdk.UsageSummary{UserEmail: u.email}
			byUser[u.email] = sum
			order = append(order, u.email)
		}
		sum.TotalCount++
		at := u.at
		if sum.LastUsed == nil || at.After(*sum.LastUsed) {
			sum.LastUsed = &at
		}
	}
	s.mu.Unlock()

	out := make([]snapsdk.UsageSummary, 0, len(order))
	for _, email := range order {
		out = append(out, *byUser[email])
	}
	httpx.WriteJSON(w, http.StatusOK, map[string][]snapsdk.UsageSummary{"usage_summary": out})
}

func (s *Server) handleTopLanguages(w http.ResponseWriter, r *http.Request) {
	buckets := s.bucket(func(u usageStat) string { return u.language })
	if len(buckets) > 10 {
		buckets = buckets[:10]
	}
	httpx.WriteJSON(w, http.StatusOK, map[string][]snapsdk.StatBucket{"top_languages": buckets})
}

func (s *Server) handleImageCategories(w http.ResponseWriter, r *http.Request) {
	buckets := s.bucket(func(u usageStat) string { return u.imageClass })
	httpx.WriteJSON(w, http.StatusOK, map[string][]snapsdk.StatBucket{"image_categories": buckets})
}

// bucket groups usage by key, largest group first.
func (s *Server) bucket(key func(usageStat) string) []snapsdk.StatBucket {
	s.mu.Lock()
	counts := map[string]int{}
	for _, u := range s.usage {
		counts[key(u)]++
	}
	s.mu.Unlock()

	out := make([]snapsdk.StatBucket, 0, len(counts))
	for k, n := range counts {
		out = append(out, snapsdk.StatBucket{Key: k, Count: n})
	}
	slices.SortFunc(out, func(a, b snapsdk.StatBucket) int {
		if c := cmp.Compare(b.Count, a.Count); c != 0 {
			return c
		}
		return cmp.Compare(a.Key, b.Key)
	})
	return out
}

