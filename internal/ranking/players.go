package ranking

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/court-leaderboard/internal/assets"
	"github.com/mauv0809/court-leaderboard/internal/club"
)

func (s *Service) ListPlayers(ctx context.Context, query club.PlayerQuery) ([]club.Player, error) {
	return s.store.ListPlayers(ctx, query)
}

func (s *Service) GetPlayer(ctx context.Context, id int64) (*club.Player, error) {
	return s.store.GetPlayer(ctx, id)
}

// TopPlayers returns at most n players in rank order.
func (s *Service) TopPlayers(ctx context.Context, n int) ([]club.Player, error) {
	return s.store.ListPlayers(ctx, club.PlayerQuery{Page: club.Page{Number: 1, Size: n}})
}

// FindPlayer returns the best-ranked player whose name contains query,
// together with their 1-based rank on the full leaderboard.
func (s *Service) FindPlayer(ctx context.Context, query string) (*club.Player, int, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, 0, invalid("Name is required")
	}
	matches, err := s.store.ListPlayers(ctx, club.PlayerQuery{Search: query, Page: club.Page{Number: 1, Size: 1}})
	if err != nil {
		return nil, 0, err
	}
	if len(matches) == 0 {
		return nil, 0, fmt.Errorf("player %q: %w", query, club.ErrNotFound)
	}
	player := matches[0]

	all, err := s.store.ListPlayers(ctx, club.PlayerQuery{})
	if err != nil {
		return nil, 0, err
	}
	for i, p := range all {
		if p.ID == player.ID {
			return &player, i + 1, nil
		}
	}
	return &player, 0, nil
}

func (s *Service) CreatePlayer(ctx context.Context, in CreatePlayerInput) (*club.Player, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, invalid("Name is required")
	}

	np := club.NewPlayer{Name: name}
	if in.AvatarURL != nil && *in.AvatarURL != "" {
		avatar, err := s.storeAvatar(ctx, name, *in.AvatarURL)
		if err != nil {
			return nil, err
		}
		np.AvatarURL = &avatar
	}
	if in.InstagramHandle != nil && *in.InstagramHandle != "" {
		np.InstagramHandle = in.InstagramHandle
	}

	player, err := s.store.CreatePlayer(ctx, np)
	if err != nil {
		return nil, err
	}
	s.metrics.IncPlayersCreated()
	log.Info("Player created", "id", player.ID, "name", player.Name)
	return player, nil
}

// UpdatePlayer applies the fields present in the input. Explicit null or
// empty values clear the avatar and Instagram handle.
func (s *Service) UpdatePlayer(ctx context.Context, id int64, in UpdatePlayerInput) (*club.Player, error) {
	if in.Name == nil && in.Points == nil && !in.AvatarURL.Set && !in.InstagramHandle.Set {
		return nil, invalid("No fields to update")
	}

	var update club.PlayerUpdate
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, invalid("Name cannot be empty")
		}
		update.Name = &name
	}
	update.Points = in.Points

	switch {
	case in.AvatarURL.clears():
		update.ClearAvatar = true
	case in.AvatarURL.Set:
		avatar := *in.AvatarURL.Value
		if assets.IsDataURL(avatar) {
			name, err := s.playerName(ctx, id, update.Name)
			if err != nil {
				return nil, err
			}
			if avatar, err = s.storeAvatar(ctx, name, avatar); err != nil {
				return nil, err
			}
		}
		update.AvatarURL = &avatar
	}

	switch {
	case in.InstagramHandle.clears():
		update.ClearInstagram = true
	case in.InstagramHandle.Set:
		update.InstagramHandle = in.InstagramHandle.Value
	}

	player, err := s.store.UpdatePlayer(ctx, id, update)
	if err != nil {
		return nil, err
	}
	log.Info("Player updated", "id", player.ID)
	return player, nil
}

// playerName returns the name used for avatar keys: the new name when it is
// being changed, the stored one otherwise.
func (s *Service) playerName(ctx context.Context, id int64, newName *string) (string, error) {
	if newName != nil {
		return *newName, nil
	}
	player, err := s.store.GetPlayer(ctx, id)
	if err != nil {
		return "", err
	}
	return player.Name, nil
}

// storeAvatar uploads embedded images and passes plain URLs through.
func (s *Service) storeAvatar(ctx context.Context, name, avatar string) (string, error) {
	if !assets.IsDataURL(avatar) {
		return avatar, nil
	}
	ref, err := assets.UploadAvatar(ctx, s.assets, name, avatar)
	if errors.Is(err, assets.ErrInvalidDataURL) {
		return "", invalid("Invalid avatar image")
	}
	if err != nil {
		return "", fmt.Errorf("failed to store avatar: %w", err)
	}
	s.metrics.IncAvatarUploads()
	log.FromContext(ctx).Debug("Stored avatar", "player", name, "ref", ref)
	return ref, nil
}
