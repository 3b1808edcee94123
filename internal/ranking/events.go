package ranking

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/court-leaderboard/internal/club"
)

// ListEvents returns the active and upcoming events at the current time.
func (s *Service) ListEvents(ctx context.Context) ([]club.Event, error) {
	events, err := s.store.ListEvents(ctx)
	if err != nil {
		return nil, err
	}
	return ActiveAndUpcoming(events, s.now()), nil
}

// ActiveAndUpcoming drops past events and orders the rest with running
// events first, then upcoming ones. Both groups are sorted by start time and
// then id. An event is active when start <= now <= end.
func ActiveAndUpcoming(events []club.Event, now time.Time) []club.Event {
	active := make([]club.Event, 0, len(events))
	var upcoming []club.Event
	for _, e := range events {
		switch {
		case e.StartDateTime.After(now):
			upcoming = append(upcoming, e)
		case !e.EndDateTime.Before(now):
			active = append(active, e)
		}
	}
	sortByStart(active)
	sortByStart(upcoming)
	return append(active, upcoming...)
}

func sortByStart(events []club.Event) {
	sort.SliceStable(events, func(i, j int) bool {
		if !events[i].StartDateTime.Equal(events[j].StartDateTime) {
			return events[i].StartDateTime.Before(events[j].StartDateTime)
		}
		return events[i].ID < events[j].ID
	})
}

func (s *Service) CreateEvent(ctx context.Context, in CreateEventInput) (*club.Event, error) {
	name := strings.TrimSpace(in.Name)
	organizer := strings.TrimSpace(in.Organizer)
	if name == "" || organizer == "" || in.StartDateTime == "" || in.EndDateTime == "" {
		return nil, invalid("Missing required fields")
	}
	start, err := time.Parse(time.RFC3339, in.StartDateTime)
	if err != nil {
		return nil, invalid("Invalid startDateTime")
	}
	end, err := time.Parse(time.RFC3339, in.EndDateTime)
	if err != nil {
		return nil, invalid("Invalid endDateTime")
	}

	event, err := s.store.CreateEvent(ctx, club.NewEvent{
		Name:          name,
		StartDateTime: start,
		EndDateTime:   end,
		Organizer:     organizer,
		CreatedAt:     s.now(),
	})
	if err != nil {
		return nil, err
	}
	log.Info("Event created", "id", event.ID, "name", event.Name)
	return event, nil
}
