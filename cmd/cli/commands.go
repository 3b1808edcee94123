package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/spf13/cobra"
)

var (
	page   int
	limit  int
	search string

	playerName      string
	playerInstagram string
	playerAvatar    string

	winnerID int64
	loserID  int64
	sport    string
	courtID  int64

	eventName      string
	eventOrganizer string
	eventStart     string
	eventEnd       string
)

func init() {
	playersCmd.Flags().IntVar(&page, "page", 0, "Page number, starting at 1")
	playersCmd.Flags().IntVar(&limit, "limit", 0, "Players per page")
	playersCmd.Flags().StringVar(&search, "search", "", "Case-insensitive name filter")

	matchesCmd.Flags().IntVar(&page, "page", 0, "Page number, starting at 1")
	matchesCmd.Flags().IntVar(&limit, "limit", 0, "Matches per page")

	addPlayerCmd.Flags().StringVar(&playerName, "name", "", "Player name")
	addPlayerCmd.Flags().StringVar(&playerInstagram, "instagram", "", "Instagram handle")
	addPlayerCmd.Flags().StringVar(&playerAvatar, "avatar", "", "Avatar URL or data URL")
	addPlayerCmd.MarkFlagRequired("name")

	recordMatchCmd.Flags().Int64Var(&winnerID, "winner", 0, "Winner player id")
	recordMatchCmd.Flags().Int64Var(&loserID, "loser", 0, "Loser player id")
	recordMatchCmd.Flags().StringVar(&sport, "sport", "", "padel, tennis or badminton")
	recordMatchCmd.Flags().Int64Var(&courtID, "court", 0, "Court id")
	for _, name := range []string{"winner", "loser", "sport", "court"} {
		recordMatchCmd.MarkFlagRequired(name)
	}

	addEventCmd.Flags().StringVar(&eventName, "name", "", "Event name")
	addEventCmd.Flags().StringVar(&eventOrganizer, "organizer", "", "Organizer")
	addEventCmd.Flags().StringVar(&eventStart, "start", "", "Start time (RFC 3339)")
	addEventCmd.Flags().StringVar(&eventEnd, "end", "", "End time (RFC 3339)")
	for _, name := range []string{"name", "organizer", "start", "end"} {
		addEventCmd.MarkFlagRequired(name)
	}

	rootCmd.AddCommand(healthCmd)
	rootCmd.AddCommand(playersCmd)
	rootCmd.AddCommand(playerCmd)
	rootCmd.AddCommand(addPlayerCmd)
	rootCmd.AddCommand(courtsCmd)
	rootCmd.AddCommand(matchesCmd)
	rootCmd.AddCommand(recordMatchCmd)
	rootCmd.AddCommand(eventsCmd)
	rootCmd.AddCommand(addEventCmd)
	rootCmd.AddCommand(leaderboardCmd)
	rootCmd.AddCommand(metricsCmd)
}

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check the health of the server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/health")
	},
}

var playersCmd = &cobra.Command{
	Use:   "players",
	Short: "List players ranked by points",
	RunE: func(cmd *cobra.Command, args []string) error {
		q := pageQuery()
		if search != "" {
			q.Set("search", search)
		}
		return performGetRequest(withQuery("/players", q))
	},
}

var playerCmd = &cobra.Command{
	Use:   "player <id>",
	Short: "Show a single player",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/players/" + url.PathEscape(args[0]))
	},
}

var addPlayerCmd = &cobra.Command{
	Use:   "add-player",
	Short: "Create a player",
	RunE: func(cmd *cobra.Command, args []string) error {
		payload := map[string]any{"name": playerName}
		if playerInstagram != "" {
			payload["instagramHandle"] = playerInstagram
		}
		if playerAvatar != "" {
			payload["avatarUrl"] = playerAvatar
		}
		return performJSONRequest(http.MethodPost, "/players", payload)
	},
}

var courtsCmd = &cobra.Command{
	Use:   "courts",
	Short: "List courts",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/courts")
	},
}

var matchesCmd = &cobra.Command{
	Use:   "matches",
	Short: "List recorded matches, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest(withQuery("/matches", pageQuery()))
	},
}

var recordMatchCmd = &cobra.Command{
	Use:   "record-match",
	Short: "Record a match result and award points to the winner",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performJSONRequest(http.MethodPost, "/matches", map[string]any{
			"winnerId": winnerID,
			"loserId":  loserID,
			"sport":    sport,
			"courtId":  courtID,
		})
	},
}

var eventsCmd = &cobra.Command{
	Use:   "events",
	Short: "List current and upcoming events",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/events")
	},
}

var addEventCmd = &cobra.Command{
	Use:   "add-event",
	Short: "Create an event",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performJSONRequest(http.MethodPost, "/events", map[string]any{
			"name":          eventName,
			"organizer":     eventOrganizer,
			"startDateTime": eventStart,
			"endDateTime":   eventEnd,
		})
	},
}

var leaderboardCmd = &cobra.Command{
	Use:   "leaderboard",
	Short: "Show players and courts",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/leaderboard")
	},
}

var metricsCmd = &cobra.Command{
	Use:   "metrics",
	Short: "Get application metrics",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/metrics")
	},
}

func pageQuery() url.Values {
	q := url.Values{}
	if page > 0 {
		q.Set("page", strconv.Itoa(page))
	}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}
	return q
}

func withQuery(endpoint string, q url.Values) string {
	if len(q) == 0 {
		return endpoint
	}
	return endpoint + "?" + q.Encode()
}

func performGetRequest(endpoint string) error {
	return performRequest(http.MethodGet, endpoint, nil)
}

func performJSONRequest(method, endpoint string, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to encode request body: %w", err)
	}
	return performRequest(method, endpoint, data)
}

func performRequest(method, endpoint string, payload []byte) error {
	target := host + endpoint
	fmt.Printf("Making %s request to %s\n", method, target)

	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}
	req, err := http.NewRequest(method, target, body)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	fmt.Printf("Status Code: %d\n", resp.StatusCode)
	fmt.Println("Response Body:")
	fmt.Println(string(respBody))

	return nil
}
