package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/omarshaarawi/rotocoach/internal/models"
	"github.com/robfig/cron/v3"
)

// Config is the long-running bot configuration.
type Config struct {
	Batch
	TelegramBot TelegramBot
	Schedule    Schedule
}

// Batch is everything a one-shot run needs.
type Batch struct {
	Log     Log
	League  League
	Data    Data
	ESPNAPI ESPNAPI
}

type Log struct {
	Level  string `envconfig:"LOG_LEVEL" default:"info"`
	Format string `envconfig:"LOG_FORMAT" default:"text"`
}

type League struct {
	NTeams           int      `envconfig:"N_TEAMS" default:"12"`
	MyTeamID         int      `envconfig:"MY_TEAM_ID" required:"true"`
	RosterSize       int      `envconfig:"ROSTER_SIZE" default:"13"`
	TopN             int      `envconfig:"TOP_N" default:"10"`
	TeamGames        float64  `envconfig:"TEAM_GAMES" default:"0"`
	RecentWindow     float64  `envconfig:"RECENT_WINDOW" default:"0"`
	IncludeRostered  bool     `envconfig:"INCLUDE_ROSTERED" default:"false"`
	Punt             []string `envconfig:"PUNT_CATEGORIES" default:"pts,3pm"`
	BufferCategories []string `envconfig:"BUFFER_CATEGORIES"`
}

type Data struct {
	ProjectionsPath string `envconfig:"PROJECTIONS_PATH" default:"data/projections.csv"`
	RostersPath     string `envconfig:"ROSTERS_PATH" default:"data/rosters.csv"`
	StandingsPath   string `envconfig:"STANDINGS_PATH" default:"data/standings.csv"`
	OutputDir       string `envconfig:"OUTPUT_DIR" default:"out"`
	HistoryDB       string `envconfig:"HISTORY_DB" default:"rotocoach.db"`
}

// ESPNAPI is optional. Without a league id rosters and standings come from
// the CSV files in Data.
type ESPNAPI struct {
	BaseURL  string `envconfig:"ESPN_BASE_URL" default:"https://lm-api-reads.fantasy.espn.com/apis/v3/games/fba"`
	Year     string `envconfig:"YEAR"`
	LeagueID string `envconfig:"LEAGUE_ID"`
	SWID     string `envconfig:"SWID"`
	ESPNS2   string `envconfig:"ESPN_S2"`
}

func (e ESPNAPI) Enabled() bool {
	return e.LeagueID != ""
}

type TelegramBot struct {
	Token  string `envconfig:"TELEGRAM_TOKEN" required:"true"`
	ChatID int64  `envconfig:"CHAT_ID" required:"true"`
}

type Schedule struct {
	Enabled  bool   `envconfig:"SCHEDULE_ENABLED" default:"true"`
	Cron     string `envconfig:"REPORT_CRON" default:"30 7 * * 1"`
	Timezone string `envconfig:"SCHEDULE_TZ" default:"America/Chicago"`
}

func New() (*Config, error) {
	var c Config
	err := envconfig.Process("", &c)
	if err != nil {
		return nil, err
	}
	if err := c.Batch.validate(); err != nil {
		return nil, err
	}
	if err := c.Schedule.validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

func NewBatch() (*Batch, error) {
	var b Batch
	err := envconfig.Process("", &b)
	if err != nil {
		return nil, err
	}
	if err := b.validate(); err != nil {
		return nil, err
	}
	return &b, nil
}

func (b *Batch) validate() error {
	l := b.League
	if l.MyTeamID <= 0 {
		return fmt.Errorf("MY_TEAM_ID must be positive, got %d", l.MyTeamID)
	}
	if l.NTeams < 2 {
		return fmt.Errorf("N_TEAMS must be at least 2, got %d", l.NTeams)
	}
	if l.TopN <= 0 {
		return fmt.Errorf("TOP_N must be positive, got %d", l.TopN)
	}
	if l.RosterSize < 0 {
		return fmt.Errorf("ROSTER_SIZE must not be negative, got %d", l.RosterSize)
	}
	if _, err := l.PuntCategories(); err != nil {
		return fmt.Errorf("PUNT_CATEGORIES: %w", err)
	}
	if _, err := l.Buffer(); err != nil {
		return fmt.Errorf("BUFFER_CATEGORIES: %w", err)
	}
	if b.ESPNAPI.Enabled() && b.ESPNAPI.Year == "" {
		return fmt.Errorf("YEAR is required when LEAGUE_ID is set")
	}
	return nil
}

func (s Schedule) validate() error {
	if !s.Enabled {
		return nil
	}
	if _, err := cron.ParseStandard(s.Cron); err != nil {
		return fmt.Errorf("REPORT_CRON %q: %w", s.Cron, err)
	}
	if _, err := time.LoadLocation(s.Timezone); err != nil {
		return fmt.Errorf("SCHEDULE_TZ %q: %w", s.Timezone, err)
	}
	return nil
}

func (l League) PuntCategories() ([]models.Category, error) {
	return models.ParseCategories(l.Punt)
}

// Buffer returns the categories the swap buffer is measured over. Empty
// means every category.
func (l League) Buffer() ([]models.Category, error) {
	if len(l.BufferCategories) == 0 {
		return models.Categories, nil
	}
	return models.ParseCategories(l.BufferCategories)
}

// TeamIDs is 1..NTeams.
func (l League) TeamIDs() []int {
	ids := make([]int, l.NTeams)
	for i := range ids {
		ids[i] = i + 1
	}
	return ids
}
