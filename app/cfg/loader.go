package cfg

import (
	"cmp"
	"fmt"
	"time"

	"github.com/jessevdk/go-flags"
)

// Version is set at build time via -ldflags
var Version = "dev"

func GetVersion() string {
	return cmp.Or(Version, "unknown")
}

const (
	StorageDir    = "dir"
	StorageSQLite = "sqlite"
)

type rawCfg struct {
	// Feeds
	FeedsFile   string `long:"feeds" env:"FEEDS_FILE" description:"YAML feed table (built-in table when empty)"`
	SecretsFile string `long:"secrets" env:"SECRETS_FILE" default:"secrets.yml" description:"YAML file with network credentials"`
	Check       bool   `long:"check" description:"Fetch every feed once, report parser results and exit"`

	// Network
	WiFiSSID        string        `long:"wifi-ssid" env:"WIFI_SSID" description:"Network name (overrides the secrets file)"`
	WiFiPassword    string        `long:"wifi-password" env:"WIFI_PASSWORD" description:"Network password (overrides the secrets file)"`
	ProbeURL        string        `long:"probe-url" env:"PROBE_URL" default:"http://connectivitycheck.gstatic.com/generate_204" description:"URL used to confirm the network link is up (empty to skip)"`
	ConnectAttempts int           `long:"connect-attempts" env:"CONNECT_ATTEMPTS" default:"3" description:"Network association attempts"`
	ConnectBackoff  time.Duration `long:"connect-backoff" env:"CONNECT_BACKOFF" default:"3s" description:"Pause after a failed association attempt"`
	UserAgent       string        `long:"user-agent" env:"USER_AGENT" default:"RSS Marquee/1.0" description:"User agent string for HTTP requests"`
	Timeout         time.Duration `long:"timeout" env:"FETCH_TIMEOUT" default:"30s" description:"HTTP request timeout"`
	FetchInterval   time.Duration `long:"fetch-interval" env:"FETCH_INTERVAL" default:"1s" description:"Minimum time between feed requests"`

	// Storage
	Storage    string `long:"storage" env:"STORAGE" default:"dir" choice:"dir" choice:"sqlite" description:"Scratch storage backend"`
	ScratchDir string `long:"scratch-dir" env:"SCRATCH_DIR" default:"./data" description:"Directory for the dir backend"`
	DBPath     string `long:"db-path" env:"DB_PATH" default:"./data/marquee.db" description:"Database file for the sqlite backend"`

	// Display
	Width      int           `long:"width" env:"DISPLAY_WIDTH" default:"96" description:"Matrix width in pixels"`
	Height     int           `long:"height" env:"DISPLAY_HEIGHT" default:"20" description:"Matrix height in pixels"`
	Brightness float64       `long:"brightness" env:"BRIGHTNESS" default:"0.5" description:"Initial brightness between 0 and 1"`
	Headless   bool          `long:"headless" env:"HEADLESS" description:"Run without the terminal panel"`
	Step       time.Duration `long:"step" env:"SCROLL_STEP" default:"25ms" description:"Time between scroll frames"`
	Hold       time.Duration `long:"hold" env:"SCROLL_HOLD" default:"2s" description:"Pause after text has scrolled off"`
	Banner     time.Duration `long:"banner" env:"BANNER_HOLD" default:"2s" description:"How long the feed name is shown"`
	Speed      int           `long:"speed" env:"SCROLL_SPEED" default:"1" description:"Pixels moved per scroll frame"`
	Padding    int           `long:"padding" env:"SCROLL_PADDING" default:"10" description:"Left padding of scrolling text"`

	// API
	Port         string `long:"port" env:"PORT" default:"8080" description:"HTTP server port (empty to disable)"`
	APIAccessKey string `long:"api-key" env:"API_ACCESS_KEY" description:"API access key for the button endpoints (optional)"`

	// Application metadata
	Debug   bool   `long:"debug" env:"DEBUG" description:"Enable debug logging"`
	LogFile string `long:"log-file" env:"LOG_FILE" default:"marquee.log" description:"Log file used while the terminal panel is active"`
}

func Load() (*Cfg, error) {
	return parse(nil)
}

func parse(args []string) (*Cfg, error) {
	var raw rawCfg

	parser := flags.NewParser(&raw, flags.Default)

	var err error
	if args == nil {
		_, err = parser.Parse()
	} else {
		_, err = parser.ParseArgs(args)
	}
	if err != nil {
		if flagsErr, ok := err.(*flags.Error); ok {
			if flagsErr.Type == flags.ErrHelp {
				return nil, nil
			}
		}
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}

	cfg := &Cfg{
		FeedsFile:       raw.FeedsFile,
		SecretsFile:     raw.SecretsFile,
		Check:           raw.Check,
		WiFiSSID:        raw.WiFiSSID,
		WiFiPassword:    raw.WiFiPassword,
		ProbeURL:        raw.ProbeURL,
		ConnectAttempts: raw.ConnectAttempts,
		ConnectBackoff:  raw.ConnectBackoff,
		UserAgent:       raw.UserAgent,
		Timeout:         raw.Timeout,
		FetchInterval:   raw.FetchInterval,
		Storage:         raw.Storage,
		ScratchDir:      raw.ScratchDir,
		DBPath:          raw.DBPath,
		Width:           raw.Width,
		Height:          raw.Height,
		Brightness:      raw.Brightness,
		Headless:        raw.Headless,
		Step:            raw.Step,
		Hold:            raw.Hold,
		Banner:          raw.Banner,
		Speed:           raw.Speed,
		Padding:         raw.Padding,
		Port:            raw.Port,
		APIAccessKey:    raw.APIAccessKey,
		Debug:           raw.Debug,
		LogFile:         raw.LogFile,
		Version:         GetVersion(),
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Cfg) validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("display size must be positive, got %dx%d", c.Width, c.Height)
	}
	if c.Brightness < 0 || c.Brightness > 1 {
		return fmt.Errorf("brightness must be between 0 and 1, got %v", c.Brightness)
	}
	if c.Speed <= 0 {
		return fmt.Errorf("scroll speed must be positive, got %d", c.Speed)
	}
	if c.ConnectAttempts < 1 {
		return fmt.Errorf("connect attempts must be at least 1, got %d", c.ConnectAttempts)
	}
	return nil
}
