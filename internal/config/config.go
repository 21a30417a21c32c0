package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const envPrefix = "YTNOTES_"

type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Media    MediaConfig    `yaml:"media"`
	Whisper  WhisperConfig  `yaml:"whisper"`
	Pipeline PipelineConfig `yaml:"pipeline"`
	Timeouts TimeoutsConfig `yaml:"timeouts"`
	Logging  LoggingConfig  `yaml:"logging"`
	Gemini   GeminiConfig   `yaml:"gemini"`
}

type ServerConfig struct {
	Host            string        `yaml:"host"`
	Port            int           `yaml:"port" validate:"gte=0,lte=65535"`
	ReadTimeout     time.Duration `yaml:"read_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

type MediaConfig struct {
	YtDlpBinary  string `yaml:"ytdlp_binary"`
	YtDlpFormat  string `yaml:"ytdlp_format"`
	FFmpegBinary string `yaml:"ffmpeg_binary"`
	// BinDir holds bundled ffmpeg/yt-dlp binaries; it is searched first and
	// added to the PATH of every child process.
	BinDir    string `yaml:"bin_dir"`
	WorkDir   string `yaml:"work_dir"`
	Container string `yaml:"container" validate:"omitempty,alphanum"`
}

type WhisperConfig struct {
	Backend    string `yaml:"backend" validate:"oneof=cli http"`
	BinaryPath string `yaml:"binary_path" validate:"required_if=Backend cli"`
	ModelPath  string `yaml:"model_path" validate:"required_if=Backend cli"`
	URL        string `yaml:"url" validate:"required_if=Backend http"`
	Model      string `yaml:"model"`
	Language   string `yaml:"language" validate:"required"`
	Threads    int    `yaml:"threads" validate:"gte=0"`
}

type PipelineConfig struct {
	ChunkLength   int `yaml:"chunk_length" validate:"gte=0"`
	MaxConcurrent int `yaml:"max_concurrent" validate:"gte=0"`
}

type TimeoutsConfig struct {
	Resolve    time.Duration `yaml:"resolve"`
	Cut        time.Duration `yaml:"cut"`
	Extract    time.Duration `yaml:"extract"`
	Transcribe time.Duration `yaml:"transcribe"`
	Job        time.Duration `yaml:"job"`
	// GracePeriod is how long a timed-out tool gets between SIGTERM and SIGKILL.
	GracePeriod time.Duration `yaml:"grace_period"`
}

type LoggingConfig struct {
	Level  string `yaml:"level" validate:"omitempty,oneof=debug info warn error"`
	Format string `yaml:"format" validate:"omitempty,oneof=text json"`
}

type GeminiConfig struct {
	Model   string   `yaml:"model"`
	APIKeys []string `yaml:"api_keys"`
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Load reads a YAML config file, applies .env and YTNOTES_* overrides, then
// validates it.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	// A missing .env is fine.
	_ = godotenv.Load()
	if err := cfg.applyEnv(os.Getenv); err != nil {
		return nil, fmt.Errorf("apply env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return &cfg, nil
}

func (c *Config) applyEnv(getenv func(string) string) error {
	if v := getenv(envPrefix + "PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%sPORT: %w", envPrefix, err)
		}
		c.Server.Port = port
	}
	if v := getenv(envPrefix + "LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
	if v := getenv(envPrefix + "WHISPER_URL"); v != "" {
		c.Whisper.URL = v
	}
	if v := getenv(envPrefix + "WHISPER_MODEL_PATH"); v != "" {
		c.Whisper.ModelPath = v
	}
	if v := getenv(envPrefix + "BIN_DIR"); v != "" {
		c.Media.BinDir = v
	}
	if v := getenv(envPrefix + "GEMINI_API_KEYS"); v != "" {
		c.Gemini.APIKeys = splitKeys(v)
	}
	return nil
}

func splitKeys(s string) []string {
	var keys []string
	for _, k := range strings.Split(s, ",") {
		if k = strings.TrimSpace(k); k != "" {
			keys = append(keys, k)
		}
	}
	return keys
}

// Validate fills defaults and checks the result.
func (c *Config) Validate() error {
	if c.Whisper.Backend == "" {
		c.Whisper.Backend = "cli"
	}
	if c.Whisper.Language == "" {
		c.Whisper.Language = "hi"
	}

	if err := validate.Struct(c); err != nil {
		return err
	}

	if c.Server.Port == 0 {
		c.Server.Port = 5000
	}
	if c.Server.ReadTimeout == 0 {
		c.Server.ReadTimeout = 15 * time.Second
	}
	if c.Server.ShutdownTimeout == 0 {
		c.Server.ShutdownTimeout = 10 * time.Second
	}

	if c.Media.YtDlpBinary == "" {
		c.Media.YtDlpBinary = "yt-dlp"
	}
	if c.Media.YtDlpFormat == "" {
		c.Media.YtDlpFormat = "best"
	}
	if c.Media.FFmpegBinary == "" {
		c.Media.FFmpegBinary = "ffmpeg"
	}
	if c.Media.WorkDir == "" {
		c.Media.WorkDir = "."
	}
	if c.Media.Container == "" {
		c.Media.Container = "mp4"
	}

	if c.Whisper.Model == "" {
		c.Whisper.Model = "base"
	}
	if c.Whisper.Threads == 0 {
		c.Whisper.Threads = 4
	}

	if c.Pipeline.ChunkLength == 0 {
		c.Pipeline.ChunkLength = 10
	}
	if c.Pipeline.MaxConcurrent == 0 {
		c.Pipeline.MaxConcurrent = 1
	}

	if c.Timeouts.Resolve == 0 {
		c.Timeouts.Resolve = time.Minute
	}
	if c.Timeouts.Cut == 0 {
		c.Timeouts.Cut = 10 * time.Minute
	}
	if c.Timeouts.Extract == 0 {
		c.Timeouts.Extract = 2 * time.Minute
	}
	if c.Timeouts.Transcribe == 0 {
		c.Timeouts.Transcribe = 5 * time.Minute
	}
	if c.Timeouts.Job == 0 {
		c.Timeouts.Job = time.Hour
	}
	if c.Timeouts.GracePeriod == 0 {
		c.Timeouts.GracePeriod = 5 * time.Second
	}

	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Logging.Format == "" {
		c.Logging.Format = "text"
	}
	if c.Gemini.Model == "" {
		c.Gemini.Model = "gemini-2.5-flash"
	}

	return nil
}
