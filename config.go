package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v2"
)

// Environment variables
const (
	ENV_CONFIG_FILE_PATH = "CONFIG_FILE_PATH"

	ENV_SHEET_CSV_URL            = "SHEET_CSV_URL"
	ENV_CLOUDINARY_CLOUD_NAME    = "CLOUDINARY_CLOUD_NAME"
	ENV_CLOUDINARY_API_KEY       = "CLOUDINARY_API_KEY"
	ENV_CLOUDINARY_API_SECRET    = "CLOUDINARY_API_SECRET"
	ENV_CLOUDINARY_BASE_FOLDER   = "CLOUDINARY_BASE_FOLDER"
	ENV_CLOUDINARY_UPLOAD_PREFIX = "CLOUDINARY_UPLOAD_PREFIX"
	ENV_SLEEP_SECONDS            = "SLEEP_SECONDS"
	ENV_OUT_CSV                  = "OUT_CSV"
	ENV_GOOGLE_CREDENTIALS_FILE  = "GOOGLE_CREDENTIALS_FILE"
	ENV_GOOGLE_TOKEN_FILE        = "GOOGLE_TOKEN_FILE"
)

const (
	defaultBaseFolder   = "tabzollection"
	defaultSleepSeconds = "0.4"
	defaultOutCSV       = "products_cloudinary.csv"
	defaultTokenFile    = "client_token.json"
)

type config struct {
	SheetCSVURL string `yaml:"sheet_csv_url"`

	Cloudinary struct {
		CloudName    string `yaml:"cloud_name"`
		APIKey       string `yaml:"api_key"`
		APISecret    string `yaml:"api_secret"`
		BaseFolder   string `yaml:"base_folder"`
		UploadPrefix string `yaml:"upload_prefix"`
	} `yaml:"cloudinary"`

	Google struct {
		CredentialsFile string `yaml:"credentials_file"`
		TokenFile       string `yaml:"token_file"`
	} `yaml:"google"`

	SleepSeconds string `yaml:"sleep_seconds"`
	OutCSV       string `yaml:"out_csv"`

	// Parsed from SleepSeconds
	Delay time.Duration `yaml:"-"`
}

// loadConfig builds the run configuration from .env, an optional YAML file
// and the process environment, in increasing order of precedence.
func loadConfig() (*config, error) {
	// Existing environment variables are never overwritten by .env
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Warnf("Could not load .env file: %v", err)
	}

	conf := &config{}

	if path := strings.TrimSpace(os.Getenv(ENV_CONFIG_FILE_PATH)); path != "" {
		yamlFile, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file %s: %w", path, err)
		}
		if err := yaml.UnmarshalStrict(yamlFile, conf); err != nil {
			return nil, fmt.Errorf("parsing config file %s: %w", path, err)
		}
	}

	envOverride(conf)

	if err := conf.validate(); err != nil {
		return nil, err
	}
	return conf, nil
}

func envOverride(conf *config) {
	override := func(dst *string, name string) {
		if v := strings.TrimSpace(os.Getenv(name)); v != "" {
			*dst = v
		}
	}

	override(&conf.SheetCSVURL, ENV_SHEET_CSV_URL)
	override(&conf.Cloudinary.CloudName, ENV_CLOUDINARY_CLOUD_NAME)
	override(&conf.Cloudinary.APIKey, ENV_CLOUDINARY_API_KEY)
	override(&conf.Cloudinary.APISecret, ENV_CLOUDINARY_API_SECRET)
	override(&conf.Cloudinary.BaseFolder, ENV_CLOUDINARY_BASE_FOLDER)
	override(&conf.Cloudinary.UploadPrefix, ENV_CLOUDINARY_UPLOAD_PREFIX)
	override(&conf.Google.CredentialsFile, ENV_GOOGLE_CREDENTIALS_FILE)
	override(&conf.Google.TokenFile, ENV_GOOGLE_TOKEN_FILE)
	override(&conf.SleepSeconds, ENV_SLEEP_SECONDS)
	override(&conf.OutCSV, ENV_OUT_CSV)
}

func (c *config) validate() error {
	required := []struct {
		name  string
		value string
	}{
		{ENV_SHEET_CSV_URL, c.SheetCSVURL},
		{ENV_CLOUDINARY_CLOUD_NAME, c.Cloudinary.CloudName},
		{ENV_CLOUDINARY_API_KEY, c.Cloudinary.APIKey},
		{ENV_CLOUDINARY_API_SECRET, c.Cloudinary.APISecret},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			return fmt.Errorf("missing env var: %s", r.name)
		}
	}

	if c.Cloudinary.BaseFolder == "" {
		c.Cloudinary.BaseFolder = defaultBaseFolder
	}
	if c.OutCSV == "" {
		c.OutCSV = defaultOutCSV
	}
	if c.Google.TokenFile == "" {
		c.Google.TokenFile = defaultTokenFile
	}
	if c.SleepSeconds == "" {
		c.SleepSeconds = defaultSleepSeconds
	}

	seconds, err := strconv.ParseFloat(c.SleepSeconds, 64)
	if err != nil {
		return fmt.Errorf("invalid %s %q: %w", ENV_SLEEP_SECONDS, c.SleepSeconds, err)
	}
	if seconds < 0 {
		return fmt.Errorf("invalid %s %q: must not be negative", ENV_SLEEP_SECONDS, c.SleepSeconds)
	}
	c.Delay = time.Duration(seconds * float64(time.Second))

	return nil
}
