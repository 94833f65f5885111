package util

import (
	_ "embed"
	"fmt"
	"log"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

const Name = "noticeboard"
const ConfigFileName = "config.yaml"

const (
	defaultPageSize    = 5
	maxPageSize        = 50
	defaultTitle       = "School Announcements"
	defaultDescription = "Important announcements from the school administration"
)

//go:embed config_default.yaml
var embeddedConfig []byte

type AppConfig struct {
	Conf struct {
		Host         string
		SshPort      int    `yaml:"sshPort"`
		HttpPort     int    `yaml:"httpPort"`
		SshOnly      bool   `yaml:"sshOnly"`
		WithJournald bool   `yaml:"withJournald"`
		PageSize     int    `yaml:"pageSize"`
		SeedFile     string `yaml:"seedFile"`
		Title        string `yaml:"title"`
		Description  string `yaml:"description"`
	}
}

func ReadConf() (*AppConfig, error) {

	// Try to resolve config file path (local first, then user dir)
	configPath := ResolveFilePath(ConfigFileName)

	buf, err := os.ReadFile(configPath)
	if err != nil {
		// If file doesn't exist, use embedded config and create user config file
		log.Printf("Config file not found at %s, using embedded defaults", configPath)
		buf = embeddedConfig

		configDir, dirErr := GetConfigDir()
		if dirErr == nil {
			userConfigPath := configDir + "/" + ConfigFileName
			writeErr := os.WriteFile(userConfigPath, embeddedConfig, 0644)
			if writeErr != nil {
				log.Printf("Warning: could not write default config to %s: %v", userConfigPath, writeErr)
			} else {
				log.Printf("Created default config file at %s", userConfigPath)
			}
		}
	}

	c, err := ParseConf(buf)
	if err != nil {
		return nil, err
	}
	applyEnv(c)
	c.normalize()
	return c, nil
}

// ParseConf decodes a YAML config document without applying environment overrides
func ParseConf(buf []byte) (*AppConfig, error) {
	c := &AppConfig{}
	if err := yaml.Unmarshal(buf, c); err != nil {
		return nil, fmt.Errorf("in config file: %w", err)
	}
	return c, nil
}

func applyEnv(c *AppConfig) {
	envHost := os.Getenv("NOTICEBOARD_HOST")
	envSshPort := os.Getenv("NOTICEBOARD_SSHPORT")
	envHttpPort := os.Getenv("NOTICEBOARD_HTTPPORT")
	envSshOnly := os.Getenv("NOTICEBOARD_SSH_ONLY")
	envWithJournald := os.Getenv("NOTICEBOARD_WITH_JOURNALD")
	envPageSize := os.Getenv("NOTICEBOARD_PAGE_SIZE")
	envSeedFile := os.Getenv("NOTICEBOARD_SEED_FILE")
	envTitle := os.Getenv("NOTICEBOARD_TITLE")

	if envHost != "" {
		c.Conf.Host = envHost
	}

	if envSshPort != "" {
		v, err := strconv.Atoi(envSshPort)
		if err != nil {
			log.Printf("Error parsing NOTICEBOARD_SSHPORT: %v", err)
		} else {
			c.Conf.SshPort = v
		}
	}

	if envHttpPort != "" {
		v, err := strconv.Atoi(envHttpPort)
		if err != nil {
			log.Printf("Error parsing NOTICEBOARD_HTTPPORT: %v", err)
		} else {
			c.Conf.HttpPort = v
		}
	}

	if envSshOnly == "true" {
		c.Conf.SshOnly = true
	}

	if envWithJournald == "true" {
		c.Conf.WithJournald = true
	}

	if envPageSize != "" {
		v, err := strconv.Atoi(envPageSize)
		if err != nil {
			log.Printf("Error parsing NOTICEBOARD_PAGE_SIZE: %v", err)
		} else {
			c.Conf.PageSize = v
		}
	}

	if envSeedFile != "" {
		c.Conf.SeedFile = envSeedFile
	}

	if envTitle != "" {
		c.Conf.Title = envTitle
	}
}

// normalize fills in defaults and caps the page size
func (c *AppConfig) normalize() {
	if c.Conf.PageSize == 0 {
		c.Conf.PageSize = defaultPageSize
	} else if c.Conf.PageSize > maxPageSize {
		log.Printf("pageSize value %d exceeds maximum of %d, capping at %d", c.Conf.PageSize, maxPageSize, maxPageSize)
		c.Conf.PageSize = maxPageSize
	} else if c.Conf.PageSize < 1 {
		log.Printf("pageSize value %d is less than minimum of 1, setting to default %d", c.Conf.PageSize, defaultPageSize)
		c.Conf.PageSize = defaultPageSize
	}

	if c.Conf.Title == "" {
		c.Conf.Title = defaultTitle
	}
	if c.Conf.Description == "" {
		c.Conf.Description = defaultDescription
	}
}
