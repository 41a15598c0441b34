package core

import (
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type (
	ServerConfig struct {
		Address         string        `mapstructure:"address"`
		Host            string        `mapstructure:"host"`
		DebugHost       string        `mapstructure:"debugHost"`
		ShutdownTimeout time.Duration `mapstructure:"shutdownTimeout"`
		DisableReqLogs  bool          `mapstructure:"disableReqLogs"`
	}

	// DataConfig locates the JSON documents. Relative paths are resolved against WorkDir.
	DataConfig struct {
		LessonsFile  string `mapstructure:"lessonsFile"` // published document, served to clients
		SourceFile   string `mapstructure:"sourceFile"`  // plaintext source of truth
		ProgressFile string `mapstructure:"progressFile"`
		PlanFile     string `mapstructure:"planFile"`  // empty: embedded default
		BatchFile    string `mapstructure:"batchFile"` // empty: embedded default
	}

	CipherConfig struct {
		Key string `mapstructure:"key"`
	}

	Config struct {
		Env          string
		WorkDir      string
		Debug        bool         `mapstructure:"debug"`
		TestMode     bool         `mapstructure:"testMode"`
		AppName      string       `mapstructure:"appName"`
		Build        string       `mapstructure:"build"`
		RollbarToken string       `mapstructure:"rollbarToken"`
		Server       ServerConfig `mapstructure:"server"`
		Data         DataConfig   `mapstructure:"data"`
		Cipher       CipherConfig `mapstructure:"cipher"`
	}
)

func NewConfig() *Config {
	v := viper.New()

	// defaults
	v.SetTypeByDefaultValue(true)
	v.SetDefault("debug", true)
	v.SetDefault("testMode", false)
	v.SetDefault("appName", "PineScript Study")
	v.SetDefault("build", "dev")
	v.SetDefault("rollbarToken", "")
	v.SetDefault("server.address", ":8000")
	v.SetDefault("server.host", "localhost")
	v.SetDefault("server.debugHost", "localhost:4000")
	v.SetDefault("server.shutdownTimeout", 5*time.Second)
	v.SetDefault("server.disableReqLogs", false)
	v.SetDefault("data.lessonsFile", filepath.Join("web", "data", "lessons.json"))
	v.SetDefault("data.sourceFile", filepath.Join("web", "data", "lessons_source.json"))
	v.SetDefault("data.progressFile", filepath.Join("server", "data", "progress.json"))
	v.SetDefault("data.planFile", "")
	v.SetDefault("data.batchFile", "")
	v.SetDefault("cipher.key", "pinegood888")

	env := strings.ToUpper(os.Getenv("ENV")) // DEV (local; default), TEST, QA, PROD
	switch env {
	case "":
		env = "DEV"
	case "TEST":
		v.SetDefault("testMode", true)
	}
	v.SetEnvPrefix(env)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	wd := os.Getenv("WORKDIR")
	if wd == "" {
		var err error
		if wd, err = os.Getwd(); err != nil {
			log.Fatalf("config.os.Getwd(): %v", err)
		}
	}

	// load .env if it exists (ignore if it does not)
	dotEnvPath := filepath.Join(wd, "config", ".env."+strings.ToLower(env))
	if _, err := os.Stat(dotEnvPath); err == nil {
		if err := godotenv.Load(dotEnvPath); err != nil {
			log.Fatalf("config.godotenv(%s): %v", dotEnvPath, err)
		}
	} else if !os.IsNotExist(err) {
		log.Fatalf("config.os.Stat(%s): %v", dotEnvPath, err)
	}
	v.AutomaticEnv()

	conf := &Config{Env: env, WorkDir: wd}
	if err := v.Unmarshal(conf); err != nil {
		log.Fatalf("config.Unmarshal(): %v", err)
	}
	return conf
}

// Path resolves p against the configured WorkDir, leaving absolute and empty paths alone.
func (c *Config) Path(p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(c.WorkDir, p)
}
