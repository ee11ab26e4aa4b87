package internal

import (
	"fmt"
	"time"
)

type Config struct {
	BadgerFilepath  string        `env:"BADGER_FILEPATH,required=true"`
	LogLevel        string        `env:"LOG_LEVEL,default=INFO"`
	Host            string        `env:"HOST,default=localhost"`
	Port            int           `env:"PORT,default=5000"`
	ReapInterval    time.Duration `env:"REAP_INTERVAL,default=15s"`
	InactivityLimit time.Duration `env:"INACTIVITY_LIMIT,default=10s"`
	RestartInterval time.Duration `env:"RESTART_INTERVAL,default=200ms"`
	ReportInterval  time.Duration `env:"REPORT_INTERVAL,default=60s"`

	ModerationEnabled         bool   `env:"MODERATION_ENABLED,default=false"`
	ModerationCharReplacement string `env:"MODERATION_CHARACTER_REPLACEMENT,default=*"`
	CensoredExtraWords        string `env:"CENSORED_EXTRA_WORDS"`

	DebugPort int `env:"DEBUG_PORT,default=8081"`
}

func CharacterRune(str string) (rune, error) {
	r := []rune(str)
	if len(r) != 1 {
		return 0, fmt.Errorf(
			"MODERATION_CHARACTER_REPLACEMENT must be a single character, got %q",
			str,
		)
	}
	return r[0], nil
}
