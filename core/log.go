// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package core

import (
	"errors"
	"io"

	log "github.com/sirupsen/logrus"
)

// NewLogger creates a text logger writing to out at the configured level.
func NewLogger(out io.Writer, cfg LogConfiguration) (*log.Logger, error) {
	level := log.InfoLevel
	if cfg.Level != "" {
		var err error
		if level, err = log.ParseLevel(cfg.Level); err != nil {
			return nil, errors.New("log.ParseLevel(): " + err.Error())
		}
	}

	logger := log.New()
	logger.SetOutput(out)
	logger.SetLevel(level)
	logger.SetFormatter(&log.TextFormatter{
		FullTimestamp: true,
	})
	return logger, nil
}
