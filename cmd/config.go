package cmd

import (
	agperms_config "github.com/grovetools/agentperms/config"
	core_config "github.com/grovetools/core/config"
)

// loadConfig reads the agperms extension from grove.yml. A missing or
// unreadable config yields the zero value.
func loadConfig() agperms_config.Config {
	var cfg agperms_config.Config
	coreCfg, err := core_config.LoadDefault()
	if err != nil {
		return cfg
	}
	if err := coreCfg.UnmarshalExtension("agperms", &cfg); err != nil {
		return agperms_config.Config{}
	}
	return cfg
}
