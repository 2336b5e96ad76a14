// Package config provides configuration management for nlterm.
//
// This package implements a layered configuration system that allows users to
// customize the terminal through YAML files and environment variables.
// Configuration is loaded from multiple sources and merged in a specific
// order, with later sources overriding earlier ones.
//
// # Configuration Layers
//
// Configuration is loaded and merged in the following order:
//
//  1. Default Configuration (embedded in binary)
//     - Provides sensible defaults for all settings
//     - Ensures nlterm works out-of-the-box
//
//  2. User Configuration (~/.config/nlterm/config.yaml)
//     - User-specific settings such as the portfolio profile
//
//  3. Project Configuration (./.nlterm/config.yaml)
//     - Settings for the site being served from the current directory
//
//  4. Environment Variables (NLTERM_*)
//     - NLTERM_DATA_DIR, NLTERM_WEB_ADDR, NLTERM_NO_TYPEWRITER,
//     NLTERM_GITHUB_URL, NLTERM_LOG_LEVEL
//
// An explicit file passed with --config replaces layers 2 and 3.
//
// # Configuration Structure
//
//	globalSettings:
//	  logLevel: info
//
//	profile:
//	  name: "Ada Lovelace"
//	  role: "Analyst"
//	  githubURL: "https://github.com/ada"
//	  skills:
//	    - category: Backend
//	      skills:
//	        - name: Go
//	          level: 90
//	  projects:
//	    - name: "Difference Engine"
//	      status: DEPLOYED
//	      tech: [brass, steam]
//
//	terminal:
//	  typewriter: true
//	  secretPhrase: "sudo nl"
//	  theme: auto # dark, light; NLTERM_THEME overrides
//
//	storage:
//	  dataDir: "~/.config/nlterm"
//
//	web:
//	  addr: ":8080"
//	  allowedOrigins: ["https://example.com"]
//	  inputRate: 10
//	  inputBurst: 20
//
// Empty profile fields fall back to the built-in portfolio content.
package config
