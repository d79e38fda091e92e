// Package configs manages cipherlab configuration.
//
// Settings are resolved in layers, later layers winning:
//
//  1. Built-in defaults (Defaults)
//  2. A TOML file, cipherlab.toml by default
//  3. A .env file loaded with godotenv
//  4. CIPHERLAB_* environment variables
//
// # File Layout
//
//	[server]
//	addr = "0.0.0.0:8080"
//
//	[corpus]
//	excerpts = "excerpts.json"
//	passwords = "passwords.txt"
//
//	[bundle]
//	username = "davidjmalan"
//	key_mode = "shared"   # or "split"
//
//	[artifacts]
//	dir = ""              # empty disables persistence
//	in_memory = false
//	ttl = "15m"
//
//	[rate_limit]
//	enabled = true
//	rps = 5
//	burst = 20
//	idle_ttl = "10m"      # forget clients idle this long
//
//	[audit]
//	path = ""             # empty disables the audit log
//
// Changing key_mode changes every issued artifact, so pick it before the
// challenge opens.
package configs
