// Package config provides configuration management for the provisioner.
//
// It utilizes Viper for loading configuration from environment variables
// and an optional .env file.
//
// # Configuration Structure
//
// The Config struct is the central repository for all settings, divided into subsections:
//   - Log: logging level and format (LOG_LEVEL, LOG_FORMAT)
//   - Lookup: local calling guide endpoint (LOOKUP_BASE_URL)
//   - Webex: API root, explicit token and token cache path
//     (WEBEX_BASE_URL, WEBEX_TOKEN, WEBEX_TOKEN_CACHE)
//   - ServiceApp: credentials for the token refresh flow
//     (SERVICE_APP_CLIENT_ID, SERVICE_APP_CLIENT_SECRET, SERVICE_APP_REFRESH_TOKEN)
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Webex.BaseURL)
package config
